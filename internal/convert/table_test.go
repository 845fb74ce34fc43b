package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMarkdownTable(t *testing.T) {
	tests := []struct {
		name string
		md   string
		want [][]string
	}{
		{
			name: "header delimiter and body",
			md:   "| Name | Score |\n|------|------:|\n| Ada  | 10 |\n| Bob | 7 |",
			want: [][]string{{"Name", "Score"}, {"Ada", "10"}, {"Bob", "7"}},
		},
		{
			name: "long rows cut short rows padded",
			md:   "|a|b|c|\n|:-:|---|---|\n|1|2|3|4|\n|x|",
			want: [][]string{{"a", "b", "c"}, {"1", "2", "3"}, {"x", "", ""}},
		},
		{
			name: "surrounding whitespace and blank lines",
			md:   "\n\n   | h1 | h2 |   \n\n   | v1 | v2 |\n",
			want: [][]string{{"h1", "h2"}, {"v1", "v2"}},
		},
		{
			name: "lines without pipe framing ignored",
			md:   "Table 1: results\n| k | v |\n| --- | --- |\nk | v\n| a | b |\nSource: survey",
			want: [][]string{{"k", "v"}, {"a", "b"}},
		},
		{
			name: "doubled outer pipes stripped",
			md:   "|| a | b ||\n|| 1 | 2 ||",
			want: [][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			name: "empty",
			md:   "   \n  ",
			want: nil,
		},
		{
			name: "only prose",
			md:   "no table here",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseMarkdownTable(tt.md))
		})
	}
}
