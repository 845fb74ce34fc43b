package convert

import (
	"regexp"
	"strings"
)

var delimiterCell = regexp.MustCompile(`^:?-+:?$`)

// ParseMarkdownTable reads a GitHub-flavoured Markdown table into rows of
// cells. The header row fixes the column count: longer rows are cut and
// shorter rows padded. Lines not framed by pipes and the |---| delimiter row
// are ignored.
func ParseMarkdownTable(md string) [][]string {
	var rows [][]string
	cols := 0
	for _, ln := range strings.Split(strings.TrimSpace(md), "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" || !strings.HasPrefix(ln, "|") || !strings.HasSuffix(ln, "|") {
			continue
		}
		cells := trimAll(strings.Split(strings.Trim(ln, "|"), "|"))
		if isDelimiterRow(cells) {
			continue
		}

		if rows == nil {
			cols = len(cells)
			rows = append(rows, cells)
			continue
		}
		switch {
		case len(cells) > cols:
			cells = cells[:cols]
		case len(cells) < cols:
			cells = append(cells, make([]string, cols-len(cells))...)
		}
		rows = append(rows, cells)
	}
	return rows
}

func isDelimiterRow(cells []string) bool {
	for _, c := range cells {
		if !delimiterCell.MatchString(c) {
			return false
		}
	}
	return true
}

func trimAll(a []string) []string {
	out := make([]string, len(a))
	for i, v := range a {
		out[i] = strings.TrimSpace(v)
	}
	return out
}
