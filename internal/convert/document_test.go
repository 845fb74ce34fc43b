package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument([]byte(`{
		"document_elements": [
			{"type": "heading_1", "content": "Title"},
			{"type": "paragraph"},
			{"type": "paragraph", "content": null},
			{"type": "figure", "content": 42},
			{"type": "flag", "content": true}
		],
		"extra": "ignored"
	}`))
	require.NoError(t, err)
	assert.Equal(t, []Element{
		{Type: Heading1, Content: "Title"},
		{Type: Paragraph},
		{Type: Paragraph},
		{Type: "figure", Content: "42"},
		{Type: "flag", Content: "true"},
	}, doc.Elements)
}

func TestParseDocumentErrors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantMsg string
	}{
		{"not json", `{"document_elements": [`, ""},
		{"not an object", `[1, 2]`, ""},
		{"missing key", `{"elements": []}`, "'document_elements' key not found"},
		{"not a list", `{"document_elements": {"type": "paragraph"}}`, "'document_elements' is not a list"},
		{"null list", `{"document_elements": null}`, "'document_elements' is not a list"},
		{"object content", `{"document_elements": [{"type": "paragraph", "content": {"a": 1}}]}`, "content must be a string"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tt.in))
			require.ErrorIs(t, err, ErrInvalidDocument)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParseDocumentEmptyList(t *testing.T) {
	doc, err := ParseDocument([]byte(`{ "document_elements": [] }`))
	require.NoError(t, err)
	assert.Empty(t, doc.Elements)
}
