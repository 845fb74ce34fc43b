package convert

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ElementType names a structural element in the document JSON.
type ElementType string

const (
	Heading1      ElementType = "heading_1"
	Heading2      ElementType = "heading_2"
	Heading3      ElementType = "heading_3"
	Paragraph     ElementType = "paragraph"
	TableMarkdown ElementType = "table_markdown"
)

// Element is one entry of document_elements.
type Element struct {
	Type    ElementType `json:"type"`
	Content string      `json:"content"`
}

// UnmarshalJSON accepts string, number, boolean or null content; anything
// else is an error.
func (e *Element) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type    ElementType     `json:"type"`
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Type = raw.Type
	e.Content = ""

	c := bytes.TrimSpace(raw.Content)
	if len(c) == 0 || bytes.Equal(c, []byte("null")) {
		return nil
	}
	switch c[0] {
	case '"':
		return json.Unmarshal(c, &e.Content)
	case '{', '[':
		return fmt.Errorf("element %q: content must be a string", raw.Type)
	case 't', 'f':
		b, err := strconv.ParseBool(string(c))
		if err != nil {
			return err
		}
		e.Content = strconv.FormatBool(b)
	default:
		var n json.Number
		if err := json.Unmarshal(c, &n); err != nil {
			return err
		}
		e.Content = n.String()
	}
	return nil
}

// Document is the structured JSON exchanged between the two phases.
type Document struct {
	Elements []Element `json:"document_elements"`
}

// ParseDocument decodes data, requiring a document_elements array.
func ParseDocument(data []byte) (Document, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	raw, ok := top["document_elements"]
	if !ok {
		return Document{}, fmt.Errorf("%w: 'document_elements' key not found", ErrInvalidDocument)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return Document{}, fmt.Errorf("%w: 'document_elements' is not a list", ErrInvalidDocument)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc.Elements); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return doc, nil
}
