// Package docx builds word-processing documents on godocx's default
// template: styled paragraphs and grid tables, using Word's built-in styles.
package docx

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gomutex/godocx"
	gdocx "github.com/gomutex/godocx/docx"
)

// Style is a paragraph style ID from the template's styles.xml.
type Style string

// StyleNormal is the template's default paragraph style.
const StyleNormal Style = "Normal"

// TableGrid is the bordered table style ("Table Grid" in Word).
const TableGrid = "TableGrid"

const corePart = "docProps/core.xml"

// Document accumulates body content until Write or Save.
type Document struct {
	Title   string
	Created time.Time

	root   *gdocx.RootDoc
	blocks int
}

// New returns an empty document.
func New() (*Document, error) {
	root, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("docx: open template: %w", err)
	}
	return &Document{root: root}, nil
}

// AddParagraph appends a paragraph. Newlines in text become line breaks.
func (d *Document) AddParagraph(text string, style Style) {
	p := d.root.AddEmptyParagraph()
	if style != "" && style != StyleNormal {
		p.Style(string(style))
	}
	addLines(p, text, false)
	d.blocks++
}

// AddHeading appends a paragraph in the "Heading N" style, level 1 to 9.
func (d *Document) AddHeading(text string, level uint) error {
	if level == 0 {
		return fmt.Errorf("docx: heading level must be at least 1")
	}
	if _, err := d.root.AddHeading(text, level); err != nil {
		return fmt.Errorf("docx: add heading: %w", err)
	}
	d.blocks++
	return nil
}

// AddTable appends a table. Every row is padded or cut to the width of the
// first row. With boldHeader the first row is set in bold.
func (d *Document) AddTable(rows [][]string, style string, boldHeader bool) error {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return fmt.Errorf("docx: table needs at least one column")
	}
	cols := len(rows[0])

	tbl := d.root.AddTable()
	if style != "" {
		tbl.Style(style)
	}
	for i, r := range rows {
		row := tbl.AddRow()
		for c := 0; c < cols; c++ {
			var text string
			if c < len(r) {
				text = r[c]
			}
			addLines(row.AddCell().AddEmptyPara(), text, boldHeader && i == 0)
		}
	}
	d.blocks++
	return nil
}

// Len reports the number of body blocks.
func (d *Document) Len() int { return d.blocks }

// Write streams the DOCX package to w.
func (d *Document) Write(w io.Writer) error {
	created := d.Created
	if created.IsZero() {
		created = time.Now()
	}
	core, err := coreXML(d.Title, created)
	if err != nil {
		return err
	}
	d.root.FileMap.Store(corePart, core)

	if err := d.root.Write(w); err != nil {
		return fmt.Errorf("docx: write package: %w", err)
	}
	return nil
}

// Save writes the document to path through a temporary file in the same
// directory, so a failed write never leaves a truncated .docx behind.
func (d *Document) Save(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("docx: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := d.Write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("docx: close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("docx: chmod: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("docx: rename into place: %w", err)
	}
	return nil
}

// addLines writes one run per line, separated by breaks. An empty text
// writes nothing.
func addLines(p *gdocx.Paragraph, text string, bold bool) {
	if text == "" {
		return
	}
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, ln := range lines {
		r := p.AddText(ln)
		if bold {
			r.Bold(true)
		}
		if i < len(lines)-1 {
			r.AddBreak(nil)
		}
	}
}

type coreProperties struct {
	XMLName  xml.Name `xml:"cp:coreProperties"`
	CP       string   `xml:"xmlns:cp,attr"`
	DC       string   `xml:"xmlns:dc,attr"`
	DCTerms  string   `xml:"xmlns:dcterms,attr"`
	XSI      string   `xml:"xmlns:xsi,attr"`
	Title    string   `xml:"dc:title"`
	Creator  string   `xml:"dc:creator"`
	Created  w3cdtf   `xml:"dcterms:created"`
	Modified w3cdtf   `xml:"dcterms:modified"`
}

type w3cdtf struct {
	Type  string `xml:"xsi:type,attr"`
	Value string `xml:",chardata"`
}

// coreXML replaces the template's core properties with the document's own.
func coreXML(title string, created time.Time) ([]byte, error) {
	ts := w3cdtf{Type: "dcterms:W3CDTF", Value: created.UTC().Format(time.RFC3339)}
	body, err := xml.Marshal(coreProperties{
		CP:       "http://schemas.openxmlformats.org/package/2006/metadata/core-properties",
		DC:       "http://purl.org/dc/elements/1.1/",
		DCTerms:  "http://purl.org/dc/terms/",
		XSI:      "http://www.w3.org/2001/XMLSchema-instance",
		Title:    title,
		Creator:  "ai-pdf2docx",
		Created:  ts,
		Modified: ts,
	})
	if err != nil {
		return nil, fmt.Errorf("docx: core properties: %w", err)
	}
	var b bytes.Buffer
	b.WriteString(xml.Header)
	b.Write(body)
	return b.Bytes(), nil
}
