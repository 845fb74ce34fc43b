// Package ai turns a PDF into the structured-document JSON by asking a Gemini
// model to analyze it. Two backends are provided: the Vertex AI SDK and the
// unified Google Gen AI SDK.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/JoelWiebe/ai-pdf2docx/internal/logging"
)

// PDFMIMEType is sent with every uploaded document.
const PDFMIMEType = "application/pdf"

// EmptyDocument is returned when the model finishes normally but says nothing.
const EmptyDocument = `{ "document_elements": [] }`

// ErrBlocked reports a response that was empty because it was blocked or
// carried no candidates at all.
var ErrBlocked = errors.New("model response empty or blocked")

// Source is one PDF to analyze.
type Source struct {
	Name string
	Data []byte
}

// Analyzer returns the model's structured JSON for a PDF.
type Analyzer interface {
	Analyze(ctx context.Context, src Source) (string, error)
}

// reply is the backend-neutral view of a generate-content response: the
// concatenated text plus what the first candidate says about why it stopped.
type reply struct {
	Text          string
	HasCandidates bool
	FinishReason  string
	SafetyBlocked bool
	SafetyRatings []string
}

// interpret applies the empty/blocked rules to a reply.
func interpret(r reply, src Source, log logging.Logger) (string, error) {
	if strings.TrimSpace(r.Text) != "" {
		return ExtractJSON(r.Text), nil
	}
	if r.HasCandidates && !r.SafetyBlocked {
		log.Warn("Model returned an empty response not caused by safety filters; check the PDF content",
			logging.F(logging.FieldInputFile, src.Name),
			logging.F(logging.FieldFinishReason, r.FinishReason))
		return EmptyDocument, nil
	}

	fields := []logging.Field{logging.F(logging.FieldInputFile, src.Name)}
	if r.HasCandidates {
		fields = append(fields,
			logging.F(logging.FieldFinishReason, r.FinishReason),
			logging.F(logging.FieldSafety, strings.Join(r.SafetyRatings, "; ")))
	}
	log.Error("Model response was empty or blocked", fields...)
	if r.FinishReason != "" {
		return "", fmt.Errorf("%w: %s (finish reason %s)", ErrBlocked, src.Name, r.FinishReason)
	}
	return "", fmt.Errorf("%w: %s", ErrBlocked, src.Name)
}
