package ai

import (
	"context"
	"fmt"
	"strings"

	vertex "cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/option"

	"github.com/JoelWiebe/ai-pdf2docx/internal/logging"
)

// VertexConfig selects the project, region and model used by Vertex.
type VertexConfig struct {
	ProjectID       string
	Location        string
	Model           string
	CredentialsFile string
	Retries         int
}

// Vertex analyzes PDFs through the Vertex AI SDK.
type Vertex struct {
	client  *vertex.Client
	model   *vertex.GenerativeModel
	name    string
	retries int
	log     logging.Logger
}

// NewVertex initialises the Vertex AI client for cfg.ProjectID/cfg.Location.
func NewVertex(ctx context.Context, cfg VertexConfig, log logging.Logger) (*Vertex, error) {
	if cfg.ProjectID == "" || cfg.Location == "" {
		return nil, fmt.Errorf("vertex: project ID and location cannot be empty")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("vertex: model name cannot be empty")
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := vertex.NewClient(ctx, cfg.ProjectID, cfg.Location, opts...)
	if err != nil {
		return nil, fmt.Errorf("vertex: create client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.GenerationConfig = vertex.GenerationConfig{
		ResponseMIMEType: "application/json",
	}

	return &Vertex{client: client, model: model, name: cfg.Model, retries: cfg.Retries, log: log}, nil
}

// Analyze uploads src inline and returns the model's JSON.
func (v *Vertex) Analyze(ctx context.Context, src Source) (string, error) {
	log := v.log.WithFields(logging.F(logging.FieldInputFile, src.Name), logging.F(logging.FieldModel, v.name))
	log.Info("Sending PDF to Gemini", logging.F(logging.FieldBytes, len(src.Data)))

	var resp *vertex.GenerateContentResponse
	err := withRetry(ctx, v.retries, log, func(ctx context.Context) error {
		var err error
		resp, err = v.model.GenerateContent(ctx,
			vertex.Blob{MIMEType: PDFMIMEType, Data: src.Data},
			vertex.Text(StructurePrompt))
		return err
	})
	if err != nil {
		return "", fmt.Errorf("vertex: generate content for %s: %w", src.Name, err)
	}
	return interpret(vertexReply(resp), src, log)
}

// Close releases the underlying client.
func (v *Vertex) Close() error {
	if v.client != nil {
		return v.client.Close()
	}
	return nil
}

func vertexReply(resp *vertex.GenerateContentResponse) reply {
	var r reply
	if resp == nil {
		return r
	}
	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil {
			r.FinishReason = fmt.Sprintf("%v", resp.PromptFeedback.BlockReason)
		}
		return r
	}

	c := resp.Candidates[0]
	r.HasCandidates = true
	r.FinishReason = fmt.Sprintf("%v", c.FinishReason)
	r.SafetyBlocked = c.FinishReason == vertex.FinishReasonSafety
	for _, sr := range c.SafetyRatings {
		if sr == nil {
			continue
		}
		r.SafetyRatings = append(r.SafetyRatings, fmt.Sprintf("%v=%v blocked=%t", sr.Category, sr.Probability, sr.Blocked))
	}
	if c.Content != nil {
		var b strings.Builder
		for _, p := range c.Content.Parts {
			if t, ok := p.(vertex.Text); ok {
				b.WriteString(string(t))
			}
		}
		r.Text = b.String()
	}
	return r
}
