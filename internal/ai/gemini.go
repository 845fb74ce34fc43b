package ai

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/JoelWiebe/ai-pdf2docx/internal/logging"
)

// GenAIConfig configures the Google Gen AI SDK backend. With an APIKey the
// Gemini API is used; otherwise Vertex AI with ProjectID and Location.
type GenAIConfig struct {
	APIKey    string
	ProjectID string
	Location  string
	Model     string
	Retries   int
}

// GenAI analyzes PDFs through google.golang.org/genai.
type GenAI struct {
	client  *genai.Client
	model   string
	retries int
	log     logging.Logger
}

// NewGenAI builds the client for cfg.
func NewGenAI(ctx context.Context, cfg GenAIConfig, log logging.Logger) (*GenAI, error) {
	if cfg.Model == "" {
		return nil, errors.New("genai: model name cannot be empty")
	}

	cc := &genai.ClientConfig{}
	switch {
	case cfg.APIKey != "":
		cc.APIKey = cfg.APIKey
		cc.Backend = genai.BackendGeminiAPI
	case cfg.ProjectID != "":
		cc.Project = cfg.ProjectID
		cc.Location = cfg.Location
		cc.Backend = genai.BackendVertexAI
	default:
		return nil, errors.New("genai: either an API key or a project ID is required")
	}

	c, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("genai: create client: %w", err)
	}
	return &GenAI{client: c, model: cfg.Model, retries: cfg.Retries, log: log}, nil
}

// Analyze uploads src inline and returns the model's JSON.
func (g *GenAI) Analyze(ctx context.Context, src Source) (string, error) {
	log := g.log.WithFields(logging.F(logging.FieldInputFile, src.Name), logging.F(logging.FieldModel, g.model))
	log.Info("Sending PDF to Gemini", logging.F(logging.FieldBytes, len(src.Data)))

	content := []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{MIMEType: PDFMIMEType, Data: src.Data}},
			{Text: StructurePrompt},
		},
	}}
	conf := &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}

	var res *genai.GenerateContentResponse
	err := withRetry(ctx, g.retries, log, func(ctx context.Context) error {
		var err error
		res, err = g.client.Models.GenerateContent(ctx, g.model, content, conf)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("genai: generate content for %s: %w", src.Name, err)
	}
	return interpret(genaiReply(res), src, log)
}

func genaiReply(res *genai.GenerateContentResponse) reply {
	var r reply
	if res == nil {
		return r
	}
	if len(res.Candidates) == 0 {
		if res.PromptFeedback != nil {
			r.FinishReason = string(res.PromptFeedback.BlockReason)
		}
		return r
	}

	c := res.Candidates[0]
	r.HasCandidates = true
	r.FinishReason = string(c.FinishReason)
	r.SafetyBlocked = c.FinishReason == genai.FinishReasonSafety
	for _, sr := range c.SafetyRatings {
		if sr == nil {
			continue
		}
		r.SafetyRatings = append(r.SafetyRatings, fmt.Sprintf("%s=%s blocked=%t", sr.Category, sr.Probability, sr.Blocked))
	}
	r.Text = res.Text()
	return r
}
