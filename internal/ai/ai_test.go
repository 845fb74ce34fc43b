package ai

import (
	"testing"

	vertex "cloud.google.com/go/vertexai/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/JoelWiebe/ai-pdf2docx/internal/logging"
)

var paper = Source{Name: "paper.pdf", Data: []byte("%PDF-1.4")}

func TestInterpretText(t *testing.T) {
	log := logging.NewMockLogger()
	out, err := interpret(reply{Text: "```json\n{\"document_elements\":[]}\n```", HasCandidates: true}, paper, log)
	require.NoError(t, err)
	assert.Equal(t, `{"document_elements":[]}`, out)
	assert.Empty(t, log.Entries())
}

func TestInterpretEmptyNotSafety(t *testing.T) {
	log := logging.NewMockLogger()
	out, err := interpret(reply{HasCandidates: true, FinishReason: "STOP"}, paper, log)
	require.NoError(t, err)
	assert.Equal(t, EmptyDocument, out)
	assert.Equal(t, 1, log.Count("WARN"))
}

func TestInterpretSafetyBlocked(t *testing.T) {
	log := logging.NewMockLogger()
	_, err := interpret(reply{HasCandidates: true, FinishReason: "SAFETY", SafetyBlocked: true,
		SafetyRatings: []string{"HARASSMENT=HIGH blocked=true"}}, paper, log)
	require.ErrorIs(t, err, ErrBlocked)
	assert.Contains(t, err.Error(), "SAFETY")

	entries := log.Entries()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Fields, logging.F(logging.FieldSafety, "HARASSMENT=HIGH blocked=true"))
}

func TestInterpretNoCandidates(t *testing.T) {
	log := logging.NewMockLogger()
	_, err := interpret(reply{}, paper, log)
	require.ErrorIs(t, err, ErrBlocked)
	assert.Equal(t, 1, log.Count("ERROR"))
}

func TestVertexReply(t *testing.T) {
	resp := &vertex.GenerateContentResponse{
		Candidates: []*vertex.Candidate{{
			FinishReason: vertex.FinishReasonStop,
			Content: &vertex.Content{Parts: []vertex.Part{
				vertex.Text(`{"document_elements":`),
				vertex.Text(`[]}`),
			}},
		}},
	}
	r := vertexReply(resp)
	assert.True(t, r.HasCandidates)
	assert.False(t, r.SafetyBlocked)
	assert.Equal(t, `{"document_elements":[]}`, r.Text)

	blocked := vertexReply(&vertex.GenerateContentResponse{
		Candidates: []*vertex.Candidate{{
			FinishReason:  vertex.FinishReasonSafety,
			SafetyRatings: []*vertex.SafetyRating{{Blocked: true}},
		}},
	})
	assert.True(t, blocked.SafetyBlocked)
	assert.Len(t, blocked.SafetyRatings, 1)
	assert.Empty(t, blocked.Text)

	assert.False(t, vertexReply(nil).HasCandidates)
}

func TestGenAIReply(t *testing.T) {
	res := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			FinishReason: genai.FinishReasonStop,
			Content:      &genai.Content{Parts: []*genai.Part{{Text: `{"document_elements":[]}`}}},
		}},
	}
	r := genaiReply(res)
	assert.True(t, r.HasCandidates)
	assert.Equal(t, "STOP", r.FinishReason)
	assert.Equal(t, `{"document_elements":[]}`, r.Text)

	blocked := genaiReply(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
	})
	assert.True(t, blocked.SafetyBlocked)
	assert.Empty(t, blocked.Text)
}
