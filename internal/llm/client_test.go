package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiClient_RequiresAPIKey(t *testing.T) {
	client, err := NewGeminiClient(context.Background(), nil, "")
	require.ErrorIs(t, err, ErrNoAPIKey)
	assert.Nil(t, client)

	_, err = NewClient(context.Background(), nil, "")
	require.ErrorIs(t, err, ErrNoAPIKey)
}

func TestGeminiClient_GetModel(t *testing.T) {
	c := &GeminiClient{config: DefaultConfig()}

	assert.Equal(t, "gemini-2.5-flash", c.GetModel(Request{}))
	assert.Equal(t, "gemini-2.5-pro", c.GetModel(Request{Tier: TierAdvanced}))
	assert.Equal(t, "my-model", c.GetModel(Request{Model: "my-model", Tier: TierAdvanced}))
}

func TestExtractTextFromResponse(t *testing.T) {
	tests := []struct {
		name     string
		resp     *genai.GenerateContentResponse
		expected string
		wantErr  bool
	}{
		{name: "nil response", resp: nil, wantErr: true},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}, wantErr: true},
		{
			name:    "nil content",
			resp:    &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}},
			wantErr: true,
		},
		{
			name: "whitespace only",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("  \n ")}}},
			}},
			wantErr: true,
		},
		{
			name: "joins and trims text parts",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
				{Content: &genai.Content{Parts: []genai.Part{genai.Text("  Hello "), genai.Text("world\n")}}},
			}},
			expected: "Hello world",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := extractTextFromResponse(tt.resp)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrEmptyResponse))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, text)
		})
	}
}

func TestAPICallError(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := &APICallError{Model: "gemini-2.5-flash", Message: "generate content", Cause: cause}

	assert.Contains(t, err.Error(), "gemini-2.5-flash")
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.ErrorIs(t, err, cause)
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain text", "  Understanding & Goals\n- item  ", "Understanding & Goals\n- item"},
		{"markdown fence", "```markdown\n## Plan\nStep one\n```", "## Plan\nStep one"},
		{"bare fence", "```\nBody text\n```", "Body text"},
		{"fence with prose first line", "``` Body text here\n```", "Body text here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripCodeFence(tt.input))
		})
	}
}
