package summarizer

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "Summarize the user's note in one or two plain sentences. Reply with the summary only."

// OpenAISummarizer talks to an OpenAI-compatible chat-completion endpoint.
type OpenAISummarizer struct {
	client *openai.Client
	model  string
}

// NewOpenAISummarizer builds a client for the given key and model. baseURL
// overrides the provider endpoint when non-empty, which also covers
// self-hosted OpenAI-compatible gateways.
func NewOpenAISummarizer(apiKey, baseURL, model string) *OpenAISummarizer {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAISummarizer{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (s *OpenAISummarizer) Summarize(ctx context.Context, text string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("summarizer returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
