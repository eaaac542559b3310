package suggest

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kearth1516-lgtm/my-app/internal"
)

// Suggester produces recipe suggestions from a list of ingredients.
type Suggester interface {
	Suggest(ctx context.Context, ingredients []string) (string, error)
}

type OpenAISuggester struct {
	client *openai.Client
	model  string
	logger internal.Logger
}

func NewOpenAISuggester(apiKey string, logger internal.Logger) *OpenAISuggester {
	return &OpenAISuggester{
		client: openai.NewClient(apiKey),
		model:  openai.GPT4oMini,
		logger: logger,
	}
}

func (s *OpenAISuggester) Suggest(ctx context.Context, ingredients []string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You suggest simple home-cooking recipes. Answer with a short list of dish ideas and brief instructions.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: "Suggest recipes I can cook with: " + strings.Join(ingredients, ", "),
			},
		},
	})
	if err != nil {
		s.logger.Errorf("suggest: completion failed: %v", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("suggest: empty completion")
	}
	return resp.Choices[0].Message.Content, nil
}
