package llm

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"

	"github.com/mrsingh-rishi/reflect-relay/types"
)

// ErrNoContent is returned when the provider answers 200 without any message content.
var ErrNoContent = errors.New("invalid response from OpenAI - no content found")

// NewAPIClient builds the go-openai client shared by the chat and transcription clients.
// An empty baseURL keeps the public OpenAI endpoint; a zero timeout keeps the
// http.Client default.
func NewAPIClient(apiKey, baseURL string, timeout time.Duration) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return openai.NewClientWithConfig(cfg)
}

type OpenAIClient struct {
	Client *openai.Client
}

func NewOpenAIClient(client *openai.Client) *OpenAIClient {
	return &OpenAIClient{Client: client}
}

// CompleteChat sends prompt as a single user turn, preceded by opts.System when set,
// and returns the first choice.
func (c *OpenAIClient) CompleteChat(ctx context.Context, prompt string, opts types.ChatOptions) (*types.Completion, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if opts.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: opts.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	req := openai.ChatCompletionRequest{
		Model:       opts.Model,
		Messages:    messages,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	}

	resp, err := c.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, ParseProviderError(err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, ErrNoContent
	}

	model := resp.Model
	if model == "" {
		model = opts.Model
	}
	return &types.Completion{
		Text:  resp.Choices[0].Message.Content,
		Model: model,
		Usage: types.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}
