package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/mrsingh-rishi/reflect-relay/llm"
	"github.com/mrsingh-rishi/reflect-relay/types"
)

const canaryPrompt = `Say "Hello, this is a test!" in exactly those words.`

type CanaryResult struct {
	Status       string      `json:"status"`
	Message      string      `json:"message"`
	TestResponse string      `json:"test_response"`
	Usage        types.Usage `json:"usage"`
	Model        string      `json:"model"`
}

// Canary issues a minimal chat completion to prove the credential and
// connectivity work. Provider errors are passed back verbatim.
func (r *Relay) Canary(ctx context.Context) (*CanaryResult, error) {
	if !r.HasCredential() {
		return nil, missingCredential()
	}
	r.log.Info("testing OpenAI API connection", zap.Int("api_key_length", len(r.cfg.OpenAIAPIKey)))

	modelName := r.cfg.Analysis.DefaultModel
	started := time.Now()
	completion, err := r.chat.CompleteChat(ctx, canaryPrompt, types.ChatOptions{
		Model:     modelName,
		MaxTokens: 20,
	})
	r.metrics.ObserveProviderCall("canary", started, err)
	if err != nil {
		r.log.Error("OpenAI test failed", zap.Error(err))
		var pe *llm.ProviderError
		if errors.As(err, &pe) {
			return nil, &Error{
				Kind:    KindUpstream,
				Code:    "OpenAI API test failed",
				Message: pe.Message,
				Status:  pe.Status,
				Err:     err,
			}
		}
		return nil, &Error{Kind: KindUpstream, Code: "Test failed", Message: err.Error(), Err: err}
	}

	r.log.Info("OpenAI test successful")
	return &CanaryResult{
		Status:       "success",
		Message:      "OpenAI API connection working",
		TestResponse: completion.Text,
		Usage:        completion.Usage,
		Model:        modelName,
	}, nil
}
