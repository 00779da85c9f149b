package service

import (
	"net/http"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrsingh-rishi/reflect-relay/llm"
	"github.com/mrsingh-rishi/reflect-relay/types"
)

func TestCanaryMissingCredential(t *testing.T) {
	cfg := testConfig(t)
	cfg.OpenAIAPIKey = "  "
	chat := &fakeChat{}
	relay := newTestRelay(t, cfg, chat, &fakeTranscriber{})

	_, err := relay.Canary(t.Context())

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, KindConfig, e.Kind)
	assert.Equal(t, "OpenAI API key not configured", e.Code)
	assert.Empty(t, chat.Calls())
}

func TestCanarySuccess(t *testing.T) {
	chat := &fakeChat{reply: func(string, types.ChatOptions) (*types.Completion, error) {
		return &types.Completion{Text: "Hello, this is a test!", Usage: types.Usage{TotalTokens: 9}}, nil
	}}
	relay := newTestRelay(t, testConfig(t), chat, &fakeTranscriber{})

	res, err := relay.Canary(t.Context())
	require.NoError(t, err)

	assert.Equal(t, "success", res.Status)
	assert.Equal(t, "Hello, this is a test!", res.TestResponse)
	assert.Equal(t, "gpt-4", res.Model)
	assert.Equal(t, 9, res.Usage.TotalTokens)
	assert.Equal(t, canaryPrompt, chat.Calls()[0].prompt)
	assert.Equal(t, 20, chat.Calls()[0].opts.MaxTokens)
}

func TestCanaryProviderErrorVerbatim(t *testing.T) {
	chat := &fakeChat{reply: func(string, types.ChatOptions) (*types.Completion, error) {
		return nil, &llm.ProviderError{Status: http.StatusUnauthorized, Message: "Incorrect API key provided: sk-te****"}
	}}
	relay := newTestRelay(t, testConfig(t), chat, &fakeTranscriber{})

	_, err := relay.Canary(t.Context())

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "OpenAI API test failed", e.Code)
	assert.Equal(t, "Incorrect API key provided: sk-te****", e.Message)
	assert.Equal(t, http.StatusUnauthorized, e.Status)
}

func TestHealth(t *testing.T) {
	relay := newTestRelay(t, testConfig(t), &fakeChat{}, &fakeTranscriber{})

	report := relay.Health(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	assert.Equal(t, "OK", report.Status)
	assert.Equal(t, "2026-03-01T12:00:00.000Z", report.Timestamp)
	assert.Equal(t, "OpenAI Whisper", report.TranscriptionService)
	assert.True(t, report.CredentialConfigured)
	assert.Len(t, report.Features, 4)
}
