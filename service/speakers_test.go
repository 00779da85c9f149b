package service

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrsingh-rishi/reflect-relay/types"
)

func TestLabelSpeakersThreshold(t *testing.T) {
	chat := &fakeChat{reply: func(string, types.ChatOptions) (*types.Completion, error) {
		return &types.Completion{Text: "Speaker A: labeled"}, nil
	}}
	relay := newTestRelay(t, testConfig(t), chat, &fakeTranscriber{})

	atThreshold := strings.Repeat("x", 50)
	assert.Equal(t, "Speaker A: "+atThreshold, relay.LabelSpeakers(t.Context(), atThreshold, "en"))
	assert.Empty(t, chat.Calls())

	assert.Equal(t, "Speaker A: labeled", relay.LabelSpeakers(t.Context(), strings.Repeat("x", 51), "en"))
	assert.Len(t, chat.Calls(), 1)
}

func TestLabelSpeakersRequest(t *testing.T) {
	chat := &fakeChat{}
	relay := newTestRelay(t, testConfig(t), chat, &fakeTranscriber{})

	relay.LabelSpeakers(t.Context(), longTranscript, "en")

	calls := chat.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "gpt-4", calls[0].opts.Model)
	assert.Equal(t, 1500, calls[0].opts.MaxTokens)
	assert.InDelta(t, 0.3, calls[0].opts.Temperature, 0.0001)
	assert.Equal(t, speakerSystem, calls[0].opts.System)
	assert.True(t, strings.HasPrefix(calls[0].prompt, "Please respond in English only. "))
	assert.Contains(t, calls[0].prompt, longTranscript)
}

func TestLabelSpeakersDegrades(t *testing.T) {
	tests := []struct {
		name  string
		reply func(string, types.ChatOptions) (*types.Completion, error)
	}{
		{"network error", func(string, types.ChatOptions) (*types.Completion, error) {
			return nil, errors.New("connection reset by peer")
		}},
		{"empty content", func(string, types.ChatOptions) (*types.Completion, error) {
			return &types.Completion{}, nil
		}},
		{"nil completion", func(string, types.ChatOptions) (*types.Completion, error) {
			return nil, nil
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			relay := newTestRelay(t, testConfig(t), &fakeChat{reply: tt.reply}, &fakeTranscriber{})
			assert.Equal(t, "Speaker A: "+longTranscript, relay.LabelSpeakers(t.Context(), longTranscript, "he"))
		})
	}
}
