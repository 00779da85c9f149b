package service

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mrsingh-rishi/reflect-relay/config"
	"github.com/mrsingh-rishi/reflect-relay/metrics"
	"github.com/mrsingh-rishi/reflect-relay/types"
)

type chatCall struct {
	prompt string
	opts   types.ChatOptions
}

type fakeChat struct {
	mu    sync.Mutex
	calls []chatCall
	reply func(prompt string, opts types.ChatOptions) (*types.Completion, error)
}

func (f *fakeChat) CompleteChat(_ context.Context, prompt string, opts types.ChatOptions) (*types.Completion, error) {
	f.mu.Lock()
	f.calls = append(f.calls, chatCall{prompt: prompt, opts: opts})
	f.mu.Unlock()
	if f.reply == nil {
		return &types.Completion{Text: "ok", Model: opts.Model}, nil
	}
	return f.reply(prompt, opts)
}

func (f *fakeChat) Calls() []chatCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]chatCall(nil), f.calls...)
}

type fakeTranscriber struct {
	mu     sync.Mutex
	calls  []types.TranscribeOptions
	audio  []string
	result *types.Transcription
	err    error
}

func (f *fakeTranscriber) TranscribeAudio(_ context.Context, audio io.Reader, opts types.TranscribeOptions) (*types.Transcription, error) {
	data, _ := io.ReadAll(audio)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, opts)
	f.audio = append(f.audio, string(data))
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeTranscriber) Calls() []types.TranscribeOptions {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]types.TranscribeOptions(nil), f.calls...)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.OpenAIAPIKey = "sk-test"
	cfg.Transcription.UploadDir = t.TempDir()
	return cfg
}

func newTestRelay(t *testing.T, cfg *config.Config, chat ChatCompleter, tr Transcriber) *Relay {
	t.Helper()
	return NewRelay(cfg, chat, tr, metrics.New(), zap.NewNop())
}

// stageUpload writes content into dir and describes it as an upload of contentType.
func stageUpload(t *testing.T, dir, content, contentType string) *Upload {
	t.Helper()
	path := filepath.Join(dir, "staged.mp3")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return &Upload{
		Path:        path,
		Filename:    "voice-note.mp3",
		ContentType: contentType,
		Size:        int64(len(content)),
	}
}
