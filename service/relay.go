package service

import (
	"context"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mrsingh-rishi/reflect-relay/config"
	"github.com/mrsingh-rishi/reflect-relay/metrics"
	"github.com/mrsingh-rishi/reflect-relay/model"
	"github.com/mrsingh-rishi/reflect-relay/types"
)

const (
	AnalysisService      = "OpenAI GPT-4"
	TranscriptionService = "OpenAI Whisper"
)

// ChatCompleter runs a single-turn chat completion against the provider.
type ChatCompleter interface {
	CompleteChat(ctx context.Context, prompt string, opts types.ChatOptions) (*types.Completion, error)
}

// Transcriber turns audio into a detailed transcript.
type Transcriber interface {
	TranscribeAudio(ctx context.Context, audio io.Reader, opts types.TranscribeOptions) (*types.Transcription, error)
}

// Relay validates requests, calls the provider and reshapes its answers.
// It holds no per-request state and is safe for concurrent use.
type Relay struct {
	cfg         *config.Config
	chat        ChatCompleter
	transcriber Transcriber
	catalog     *model.Catalog
	validate    *validator.Validate
	metrics     *metrics.Metrics
	log         *zap.Logger

	removeFile func(string) error
}

func NewRelay(cfg *config.Config, chat ChatCompleter, transcriber Transcriber, m *metrics.Metrics, log *zap.Logger) *Relay {
	return &Relay{
		cfg:         cfg,
		chat:        chat,
		transcriber: transcriber,
		catalog:     model.NewCatalog(cfg.Analysis.TokenCeilings, cfg.Analysis.DefaultTokenCeiling),
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		metrics:     m,
		log:         log,
		removeFile:  os.Remove,
	}
}

func (r *Relay) HasCredential() bool {
	return r.cfg.HasCredential()
}
