package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mrsingh-rishi/reflect-relay/config"
	"github.com/mrsingh-rishi/reflect-relay/llm"
	"github.com/mrsingh-rishi/reflect-relay/logging"
	"github.com/mrsingh-rishi/reflect-relay/metrics"
	"github.com/mrsingh-rishi/reflect-relay/service"
	"github.com/mrsingh-rishi/reflect-relay/stt"
)

type deps struct {
	cfg     *config.Config
	log     *zap.Logger
	metrics *metrics.Metrics
	relay   *service.Relay
}

// build loads configuration from cmd's flags and assembles the relay.
func build(cmd *cobra.Command, opts *rootOptions) (*deps, error) {
	cfg, err := config.Load(opts.configFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	log := logging.New(cfg.LogLevel)
	if !cfg.HasCredential() {
		log.Warn("OPENAI_API_KEY is not set; provider endpoints will report a configuration error")
	}

	api := llm.NewAPIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.HTTPTimeout)
	m := metrics.New()
	relay := service.NewRelay(cfg,
		llm.NewOpenAIClient(api),
		stt.NewWhisperClient(api, cfg.Transcription.Model),
		m,
		log,
	)

	return &deps{cfg: cfg, log: log, metrics: m, relay: relay}, nil
}
