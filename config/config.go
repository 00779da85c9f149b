package config

import (
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const DefaultMaxUploadBytes = 25 * 1024 * 1024

type AnalysisConfig struct {
	DefaultModel        string         `mapstructure:"default_model"`
	DefaultMaxTokens    int            `mapstructure:"default_max_tokens"`
	Temperature         float32        `mapstructure:"temperature"`
	MaxPromptChars      int            `mapstructure:"max_prompt_chars"`
	TokenCeilings       map[string]int `mapstructure:"token_ceilings"`
	DefaultTokenCeiling int            `mapstructure:"default_token_ceiling"`
}

type TranscriptionConfig struct {
	Model            string `mapstructure:"model"`
	MaxUploadBytes   int64  `mapstructure:"max_upload_bytes"`
	SpeakerThreshold int    `mapstructure:"speaker_threshold"`
	UploadDir        string `mapstructure:"upload_dir"`
}

type SpeakersConfig struct {
	Model       string  `mapstructure:"model"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float32 `mapstructure:"temperature"`
}

// Config holds everything the relay needs. The API key may be empty: the
// server still starts and reports the missing credential per request.
type Config struct {
	OpenAIAPIKey  string        `mapstructure:"openai_api_key"`
	OpenAIBaseURL string        `mapstructure:"openai_base_url"`
	ListenAddress string        `mapstructure:"listen_address"`
	HTTPTimeout   time.Duration `mapstructure:"http_timeout"`
	LogLevel      string        `mapstructure:"log_level"`
	Platform      string        `mapstructure:"platform"`

	Analysis      AnalysisConfig      `mapstructure:"analysis"`
	Transcription TranscriptionConfig `mapstructure:"transcription"`
	Speakers      SpeakersConfig      `mapstructure:"speakers"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("openai_api_key", "")
	v.SetDefault("openai_base_url", "")
	v.SetDefault("listen_address", ":3000")
	v.SetDefault("http_timeout", "0s")
	v.SetDefault("log_level", "info")
	v.SetDefault("platform", "Fiber")

	v.SetDefault("analysis.default_model", "gpt-4")
	v.SetDefault("analysis.default_max_tokens", 1000)
	v.SetDefault("analysis.temperature", 0.7)
	v.SetDefault("analysis.max_prompt_chars", 15000)
	v.SetDefault("analysis.token_ceilings", map[string]int{
		"gpt-4":       3000,
		"gpt-4-turbo": 4000,
		"gpt-4o":      4000,
		"gpt-4o-mini": 4000,
	})
	v.SetDefault("analysis.default_token_ceiling", 3000)

	v.SetDefault("transcription.model", "whisper-1")
	v.SetDefault("transcription.max_upload_bytes", DefaultMaxUploadBytes)
	v.SetDefault("transcription.speaker_threshold", 50)
	v.SetDefault("transcription.upload_dir", os.TempDir())

	v.SetDefault("speakers.model", "gpt-4")
	v.SetDefault("speakers.max_tokens", 1500)
	v.SetDefault("speakers.temperature", 0.3)
}

// Default returns the built-in configuration without reading files or the environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(err)
	}
	return &cfg
}

// Load reads .env (if present), the optional YAML file at path, and the
// environment, in increasing precedence. Flags named "listen" and "debug" in
// flags override listen_address and log_level.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(err, "error loading .env")
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "error reading config file")
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if f := flags.Lookup("listen"); f != nil {
			if err := v.BindPFlag("listen_address", f); err != nil {
				return nil, errors.Wrap(err, "binding listen flag")
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "error unmarshaling config")
	}

	if flags != nil {
		if debug, err := flags.GetBool("debug"); err == nil && debug {
			cfg.LogLevel = "debug"
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.ListenAddress == "":
		return errors.New("listen_address is required")
	case c.Analysis.DefaultModel == "":
		return errors.New("analysis.default_model is required")
	case c.Analysis.MaxPromptChars <= 0:
		return errors.New("analysis.max_prompt_chars must be positive")
	case c.Analysis.DefaultTokenCeiling <= 0:
		return errors.New("analysis.default_token_ceiling must be positive")
	case c.Transcription.MaxUploadBytes <= 0:
		return errors.New("transcription.max_upload_bytes must be positive")
	case c.Transcription.UploadDir == "":
		return errors.New("transcription.upload_dir is required")
	case c.Speakers.Model == "":
		return errors.New("speakers.model is required")
	}
	return nil
}

// HasCredential reports whether an OpenAI API key is configured.
func (c *Config) HasCredential() bool {
	return strings.TrimSpace(c.OpenAIAPIKey) != ""
}
