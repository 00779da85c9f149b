package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mrsingh-rishi/reflect-relay/llm"
	"github.com/mrsingh-rishi/reflect-relay/types"
)

const analysisInstruction = "You are an expert conversation analyst and behavioral psychologist. " +
	"Provide insightful, empathetic, and constructive analysis of conversations and behavior patterns. " +
	"You understand Hebrew and English perfectly. " +
	"Always respond with clear, natural text without special formatting or structured patterns unless specifically requested."

type AnalyzeRequest struct {
	Prompt    string `validate:"required"`
	MaxTokens int
	Language  string
	Model     string
}

type AnalyzeResult struct {
	Response string      `json:"response"`
	Usage    types.Usage `json:"usage"`
	Model    string      `json:"model"`
}

var englishPrinter = message.NewPrinter(language.English)

// Analyze forwards the prompt as a single chat turn under the analyst system
// instruction and returns the trimmed reply.
func (r *Relay) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResult, error) {
	if err := r.validate.Struct(req); err != nil {
		return nil, invalid("No prompt provided", "Please provide a valid prompt for analysis")
	}
	limit := r.cfg.Analysis.MaxPromptChars
	if err := r.validate.Var(req.Prompt, "max="+strconv.Itoa(limit)); err != nil {
		return nil, invalid("Prompt too long", englishPrinter.Sprintf("Please provide a shorter prompt (max %d characters)", limit))
	}
	if !r.HasCredential() {
		return nil, missingCredential()
	}

	modelName := strings.TrimSpace(req.Model)
	if modelName == "" {
		modelName = r.cfg.Analysis.DefaultModel
	}
	opts := types.ChatOptions{
		Model:       modelName,
		System:      analysisSystem(req.Language),
		MaxTokens:   r.catalog.Clamp(modelName, req.MaxTokens, r.cfg.Analysis.DefaultMaxTokens),
		Temperature: r.cfg.Analysis.Temperature,
	}

	r.log.Info("analysis request received",
		zap.Int("prompt_chars", len([]rune(req.Prompt))),
		zap.String("model", opts.Model),
		zap.Int("max_tokens", opts.MaxTokens),
	)

	started := time.Now()
	completion, err := r.chat.CompleteChat(ctx, req.Prompt, opts)
	r.metrics.ObserveProviderCall("analyze", started, err)
	if err != nil {
		r.log.Error("analysis failed", zap.Error(err))
		return nil, analysisFailure(err)
	}

	r.log.Info("analysis completed", zap.Int("total_tokens", completion.Usage.TotalTokens))
	return &AnalyzeResult{
		Response: strings.TrimSpace(completion.Text),
		Usage:    completion.Usage,
		Model:    modelName,
	}, nil
}

func analysisSystem(lang string) string {
	switch normalizeLanguage(lang) {
	case "he":
		return analysisInstruction + " Respond in Hebrew."
	case "en":
		return analysisInstruction + " Respond in English."
	}
	return analysisInstruction
}

func analysisFailure(err error) *Error {
	e := &Error{
		Kind:    KindUpstream,
		Code:    "Analysis failed",
		Message: err.Error(),
		Service: AnalysisService,
		Err:     err,
	}
	var pe *llm.ProviderError
	if errors.As(err, &pe) {
		e.Status = pe.Status
		e.Code = "AI analysis service temporarily unavailable. Please try again."
		if pe.RateLimited() {
			e.Code = "Too many requests. Please wait a moment and try again."
		}
	}
	return e
}
