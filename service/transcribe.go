package service

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/mrsingh-rishi/reflect-relay/llm"
	"github.com/mrsingh-rishi/reflect-relay/types"
)

const transcriptConfidence = 0.9

// Upload is an audio file already staged on local disk for the duration of one request.
type Upload struct {
	Path        string
	Filename    string
	ContentType string
	Size        int64
}

type TranscribeRequest struct {
	Upload   *Upload
	Language string
}

type TranscribeResult struct {
	Status                string  `json:"status"`
	Transcript            string  `json:"transcript"`
	Confidence            float64 `json:"confidence"`
	AudioDuration         float64 `json:"audio_duration"`
	Language              string  `json:"language"`
	TranscriptionService  string  `json:"transcription_service"`
	SpeakerIdentification string  `json:"speaker_identification"`
	SegmentsCount         int     `json:"segments_count"`
}

// Transcribe sends the staged upload to the speech-to-text provider and labels
// speakers in the result. The staged file is always removed before returning.
func (r *Relay) Transcribe(ctx context.Context, req TranscribeRequest) (*TranscribeResult, error) {
	upload := req.Upload
	if upload == nil {
		return nil, invalid("No audio file provided", "Please upload an audio file")
	}
	defer r.discard(upload.Path)

	lang := normalizeLanguage(req.Language)
	r.log.Info("transcription request received",
		zap.String("filename", upload.Filename),
		zap.Int64("size", upload.Size),
		zap.String("language", lang),
	)

	if upload.Size > r.cfg.Transcription.MaxUploadBytes {
		return nil, invalid("File too large", englishPrinter.Sprintf("Please upload a file smaller than %dMB", r.cfg.Transcription.MaxUploadBytes/(1024*1024)))
	}
	if !strings.HasPrefix(upload.ContentType, "audio/") {
		return nil, invalid("Invalid file type", "Please upload an audio file (mp3, wav, m4a, etc.)")
	}
	if !r.HasCredential() {
		return nil, missingCredential()
	}

	f, err := os.Open(upload.Path)
	if err != nil {
		r.log.Error("could not open staged upload", zap.String("path", upload.Path), zap.Error(err))
		return nil, &Error{
			Kind:    KindInternal,
			Code:    "Transcription failed",
			Message: err.Error(),
			Service: TranscriptionService,
			Err:     errors.Wrap(err, "open staged upload"),
		}
	}
	defer f.Close()

	started := time.Now()
	tr, err := r.transcriber.TranscribeAudio(ctx, f, types.TranscribeOptions{
		Filename: upload.Filename,
		Language: lang,
		Model:    r.cfg.Transcription.Model,
	})
	r.metrics.ObserveProviderCall("transcribe", started, err)
	if err != nil {
		r.log.Error("transcription failed", zap.Error(err))
		return nil, transcriptionFailure(err)
	}
	r.log.Info("transcription completed",
		zap.Int("transcript_chars", len([]rune(tr.Text))),
		zap.Int("segments", len(tr.Segments)),
	)

	transcript := r.LabelSpeakers(ctx, tr.Text, speakerLanguage(lang, tr.Language))

	detected := tr.Language
	if detected == "" {
		detected = lang
	}
	return &TranscribeResult{
		Status:                "completed",
		Transcript:            transcript,
		Confidence:            transcriptConfidence,
		AudioDuration:         tr.Duration,
		Language:              detected,
		TranscriptionService:  TranscriptionService,
		SpeakerIdentification: "AI-powered",
		SegmentsCount:         len(tr.Segments),
	}, nil
}

// discard removes a staged upload. Failure only costs disk space, so it is logged and ignored.
func (r *Relay) discard(path string) {
	if path == "" {
		return
	}
	if err := r.removeFile(path); err != nil && !os.IsNotExist(err) {
		r.log.Warn("could not clean up upload", zap.String("path", path), zap.Error(err))
	}
}

func transcriptionFailure(err error) *Error {
	e := &Error{
		Kind:    KindUpstream,
		Code:    "Transcription failed",
		Message: err.Error(),
		Service: TranscriptionService,
		Err:     err,
	}
	var pe *llm.ProviderError
	if errors.As(err, &pe) {
		e.Status = pe.Status
		e.Code = "Transcription service temporarily unavailable. Please try again."
	}
	return e
}

// normalizeLanguage maps a client language hint onto "auto", "he" or "en".
func normalizeLanguage(hint string) string {
	switch strings.ToLower(strings.TrimSpace(hint)) {
	case "", "auto":
		return "auto"
	case "he", "iw", "hebrew":
		return "he"
	default:
		return "en"
	}
}

// speakerLanguage picks the reply language for speaker labeling. An explicit
// hint wins; otherwise Whisper's detected language is used.
func speakerLanguage(hint, detected string) string {
	if hint != "auto" {
		return hint
	}
	if normalizeLanguage(detected) == "he" {
		return "he"
	}
	return "en"
}
