package stt

import (
	"context"
	"io"

	"github.com/sashabaranov/go-openai"

	"github.com/mrsingh-rishi/reflect-relay/llm"
	"github.com/mrsingh-rishi/reflect-relay/types"
)

const (
	DefaultModel    = openai.Whisper1
	DefaultFilename = "audio.wav"
)

// WhisperClient sends uploaded audio to the OpenAI transcription endpoint.
type WhisperClient struct {
	Client *openai.Client
	Model  string
}

func NewWhisperClient(client *openai.Client, model string) *WhisperClient {
	if model == "" {
		model = DefaultModel
	}
	return &WhisperClient{
		Client: client,
		Model:  model,
	}
}

// TranscribeAudio uploads audio with verbose_json output so segment timings and
// the detected language come back with the text. Language "auto" or "" lets
// Whisper detect it.
func (w *WhisperClient) TranscribeAudio(ctx context.Context, audio io.Reader, opts types.TranscribeOptions) (*types.Transcription, error) {
	model := opts.Model
	if model == "" {
		model = w.Model
	}
	filename := opts.Filename
	if filename == "" {
		filename = DefaultFilename
	}

	req := openai.AudioRequest{
		Model:    model,
		FilePath: filename,
		Reader:   audio,
		Format:   openai.AudioResponseFormatVerboseJSON,
	}
	if opts.Language != "" && opts.Language != "auto" {
		req.Language = opts.Language
	}

	resp, err := w.Client.CreateTranscription(ctx, req)
	if err != nil {
		return nil, llm.ParseProviderError(err)
	}

	segments := make([]types.Segment, 0, len(resp.Segments))
	for _, s := range resp.Segments {
		segments = append(segments, types.Segment{
			ID:    s.ID,
			Start: s.Start,
			End:   s.End,
			Text:  s.Text,
		})
	}

	return &types.Transcription{
		Text:     resp.Text,
		Language: resp.Language,
		Duration: resp.Duration,
		Segments: segments,
	}, nil
}
