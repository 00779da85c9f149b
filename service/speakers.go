package service

import (
	"context"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/mrsingh-rishi/reflect-relay/types"
)

const speakerSystem = "You are an expert at analyzing conversations and identifying different speakers " +
	"based on context, dialogue flow, and natural conversation patterns. You understand Hebrew and English perfectly."

const speakerInstructions = `You are an expert at analyzing conversations and identifying different speakers based on dialogue patterns, conversation flow, and natural speech transitions.

Analyze this conversation transcript and identify different speakers. Look for:
- Natural conversation turns and responses
- Different speaking styles or topics
- Clear dialogue patterns
- Context clues that indicate speaker changes

Format the output with "Speaker A:", "Speaker B:", etc. for each different person speaking.

Important guidelines:
- Only separate speakers when you're confident there's a genuine speaker change
- If unsure, it's better to keep text together under one speaker
- Look for natural conversation flow and responses
- Consider context and dialogue patterns

Original transcript:
`

const speakerFormat = `

Please format as:
Speaker A: [their part]
Speaker B: [their part]
etc.

Return ONLY the formatted transcript with speaker labels, nothing else.`

// SingleSpeaker attributes the whole transcript to one synthetic speaker.
func SingleSpeaker(transcript string) string {
	return "Speaker A: " + transcript
}

// LabelSpeakers asks the chat model to split transcript into speaker turns.
// Short transcripts skip the call. Any failure degrades to SingleSpeaker and is
// never reported to the caller; a successful reply is returned verbatim.
func (r *Relay) LabelSpeakers(ctx context.Context, transcript, lang string) string {
	if utf8.RuneCountInString(transcript) <= r.cfg.Transcription.SpeakerThreshold {
		return SingleSpeaker(transcript)
	}

	r.log.Debug("identifying speakers", zap.String("language", lang))

	started := time.Now()
	completion, err := r.chat.CompleteChat(ctx, speakerPrompt(transcript, lang), types.ChatOptions{
		Model:       r.cfg.Speakers.Model,
		System:      speakerSystem,
		MaxTokens:   r.cfg.Speakers.MaxTokens,
		Temperature: r.cfg.Speakers.Temperature,
	})
	r.metrics.ObserveProviderCall("label_speakers", started, err)
	if err != nil || completion == nil || completion.Text == "" {
		r.log.Warn("speaker identification failed, using single speaker", zap.Error(err))
		r.metrics.SpeakerFallback()
		return SingleSpeaker(transcript)
	}

	r.log.Debug("speaker identification completed")
	return completion.Text
}

func speakerPrompt(transcript, lang string) string {
	prefix := "Please respond in English only. "
	if lang == "he" {
		prefix = "אנא השב בעברית בלבד. "
	}
	return prefix + speakerInstructions + transcript + speakerFormat
}
