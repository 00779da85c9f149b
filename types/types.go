package types

// ChatOptions tunes a single-turn chat completion.
type ChatOptions struct {
	Model       string
	System      string
	MaxTokens   int
	Temperature float32
}

// Usage mirrors the provider's token accounting.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Completion is the text produced by a chat completion.
type Completion struct {
	Text  string
	Model string
	Usage Usage
}

// TranscribeOptions configures a speech-to-text request.
type TranscribeOptions struct {
	Filename string
	Language string
	Model    string
}

// Segment is a timestamped slice of a transcript.
type Segment struct {
	ID    int
	Start float64
	End   float64
	Text  string
}

// Transcription is the detailed speech-to-text result.
type Transcription struct {
	Text     string
	Language string
	Duration float64
	Segments []Segment
}
