package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
)

// ProviderError is a normalized failure reported by the OpenAI API or the
// transport in front of it. Status is zero when no HTTP response was received.
type ProviderError struct {
	Status  int
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("OpenAI API failed: %d - %s", e.Status, e.Message)
	}
	return "OpenAI API failed: " + e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// RateLimited reports whether the provider rejected the call for exceeding its rate limit.
func (e *ProviderError) RateLimited() bool {
	return e.Status == http.StatusTooManyRequests || strings.Contains(strings.ToLower(e.Message), "rate limit")
}

// ParseProviderError converts go-openai errors into a *ProviderError.
func ParseProviderError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = "OpenAI API request failed"
		}
		return &ProviderError{Status: apiErr.HTTPStatusCode, Message: msg, Err: err}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		fallback := reqErr.HTTPStatus
		if fallback == "" && reqErr.Err != nil {
			fallback = reqErr.Err.Error()
		}
		return &ProviderError{
			Status:  reqErr.HTTPStatusCode,
			Message: MessageFromBody(reqErr.Body, fallback),
			Err:     err,
		}
	}

	return &ProviderError{Message: err.Error(), Err: err}
}

// MessageFromBody extracts a readable message from a provider error body.
// JSON shapes are tried first; anything else is returned as opaque text.
func MessageFromBody(body []byte, fallback string) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return fallback
	}

	var envelope struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if msg := messageFromErrorField(envelope.Error); msg != "" {
			return msg
		}
		if envelope.Message != "" {
			return envelope.Message
		}
		return string(body)
	}

	var text string
	if err := json.Unmarshal(body, &text); err == nil && text != "" {
		return text
	}
	return string(body)
}

// The "error" member is usually an object with a message, occasionally a bare string.
func messageFromErrorField(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Message != "" {
		return obj.Message
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	return ""
}
