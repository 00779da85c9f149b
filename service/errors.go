package service

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a relay failure. The HTTP layer derives the status code from it.
type Kind string

const (
	KindInvalidRequest Kind = "invalid_request"
	KindConfig         Kind = "config"
	KindUpstream       Kind = "upstream"
	KindInternal       Kind = "internal"
)

// Error is returned by every Relay operation. Code is the short machine readable
// string surfaced as "error"; Message is the human readable detail.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Service string
	Status  int // upstream HTTP status, when known
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := fmt.Sprintf("%s: %s", e.Kind, e.Code)
	if e.Message != "" {
		base += ": " + e.Message
	}
	return base
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err is a relay *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

func invalid(code, message string) *Error {
	return &Error{Kind: KindInvalidRequest, Code: code, Message: message}
}

func missingCredential() *Error {
	return &Error{
		Kind:    KindConfig,
		Code:    "OpenAI API key not configured",
		Message: "Please check your environment variables",
	}
}
