package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/mrsingh-rishi/reflect-relay/service"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Service string `json:"service,omitempty"`
	Status  int    `json:"status,omitempty"`
}

func statusFor(kind service.Kind) int {
	switch kind {
	case service.KindInvalidRequest:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError renders a relay error as the JSON envelope.
func (s *Server) writeError(c *fiber.Ctx, err error) error {
	var e *service.Error
	if !errors.As(err, &e) {
		e = &service.Error{Kind: service.KindInternal, Code: "Internal server error", Message: err.Error()}
	}
	return c.Status(statusFor(e.Kind)).JSON(errorBody{
		Error:   e.Code,
		Message: e.Message,
		Service: e.Service,
		Status:  e.Status,
	})
}

// handleError covers errors fiber raises itself, such as unknown routes or an
// oversized body, so they share the same envelope.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}
	if code == fiber.StatusRequestEntityTooLarge {
		msg = "File too large"
	}
	if code >= fiber.StatusInternalServerError {
		s.log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
	}

	return c.Status(code).JSON(errorBody{Error: msg})
}
