package server

import (
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mrsingh-rishi/reflect-relay/service"
)

// analyzeBody keeps prompt loosely typed so a non-string prompt is reported
// the same way as a missing one.
type analyzeBody struct {
	Prompt    any    `json:"prompt"`
	MaxTokens int    `json:"maxTokens"`
	Language  string `json:"language"`
	Model     string `json:"model"`
}

func (s *Server) analyze(c *fiber.Ctx) error {
	var body analyzeBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody{
			Error:   "Invalid request body",
			Message: "Please send a JSON body with a prompt",
		})
	}
	prompt, _ := body.Prompt.(string)

	res, err := s.relay.Analyze(c.UserContext(), service.AnalyzeRequest{
		Prompt:    prompt,
		MaxTokens: body.MaxTokens,
		Language:  body.Language,
		Model:     body.Model,
	})
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(res)
}

func (s *Server) transcribe(c *fiber.Ctx) error {
	req := service.TranscribeRequest{Language: c.FormValue("language")}

	// a request that is not multipart at all is treated as one without a file
	if fh, err := c.FormFile("audio"); err == nil {
		path := filepath.Join(s.cfg.Transcription.UploadDir, uuid.NewString()+filepath.Ext(fh.Filename))
		if err := c.SaveFile(fh, path); err != nil {
			s.log.Error("could not stage upload", zap.String("path", path), zap.Error(err))
			return s.writeError(c, &service.Error{
				Kind:    service.KindInternal,
				Code:    "Transcription failed",
				Message: err.Error(),
				Service: service.TranscriptionService,
			})
		}
		req.Upload = &service.Upload{
			Path:        path,
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
			Size:        fh.Size,
		}
	}

	res, err := s.relay.Transcribe(c.UserContext(), req)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(res)
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(s.relay.Health(time.Now()))
}

func (s *Server) test(c *fiber.Ctx) error {
	res, err := s.relay.Canary(c.UserContext())
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(res)
}
