package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mrsingh-rishi/reflect-relay/config"
	"github.com/mrsingh-rishi/reflect-relay/metrics"
	"github.com/mrsingh-rishi/reflect-relay/service"
)

// multipart framing and the language field ride on top of the audio itself
const uploadOverhead = 1 << 20

type Server struct {
	app     *fiber.App
	cfg     *config.Config
	relay   *service.Relay
	metrics *metrics.Metrics
	log     *zap.Logger
}

func New(cfg *config.Config, relay *service.Relay, m *metrics.Metrics, log *zap.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		relay:   relay,
		metrics: m,
		log:     log,
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "reflect-relay",
		BodyLimit:             int(cfg.Transcription.MaxUploadBytes) + uploadOverhead,
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})

	s.app.Use(recover.New())
	s.app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	s.app.Use(s.logRequests)

	api := s.app.Group("/api")
	s.route(api, "/analyze", fiber.MethodPost, s.analyze)
	s.route(api, "/transcribe", fiber.MethodPost, s.transcribe)
	s.route(api, "/health", fiber.MethodGet, s.health)
	s.route(api, "/test", fiber.MethodGet, s.test)

	s.app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	return s
}

// route registers h for method on path, plus an OPTIONS no-op and a 405 for
// every other verb, all carrying the CORS headers.
func (s *Server) route(r fiber.Router, path, method string, h fiber.Handler) {
	headers := allowCORS(method + ", " + fiber.MethodOptions)
	r.Add(fiber.MethodOptions, path, headers, preflight)
	r.Add(method, path, headers, h)
	r.All(path, headers, methodNotAllowed)
}

func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen() error {
	s.log.Info("starting server", zap.String("address", s.cfg.ListenAddress))
	return s.app.Listen(s.cfg.ListenAddress)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		status = fiber.StatusInternalServerError
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
	}

	route := c.Route().Path
	s.metrics.ObserveRequest(route, c.Method(), status)
	s.log.Info("request",
		zap.String("request_id", c.GetRespHeader(fiber.HeaderXRequestID)),
		zap.String("remote", c.IP()),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Int("status", status),
		zap.Duration("latency", time.Since(start)),
	)
	return err
}
