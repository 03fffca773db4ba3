package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"shipping-calculator/internal/core/config"
	"shipping-calculator/internal/core/logger"
	"shipping-calculator/internal/core/metrics"

	"github.com/gofiber/contrib/fiberzap/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"
	"go.uber.org/zap"

	_ "shipping-calculator/docs/swagger"
)

const healthTimeout = 2 * time.Second

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server holds the Fiber application and configuration.
type Server struct {
	// App is the main Fiber application instance.
	App *fiber.App
	// cfg holds the application configuration.
	cfg *config.AppConfig
}

// New creates a new Server instance with configured middleware.
// m and store may be nil, which disables /metrics and the store check on /health.
func New(cfg *config.AppConfig, m *metrics.Metrics, store Pinger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		AppName:               "shipping-calculator",
	})

	app.Use(requestid.New(requestid.Config{
		Header:    "X-Ray-ID",
		Generator: uuid.NewString,
	}))

	app.Use(fiberzap.New(fiberzap.Config{
		Logger: logger.Get(),
		SkipURIs: []string{
			"/health",
			"/metrics",
		},
	}))

	app.Get("/health", healthHandler(store))
	if m != nil {
		app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))
	}
	app.Get("/swagger/*", swagger.HandlerDefault)

	return &Server{
		App: app,
		cfg: cfg,
	}
}

// healthHandler godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func healthHandler(store Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if store != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
			defer cancel()
			if err := store.Ping(ctx); err != nil {
				logger.Get().Warn("Health check failed", zap.Error(err))
				return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{
					"status": "unavailable",
					"redis":  err.Error(),
				})
			}
		}
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status": "ok",
		})
	}
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.ServerPort)
	logger.Get().Info("Starting server", zap.String("address", addr))
	return s.App.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests up to timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	return s.App.ShutdownWithTimeout(timeout)
}
