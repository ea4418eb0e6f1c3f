// Package http provides the HTTP API for kbengine.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fixdesklabs/kbengine/pkg/engine"
)

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int
}

// Server exposes the retrieval engine over HTTP.
type Server struct {
	echo     *echo.Echo
	engine   *engine.Engine
	logger   *zap.Logger
	config   *Config
	registry *prometheus.Registry
	metrics  *Metrics
}

// NewServer creates the HTTP server and registers its routes.
func NewServer(eng *engine.Engine, logger *zap.Logger, cfg *Config) (*Server, error) {
	if eng == nil {
		return nil, fmt.Errorf("engine cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		cfg = &Config{Host: "localhost", Port: 9180}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)
			return err
		}
	})

	// A per-server registry keeps metric registration test-safe.
	registry := prometheus.NewRegistry()
	s := &Server{
		echo:     e,
		engine:   eng,
		logger:   logger,
		config:   cfg,
		registry: registry,
		metrics:  NewMetrics(registry),
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(
		promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	v1 := s.echo.Group("/api/v1")
	v1.GET("/search", s.handleSearch)
	v1.GET("/answer", s.handleAnswer)
	v1.GET("/guide", s.handleGuide)
	v1.GET("/context", s.handleContext)
	v1.POST("/reload", s.handleReload)
}

// Start begins serving. It blocks until the server stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("http server starting", zap.String("addr", addr))
	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

func (s *Server) handleSearch(c echo.Context) error {
	q := c.QueryParam("q")
	items := s.engine.Search(c.Request().Context(), q)
	s.metrics.observeQuery("search", len(items) > 0)

	resp := SearchResponse{Query: q, Items: make([]FAQItem, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, toFAQItem(item))
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleAnswer(c echo.Context) error {
	q := c.QueryParam("q")
	item, ok := s.engine.BestAnswer(c.Request().Context(), q)
	s.metrics.observeQuery("answer", ok)

	if !ok {
		return c.JSON(http.StatusOK, AnswerResponse{Found: false})
	}
	return c.JSON(http.StatusOK, AnswerResponse{
		Found:    true,
		Question: item.Question,
		Answer:   item.Answer,
	})
}

func (s *Server) handleGuide(c echo.Context) error {
	device := c.QueryParam("device")
	issue := c.QueryParam("issue")
	if issue == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "issue parameter is required"})
	}

	guide := s.engine.Guide(c.Request().Context(), device, issue)
	s.metrics.observeQuery("guide", guide != nil)
	return c.JSON(http.StatusOK, toGuideResponse(guide))
}

func (s *Server) handleContext(c echo.Context) error {
	q := c.QueryParam("q")
	device := c.QueryParam("device")

	text := s.engine.AssembleContext(c.Request().Context(), q, device)
	s.metrics.observeQuery("context", text != "")
	return c.JSON(http.StatusOK, ContextResponse{Context: text})
}

func (s *Server) handleReload(c echo.Context) error {
	items := s.engine.Reload(c.Request().Context())
	s.metrics.reloadsTotal.Inc()
	return c.JSON(http.StatusOK, ReloadResponse{Items: items})
}
