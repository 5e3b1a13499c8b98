// Package api provides the HTTP API for timetrack.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Brottuetchen/TimeTrack/internal/config"
)

// Server provides the HTTP endpoints for timetrack.
type Server struct {
	echo   *echo.Echo
	logger *zap.Logger
	cfg    config.Config
}

// NewServer creates a new HTTP server.
func NewServer(cfg config.Config, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", duration),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)

			return err
		}
	})

	s := &Server{
		echo:   e,
		logger: logger,
		cfg:    cfg,
	}

	// Register routes
	s.registerRoutes()

	return s, nil
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := s.echo.Group("/api/v1")

	v1.POST("/events/window", s.handleCreateWindowEvent)
	v1.POST("/events/phone", s.handleCreatePhoneEvent)
	v1.GET("/events", s.handleListEvents)

	v1.POST("/sessions/aggregate", s.handleAggregate)
	v1.GET("/sessions", s.handleListSessions)
	v1.GET("/sessions/:id", s.handleGetSession)
	v1.POST("/sessions/:id/assign", s.handleAssignSession)

	v1.GET("/assignments", s.handleListAssignments)
	v1.POST("/assignments", s.handleCreateAssignment)
	v1.PUT("/assignments/:id", s.handleUpdateAssignment)

	v1.GET("/rules", s.handleListRules)
	v1.GET("/rules/:id", s.handleGetRule)
	v1.POST("/rules", s.handleCreateRule)
	v1.PUT("/rules/:id", s.handleUpdateRule)
	v1.DELETE("/rules/:id", s.handleDeleteRule)

	v1.GET("/projects", s.handleListProjects)
	v1.POST("/projects", s.handleCreateProject)
	v1.DELETE("/projects/:id", s.handleDeleteProject)
	v1.GET("/projects/:id/milestones", s.handleListMilestones)
	v1.POST("/projects/:id/milestones", s.handleCreateMilestone)

	v1.GET("/export/csv", s.handleExportCSV)
	v1.GET("/export/xlsx", s.handleExportXLSX)
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Start begins serving HTTP requests. Blocks until the server stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.logger.Info("starting http server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Echo exposes the underlying echo instance for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
