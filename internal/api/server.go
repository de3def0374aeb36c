// Package api exposes the learning pipelines over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/minho-jung/kidlearn/internal/logger"
	"github.com/minho-jung/kidlearn/internal/workflow"
)

// Server wraps the gin engine and the HTTP listener.
type Server struct {
	engine *gin.Engine
	http   *http.Server
	log    *logger.Logger
}

// NewServer builds the router around the orchestrator.
func NewServer(addr string, orch *workflow.Orchestrator, log *logger.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(log))

	h := &handlers{orch: orch, log: log}
	engine.GET("/healthz", h.health)
	engine.POST("/init_profile", h.initProfile)
	engine.POST("/submit_assessment", h.submitAssessment)
	engine.POST("/overall_feedback", h.overallFeedback)

	return &Server{
		engine: engine,
		http: &http.Server{
			Addr:              addr,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log.With("component", "api"),
	}
}

// ListenAndServe blocks serving requests until Shutdown is called.
func (s *Server) ListenAndServe() error {
	s.log.Info("listening", "addr", s.http.Addr)
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func requestLogger(log *logger.Logger) gin.HandlerFunc {
	l := log.With("component", "http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}
}
