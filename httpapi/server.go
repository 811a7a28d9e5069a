// Package httpapi exposes the content-creation pipeline over HTTP.
//
// Routes:
//
//	POST /workflow/create        run a workflow, respond with the result
//	POST /workflow/create/stream run a workflow, stream progress as SSE
//	GET  /workflow/health        liveness probe
//	GET  /health                 liveness probe
//	GET  /                       service banner
package httpapi

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/avelar/contentforge/workflow"
)

// Runner executes workflows. *workflow.Orchestrator satisfies it.
type Runner interface {
	Run(ctx context.Context, topic string) (*workflow.Result, error)
	RunStream(ctx context.Context, topic string) <-chan workflow.Event
}

// Saver persists results. *storage.Store satisfies it.
type Saver interface {
	SaveResult(ctx context.Context, result *workflow.Result) (string, error)
}

// Server holds the dependencies for the API server.
type Server struct {
	runner Runner
	store  Saver
	log    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithStore enables markdown persistence for requests that ask for it.
func WithStore(store Saver) Option {
	return func(s *Server) {
		s.store = store
	}
}

// WithLogger sets the request logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		s.log = log
	}
}

// NewServer creates an API server around a workflow runner.
func NewServer(runner Runner, opts ...Option) *Server {
	s := &Server{
		runner: runner,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register mounts the API routes on an echo instance.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/", s.handleRoot)
	e.GET("/health", s.handleHealth)

	g := e.Group("/workflow")
	g.POST("/create", s.handleCreate)
	g.POST("/create/stream", s.handleCreateStream)
	g.GET("/health", s.handleHealth)
}
