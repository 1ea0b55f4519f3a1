package httpserver

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"travel-assistant-core/internal/middleware"
	"travel-assistant-core/internal/orchestrator"
	"travel-assistant-core/pkg/log"
)

// Core is the request pipeline the HTTP layer fronts.
type Core interface {
	ProcessRequest(ctx context.Context, userID, text string, contextUpdates map[string]string) (orchestrator.ExecutionOutcome, error)
	HealthMetrics(ctx context.Context) orchestrator.Metrics
}

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	core Core
	mw   middleware.Middleware
}

// Config is the dependency bag passed to New().
type Config struct {
	Port        int
	Mode        string
	Environment string

	Core      Core
	RateLimit middleware.RateLimitConfig
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:           logger,
		gin:         gin.New(),
		port:        cfg.Port,
		mode:        cfg.Mode,
		environment: cfg.Environment,
		core:        cfg.Core,
		mw:          middleware.New(logger, cfg.RateLimit),
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}
	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.core == nil {
		return errors.New("core is required")
	}
	return nil
}
