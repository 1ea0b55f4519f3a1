package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travel-assistant-core/config"
	_ "travel-assistant-core/docs" // Swagger docs
	"travel-assistant-core/internal/capability/providers"
	"travel-assistant-core/internal/catalog"
	"travel-assistant-core/internal/httpserver"
	"travel-assistant-core/internal/intent"
	"travel-assistant-core/internal/middleware"
	"travel-assistant-core/internal/orchestrator"
	"travel-assistant-core/internal/usercontext/repository"
	memoryStore "travel-assistant-core/internal/usercontext/repository/memory"
	sqliteStore "travel-assistant-core/internal/usercontext/repository/sqlite"
	"travel-assistant-core/internal/workflow"
	"travel-assistant-core/pkg/gcalendar"
	"travel-assistant-core/pkg/log"
	"travel-assistant-core/pkg/weather"
)

// @title       Travel Assistant Core API
// @description Intent analysis and workflow orchestration for a travel assistant.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Travel Assistant Core...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Intent catalog
	var cat *catalog.Catalog
	if cfg.Catalog.Path != "" {
		cat, err = catalog.Load(cfg.Catalog.Path, logger)
	} else {
		cat, err = catalog.New(logger)
	}
	if err != nil {
		logger.Fatalf(ctx, "Failed to build intent catalog: %v", err)
	}
	logger.Infof(ctx, "Catalog ready with %d intent(s)", len(cat.Labels()))

	// 4. User context store
	var store repository.Store
	switch cfg.Store.Driver {
	case "sqlite":
		store, err = sqliteStore.New(cfg.Store.Path)
		if err != nil {
			logger.Fatalf(ctx, "Failed to open sqlite store at %s: %v", cfg.Store.Path, err)
		}
		logger.Infof(ctx, "User context store: sqlite (%s)", cfg.Store.Path)
	default:
		store = memoryStore.New()
		logger.Info(ctx, "User context store: in-memory")
	}

	// 5. Capability providers
	provCfg := providers.Config{
		CalendarID: cfg.GoogleCalendar.CalendarID,
		Timezone:   cfg.GoogleCalendar.Timezone,
	}

	if cfg.Weather.Enabled {
		wc := weather.New()
		if cfg.Weather.ForecastURL != "" && cfg.Weather.GeocodeURL != "" {
			wc = wc.WithBaseURLs(cfg.Weather.ForecastURL, cfg.Weather.GeocodeURL)
		}
		provCfg.Weather = wc
		logger.Info(ctx, "Weather lookup enabled")
	}

	if cfg.GoogleCalendar.CredentialsPath != "" {
		calendarClient, calErr := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath)
		if calErr != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", calErr)
		} else {
			provCfg.Calendar = calendarClient
			logger.Info(ctx, "Google Calendar initialized")
		}
	}

	registry := providers.NewDefaultRegistry(provCfg)
	logger.Infof(ctx, "Capability registry: %d provider(s)", len(registry.Names()))

	// 6. Orchestrator
	core, err := orchestrator.New(logger,
		orchestrator.Config{
			StepTimeout:        cfg.Orchestrator.StepTimeout,
			MaxParallelSteps:   cfg.Orchestrator.MaxParallelSteps,
			Retention:          time.Duration(cfg.Orchestrator.RetentionDays) * 24 * time.Hour,
			PruneInterval:      cfg.Orchestrator.PruneInterval,
			LearnerHistorySize: cfg.Orchestrator.LearnerHistorySize,
		},
		intent.Config{
			WeightFloor:             cfg.Core.WeightFloor,
			MaxCandidates:           cfg.Core.MaxCandidates,
			InterferenceSensitivity: cfg.Core.InterferenceSensitivity,
			DecoherenceThreshold:    cfg.Core.DecoherenceThreshold,
			SecondaryWeightMin:      cfg.Core.SecondaryWeightMin,
			LateNightStart:          cfg.Core.LateNightStart,
			LateNightEnd:            cfg.Core.LateNightEnd,
		},
		workflow.Config{MitigationThreshold: cfg.Workflow.MitigationThreshold},
		store, cat, registry,
	)
	if err != nil {
		logger.Fatalf(ctx, "Failed to build orchestrator: %v", err)
	}

	// 7. HTTP server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		Core:        core,
		RateLimit: middleware.RateLimitConfig{
			RequestsPerMin: cfg.RateLimit.RequestsPerMin,
			MaxUsers:       cfg.RateLimit.MaxUsers,
		},
	})
	if err != nil {
		logger.Fatalf(ctx, "Failed to build HTTP server: %v", err)
	}

	// 8. Run until signalled, then drain
	if err := httpServer.Run(ctx); err != nil {
		logger.Errorf(ctx, "HTTP server stopped: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := core.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "Core shutdown: %v", err)
	}
	logger.Info(ctx, "Travel Assistant Core stopped")
}
