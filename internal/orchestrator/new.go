package orchestrator

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"travel-assistant-core/internal/capability"
	"travel-assistant-core/internal/catalog"
	"travel-assistant-core/internal/intent"
	"travel-assistant-core/internal/learner"
	"travel-assistant-core/internal/usercontext/repository"
	"travel-assistant-core/internal/workflow"
	pkgLog "travel-assistant-core/pkg/log"
)

// Orchestrator drives a request through the full pipeline: context load,
// intent analysis, workflow synthesis, capability dispatch and outcome
// recording. Requests for the same user are serialized.
type Orchestrator struct {
	l        pkgLog.Logger
	cfg      Config
	store    repository.Store
	catalog  *catalog.Catalog
	registry *capability.Registry

	generator   *intent.Generator
	resolver    *intent.Resolver
	factors     *intent.FactorAnalyzer
	synthesizer *workflow.Synthesizer
	learner     *learner.Learner

	intentCfg intent.Config

	userLocks locksTable

	activeRequests atomic.Int64
	statsMu        sync.Mutex
	completed      int64
	totalDuration  time.Duration

	closing   atomic.Bool
	inflight  sync.WaitGroup
	pruneDone chan struct{}
}

// New wires the pipeline components and starts the background prune loop.
func New(l pkgLog.Logger, cfg Config, intentCfg intent.Config, wfCfg workflow.Config,
	store repository.Store, cat *catalog.Catalog, registry *capability.Registry) (*Orchestrator, error) {
	if l == nil {
		return nil, errors.New("logger is required")
	}
	if store == nil {
		return nil, errors.New("user context store is required")
	}
	if cat == nil || len(cat.Labels()) == 0 {
		return nil, ErrCatalogMisconfigured
	}
	if registry == nil || len(registry.Names()) == 0 {
		return nil, errors.New("capability registry is required")
	}
	if cfg.StepTimeout <= 0 {
		cfg.StepTimeout = DefaultConfig().StepTimeout
	}
	if cfg.MaxParallelSteps <= 0 {
		cfg.MaxParallelSteps = DefaultConfig().MaxParallelSteps
	}
	if cfg.Retention <= 0 {
		cfg.Retention = DefaultConfig().Retention
	}
	if cfg.PruneInterval <= 0 {
		cfg.PruneInterval = DefaultConfig().PruneInterval
	}
	if cfg.LearnerHistorySize <= 0 {
		cfg.LearnerHistorySize = DefaultConfig().LearnerHistorySize
	}

	o := &Orchestrator{
		l:           l,
		cfg:         cfg,
		store:       store,
		catalog:     cat,
		registry:    registry,
		generator:   intent.NewGenerator(cat, intentCfg, l),
		resolver:    intent.NewResolver(intentCfg),
		factors:     intent.NewFactorAnalyzer(intentCfg),
		synthesizer: workflow.NewSynthesizer(cat, wfCfg, l),
		learner:     learner.New(cfg.LearnerHistorySize),
		intentCfg:   intentCfg,
		userLocks:   locksTable{locks: make(map[string]*sync.Mutex)},
		pruneDone:   make(chan struct{}),
	}

	go o.pruneLoop()

	return o, nil
}

// locksTable hands out one mutex per user so concurrent requests for the
// same user apply context updates one at a time.
type locksTable struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (t *locksTable) forUser(userID string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()

	lk, ok := t.locks[userID]
	if !ok {
		lk = &sync.Mutex{}
		t.locks[userID] = lk
	}
	return lk
}
