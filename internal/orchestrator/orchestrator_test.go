package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"travel-assistant-core/internal/capability"
	"travel-assistant-core/internal/catalog"
	"travel-assistant-core/internal/intent"
	"travel-assistant-core/internal/model"
	"travel-assistant-core/internal/usercontext/repository/memory"
	"travel-assistant-core/internal/workflow"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, args ...any)  {}

// stubProvider is a scriptable capability. A non-zero delay is slept
// without watching the context, mimicking a provider that ignores
// cancellation.
type stubProvider struct {
	name   string
	delay  time.Duration
	err    error
	invoke func(ctx context.Context, params map[string]any, uc model.UserContext) (capability.Result, error)
}

func (p *stubProvider) Name() string           { return p.name }
func (p *stubProvider) Timeout() time.Duration { return 0 }

func (p *stubProvider) Invoke(ctx context.Context, params map[string]any, uc model.UserContext) (capability.Result, error) {
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	if p.invoke != nil {
		return p.invoke(ctx, params, uc)
	}
	if p.err != nil {
		return nil, p.err
	}
	return capability.Result{p.name: "done"}, nil
}

func testEntries() []catalog.Entry {
	return []catalog.Entry{
		{
			Label:    "triple",
			Keywords: []string{"triple"},
			Steps: []catalog.StepTemplate{
				{Capability: "alpha"},
				{Capability: "beta"},
				{Capability: "gamma"},
			},
		},
		{
			Label:    "ping",
			Keywords: []string{"ping"},
			Steps:    []catalog.StepTemplate{{Capability: "echo"}},
		},
		{
			Label:    "chain",
			Keywords: []string{"chain"},
			Steps: []catalog.StepTemplate{
				{Capability: "alpha"},
				{Capability: "omega", DependsOn: []string{"alpha"}},
			},
		},
	}
}

// newTestOrchestrator builds an orchestrator over an in-memory store with a
// tight step timeout. extra providers override or extend the baseline set.
func newTestOrchestrator(t *testing.T, extra ...capability.Provider) (*Orchestrator, *memory.Store) {
	t.Helper()

	cat, err := catalog.NewFromEntries(testEntries(), &mockLogger{})
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}

	reg := capability.NewRegistry()
	for _, name := range []string{"alpha", "gamma", "echo", "omega",
		catalog.CapabilityClarifyIntent, catalog.CapabilityExpedite} {
		reg.Register(&stubProvider{name: name})
	}
	// Ignores cancellation and blows well past the step budget.
	reg.Register(&stubProvider{name: "beta", delay: 2 * time.Second})
	for _, p := range extra {
		reg.Register(p)
	}

	store := memory.New()

	cfg := DefaultConfig()
	cfg.StepTimeout = 100 * time.Millisecond
	cfg.PruneInterval = time.Hour

	o, err := New(&mockLogger{}, cfg, intent.DefaultConfig(), workflow.DefaultConfig(), store, cat, reg)
	if err != nil {
		t.Fatalf("failed to build orchestrator: %v", err)
	}
	t.Cleanup(func() {
		sctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = o.Shutdown(sctx)
	})

	return o, store
}

func TestOrchestrator_PartialFailure(t *testing.T) {
	ctx := context.Background()
	o, _ := newTestOrchestrator(t)

	start := time.Now()
	outcome, err := o.ProcessRequest(ctx, "user-1", "triple please", nil)
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed > time.Second {
		t.Fatalf("request blocked on the slow step: took %s", elapsed)
	}

	if outcome.Success {
		t.Error("expected Success=false with a timed-out step")
	}
	if !outcome.Partial {
		t.Error("expected a partial outcome")
	}

	beta, ok := outcome.StepResults["beta"]
	if !ok {
		t.Fatal("missing step result for beta")
	}
	if !beta.TimedOut {
		t.Errorf("expected beta to time out, got %+v", beta)
	}

	for _, id := range []string{"alpha", "gamma"} {
		if _, ok := outcome.Response[id]; !ok {
			t.Errorf("expected output of %s in merged response", id)
		}
	}

	foundBeta := false
	for _, id := range outcome.FailedSteps {
		if id == "beta" {
			foundBeta = true
		}
	}
	if !foundBeta {
		t.Errorf("expected beta in failed steps, got %v", outcome.FailedSteps)
	}

	if len(outcome.Alternatives) == 0 || outcome.Alternatives[0] != "backup_plan" {
		t.Errorf("expected backup_plan alternative, got %v", outcome.Alternatives)
	}
}

func TestOrchestrator_DependencyInputs(t *testing.T) {
	ctx := context.Background()

	var mu sync.Mutex
	var gotInputs map[string]any
	omega := &stubProvider{
		name: "omega",
		invoke: func(ctx context.Context, params map[string]any, uc model.UserContext) (capability.Result, error) {
			mu.Lock()
			gotInputs, _ = params["inputs"].(map[string]any)
			mu.Unlock()
			return capability.Result{"omega": "done"}, nil
		},
	}

	o, _ := newTestOrchestrator(t, omega)

	outcome, err := o.ProcessRequest(ctx, "user-2", "chain it", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := outcome.StepResults["omega"]; !ok {
		t.Fatal("missing step result for omega")
	}

	mu.Lock()
	defer mu.Unlock()
	if gotInputs == nil {
		t.Fatal("dependent step received no inputs")
	}
	if _, ok := gotInputs["alpha"]; !ok {
		t.Errorf("expected alpha output in inputs, got %v", gotInputs)
	}
}

func TestOrchestrator_UnknownFallsBackToClarify(t *testing.T) {
	ctx := context.Background()
	o, _ := newTestOrchestrator(t)

	outcome, err := o.ProcessRequest(ctx, "user-3", "xyzzy frobnicate", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if outcome.Primary != catalog.LabelUnknown {
		t.Errorf("expected primary %q, got %q", catalog.LabelUnknown, outcome.Primary)
	}
	if len(outcome.StepResults) != 1 {
		t.Fatalf("expected exactly one step, got %d", len(outcome.StepResults))
	}
	if _, ok := outcome.StepResults[catalog.CapabilityClarifyIntent]; !ok {
		t.Error("expected the clarify step to run")
	}
	if !outcome.Success {
		t.Errorf("expected success, failed steps: %v", outcome.FailedSteps)
	}
}

func TestOrchestrator_ConcurrentUsers(t *testing.T) {
	ctx := context.Background()
	o, store := newTestOrchestrator(t)

	const requests = 50
	const users = 10

	var wg sync.WaitGroup
	errs := make([]error, requests)
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			userID := fmt.Sprintf("user-%d", i%users)
			updates := map[string]string{"seq": fmt.Sprintf("%d", i)}
			_, errs[i] = o.ProcessRequest(ctx, userID, "ping", updates)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("request %d failed: %v", i, err)
		}
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != users {
		t.Errorf("expected %d stored contexts, got %d", users, count)
	}

	for u := 0; u < users; u++ {
		uc, err := store.Load(ctx, fmt.Sprintf("user-%d", u))
		if err != nil {
			t.Fatalf("load user-%d: %v", u, err)
		}
		if uc.DominantIntent != "ping" {
			t.Errorf("user-%d dominant intent = %q, want ping", u, uc.DominantIntent)
		}
		if _, ok := uc.Preferences["seq"]; !ok {
			t.Errorf("user-%d lost its context update", u)
		}
	}

	m := o.HealthMetrics(ctx)
	if m.ActiveRequests != 0 {
		t.Errorf("expected no active requests after drain, got %d", m.ActiveRequests)
	}
	if m.TotalUsers != users {
		t.Errorf("metrics users = %d, want %d", m.TotalUsers, users)
	}
	if m.AverageExecutionTime <= 0 {
		t.Error("expected a positive average execution time")
	}
}

func TestOrchestrator_Shutdown(t *testing.T) {
	ctx := context.Background()
	o, _ := newTestOrchestrator(t)

	sctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	if err := o.Shutdown(sctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	if _, err := o.ProcessRequest(ctx, "user-4", "ping", nil); !errors.Is(err, ErrShuttingDown) {
		t.Errorf("expected ErrShuttingDown, got %v", err)
	}
}

func TestOrchestrator_Validation(t *testing.T) {
	ctx := context.Background()
	o, _ := newTestOrchestrator(t)

	if _, err := o.ProcessRequest(ctx, "", "hello", nil); !errors.Is(err, ErrEmptyUserID) {
		t.Errorf("expected ErrEmptyUserID, got %v", err)
	}
	if _, err := o.ProcessRequest(ctx, "user-5", "", nil); !errors.Is(err, ErrEmptyText) {
		t.Errorf("expected ErrEmptyText, got %v", err)
	}
}
