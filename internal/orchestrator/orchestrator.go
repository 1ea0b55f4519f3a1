package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"travel-assistant-core/internal/intent"
	"travel-assistant-core/internal/learner"
	"travel-assistant-core/internal/model"
	"travel-assistant-core/internal/usercontext/repository"
)

// keyEmotionalState in context updates maps to the dedicated context field
// instead of the preference map.
const keyEmotionalState = "emotional_state"

// ProcessRequest runs one user message through the pipeline and returns the
// merged outcome. Calls for the same user are serialized; calls for
// different users proceed concurrently.
func (o *Orchestrator) ProcessRequest(ctx context.Context, userID, text string, contextUpdates map[string]string) (ExecutionOutcome, error) {
	if userID == "" {
		return ExecutionOutcome{}, ErrEmptyUserID
	}
	if text == "" {
		return ExecutionOutcome{}, ErrEmptyText
	}
	if o.closing.Load() {
		return ExecutionOutcome{}, ErrShuttingDown
	}

	o.inflight.Add(1)
	defer o.inflight.Done()

	o.activeRequests.Add(1)
	defer o.activeRequests.Add(-1)

	lk := o.userLocks.forUser(userID)
	lk.Lock()
	defer lk.Unlock()

	start := time.Now()
	requestID := uuid.NewString()

	o.l.Infof(ctx, "orchestrator.ProcessRequest: request %s user %s %s", requestID, userID, StateReceived)

	uc, err := o.loadContext(ctx, userID)
	if err != nil {
		return ExecutionOutcome{}, err
	}
	applyUpdates(&uc, contextUpdates)
	o.l.Debugf(ctx, "orchestrator.ProcessRequest: request %s %s", requestID, StateContextLoaded)

	candidates := o.generator.Generate(ctx, text, uc)
	resolved := o.resolver.Resolve(candidates)
	collapsed := intent.Collapse(resolved, o.intentCfg.SecondaryWeightMin)
	factors, emotionalWeight, temporal := o.factors.Analyze(uc, text)

	analysis := intent.AnalysisResult{
		Primary:         collapsed.Primary,
		Confidence:      collapsed.Confidence,
		Secondary:       collapsed.Secondary,
		Candidates:      resolved,
		Factors:         factors,
		EmotionalWeight: emotionalWeight,
		Temporal:        temporal,
	}
	o.l.Debugf(ctx, "orchestrator.ProcessRequest: request %s %s primary=%s", requestID, StateAnalyzed, analysis.Primary)

	wf := o.synthesizer.Synthesize(ctx, analysis, uc)
	o.l.Debugf(ctx, "orchestrator.ProcessRequest: request %s %s workflow=%s", requestID, StateSynthesized, wf.ID)

	o.l.Debugf(ctx, "orchestrator.ProcessRequest: request %s %s", requestID, StateDispatching)
	stepResults := o.dispatch(ctx, wf, uc)

	o.l.Debugf(ctx, "orchestrator.ProcessRequest: request %s %s", requestID, StateMerging)
	response, failed := merge(wf, stepResults)

	outcome := ExecutionOutcome{
		RequestID:    requestID,
		WorkflowID:   wf.ID,
		Primary:      analysis.Primary,
		Confidence:   analysis.Confidence,
		Success:      len(failed) == 0,
		Partial:      len(failed) > 0 && len(failed) < len(wf.Steps),
		Response:     response,
		StepResults:  stepResults,
		FailedSteps:  failed,
		Duration:     time.Since(start),
		ResourceCost: resourceCost(stepResults),
		Alternatives: alternatives(analysis, failed),
	}

	uc.DominantIntent = analysis.Primary
	uc.UpdatedAt = time.Now()
	if err := o.store.Save(ctx, uc); err != nil {
		o.l.Errorf(ctx, "orchestrator.ProcessRequest: save context for %s: %v", userID, err)
		return ExecutionOutcome{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	o.learner.RecordOutcome(learner.Record{
		WorkflowID: wf.ID,
		Primary:    analysis.Primary,
		Success:    outcome.Success,
		Partial:    outcome.Partial,
		Duration:   outcome.Duration,
	})
	o.recordStats(outcome.Duration)

	final := StateCompleted
	if !outcome.Success {
		final = StateFailed
	}
	o.l.Infof(ctx, "orchestrator.ProcessRequest: request %s %s primary=%s steps=%d failed=%d",
		requestID, final, analysis.Primary, len(wf.Steps), len(failed))

	return outcome, nil
}

func (o *Orchestrator) loadContext(ctx context.Context, userID string) (model.UserContext, error) {
	uc, err := o.store.Load(ctx, userID)
	switch {
	case err == nil:
		return uc, nil
	case errors.Is(err, repository.ErrNotFound):
		return model.NewUserContext(userID, uuid.NewString()), nil
	default:
		o.l.Errorf(ctx, "orchestrator.loadContext: load %s: %v", userID, err)
		return model.UserContext{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
}

func applyUpdates(uc *model.UserContext, updates map[string]string) {
	for k, v := range updates {
		if k == keyEmotionalState {
			uc.EmotionalState = v
			continue
		}
		if uc.Preferences == nil {
			uc.Preferences = make(map[string]string)
		}
		uc.Preferences[k] = v
	}
}

func resourceCost(results map[string]StepResult) float64 {
	var cost float64
	for _, r := range results {
		cost += r.Duration.Seconds()
	}
	return cost
}

// alternatives suggests fallback capabilities when steps failed: the plan
// recovery step plus any secondary interpretation the caller could retry.
func alternatives(analysis intent.AnalysisResult, failed []string) []string {
	if len(failed) == 0 {
		return nil
	}
	alts := []string{"backup_plan"}
	alts = append(alts, analysis.Secondary...)
	return alts
}

func (o *Orchestrator) recordStats(d time.Duration) {
	o.statsMu.Lock()
	defer o.statsMu.Unlock()
	o.completed++
	o.totalDuration += d
}

// HealthMetrics returns the current health snapshot.
func (o *Orchestrator) HealthMetrics(ctx context.Context) Metrics {
	users, err := o.store.Count(ctx)
	if err != nil {
		o.l.Warnf(ctx, "orchestrator.HealthMetrics: count users: %v", err)
	}

	o.statsMu.Lock()
	var avg time.Duration
	if o.completed > 0 {
		avg = o.totalDuration / time.Duration(o.completed)
	}
	o.statsMu.Unlock()

	return Metrics{
		ActiveRequests:       o.activeRequests.Load(),
		TotalUsers:           users,
		AverageExecutionTime: avg,
		OptimizationScore:    o.learner.OptimizationScore(),
	}
}

// Shutdown stops accepting requests, waits for in-flight work up to the
// context deadline, then closes the store.
func (o *Orchestrator) Shutdown(ctx context.Context) error {
	if o.closing.Swap(true) {
		return nil
	}
	close(o.pruneDone)

	done := make(chan struct{})
	go func() {
		o.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		o.l.Warnf(ctx, "orchestrator.Shutdown: drain interrupted: %v", ctx.Err())
	}

	return o.store.Close()
}

func (o *Orchestrator) pruneLoop() {
	ticker := time.NewTicker(o.cfg.PruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-o.pruneDone:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			n, err := o.store.Prune(ctx, o.cfg.Retention)
			cancel()
			if err != nil {
				o.l.Warnf(ctx, "orchestrator.pruneLoop: prune: %v", err)
				continue
			}
			if n > 0 {
				o.l.Infof(ctx, "orchestrator.pruneLoop: pruned %d stale contexts", n)
			}
		}
	}
}
