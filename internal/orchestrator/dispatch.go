package orchestrator

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"travel-assistant-core/internal/capability"
	"travel-assistant-core/internal/model"
	"travel-assistant-core/internal/workflow"
)

// dispatch executes the workflow's steps. Consecutive parallel steps are
// fanned out together; everything else runs sequentially in plan order.
// A failed step never stops the remaining steps.
func (o *Orchestrator) dispatch(ctx context.Context, wf workflow.Workflow, uc model.UserContext) map[string]StepResult {
	results := make(map[string]StepResult, len(wf.Steps))
	var mu sync.Mutex

	steps := wf.Steps
	for i := 0; i < len(steps); {
		if !steps[i].Parallel {
			step := o.withDependencyInputs(steps[i], results)
			results[step.ID] = o.invokeStep(ctx, step, uc)
			i++
			continue
		}

		// Fan out the run of parallel steps starting here.
		j := i
		for j < len(steps) && steps[j].Parallel {
			j++
		}
		g := errgroup.Group{}
		g.SetLimit(o.cfg.MaxParallelSteps)
		for _, step := range steps[i:j] {
			g.Go(func() error {
				res := o.invokeStep(ctx, step, uc)
				mu.Lock()
				results[step.ID] = res
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait() // workers never return errors
		i = j
	}

	return results
}

// withDependencyInputs exposes the outputs of completed dependencies to a
// sequential step under the "inputs" parameter, keyed by step ID. Failed
// dependencies contribute nothing; the step still runs degraded.
func (o *Orchestrator) withDependencyInputs(step workflow.Step, results map[string]StepResult) workflow.Step {
	if len(step.DependsOn) == 0 {
		return step
	}

	inputs := make(map[string]any)
	for _, dep := range step.DependsOn {
		if r, ok := results[dep]; ok && !r.Failed() {
			inputs[dep] = map[string]any(r.Output)
		}
	}
	if len(inputs) == 0 {
		return step
	}

	params := make(map[string]any, len(step.Parameters)+1)
	for k, v := range step.Parameters {
		params[k] = v
	}
	params["inputs"] = inputs
	step.Parameters = params
	return step
}

// invokeStep runs one provider with a hard timeout. The provider gets a
// child context carrying the deadline; if it ignores cancellation the
// orchestrator still moves on and records a timed-out result.
func (o *Orchestrator) invokeStep(ctx context.Context, step workflow.Step, uc model.UserContext) StepResult {
	start := time.Now()

	p, ok := o.registry.Get(step.Capability)
	if !ok {
		o.l.Warnf(ctx, "orchestrator.invokeStep: no provider for %q", step.Capability)
		return StepResult{
			Capability: step.Capability,
			Error:      "no provider registered",
			Duration:   time.Since(start),
		}
	}

	timeout := p.Timeout()
	if timeout <= 0 || timeout > o.cfg.StepTimeout {
		timeout = o.cfg.StepTimeout
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type invocation struct {
		out capability.Result
		err error
	}
	ch := make(chan invocation, 1)
	go func() {
		out, err := p.Invoke(cctx, step.Parameters, uc)
		ch <- invocation{out: out, err: err}
	}()

	select {
	case inv := <-ch:
		res := StepResult{
			Capability: step.Capability,
			Output:     inv.out,
			Duration:   time.Since(start),
		}
		if inv.err != nil {
			res.Error = inv.err.Error()
			res.Output = nil
			o.l.Warnf(ctx, "orchestrator.invokeStep: %s failed: %v", step.Capability, inv.err)
		}
		return res
	case <-cctx.Done():
		o.l.Warnf(ctx, "orchestrator.invokeStep: %s exceeded %s budget", step.Capability, timeout)
		return StepResult{
			Capability: step.Capability,
			Error:      cctx.Err().Error(),
			TimedOut:   true,
			Duration:   time.Since(start),
		}
	}
}

// merge folds successful step outputs into one response map in plan order.
// Earlier steps take precedence: a later step augments the response but
// never overwrites an existing key. Returns the failed step IDs in plan
// order alongside.
func merge(wf workflow.Workflow, results map[string]StepResult) (map[string]any, []string) {
	response := make(map[string]any)
	var failed []string

	for _, step := range wf.Steps {
		r, ok := results[step.ID]
		if !ok || r.Failed() {
			failed = append(failed, step.ID)
			continue
		}
		for k, v := range r.Output {
			if _, exists := response[k]; !exists {
				response[k] = v
			}
		}
	}

	return response, failed
}
