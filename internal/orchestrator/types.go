package orchestrator

import (
	"time"

	"travel-assistant-core/internal/capability"
)

// State is the per-request lifecycle stage. Transitions are linear:
// Received → ContextLoaded → Analyzed → Synthesized → Dispatching →
// Merging → Completed, with Failed reachable from Dispatching onward.
type State string

const (
	StateReceived      State = "received"
	StateContextLoaded State = "context_loaded"
	StateAnalyzed      State = "analyzed"
	StateSynthesized   State = "synthesized"
	StateDispatching   State = "dispatching"
	StateMerging       State = "merging"
	StateCompleted     State = "completed"
	StateFailed        State = "failed"
)

// StepResult is the recorded outcome of one workflow step.
type StepResult struct {
	Capability string            `json:"capability"`
	Output     capability.Result `json:"output,omitempty"`
	Error      string            `json:"error,omitempty"`
	TimedOut   bool              `json:"timed_out,omitempty"`
	Duration   time.Duration     `json:"duration"`
}

// Failed reports whether the step produced no usable output.
func (r StepResult) Failed() bool {
	return r.Error != "" || r.TimedOut
}

// ExecutionOutcome is the immutable result of one processed request.
type ExecutionOutcome struct {
	RequestID    string                `json:"request_id"`
	WorkflowID   string                `json:"workflow_id"`
	Primary      string                `json:"primary_intent"`
	Confidence   float64               `json:"confidence"`
	Success      bool                  `json:"success"`
	Partial      bool                  `json:"partial"`
	Response     map[string]any        `json:"response,omitempty"`
	StepResults  map[string]StepResult `json:"step_results,omitempty"`
	FailedSteps  []string              `json:"failed_steps,omitempty"`
	Duration     time.Duration         `json:"duration"`
	ResourceCost float64               `json:"resource_cost"`
	Alternatives []string              `json:"alternatives,omitempty"`
}

// Metrics is the health snapshot exposed to the surrounding layer.
type Metrics struct {
	ActiveRequests       int64         `json:"active_requests"`
	TotalUsers           int           `json:"total_users"`
	AverageExecutionTime time.Duration `json:"average_execution_time"`
	OptimizationScore    float64       `json:"optimization_score"`
}

// Config holds orchestrator tunables.
type Config struct {
	// StepTimeout bounds each provider call when the provider does not
	// advertise its own budget.
	StepTimeout time.Duration

	// MaxParallelSteps caps the fan-out of one parallel batch.
	MaxParallelSteps int

	// Retention is how long unused user contexts are kept before pruning.
	Retention time.Duration

	// PruneInterval is how often the background prune runs.
	PruneInterval time.Duration

	// LearnerHistorySize bounds the outcome history.
	LearnerHistorySize int
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		StepTimeout:        3 * time.Second,
		MaxParallelSteps:   4,
		Retention:          90 * 24 * time.Hour,
		PruneInterval:      24 * time.Hour,
		LearnerHistorySize: 500,
	}
}
