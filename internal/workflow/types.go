package workflow

import "time"

// Step is one capability invocation in a workflow. Steps whose Parallel
// flag is set have no data dependency on any other step and may be fanned
// out together; steps listing DependsOn consume earlier step output and
// run sequentially after it.
type Step struct {
	ID         string         `json:"id"`
	Capability string         `json:"capability"`
	Parameters map[string]any `json:"parameters,omitempty"`
	DependsOn  []string       `json:"depends_on,omitempty"`
	Parallel   bool           `json:"parallel"`
}

// Workflow is the ordered/parallel plan the orchestrator dispatches.
// Created per request, consumed immediately, retained only as a learning
// record.
type Workflow struct {
	ID        string    `json:"id"`
	Steps     []Step    `json:"steps"`
	CreatedAt time.Time `json:"created_at"`
}

// Config holds the synthesizer tunables.
type Config struct {
	// MitigationThreshold is the minimum weight of a negative context
	// factor that inserts an expedited-handling step ahead of the plan.
	MitigationThreshold float64
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{MitigationThreshold: 0.6}
}
