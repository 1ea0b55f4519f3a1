package capability

import (
	"context"
	"time"

	"travel-assistant-core/internal/model"
)

// Result is the output of one capability invocation. Keys are merged into
// the request response; earlier steps take precedence on conflicts.
type Result map[string]any

// Provider performs one concrete action (booking, lookup, scoring) on
// request. The orchestrator treats providers polymorphically by capability
// name and enforces the advertised timeout budget around Invoke.
type Provider interface {
	// Name returns the capability name used in workflow steps.
	Name() string

	// Timeout returns the provider's advertised timeout budget.
	// Zero means use the orchestrator's default.
	Timeout() time.Duration

	// Invoke executes the capability with the step parameters and a
	// read-only view of the user context.
	Invoke(ctx context.Context, params map[string]any, uc model.UserContext) (Result, error)
}
