package providers

import (
	"context"
	"time"

	"travel-assistant-core/internal/capability"
	"travel-assistant-core/internal/model"
)

// ClarifyIntent asks the user for more input when no intent collapsed.
type ClarifyIntent struct{}

func (p *ClarifyIntent) Name() string           { return "clarify_intent" }
func (p *ClarifyIntent) Timeout() time.Duration { return time.Second }

func (p *ClarifyIntent) Invoke(ctx context.Context, params map[string]any, uc model.UserContext) (capability.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prompt := "Could you tell me a bit more about what you'd like to do? For example: book a flight, find a hotel, or plan a trip."
	if uc.DominantIntent != "" {
		prompt = "I wasn't sure what you meant. Did you want to continue with " + uc.DominantIntent + "?"
	}

	return capability.Result{
		"clarification": prompt,
		"needs_input":   true,
	}, nil
}

// ExpediteHandling flags the request for priority treatment when a strong
// negative context factor was detected.
type ExpediteHandling struct{}

func (p *ExpediteHandling) Name() string           { return "expedite_handling" }
func (p *ExpediteHandling) Timeout() time.Duration { return time.Second }

func (p *ExpediteHandling) Invoke(ctx context.Context, params map[string]any, uc model.UserContext) (capability.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reason := "context_factor"
	if f, ok := params["trigger_factor"].(string); ok {
		reason = f
	}

	return capability.Result{
		"expedited":       true,
		"expedite_reason": reason,
	}, nil
}
