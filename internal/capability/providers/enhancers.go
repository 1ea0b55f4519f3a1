package providers

import (
	"context"
	"time"

	"travel-assistant-core/internal/capability"
	"travel-assistant-core/internal/model"
)

// EmotionalAdaptation adjusts response presentation to the user's tone.
type EmotionalAdaptation struct{}

func (p *EmotionalAdaptation) Name() string           { return "emotional_adaptation" }
func (p *EmotionalAdaptation) Timeout() time.Duration { return 2 * time.Second }

func (p *EmotionalAdaptation) Invoke(ctx context.Context, params map[string]any, uc model.UserContext) (capability.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tone := "neutral"
	pacing := "standard"
	if w, ok := params["emotional_weight"].(float64); ok {
		switch {
		case w < 0.4:
			tone, pacing = "reassuring", "slow"
		case w > 0.6:
			tone, pacing = "enthusiastic", "standard"
		}
	}

	return capability.Result{
		"adaptation": map[string]any{
			"tone":   tone,
			"pacing": pacing,
		},
	}, nil
}

// SocialMatching proposes group travel matches from trip companions seen
// in the user's history.
type SocialMatching struct{}

func (p *SocialMatching) Name() string           { return "social_matching" }
func (p *SocialMatching) Timeout() time.Duration { return 3 * time.Second }

func (p *SocialMatching) Invoke(ctx context.Context, params map[string]any, uc model.UserContext) (capability.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	companions := map[string]int{}
	for _, trip := range uc.TripHistory {
		for _, c := range trip.Companions {
			companions[c]++
		}
	}

	var matches []string
	for name, trips := range companions {
		if trips >= 1 {
			matches = append(matches, name)
		}
	}

	return capability.Result{
		"social_matches": matches,
		"match_basis":    "past_companions",
	}, nil
}

// CarbonScore estimates the trip's footprint from the destination quote
// distance band. Coarse on purpose: it ranks options, it does not audit.
type CarbonScore struct{}

func (p *CarbonScore) Name() string           { return "carbon_score" }
func (p *CarbonScore) Timeout() time.Duration { return 2 * time.Second }

func (p *CarbonScore) Invoke(ctx context.Context, params map[string]any, uc model.UserContext) (capability.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dest := destinationFrom(params, uc)
	kg := quoteFor(dest, 120, 880)
	band := "low"
	switch {
	case kg > 700:
		band = "high"
	case kg > 350:
		band = "medium"
	}

	return capability.Result{
		"carbon": map[string]any{
			"estimate_kg_co2": kg,
			"band":            band,
		},
	}, nil
}

// BackupPlan generates an alternative plan outline in case the primary
// itinerary falls through.
type BackupPlan struct{}

func (p *BackupPlan) Name() string           { return "backup_plan" }
func (p *BackupPlan) Timeout() time.Duration { return 3 * time.Second }

func (p *BackupPlan) Invoke(ctx context.Context, params map[string]any, uc model.UserContext) (capability.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dest := destinationFrom(params, uc)
	return capability.Result{
		"backup": map[string]any{
			"strategy":     "flexible_rebooking",
			"destination":  dest,
			"valid_within": "72h",
		},
	}, nil
}
