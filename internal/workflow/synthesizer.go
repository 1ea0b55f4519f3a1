package workflow

import (
	"context"
	"time"

	"github.com/google/uuid"

	"travel-assistant-core/internal/catalog"
	"travel-assistant-core/internal/intent"
	"travel-assistant-core/internal/model"
	pkgLog "travel-assistant-core/pkg/log"
)

// Synthesizer maps a collapsed analysis result onto a capability plan via
// the catalog's step templates. Synthesis cannot fail: an unknown primary
// yields the single clarify-intent fallback step.
type Synthesizer struct {
	catalog *catalog.Catalog
	cfg     Config
	l       pkgLog.Logger
}

// NewSynthesizer creates a Synthesizer over the given catalog.
func NewSynthesizer(cat *catalog.Catalog, cfg Config, l pkgLog.Logger) *Synthesizer {
	return &Synthesizer{catalog: cat, cfg: cfg, l: l}
}

// Synthesize builds the workflow for one analysis result. It never calls
// capability providers and always returns at least one step.
func (s *Synthesizer) Synthesize(ctx context.Context, result intent.AnalysisResult, uc model.UserContext) Workflow {
	wf := Workflow{ID: uuid.NewString(), CreatedAt: time.Now()}

	if result.Primary == catalog.LabelUnknown {
		wf.Steps = []Step{{
			ID:         catalog.CapabilityClarifyIntent,
			Capability: catalog.CapabilityClarifyIntent,
			Parameters: baseParameters(result, uc),
		}}
		return wf
	}

	if mitigation, needed := s.mitigationStep(result, uc); needed {
		wf.Steps = append(wf.Steps, mitigation)
	}

	seen := map[string]bool{catalog.CapabilityExpedite: true}
	var dependent []Step

	labels := append([]string{result.Primary}, result.Secondary...)
	for _, label := range labels {
		entry, ok := s.catalog.Get(label)
		if !ok {
			s.l.Warnf(ctx, "synthesizer: label %s missing from catalog, skipping", label)
			continue
		}
		for _, tmpl := range entry.Steps {
			if seen[tmpl.Capability] {
				continue
			}
			seen[tmpl.Capability] = true

			step := Step{
				ID:         tmpl.Capability,
				Capability: tmpl.Capability,
				Parameters: stepParameters(label, result, uc),
				DependsOn:  append([]string(nil), tmpl.DependsOn...),
				Parallel:   len(tmpl.DependsOn) == 0,
			}
			if len(step.DependsOn) > 0 {
				dependent = append(dependent, step)
				continue
			}
			wf.Steps = append(wf.Steps, step)
		}
	}

	// Dependent steps go last so their inputs exist by the time they run.
	wf.Steps = append(wf.Steps, dependent...)

	s.l.Debugf(ctx, "synthesizer: workflow %s with %d step(s) for intent %s", wf.ID, len(wf.Steps), result.Primary)
	return wf
}

// mitigationStep inserts an expedited-handling step when a negative context
// factor crosses the threshold.
func (s *Synthesizer) mitigationStep(result intent.AnalysisResult, uc model.UserContext) (Step, bool) {
	for _, f := range result.Factors {
		if f.Influence != model.InfluenceNegative || f.Weight <= s.cfg.MitigationThreshold {
			continue
		}
		params := baseParameters(result, uc)
		params["trigger_factor"] = f.Name
		params["factor_weight"] = f.Weight
		return Step{
			ID:         catalog.CapabilityExpedite,
			Capability: catalog.CapabilityExpedite,
			Parameters: params,
		}, true
	}
	return Step{}, false
}

func baseParameters(result intent.AnalysisResult, uc model.UserContext) map[string]any {
	params := map[string]any{
		"user_id":          uc.UserID,
		"session_id":       uc.SessionID,
		"confidence":       result.Confidence,
		"emotional_weight": result.EmotionalWeight,
		"urgency":          string(result.Temporal.Urgency),
		"season":           string(result.Temporal.Season),
	}
	if dest, ok := uc.Preferences["destination"]; ok {
		params["destination"] = dest
	}
	return params
}

func stepParameters(label string, result intent.AnalysisResult, uc model.UserContext) map[string]any {
	params := baseParameters(result, uc)
	params["intent"] = label
	return params
}
