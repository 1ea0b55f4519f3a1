package intent

import (
	"time"

	"travel-assistant-core/internal/model"
)

// Sentiment keyword lists for the emotional-weight heuristic.
var (
	positiveSentiment = []string{"great", "love", "excited", "happy", "amazing", "wonderful", "perfect"}
	negativeSentiment = []string{"hate", "terrible", "awful", "angry", "stressed", "worried", "frustrated", "urgent"}
)

// Emotional-state tags that shift the baseline when set on the context.
var (
	positiveStates = map[string]bool{"happy": true, "excited": true, "relaxed": true, "content": true}
	negativeStates = map[string]bool{"stressed": true, "anxious": true, "sad": true, "frustrated": true, "tired": true}
)

const (
	sentimentStep     = 0.1
	explicitTagShift  = 0.2
	maxContextFactors = 5

	recentTripWindow = 90 * 24 * time.Hour
)

// FactorAnalyzer extracts non-intent signals from the context and message.
// Independent of intent scoring, and it never fails: every input has a
// safe default, so it runs even when the generator returns nothing.
type FactorAnalyzer struct {
	cfg Config
	now func() time.Time
}

// NewFactorAnalyzer creates a FactorAnalyzer using the real clock.
func NewFactorAnalyzer(cfg Config) *FactorAnalyzer {
	return &FactorAnalyzer{cfg: cfg, now: time.Now}
}

// Analyze returns an ordered list of at most maxContextFactors factors,
// the emotional-weight scalar and the temporal snapshot.
func (a *FactorAnalyzer) Analyze(uc model.UserContext, text string) ([]ContextFactor, float64, TemporalContext) {
	norm := normalize(text)
	emotional := a.emotionalWeight(uc, norm)
	temporal := TemporalAt(a.now(), a.cfg)

	var factors []ContextFactor

	factors = append(factors, ContextFactor{
		Name:      "emotional_tone",
		Weight:    emotional,
		Influence: toneInfluence(emotional),
		Source:    model.SourceCurrentContext,
	})

	factors = append(factors, urgencyFactor(temporal.Urgency))

	if f, ok := recentTravelFactor(uc, a.now()); ok {
		factors = append(factors, f)
	}
	if f, ok := satisfactionFactor(uc); ok {
		factors = append(factors, f)
	}

	factors = append(factors, ContextFactor{
		Name:      "season_" + string(temporal.Season),
		Weight:    0.3,
		Influence: model.InfluenceNeutral,
		Source:    model.SourceExternalData,
	})

	if len(factors) > maxContextFactors {
		factors = factors[:maxContextFactors]
	}
	return factors, emotional, temporal
}

func (a *FactorAnalyzer) emotionalWeight(uc model.UserContext, norm string) float64 {
	w := 0.5
	for _, kw := range positiveSentiment {
		if containsWord(norm, kw) {
			w += sentimentStep
		}
	}
	for _, kw := range negativeSentiment {
		if containsWord(norm, kw) {
			w -= sentimentStep
		}
	}
	switch {
	case positiveStates[uc.EmotionalState]:
		w += explicitTagShift
	case negativeStates[uc.EmotionalState]:
		w -= explicitTagShift
	}
	return clamp01(w)
}

func toneInfluence(emotional float64) model.Influence {
	switch {
	case emotional > 0.6:
		return model.InfluencePositive
	case emotional < 0.4:
		return model.InfluenceNegative
	default:
		return model.InfluenceNeutral
	}
}

func urgencyFactor(tier model.UrgencyTier) ContextFactor {
	f := ContextFactor{Name: "urgency", Source: model.SourceCurrentContext}
	switch tier {
	case model.UrgencyHigh:
		f.Weight, f.Influence = 0.9, model.InfluenceNegative
	case model.UrgencyMedium:
		f.Weight, f.Influence = 0.6, model.InfluenceNeutral
	default:
		f.Weight, f.Influence = 0.3, model.InfluenceNeutral
	}
	return f
}

// recentTravelFactor surfaces a positive signal when the user completed a
// trip inside the recency window.
func recentTravelFactor(uc model.UserContext, now time.Time) (ContextFactor, bool) {
	var latest time.Time
	for _, trip := range uc.TripHistory {
		if trip.CompletedAt.After(latest) {
			latest = trip.CompletedAt
		}
	}
	if latest.IsZero() || now.Sub(latest) > recentTripWindow {
		return ContextFactor{}, false
	}
	// Weight decays linearly across the window.
	age := now.Sub(latest)
	w := 1 - age.Seconds()/recentTripWindow.Seconds()
	return ContextFactor{
		Name:      "recent_travel",
		Weight:    clamp01(w),
		Influence: model.InfluencePositive,
		Source:    model.SourceUserHistory,
	}, true
}

// satisfactionFactor reflects the running satisfaction average of past trips.
func satisfactionFactor(uc model.UserContext) (ContextFactor, bool) {
	if len(uc.TripHistory) == 0 {
		return ContextFactor{}, false
	}
	sum := 0.0
	for _, trip := range uc.TripHistory {
		sum += trip.Satisfaction
	}
	avg := sum / float64(len(uc.TripHistory))
	influence := model.InfluencePositive
	if avg < 0.5 {
		influence = model.InfluenceNegative
	}
	return ContextFactor{
		Name:      "trip_satisfaction",
		Weight:    clamp01(avg),
		Influence: influence,
		Source:    model.SourceUserHistory,
	}, true
}
