package intent

import (
	"time"

	"travel-assistant-core/internal/model"
)

// Candidate is one weighted interpretation of the user's message.
// Weight is probability-like, Phase is the interference key in [0,2π),
// Coherence reflects how strongly the user's own history supports the label.
type Candidate struct {
	Label     string  `json:"label"`
	Weight    float64 `json:"weight"`
	Phase     float64 `json:"phase"`
	Coherence float64 `json:"coherence"`
}

// ContextFactor is a non-intent signal used to bias workflow synthesis
// and recorded for the learner.
type ContextFactor struct {
	Name      string             `json:"name"`
	Weight    float64            `json:"weight"`
	Influence model.Influence    `json:"influence"`
	Source    model.FactorSource `json:"source"`
}

// TemporalContext is a snapshot of wall-clock signals at request time.
type TemporalContext struct {
	Hour    int               `json:"hour"`
	Weekday time.Weekday      `json:"weekday"`
	Season  model.Season      `json:"season"`
	Urgency model.UrgencyTier `json:"urgency"`
}

// AnalysisResult is the immutable output of one analysis pass.
type AnalysisResult struct {
	Primary         string          `json:"primary"`
	Confidence      float64         `json:"confidence"`
	Secondary       []string        `json:"secondary,omitempty"`
	Candidates      []Candidate     `json:"candidates,omitempty"`
	Factors         []ContextFactor `json:"factors,omitempty"`
	EmotionalWeight float64         `json:"emotional_weight"`
	Temporal        TemporalContext `json:"temporal"`
}

// Config holds the tunables of the analysis pipeline.
type Config struct {
	WeightFloor             float64
	MaxCandidates           int
	InterferenceSensitivity float64
	DecoherenceThreshold    float64
	SecondaryWeightMin      float64
	LateNightStart          int // hour, inclusive
	LateNightEnd            int // hour, exclusive
}

// DefaultConfig returns the documented defaults for the pipeline.
func DefaultConfig() Config {
	return Config{
		WeightFloor:             0.1,
		MaxCandidates:           10,
		InterferenceSensitivity: 0.1,
		DecoherenceThreshold:    0.6,
		SecondaryWeightMin:      0.3,
		LateNightStart:          22,
		LateNightEnd:            6,
	}
}
