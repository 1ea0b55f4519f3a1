package intent

import "math"

// decoherenceDamping halves weight and coherence of weakly supported
// candidates after interference is applied.
const decoherenceDamping = 0.5

// Resolver adjusts candidate weights by pairwise interference and applies
// decoherence damping. It never introduces new labels.
type Resolver struct {
	cfg Config
}

// NewResolver creates a Resolver.
func NewResolver(cfg Config) *Resolver {
	return &Resolver{cfg: cfg}
}

// Resolve returns the adjusted candidate set. For each candidate i the
// interference term w_i*w_j*cos(phase_i-phase_j)*sensitivity is summed over
// all other candidates j and added to the weight; aligned phases reinforce,
// opposed phases suppress. Candidates whose adjusted weight clamps to zero
// are dropped, so the output is the same size or smaller.
func (r *Resolver) Resolve(candidates []Candidate) []Candidate {
	if len(candidates) == 0 {
		return nil
	}

	out := make([]Candidate, 0, len(candidates))
	for i, c := range candidates {
		interference := 0.0
		for j, other := range candidates {
			if i == j {
				continue
			}
			interference += c.Weight * other.Weight *
				math.Cos(c.Phase-other.Phase) * r.cfg.InterferenceSensitivity
		}

		weight := c.Weight + interference
		coherence := c.Coherence
		if c.Coherence < r.cfg.DecoherenceThreshold {
			weight *= decoherenceDamping
			coherence *= decoherenceDamping
		}

		weight = clamp01(weight)
		if weight == 0 {
			continue
		}
		out = append(out, Candidate{
			Label:     c.Label,
			Weight:    weight,
			Phase:     c.Phase,
			Coherence: clamp01(coherence),
		})
	}
	return out
}
