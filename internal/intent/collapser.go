package intent

import (
	"sort"

	"travel-assistant-core/internal/catalog"
)

// Collapsed is the selection produced from a resolved candidate set.
type Collapsed struct {
	Primary    string
	Confidence float64
	Secondary  []string
}

// maxSecondary caps the secondary interpretation list.
const maxSecondary = 3

// Collapse picks the primary interpretation and up to maxSecondary
// secondaries from resolved candidates. Pure function: same input, same
// output, no side effects. An empty set collapses to the unknown sentinel
// with zero confidence.
func Collapse(candidates []Candidate, secondaryWeightMin float64) Collapsed {
	if len(candidates) == 0 {
		return Collapsed{Primary: catalog.LabelUnknown, Confidence: 0}
	}

	primary := candidates[0]
	for _, c := range candidates[1:] {
		if c.Weight > primary.Weight ||
			(c.Weight == primary.Weight && c.Label < primary.Label) {
			primary = c
		}
	}

	var rest []Candidate
	for _, c := range candidates {
		if c.Label == primary.Label {
			continue
		}
		if c.Weight > secondaryWeightMin {
			rest = append(rest, c)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool {
		if rest[i].Weight != rest[j].Weight {
			return rest[i].Weight > rest[j].Weight
		}
		return rest[i].Label < rest[j].Label
	})
	if len(rest) > maxSecondary {
		rest = rest[:maxSecondary]
	}

	secondary := make([]string, 0, len(rest))
	for _, c := range rest {
		secondary = append(secondary, c.Label)
	}

	return Collapsed{
		Primary:    primary.Label,
		Confidence: clamp01(primary.Weight * primary.Coherence),
		Secondary:  secondary,
	}
}
