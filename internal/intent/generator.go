package intent

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"sort"
	"strings"

	"travel-assistant-core/internal/catalog"
	"travel-assistant-core/internal/model"
	pkgLog "travel-assistant-core/pkg/log"
)

// Per-term scoring increments.
const (
	keywordMatchWeight = 0.2
	preferenceBonus    = 0.3
	historyBonus       = 0.2
)

// Generator scores the catalog against input text and user context,
// producing weighted candidates. It holds no per-request state.
type Generator struct {
	catalog *catalog.Catalog
	cfg     Config
	l       pkgLog.Logger
}

// NewGenerator creates a Generator over the given catalog.
func NewGenerator(cat *catalog.Catalog, cfg Config, l pkgLog.Logger) *Generator {
	return &Generator{catalog: cat, cfg: cfg, l: l}
}

// Generate returns candidates for every catalog label whose weight exceeds
// the configured floor, highest weight first, capped at MaxCandidates.
// Empty input is fine: weights then derive only from context bonuses. With
// no matches at all the result may be empty; the collapser handles that.
func (g *Generator) Generate(ctx context.Context, text string, uc model.UserContext) []Candidate {
	norm := normalize(text)
	snapshot := contextSnapshot(uc)

	var out []Candidate
	for _, entry := range g.catalog.Entries() {
		w := keywordScore(entry, norm)
		if preferenceMatches(entry, uc) {
			w += preferenceBonus
		}
		if historyMatches(entry, uc) {
			w += historyBonus
		}
		w = clamp01(w)
		if w <= g.cfg.WeightFloor {
			continue
		}

		out = append(out, Candidate{
			Label:     entry.Label,
			Weight:    w,
			Phase:     phaseFor(snapshot, entry.Label),
			Coherence: coherenceFor(entry, uc),
		})
	}

	// Stable order: weight desc, label asc on ties, so the pipeline is
	// deterministic for an unchanged context snapshot.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		return out[i].Label < out[j].Label
	})

	if g.cfg.MaxCandidates > 0 && len(out) > g.cfg.MaxCandidates {
		out = out[:g.cfg.MaxCandidates]
	}

	g.l.Debugf(ctx, "generator: %d candidate(s) for user %s", len(out), uc.UserID)
	return out
}

// keywordScore scales keywordMatchWeight per keyword found, capped at 1.
func keywordScore(entry catalog.Entry, norm string) float64 {
	if norm == "" {
		return 0
	}
	matches := 0
	for _, kw := range entry.Keywords {
		if containsWord(norm, kw) {
			matches++
		}
	}
	return math.Min(1, float64(matches)*keywordMatchWeight)
}

// preferenceMatches reports whether any preference value textually relates
// to the label or its keyword set.
func preferenceMatches(entry catalog.Entry, uc model.UserContext) bool {
	for _, v := range uc.Preferences {
		if relatesToEntry(entry, normalize(v)) {
			return true
		}
	}
	return false
}

// historyMatches reports whether any past trip relates to the label.
func historyMatches(entry catalog.Entry, uc model.UserContext) bool {
	for _, trip := range uc.TripHistory {
		if relatesToEntry(entry, normalize(trip.Destination)) {
			return true
		}
	}
	return false
}

func relatesToEntry(entry catalog.Entry, norm string) bool {
	if norm == "" {
		return false
	}
	for _, kw := range entry.Keywords {
		if containsWord(norm, kw) {
			return true
		}
	}
	// Label tokens themselves count ("book_flight" relates to "flight"),
	// as do tokens of declared related labels.
	labels := append([]string{entry.Label}, entry.Related...)
	for _, label := range labels {
		for _, tok := range strings.Split(label, "_") {
			if containsWord(norm, tok) {
				return true
			}
		}
	}
	return false
}

// coherenceFor rescales the fraction of history entries relevant to the
// label into [0.5,1]; 0.5 with no history.
func coherenceFor(entry catalog.Entry, uc model.UserContext) float64 {
	if len(uc.TripHistory) == 0 {
		return 0.5
	}
	relevant := 0
	for _, trip := range uc.TripHistory {
		if relatesToEntry(entry, normalize(trip.Destination)) {
			relevant++
		}
	}
	frac := float64(relevant) / float64(len(uc.TripHistory))
	return 0.5 + frac*0.5
}

// contextSnapshot serializes the parts of the context that key the phase.
// Deterministic: preferences are emitted in sorted key order.
func contextSnapshot(uc model.UserContext) string {
	var b strings.Builder
	b.WriteString(uc.UserID)
	b.WriteByte('|')
	b.WriteString(uc.SessionID)

	keys := make([]string, 0, len(uc.Preferences))
	for k := range uc.Preferences {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "|%s=%s", k, uc.Preferences[k])
	}
	for _, trip := range uc.TripHistory {
		b.WriteByte('|')
		b.WriteString(trip.Destination)
	}
	return b.String()
}

// phaseFor maps a hash of (context snapshot, label) into [0, 2π). The same
// user and label therefore always interfere the same way within a session,
// while distinct users get distinct alignments.
func phaseFor(snapshot, label string) float64 {
	h := fnv.New64a()
	h.Write([]byte(snapshot))
	h.Write([]byte{0})
	h.Write([]byte(label))
	return phaseFromHash(h.Sum64())
}

// phaseFromHash scales a hash onto [0, 2π). Hashes near MaxUint64 round up
// to exactly 2π in float64, so those wrap back to 0.
func phaseFromHash(sum uint64) float64 {
	phase := float64(sum) / float64(math.MaxUint64) * 2 * math.Pi
	return math.Mod(phase, 2*math.Pi)
}
