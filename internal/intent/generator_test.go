package intent

import (
	"context"
	"math"
	"testing"
	"time"

	"travel-assistant-core/internal/catalog"
	"travel-assistant-core/internal/model"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, args ...any)  {}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(&mockLogger{})
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}
	return cat
}

func TestGenerator_Generate(t *testing.T) {
	ctx := context.Background()
	cat := testCatalog(t)
	gen := NewGenerator(cat, DefaultConfig(), &mockLogger{})

	t.Run("tokyo flight example", func(t *testing.T) {
		uc := model.NewUserContext("user-1", "sess-1")
		cands := gen.Generate(ctx, "I want to fly to Tokyo in December on a budget", uc)

		got := map[string]float64{}
		for _, c := range cands {
			got[c.Label] = c.Weight
		}
		if w := got["book_flight"]; w <= 0.1 {
			t.Errorf("expected book_flight weight > 0.1, got %v", w)
		}
		if w := got["plan_trip"]; w <= 0.1 {
			t.Errorf("expected plan_trip weight > 0.1, got %v", w)
		}
	})

	t.Run("weights stay in bounds and count is capped", func(t *testing.T) {
		uc := model.NewUserContext("user-2", "sess-2")
		uc.Preferences["style"] = "budget hotel eco travel flight weather"
		uc.TripHistory = append(uc.TripHistory, model.TripSummary{
			Destination: "beach resort flight hub",
			CompletedAt: time.Now().AddDate(0, -1, 0),
		})

		text := "fly flight hotel stay trip travel weather rain recommend suggest carbon backup alternative stressed group"
		cands := gen.Generate(ctx, text, uc)

		if len(cands) > DefaultConfig().MaxCandidates {
			t.Errorf("expected at most %d candidates, got %d", DefaultConfig().MaxCandidates, len(cands))
		}
		for _, c := range cands {
			if c.Weight < 0 || c.Weight > 1 {
				t.Errorf("candidate %s weight %v out of [0,1]", c.Label, c.Weight)
			}
			if c.Coherence < 0 || c.Coherence > 1 {
				t.Errorf("candidate %s coherence %v out of [0,1]", c.Label, c.Coherence)
			}
			if c.Phase < 0 || c.Phase >= 2*3.14159266 {
				t.Errorf("candidate %s phase %v out of [0,2pi)", c.Label, c.Phase)
			}
		}
	})

	t.Run("candidates sorted by weight descending", func(t *testing.T) {
		uc := model.NewUserContext("user-3", "sess-3")
		cands := gen.Generate(ctx, "flight plane ticket and maybe some weather", uc)
		for i := 1; i < len(cands); i++ {
			if cands[i].Weight > cands[i-1].Weight {
				t.Errorf("candidates not sorted: %v before %v", cands[i-1].Weight, cands[i].Weight)
			}
		}
	})

	t.Run("empty input uses context bonuses only", func(t *testing.T) {
		uc := model.NewUserContext("user-4", "sess-4")
		uc.Preferences["transport"] = "always by plane"
		cands := gen.Generate(ctx, "", uc)

		found := false
		for _, c := range cands {
			if c.Label == "book_flight" {
				found = true
				if c.Weight != 0.3 {
					t.Errorf("expected pure preference bonus 0.3, got %v", c.Weight)
				}
			}
		}
		if !found {
			t.Error("expected book_flight candidate from preference bonus")
		}
	})

	t.Run("garbled input with no history yields no candidates", func(t *testing.T) {
		uc := model.NewUserContext("user-5", "sess-5")
		cands := gen.Generate(ctx, "xyzzy qwfp glrm", uc)
		if len(cands) != 0 {
			t.Errorf("expected zero candidates, got %d", len(cands))
		}
	})

	t.Run("phase is stable per user and differs across users", func(t *testing.T) {
		ucA := model.NewUserContext("user-a", "sess-a")
		ucB := model.NewUserContext("user-b", "sess-b")

		first := gen.Generate(ctx, "book a flight", ucA)
		second := gen.Generate(ctx, "book a flight", ucA)
		other := gen.Generate(ctx, "book a flight", ucB)

		if len(first) == 0 || len(second) == 0 || len(other) == 0 {
			t.Fatal("expected candidates for all generations")
		}
		if first[0].Phase != second[0].Phase {
			t.Errorf("phase not stable for same user: %v vs %v", first[0].Phase, second[0].Phase)
		}
		if first[0].Phase == other[0].Phase {
			t.Errorf("expected differing phases across users, both %v", first[0].Phase)
		}
	})

	t.Run("coherence defaults to 0.5 with no history", func(t *testing.T) {
		uc := model.NewUserContext("user-6", "sess-6")
		cands := gen.Generate(ctx, "need a flight", uc)
		if len(cands) == 0 {
			t.Fatal("expected candidates")
		}
		if cands[0].Coherence != 0.5 {
			t.Errorf("expected coherence 0.5, got %v", cands[0].Coherence)
		}
	})
}

func TestGenerator_RelatedLabels(t *testing.T) {
	ctx := context.Background()
	cat, err := catalog.NewFromEntries([]catalog.Entry{
		{
			Label:    "book_cruise",
			Keywords: []string{"cruise", "ship"},
			Related:  []string{"island_hopping"},
			Steps:    []catalog.StepTemplate{{Capability: "cruise_booking"}},
		},
	}, &mockLogger{})
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}
	gen := NewGenerator(cat, DefaultConfig(), &mockLogger{})

	// The preference mentions no cruise keyword but hits a token of the
	// declared related label.
	uc := model.NewUserContext("user-8", "sess-8")
	uc.Preferences["style"] = "island getaways"

	cands := gen.Generate(ctx, "", uc)
	if len(cands) != 1 {
		t.Fatalf("expected one candidate, got %d", len(cands))
	}
	if cands[0].Label != "book_cruise" || cands[0].Weight != 0.3 {
		t.Errorf("expected book_cruise with preference bonus 0.3, got %s %v", cands[0].Label, cands[0].Weight)
	}
}

func TestPhaseFromHash_Range(t *testing.T) {
	cases := []uint64{0, 1, math.MaxUint64 / 2, math.MaxUint64 - 1024, math.MaxUint64}
	for _, sum := range cases {
		got := phaseFromHash(sum)
		if got < 0 || got >= 2*math.Pi {
			t.Errorf("phaseFromHash(%d) = %v, want in [0, 2π)", sum, got)
		}
	}
	if got := phaseFromHash(0); got != 0 {
		t.Errorf("phaseFromHash(0) = %v, want 0", got)
	}
}

func TestPipeline_Idempotence(t *testing.T) {
	ctx := context.Background()
	cat := testCatalog(t)
	cfg := DefaultConfig()
	gen := NewGenerator(cat, cfg, &mockLogger{})
	res := NewResolver(cfg)

	uc := model.NewUserContext("user-7", "sess-7")
	uc.Preferences["style"] = "eco travel"
	uc.TripHistory = append(uc.TripHistory, model.TripSummary{
		Destination: "Kyoto", Satisfaction: 0.9, CompletedAt: time.Now().AddDate(0, -2, 0),
	})

	text := "plan a sustainable trip with flights and hotels"

	runOnce := func() Collapsed {
		return Collapse(res.Resolve(gen.Generate(ctx, text, uc)), cfg.SecondaryWeightMin)
	}

	first := runOnce()
	second := runOnce()

	if first.Primary != second.Primary || first.Confidence != second.Confidence {
		t.Errorf("pipeline not idempotent: %+v vs %+v", first, second)
	}
	if len(first.Secondary) != len(second.Secondary) {
		t.Fatalf("secondary lists differ: %v vs %v", first.Secondary, second.Secondary)
	}
	for i := range first.Secondary {
		if first.Secondary[i] != second.Secondary[i] {
			t.Errorf("secondary lists differ at %d: %v vs %v", i, first.Secondary, second.Secondary)
		}
	}
}
