package intent

import (
	"math"
	"testing"
	"time"

	"travel-assistant-core/internal/model"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func analyzerAt(t *testing.T, at time.Time) *FactorAnalyzer {
	t.Helper()
	a := NewFactorAnalyzer(DefaultConfig())
	a.now = func() time.Time { return at }
	return a
}

func TestFactorAnalyzer_Analyze(t *testing.T) {
	tuesdayNoon := time.Date(2026, time.June, 2, 12, 0, 0, 0, time.UTC)

	t.Run("neutral baseline", func(t *testing.T) {
		a := analyzerAt(t, tuesdayNoon)
		uc := model.NewUserContext("u1", "s1")
		factors, emotional, temporal := a.Analyze(uc, "book me a flight")

		if emotional != 0.5 {
			t.Errorf("expected baseline 0.5, got %v", emotional)
		}
		if len(factors) == 0 || len(factors) > 5 {
			t.Errorf("expected 1..5 factors, got %d", len(factors))
		}
		if temporal.Urgency != model.UrgencyLow {
			t.Errorf("expected low urgency on weekday noon, got %s", temporal.Urgency)
		}
		if temporal.Season != model.SeasonSummer {
			t.Errorf("expected summer for June, got %s", temporal.Season)
		}
	})

	t.Run("sentiment keywords shift emotional weight", func(t *testing.T) {
		a := analyzerAt(t, tuesdayNoon)
		uc := model.NewUserContext("u2", "s2")

		_, pos, _ := a.Analyze(uc, "this trip sounds amazing and I am excited")
		if !approx(pos, 0.7) {
			t.Errorf("expected 0.7 for two positive keywords, got %v", pos)
		}

		_, neg, _ := a.Analyze(uc, "I am stressed and worried about this")
		if !approx(neg, 0.3) {
			t.Errorf("expected 0.3 for two negative keywords, got %v", neg)
		}
	})

	t.Run("explicit emotional state shifts further and clamps", func(t *testing.T) {
		a := analyzerAt(t, tuesdayNoon)
		uc := model.NewUserContext("u3", "s3")
		uc.EmotionalState = "anxious"

		_, w, _ := a.Analyze(uc, "terrible awful frustrated urgent worried")
		if w != 0 {
			t.Errorf("expected clamp to 0, got %v", w)
		}
	})

	t.Run("urgency tiers first rule wins", func(t *testing.T) {
		// Saturday 23:00 is both late night and weekend; late night wins.
		lateWeekend := time.Date(2026, time.June, 6, 23, 0, 0, 0, time.UTC)
		a := analyzerAt(t, lateWeekend)
		_, _, temporal := a.Analyze(model.NewUserContext("u4", "s4"), "hi")
		if temporal.Urgency != model.UrgencyHigh {
			t.Errorf("expected high urgency late night, got %s", temporal.Urgency)
		}

		saturdayNoon := time.Date(2026, time.June, 6, 12, 0, 0, 0, time.UTC)
		a = analyzerAt(t, saturdayNoon)
		_, _, temporal = a.Analyze(model.NewUserContext("u4", "s4"), "hi")
		if temporal.Urgency != model.UrgencyMedium {
			t.Errorf("expected medium urgency on weekend, got %s", temporal.Urgency)
		}
	})

	t.Run("history factors surface", func(t *testing.T) {
		a := analyzerAt(t, tuesdayNoon)
		uc := model.NewUserContext("u5", "s5")
		uc.TripHistory = []model.TripSummary{
			{Destination: "Lisbon", Satisfaction: 0.9, CompletedAt: tuesdayNoon.AddDate(0, -1, 0)},
			{Destination: "Oslo", Satisfaction: 0.7, CompletedAt: tuesdayNoon.AddDate(0, -3, 0)},
		}

		factors, _, _ := a.Analyze(uc, "where next")
		names := map[string]ContextFactor{}
		for _, f := range factors {
			names[f.Name] = f
		}
		if f, ok := names["recent_travel"]; !ok {
			t.Error("expected recent_travel factor")
		} else if f.Influence != model.InfluencePositive || f.Source != model.SourceUserHistory {
			t.Errorf("unexpected recent_travel shape: %+v", f)
		}
		if f, ok := names["trip_satisfaction"]; !ok {
			t.Error("expected trip_satisfaction factor")
		} else if !approx(f.Weight, 0.8) {
			t.Errorf("expected average satisfaction 0.8, got %v", f.Weight)
		}
	})

	t.Run("never fails on empty everything", func(t *testing.T) {
		a := analyzerAt(t, tuesdayNoon)
		factors, emotional, _ := a.Analyze(model.UserContext{}, "")
		if len(factors) == 0 {
			t.Error("expected at least the tone factor")
		}
		if emotional != 0.5 {
			t.Errorf("expected neutral default, got %v", emotional)
		}
	})
}
