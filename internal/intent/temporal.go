package intent

import (
	"time"

	"travel-assistant-core/internal/model"
)

// TemporalAt buckets wall-clock time into the temporal context snapshot.
// Urgency rules are checked in order, first match wins: late-night hours
// are high, weekends medium, everything else low.
func TemporalAt(now time.Time, cfg Config) TemporalContext {
	hour := now.Hour()
	weekday := now.Weekday()

	urgency := model.UrgencyLow
	switch {
	case hour >= cfg.LateNightStart || hour < cfg.LateNightEnd:
		urgency = model.UrgencyHigh
	case weekday == time.Saturday || weekday == time.Sunday:
		urgency = model.UrgencyMedium
	}

	return TemporalContext{
		Hour:    hour,
		Weekday: weekday,
		Season:  seasonOf(now.Month()),
		Urgency: urgency,
	}
}

func seasonOf(m time.Month) model.Season {
	switch m {
	case time.March, time.April, time.May:
		return model.SeasonSpring
	case time.June, time.July, time.August:
		return model.SeasonSummer
	case time.September, time.October, time.November:
		return model.SeasonAutumn
	default:
		return model.SeasonWinter
	}
}
