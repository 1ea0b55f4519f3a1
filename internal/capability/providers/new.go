package providers

import (
	"travel-assistant-core/internal/capability"
	"travel-assistant-core/pkg/gcalendar"
	"travel-assistant-core/pkg/weather"
)

// Config carries the external clients the built-in providers need.
// Nil clients skip the providers that depend on them; the orchestrator
// records such steps as failed-absent rather than erroring.
type Config struct {
	Weather    weather.IWeather
	Calendar   gcalendar.ICalendar
	CalendarID string
	Timezone   string
}

// NewDefaultRegistry builds a registry with every built-in provider that
// has its dependencies available.
func NewDefaultRegistry(cfg Config) *capability.Registry {
	r := capability.NewRegistry()

	r.Register(&FlightBooking{})
	r.Register(&HotelBooking{})
	r.Register(&Recommendation{})
	r.Register(&EmotionalAdaptation{})
	r.Register(&SocialMatching{})
	r.Register(&CarbonScore{})
	r.Register(&BackupPlan{})
	r.Register(&ClarifyIntent{})
	r.Register(&ExpediteHandling{})

	if cfg.Weather != nil {
		r.Register(NewWeatherLookup(cfg.Weather))
	}
	if cfg.Calendar != nil {
		r.Register(NewCalendarAvailability(cfg.Calendar, cfg.CalendarID, cfg.Timezone))
	}

	return r
}
