package providers

import (
	"context"
	"time"

	"travel-assistant-core/internal/capability"
	"travel-assistant-core/internal/model"
	"travel-assistant-core/pkg/gcalendar"
)

// CalendarAvailability checks the user's calendar for conflicts in the
// upcoming travel window.
type CalendarAvailability struct {
	client     gcalendar.ICalendar
	calendarID string
	timezone   string
}

// NewCalendarAvailability creates the provider over a calendar client.
func NewCalendarAvailability(client gcalendar.ICalendar, calendarID, timezone string) *CalendarAvailability {
	return &CalendarAvailability{client: client, calendarID: calendarID, timezone: timezone}
}

func (p *CalendarAvailability) Name() string           { return "calendar_availability" }
func (p *CalendarAvailability) Timeout() time.Duration { return 5 * time.Second }

func (p *CalendarAvailability) Invoke(ctx context.Context, params map[string]any, uc model.UserContext) (capability.Result, error) {
	now := time.Now()
	avail, err := p.client.CheckAvailability(ctx, gcalendar.AvailabilityRequest{
		CalendarID: p.calendarID,
		TimeMin:    now,
		TimeMax:    now.AddDate(0, 0, 14),
		Timezone:   p.timezone,
	})
	if err != nil {
		return nil, err
	}

	return capability.Result{
		"calendar": map[string]any{
			"free":           avail.Free,
			"busy_windows":   len(avail.Busy),
			"window_checked": "14d",
		},
	}, nil
}
