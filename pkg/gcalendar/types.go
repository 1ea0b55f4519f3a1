package gcalendar

import "time"

// AvailabilityRequest is the input for a free/busy window query.
type AvailabilityRequest struct {
	CalendarID string
	TimeMin    time.Time
	TimeMax    time.Time
	Timezone   string // e.g. "Asia/Tokyo"
}

// BusyWindow is one busy interval on the user's calendar.
type BusyWindow struct {
	Start time.Time
	End   time.Time
}

// Availability summarizes free/busy state for the queried window.
type Availability struct {
	CalendarID string
	Busy       []BusyWindow
	// Free is true when the whole queried window has no busy intervals.
	Free bool
}
