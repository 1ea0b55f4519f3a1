package model

import "time"

// UserContext is the per-user mutable record the orchestrator owns.
// Components receive it read-only for the duration of one request and
// return derived updates through result values; they never mutate it.
type UserContext struct {
	UserID         string            `json:"user_id"`
	SessionID      string            `json:"session_id"`
	Preferences    map[string]string `json:"preferences"`
	TripHistory    []TripSummary     `json:"trip_history"`
	EmotionalState string            `json:"emotional_state,omitempty"`
	DominantIntent string            `json:"dominant_intent,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// TripSummary is one completed trip in a user's history.
type TripSummary struct {
	Destination  string    `json:"destination"`
	Companions   []string  `json:"companions,omitempty"`
	Satisfaction float64   `json:"satisfaction"` // 0..1
	CompletedAt  time.Time `json:"completed_at"`
}

// NewUserContext returns a default-initialized context for first contact.
func NewUserContext(userID, sessionID string) UserContext {
	now := time.Now()
	return UserContext{
		UserID:      userID,
		SessionID:   sessionID,
		Preferences: make(map[string]string),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Clone returns a deep copy so a request can work on a snapshot while the
// stored record stays untouched until Save.
func (c UserContext) Clone() UserContext {
	out := c
	out.Preferences = make(map[string]string, len(c.Preferences))
	for k, v := range c.Preferences {
		out.Preferences[k] = v
	}
	out.TripHistory = make([]TripSummary, len(c.TripHistory))
	copy(out.TripHistory, c.TripHistory)
	return out
}
