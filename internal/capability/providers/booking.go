package providers

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"

	"travel-assistant-core/internal/capability"
	"travel-assistant-core/internal/model"
)

// quoteFor derives a stable base price from the destination so repeated
// quotes for the same trip agree with each other.
func quoteFor(destination string, base, spread int) int {
	h := fnv.New32a()
	h.Write([]byte(destination))
	return base + int(h.Sum32()%uint32(spread))
}

func destinationFrom(params map[string]any, uc model.UserContext) string {
	if d, ok := params["destination"].(string); ok && d != "" {
		return d
	}
	if d, ok := uc.Preferences["destination"]; ok && d != "" {
		return d
	}
	return "unspecified"
}

// FlightBooking produces a flight quote and a held reservation reference.
type FlightBooking struct{}

func (p *FlightBooking) Name() string           { return "flight_booking" }
func (p *FlightBooking) Timeout() time.Duration { return 5 * time.Second }

func (p *FlightBooking) Invoke(ctx context.Context, params map[string]any, uc model.UserContext) (capability.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dest := destinationFrom(params, uc)
	return capability.Result{
		"flight_quote": map[string]any{
			"destination": dest,
			"price_usd":   quoteFor(dest, 180, 900),
			"hold_ref":    fmt.Sprintf("FL-%s", uuid.NewString()[:8]),
		},
	}, nil
}

// HotelBooking produces a hotel quote for the destination.
type HotelBooking struct{}

func (p *HotelBooking) Name() string           { return "hotel_booking" }
func (p *HotelBooking) Timeout() time.Duration { return 5 * time.Second }

func (p *HotelBooking) Invoke(ctx context.Context, params map[string]any, uc model.UserContext) (capability.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dest := destinationFrom(params, uc)
	return capability.Result{
		"hotel_quote": map[string]any{
			"destination":     dest,
			"nightly_usd":     quoteFor(dest, 60, 240),
			"reservation_ref": fmt.Sprintf("HT-%s", uuid.NewString()[:8]),
		},
	}, nil
}
