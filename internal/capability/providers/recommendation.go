package providers

import (
	"context"
	"strings"
	"time"

	"travel-assistant-core/internal/capability"
	"travel-assistant-core/internal/model"
	"travel-assistant-core/pkg/response"
)

// destinationPool maps travel styles to suggested destinations.
var destinationPool = map[string][]string{
	"beach":     {"Bali", "Phuket", "Algarve"},
	"city":      {"Tokyo", "Lisbon", "Seoul"},
	"nature":    {"Queenstown", "Banff", "Patagonia"},
	"budget":    {"Hanoi", "Krakow", "Oaxaca"},
	"luxury":    {"Dubai", "Maldives", "Kyoto"},
	"adventure": {"Nepal", "Iceland", "Peru"},
}

// Recommendation suggests destinations from preferences and history,
// skipping places the user has already visited.
type Recommendation struct{}

func (p *Recommendation) Name() string           { return "recommendation" }
func (p *Recommendation) Timeout() time.Duration { return 3 * time.Second }

func (p *Recommendation) Invoke(ctx context.Context, params map[string]any, uc model.UserContext) (capability.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	visited := make(map[string]bool, len(uc.TripHistory))
	for _, trip := range uc.TripHistory {
		visited[strings.ToLower(trip.Destination)] = true
	}

	style := strings.ToLower(uc.Preferences["style"])
	pool, ok := destinationPool[style]
	if !ok {
		pool = destinationPool["city"]
	}

	var suggestions []string
	for _, dest := range pool {
		if !visited[strings.ToLower(dest)] {
			suggestions = append(suggestions, dest)
		}
	}
	if len(suggestions) == 0 {
		// Everything visited: suggest revisiting the best-rated trip.
		var best model.TripSummary
		bestScore := -1.0
		for _, trip := range uc.TripHistory {
			if trip.Satisfaction > bestScore {
				best, bestScore = trip, trip.Satisfaction
			}
		}
		return capability.Result{
			"recommendations": []string{best.Destination},
			"style":           style,
			"last_visited":    response.Date(best.CompletedAt),
		}, nil
	}

	return capability.Result{
		"recommendations": suggestions,
		"style":           style,
	}, nil
}
