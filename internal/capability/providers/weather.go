package providers

import (
	"context"
	"time"

	"travel-assistant-core/internal/capability"
	"travel-assistant-core/internal/model"
	"travel-assistant-core/pkg/weather"
)

// WeatherLookup resolves the destination's forecast via the weather client.
type WeatherLookup struct {
	client weather.IWeather
}

// NewWeatherLookup creates the provider over a weather client.
func NewWeatherLookup(client weather.IWeather) *WeatherLookup {
	return &WeatherLookup{client: client}
}

func (p *WeatherLookup) Name() string           { return "weather_lookup" }
func (p *WeatherLookup) Timeout() time.Duration { return 4 * time.Second }

func (p *WeatherLookup) Invoke(ctx context.Context, params map[string]any, uc model.UserContext) (capability.Result, error) {
	dest := destinationFrom(params, uc)

	forecast, err := p.client.Lookup(ctx, dest)
	if err != nil {
		return nil, err
	}

	return capability.Result{
		"weather": map[string]any{
			"location":   forecast.Location,
			"summary":    forecast.Summary,
			"temp_max_c": forecast.TempMaxC,
			"temp_min_c": forecast.TempMinC,
		},
	}, nil
}
