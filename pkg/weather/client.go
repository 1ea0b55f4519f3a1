package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	DefaultForecastURL = "https://api.open-meteo.com/v1/forecast"
	DefaultGeocodeURL  = "https://geocoding-api.open-meteo.com/v1/search"
)

// IWeather defines the weather lookup interface.
// Implementations are safe for concurrent use.
type IWeather interface {
	Lookup(ctx context.Context, location string) (Forecast, error)
}

// Client is an Open-Meteo client (no API key required).
type Client struct {
	forecastURL string
	geocodeURL  string
	httpClient  *http.Client
}

// New creates a new weather client.
func New() *Client {
	return &Client{
		forecastURL: DefaultForecastURL,
		geocodeURL:  DefaultGeocodeURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

// WithBaseURLs overrides the API endpoints (used in tests).
func (c *Client) WithBaseURLs(forecastURL, geocodeURL string) *Client {
	c.forecastURL = forecastURL
	c.geocodeURL = geocodeURL
	return c
}

// Lookup geocodes the location and returns a condensed next-day forecast.
func (c *Client) Lookup(ctx context.Context, location string) (Forecast, error) {
	if location == "" {
		return Forecast{}, fmt.Errorf("location is required")
	}

	lat, lon, name, err := c.geocode(ctx, location)
	if err != nil {
		return Forecast{}, fmt.Errorf("geocode %q: %w", location, err)
	}

	u := fmt.Sprintf("%s?latitude=%.4f&longitude=%.4f&daily=temperature_2m_max,temperature_2m_min,weather_code&forecast_days=1",
		c.forecastURL, lat, lon)

	var resp forecastResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return Forecast{}, fmt.Errorf("forecast for %q: %w", location, err)
	}
	if len(resp.Daily.TemperatureMax) == 0 {
		return Forecast{}, fmt.Errorf("no forecast data for %q", location)
	}

	code := 0
	if len(resp.Daily.WeatherCode) > 0 {
		code = resp.Daily.WeatherCode[0]
	}
	min := 0.0
	if len(resp.Daily.TemperatureMin) > 0 {
		min = resp.Daily.TemperatureMin[0]
	}

	return Forecast{
		Location:    name,
		Latitude:    lat,
		Longitude:   lon,
		TempMaxC:    resp.Daily.TemperatureMax[0],
		TempMinC:    min,
		WeatherCode: code,
		Summary:     summaryFor(code),
	}, nil
}

func (c *Client) geocode(ctx context.Context, location string) (lat, lon float64, name string, err error) {
	u := fmt.Sprintf("%s?name=%s&count=1", c.geocodeURL, url.QueryEscape(location))

	var resp geocodeResponse
	if err = c.getJSON(ctx, u, &resp); err != nil {
		return 0, 0, "", err
	}
	if len(resp.Results) == 0 {
		return 0, 0, "", fmt.Errorf("location not found")
	}
	r := resp.Results[0]
	return r.Latitude, r.Longitude, r.Name, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// summaryFor maps WMO weather codes to a short human summary.
func summaryFor(code int) string {
	switch {
	case code == 0:
		return "clear"
	case code <= 3:
		return "partly cloudy"
	case code <= 48:
		return "fog"
	case code <= 67:
		return "rain"
	case code <= 77:
		return "snow"
	case code <= 82:
		return "showers"
	default:
		return "thunderstorm"
	}
}
