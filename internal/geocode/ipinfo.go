package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pantry-finder/internal/geo"
)

// IPLocatorConfig configures the IP locator. Zero values use defaults.
type IPLocatorConfig struct {
	BaseURL string
	Timeout time.Duration
}

// IPLocator approximates a position from the caller's public IP address
// using the ipinfo.io service
type IPLocator struct {
	client  *http.Client
	baseURL string
}

// NewIPLocator creates a new IP-based locator
func NewIPLocator(config IPLocatorConfig) *IPLocator {
	if config.BaseURL == "" {
		config.BaseURL = "https://ipinfo.io/json"
	}
	if config.Timeout == 0 {
		config.Timeout = 5 * time.Second
	}

	return &IPLocator{
		client: &http.Client{
			Timeout: config.Timeout,
		},
		baseURL: config.BaseURL,
	}
}

// Locate returns the coordinate reported for the caller's IP address
func (l *IPLocator) Locate(ctx context.Context) (geo.Coordinate, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", l.baseURL, nil)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return geo.Coordinate{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	// The loc field is formatted as "lat,lng"
	var payload struct {
		Loc string `json:"loc"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return geo.Coordinate{}, fmt.Errorf("failed to parse response: %w", err)
	}

	if payload.Loc == "" {
		return geo.Coordinate{}, fmt.Errorf("response carries no location")
	}

	parts := strings.Split(payload.Loc, ",")
	if len(parts) != 2 {
		return geo.Coordinate{}, fmt.Errorf("unexpected loc format %q", payload.Loc)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("failed to parse latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("failed to parse longitude: %w", err)
	}

	return geo.Coordinate{Latitude: lat, Longitude: lng}, nil
}
