package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"pantry-finder/internal/geo"
)

// NominatimConfig configures the Nominatim client. Zero values fall back
// to service-friendly defaults.
type NominatimConfig struct {
	BaseURL        string
	UserAgent      string
	Timeout        time.Duration
	RequestsPerSec float64
	CacheTTL       time.Duration
}

// Nominatim geocodes addresses using the OpenStreetMap Nominatim service
type Nominatim struct {
	client    *http.Client
	userAgent string
	baseURL   string
	limiter   *rate.Limiter
	cache     *Cache
}

// NominatimResult represents a geocoding result from Nominatim
type NominatimResult struct {
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	DisplayName string  `json:"display_name"`
	Type        string  `json:"type"`
	Importance  float64 `json:"importance"`
}

// NewNominatim creates a new Nominatim geocoder
func NewNominatim(config NominatimConfig) *Nominatim {
	if config.BaseURL == "" {
		config.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if config.UserAgent == "" {
		config.UserAgent = "PantryFinder/1.0 (food pantry search)"
	}
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	if config.RequestsPerSec == 0 {
		config.RequestsPerSec = 1
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = 24 * time.Hour
	}

	return &Nominatim{
		client: &http.Client{
			Timeout: config.Timeout,
		},
		userAgent: config.UserAgent,
		baseURL:   config.BaseURL,
		limiter:   rate.NewLimiter(rate.Limit(config.RequestsPerSec), 1),
		cache:     NewCache(config.CacheTTL),
	}
}

// Geocode converts an address to coordinates
func (g *Nominatim) Geocode(ctx context.Context, query string) (geo.Coordinate, error) {
	if c, ok := g.cache.Get(query); ok {
		return c, nil
	}

	// Nominatim's usage policy caps request rates
	if err := g.limiter.Wait(ctx); err != nil {
		return geo.Coordinate{}, err
	}

	// Build the request URL
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")

	reqURL := fmt.Sprintf("%s/search?%s", g.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("failed to create request: %w", err)
	}

	// Nominatim requires a valid User-Agent
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return geo.Coordinate{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("failed to read response: %w", err)
	}

	var results []NominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return geo.Coordinate{}, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(results) == 0 {
		return geo.Coordinate{}, fmt.Errorf("no results found for %q", query)
	}

	// Parse coordinates
	var lat, lng float64
	result := results[0]
	if _, err := fmt.Sscanf(result.Lat, "%f", &lat); err != nil {
		return geo.Coordinate{}, fmt.Errorf("failed to parse latitude: %w", err)
	}
	if _, err := fmt.Sscanf(result.Lon, "%f", &lng); err != nil {
		return geo.Coordinate{}, fmt.Errorf("failed to parse longitude: %w", err)
	}

	c := geo.Coordinate{Latitude: lat, Longitude: lng}
	g.cache.Set(query, c)

	return c, nil
}
