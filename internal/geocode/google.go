package geocode

import (
	"context"
	"fmt"
	"time"

	"googlemaps.github.io/maps"

	"pantry-finder/internal/geo"
)

// Google geocodes addresses through the Google Maps Geocoding API
type Google struct {
	client *maps.Client
	cache  *Cache
}

// NewGoogle creates a Google Maps geocoder from an API key
func NewGoogle(apiKey string) (*Google, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}

	return &Google{
		client: client,
		cache:  NewCache(24 * time.Hour),
	}, nil
}

// Geocode converts an address to coordinates using the top-ranked result
func (g *Google) Geocode(ctx context.Context, query string) (geo.Coordinate, error) {
	if c, ok := g.cache.Get(query); ok {
		return c, nil
	}

	resp, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: query})
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("geocoding request failed: %w", err)
	}

	if len(resp) == 0 {
		return geo.Coordinate{}, fmt.Errorf("no results found for %q", query)
	}

	loc := resp[0].Geometry.Location
	c := geo.Coordinate{Latitude: loc.Lat, Longitude: loc.Lng}
	g.cache.Set(query, c)

	return c, nil
}
