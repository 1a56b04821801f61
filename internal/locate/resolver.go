// Package locate resolves free-form location input into coordinates.
package locate

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"unicode/utf8"

	"pantry-finder/internal/geo"
)

// ErrUnresolvable is returned when every resolution strategy has failed
var ErrUnresolvable = errors.New("location could not be resolved")

// Geocoder converts free-text input into a coordinate
type Geocoder interface {
	Geocode(ctx context.Context, query string) (geo.Coordinate, error)
}

// Autolocator approximates the caller's position without any input
type Autolocator interface {
	Locate(ctx context.Context) (geo.Coordinate, error)
}

// Resolver turns heterogeneous location input into a single coordinate.
// It performs no network I/O itself; both collaborators are injected.
type Resolver struct {
	geocoder    Geocoder
	autolocator Autolocator
}

// NewResolver creates a Resolver. The autolocator may be nil when IP
// autolocation is not available.
func NewResolver(g Geocoder, a Autolocator) *Resolver {
	return &Resolver{geocoder: g, autolocator: a}
}

// ParseLatLon attempts a strict "lat,lon" parse: exactly two comma-separated
// numeric tokens within valid coordinate ranges.
func ParseLatLon(text string) (geo.Coordinate, bool) {
	parts := strings.Split(text, ",")
	if len(parts) != 2 {
		return geo.Coordinate{}, false
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geo.Coordinate{}, false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geo.Coordinate{}, false
	}

	c := geo.Coordinate{Latitude: lat, Longitude: lng}
	if !c.Valid() {
		return geo.Coordinate{}, false
	}

	return c, true
}

// LooksLikePostalCode reports whether the input resembles a postal code:
// a short token carrying at least one digit. The check is deliberately
// coarse; postal codes often geocode more reliably than full addresses.
func LooksLikePostalCode(text string) bool {
	t := strings.TrimSpace(text)
	if utf8.RuneCountInString(t) > 10 {
		return false
	}
	for _, r := range t {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

// Resolve converts input text into a coordinate, first strategy wins:
// a strict "lat,lon" parse, then geocoding postal-code-like input, then
// geocoding the raw text. Collaborator failures fall through; only when
// every strategy misses is ErrUnresolvable returned.
func (r *Resolver) Resolve(ctx context.Context, input string) (geo.Coordinate, error) {
	if strings.Contains(input, ",") {
		if c, ok := ParseLatLon(input); ok {
			return c, nil
		}
		log.Printf("Could not parse %q as lat,lon; treating it as an address", input)
	}

	if LooksLikePostalCode(input) {
		log.Printf("Input %q looks like a postal code; geocoding it", input)
		if c, err := r.geocoder.Geocode(ctx, input); err == nil {
			return c, nil
		} else {
			log.Printf("Postal code geocoding failed for %q: %v", input, err)
		}
	}

	c, err := r.geocoder.Geocode(ctx, input)
	if err != nil {
		log.Printf("Geocoding failed for %q: %v", input, err)
		return geo.Coordinate{}, ErrUnresolvable
	}

	return c, nil
}

// Autolocate attempts a best-effort IP-based position fix. It never
// fails loudly: any collaborator error is absorbed into a false return.
func (r *Resolver) Autolocate(ctx context.Context) (geo.Coordinate, bool) {
	if r.autolocator == nil {
		return geo.Coordinate{}, false
	}

	c, err := r.autolocator.Locate(ctx)
	if err != nil {
		log.Printf("Autolocate failed: %v", err)
		return geo.Coordinate{}, false
	}

	return c, true
}
