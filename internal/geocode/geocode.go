// Package geocode provides clients for the external services that turn
// free-text addresses and caller IPs into coordinates.
package geocode

import (
	"fmt"
	"os"

	"pantry-finder/internal/locate"
)

// New returns the geocoder registered under the given provider name.
// Supported providers are "nominatim" (the default) and "google", which
// reads its API key from GOOGLE_MAPS_API_KEY.
func New(provider string) (locate.Geocoder, error) {
	switch provider {
	case "", "nominatim":
		return NewNominatim(NominatimConfig{}), nil
	case "google":
		apiKey := os.Getenv("GOOGLE_MAPS_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("GOOGLE_MAPS_API_KEY is not set")
		}
		return NewGoogle(apiKey)
	default:
		return nil, fmt.Errorf("unknown geocoding provider %q", provider)
	}
}
