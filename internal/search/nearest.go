// Package search ranks pantries by distance from an origin point.
package search

import (
	"sort"

	"pantry-finder/internal/geo"
	"pantry-finder/internal/models"
)

// Match pairs a pantry with its distance from the search origin
type Match struct {
	DistanceKm float64       `json:"distance_km"`
	Pantry     models.Pantry `json:"pantry"`
}

// Nearest returns up to limit pantries ordered by ascending distance from
// origin. When radiusKm is set, pantries strictly farther than the radius
// are dropped; a distance exactly equal to the radius is kept. Ties keep
// their original candidate order so repeated runs select deterministically.
// An empty candidate set yields an empty result, never an error.
func Nearest(origin geo.Coordinate, pantries []models.Pantry, limit int, radiusKm *float64) []Match {
	matches := make([]Match, 0, len(pantries))

	for _, p := range pantries {
		d := geo.Haversine(origin, p.Coordinate())
		if radiusKm != nil && d > *radiusKm {
			continue
		}
		matches = append(matches, Match{DistanceKm: d, Pantry: p})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].DistanceKm < matches[j].DistanceKm
	})

	if limit >= 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	return matches
}
