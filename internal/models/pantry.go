package models

import (
	"time"

	"pantry-finder/internal/geo"
)

// Pantry represents a food pantry location
type Pantry struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Address   string    `db:"address" json:"address"`
	Latitude  float64   `db:"latitude" json:"lat"`
	Longitude float64   `db:"longitude" json:"lng"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Coordinate returns the pantry location as a geo.Coordinate
func (p Pantry) Coordinate() geo.Coordinate {
	return geo.Coordinate{Latitude: p.Latitude, Longitude: p.Longitude}
}
