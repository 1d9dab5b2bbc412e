package models

import (
	"gorm.io/gorm"
)

// Route represents a fixed service path between two points. DurationMinutes is
// the structured form of the legacy "1h 30m" duration string; it is parsed once
// at the HTTP boundary and never re-parsed internally.
type Route struct {
	gorm.Model

	Name            string `json:"name" binding:"required"`
	Origin          string `json:"origin"`
	Destination     string `json:"destination"`
	DurationMinutes int    `json:"duration_minutes"`

	// Optional path geometry stored as WKB (LINESTRING, SRID 4326).
	// When creating, provide GeoJSON; the controller converts.
	Geometry []byte `gorm:"type:bytea" json:"-"`
}
