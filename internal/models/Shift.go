package models

import (
	"gorm.io/gorm"
)

const (
	ShiftActive    = "active"
	ShiftCompleted = "completed"
	ShiftCancelled = "cancelled"
)

// Shift (turno) assigns one driver to one route for a bounded window on one
// date. DriverName, DriverLicense and RouteName are snapshots taken at
// assignment time so historical rows keep the names they were created with.
// Only "active" shifts participate in conflict and daily-limit checks.
type Shift struct {
	gorm.Model
	DriverID uint `json:"driver_id" gorm:"index"`
	RouteID  uint `json:"route_id" gorm:"index"`

	DriverName    string `json:"driver_name"`
	DriverLicense string `json:"driver_license"`
	RouteName     string `json:"route_name"`

	StartDate       string `json:"start_date" gorm:"index"` // YYYY-MM-DD
	StartTime       string `json:"start_time"`              // HH:MM, 24h
	DurationMinutes int    `json:"duration_minutes"`

	Status string `json:"status" gorm:"default:active"` // "active" | "completed" | "cancelled"
}
