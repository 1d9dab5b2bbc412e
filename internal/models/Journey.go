package models

import (
	"time"

	"gorm.io/gorm"
)

// Journey tracks a driver's working day (jornada). At most one journey per
// driver is active at a time; the dashboard reports elapsed and remaining
// time against the legal daily cap.
type Journey struct {
	gorm.Model
	DriverID  uint       `json:"driver_id" gorm:"index"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	Active    bool       `json:"active" gorm:"index"`
}
