// internal/models/driver.go
package models

import (
	"gorm.io/gorm"
)

const (
	DriverActive   = "active"
	DriverInactive = "inactive"
)

// Driver is a catalog entry managed from the admin console. UserID links the
// entry to a login account when the driver uses the dashboard; catalog rows
// created by an administrator may have no account yet.
type Driver struct {
	gorm.Model
	UserID        uint   `json:"user_id" gorm:"index"`
	Name          string `json:"name"`
	LicenseNumber string `json:"license_number"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Status        string `json:"status" gorm:"default:active"` // "active" | "inactive"
}
