package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"unique"`
	Password string `json:"-"`
	Phone    string `json:"phone"`
	Role     string `json:"role"` // "admin", "driver"

	// Two-step login: a short-lived code issued on password check,
	// exchanged for a JWT at /auth/verify.
	LoginCode          string     `json:"-"`
	LoginCodeExpiresAt *time.Time `json:"-"`

	// Actor-specific relations
	Driver *Driver `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"driver,omitempty"`
}
