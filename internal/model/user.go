package model

import "gorm.io/gorm"

// Role values accepted for User.Role.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// User represents a login account in the system
type User struct {
	gorm.Model
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Email        string `json:"email"`
	Password     string `gorm:"not null" json:"-"` // Stored as bcrypt hash, ignored in JSON response
	MobileNumber string `json:"mobile_number"`
	Role         string `gorm:"default:'employee'" json:"role"` // convenient field, though Casbin is the source of truth for permissions
	// No gorm default: a default-true tag makes gorm treat an explicit false
	// as the zero value and store true, so accounts could never be created
	// disabled. Create paths set the flag explicitly.
	IsActive bool `json:"is_active"`
}
