package model

import "time"

// AuthToken is an opaque bearer token tied to one user. Token issuance is
// get-or-create: the unique index on UserID means repeated logins reuse the
// same active token instead of multiplying them. Logout deletes the row.
type AuthToken struct {
	Key       string    `gorm:"primaryKey;size:40" json:"key"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
