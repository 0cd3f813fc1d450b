package model

import "time"

// LocationUpdate is a single GPS check-in submitted by an employee's device.
// Records are append-only: created once by the ingestion service, never
// mutated, and removable only through the admin API.
//
// The (employee_id, serial_number) unique index is the storage-level guard
// that closes the race between reading the last serial and inserting the
// next one; concurrent check-ins make the loser retry.
type LocationUpdate struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	EmployeeID uint      `gorm:"not null;uniqueIndex:idx_employee_serial" json:"-"`
	Employee   *Employee `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	SerialNumber uint    `gorm:"not null;uniqueIndex:idx_employee_serial" json:"serial_number"`
	Latitude     float64 `gorm:"type:decimal(10,8);not null" json:"latitude"`
	Longitude    float64 `gorm:"type:decimal(11,8);not null" json:"longitude"`
	PlaceName    string  `gorm:"size:200;not null" json:"place_name"`

	// Timestamp is assigned by the server at creation time and is immutable.
	Timestamp time.Time `gorm:"index;not null" json:"timestamp"`
	ImageURL  string    `gorm:"size:500" json:"image_url,omitempty"`
}
