package model

import "gorm.io/gorm"

// Employee holds a field worker's profile and their duty assignment.
// All assignment fields are free-form text entered by the back office;
// the optional User link exists only for authentication.
type Employee struct {
	gorm.Model
	UserID *uint `gorm:"uniqueIndex" json:"user_id,omitempty"`
	User   *User `gorm:"constraint:OnDelete:SET NULL" json:"-"`

	// EmpID is system-generated (EMP001, EMP002, ...) and immutable once assigned.
	EmpID        string `gorm:"uniqueIndex;size:20;not null" json:"emp_id"`
	Name         string `gorm:"size:100" json:"name"`
	Designation  string `gorm:"size:100" json:"designation"`
	MobileNumber string `gorm:"index;size:15" json:"mobile_number"`

	OfficeName  string `gorm:"size:100" json:"office_name"`
	OfficePlace string `gorm:"size:100" json:"office_place"`

	BoothNumber   string `gorm:"size:20" json:"booth_number"`
	BoothName     string `gorm:"size:100" json:"booth_name"`
	BuildingName  string `gorm:"size:100" json:"building_name"`
	BoothDuration string `gorm:"size:50" json:"booth_duration"`

	WardNumber string `gorm:"index;size:10" json:"ward_number"`
	WardName   string `gorm:"size:100" json:"ward_name"`
}
