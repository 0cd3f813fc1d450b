package domain

import (
	"context"
	"time"

	"boothtrack.in/internal/model"
)

// ===========================
// Auth service
// ===========================

// MobileLoginResult is the outcome of a mobile-number login. Token and User
// are nil when the employee has no linked account: the caller gets the
// employee profile but no authenticated session (limited access).
type MobileLoginResult struct {
	Token    *model.AuthToken
	User     *model.User
	Employee *model.Employee
}

// AuthService handles credential checks and bearer-token lifecycle.
type AuthService interface {
	// Authenticate username/password and return the user's token (get-or-create).
	Login(ctx context.Context, username, password string) (*model.AuthToken, *model.User, error)
	// Look up an employee by mobile number and, if a user account is linked,
	// issue a token for it.
	MobileLogin(ctx context.Context, mobileNumber string) (*MobileLoginResult, error)
	// Invalidate the token. Idempotent: succeeds even if the token is unknown.
	Logout(ctx context.Context, tokenKey string) error
	// Resolve a bearer token to its active user.
	Authenticate(ctx context.Context, tokenKey string) (*model.User, error)
}

// ===========================
// Directory query service
// ===========================

// Paging limits for directory listings.
const (
	DefaultPageSize = 60
	MaxPageSize     = 100
)

// EmployeeFilter narrows and paginates directory listings.
type EmployeeFilter struct {
	Search   string // case-insensitive substring on emp_id or name
	Ward     string // exact match on ward_number
	Page     int
	PageSize int
}

// Normalized returns the filter with paging clamped to the listing limits.
// The service queries with these values and handlers echo them back, so both
// sides share one definition of the effective page.
func (f EmployeeFilter) Normalized() EmployeeFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	return f
}

// Ward is a distinct (ward_number, ward_name) pair from the directory.
type Ward struct {
	WardNumber string `json:"ward_number"`
	WardName   string `json:"ward_name"`
}

// DashboardStats holds the aggregate counters for the dashboard.
type DashboardStats struct {
	TotalEmployees int64 `json:"total_employees"`
	ActiveBooths   int64 `json:"active_booths"`
	UniqueWards    int64 `json:"unique_wards"`
	OnDuty         int64 `json:"on_duty"`
}

// DirectoryService provides read access to the employee directory.
type DirectoryService interface {
	// List employees ordered by emp_id, with optional search/ward filters.
	ListEmployees(ctx context.Context, filter EmployeeFilter) ([]model.Employee, int64, error)
	// Exact lookup by emp_id.
	GetEmployee(ctx context.Context, empID string) (*model.Employee, error)
	// Exact lookup by mobile number.
	GetEmployeeByMobile(ctx context.Context, mobileNumber string) (*model.Employee, error)
	// Distinct wards over employees with a non-empty ward_number.
	ListWards(ctx context.Context) ([]Ward, error)
	// Aggregate dashboard counters.
	DashboardStats(ctx context.Context) (*DashboardStats, error)
}

// ===========================
// Location ingestion service
// ===========================

// CreateLocationInput is the client-supplied part of a check-in. The serial
// number and timestamp are always server-assigned.
type CreateLocationInput struct {
	Latitude  float64
	Longitude float64
	PlaceName string
	ImageURL  string
}

// LocationService ingests and lists GPS check-ins.
type LocationService interface {
	// Map an authenticated user to their employee record: direct link first,
	// then mobile_number == username (legacy contract from the mobile client).
	ResolveCallerEmployee(ctx context.Context, user *model.User) (*model.Employee, error)
	// Persist a check-in with the next per-employee serial number.
	CreateLocationUpdate(ctx context.Context, employee *model.Employee, input CreateLocationInput) (*model.LocationUpdate, error)
	// List an employee's check-ins newest first, optionally restricted to one
	// calendar day.
	ListLocationUpdates(ctx context.Context, empID string, date *time.Time) ([]model.LocationUpdate, error)
}

// ===========================
// Admin service
// ===========================

// EmployeeUpdate carries the mutable employee fields; nil means unchanged.
// EmpID is deliberately absent: it is immutable once assigned.
type EmployeeUpdate struct {
	Name          *string `json:"name"`
	Designation   *string `json:"designation"`
	MobileNumber  *string `json:"mobile_number"`
	OfficeName    *string `json:"office_name"`
	OfficePlace   *string `json:"office_place"`
	BoothNumber   *string `json:"booth_number"`
	BoothName     *string `json:"booth_name"`
	BuildingName  *string `json:"building_name"`
	BoothDuration *string `json:"booth_duration"`
	WardNumber    *string `json:"ward_number"`
	WardName      *string `json:"ward_name"`
}

// CreateUserInput creates a login account, optionally linked to an employee.
type CreateUserInput struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobile_number"`
	Role         string `json:"role"`
	EmpID        string `json:"emp_id"` // optional: link the new account to this employee
}

// AdminService is the explicit administrative API surface: employee
// lifecycle, account creation, and location-update cleanup.
type AdminService interface {
	// Create an employee; emp_id is generated here.
	CreateEmployee(ctx context.Context, employee *model.Employee) error
	// Update profile/assignment fields of an existing employee.
	UpdateEmployee(ctx context.Context, empID string, update EmployeeUpdate) (*model.Employee, error)
	// Remove an employee and their location log.
	DeleteEmployee(ctx context.Context, empID string) error
	// Administrative cleanup of a single check-in.
	DeleteLocationUpdate(ctx context.Context, id uint) error
	// Create a login account.
	CreateUser(ctx context.Context, input CreateUserInput) (*model.User, error)
}

// ===========================
// Live location feed
// ===========================

// LocationEvent is the payload pushed to dashboard clients when a check-in
// is created.
type LocationEvent struct {
	EmpID        string    `json:"emp_id"`
	Name         string    `json:"name"`
	WardNumber   string    `json:"ward_number"`
	SerialNumber uint      `json:"serial_number"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	PlaceName    string    `json:"place_name"`
	Timestamp    time.Time `json:"timestamp"`
}

// Notifier fans a location event out to connected dashboard clients
// (directly, or through Redis pub/sub when running multiple instances).
type Notifier interface {
	PublishLocationEvent(ctx context.Context, event LocationEvent)
}
