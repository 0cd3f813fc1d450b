package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"boothtrack.in/internal/domain"
	"boothtrack.in/internal/model"
)

// serialInsertAttempts bounds the retry loop for serial-number assignment.
// Each retry re-reads the latest serial, so contention converges fast.
const serialInsertAttempts = 5

// LocationServiceImpl implements domain.LocationService. Check-ins are
// append-only; correctness under concurrent submissions rests on the
// (employee_id, serial_number) unique index, not on application locking.
type LocationServiceImpl struct {
	db       *gorm.DB
	notifier domain.Notifier
}

// NewLocationService creates the ingestion service. notifier may be nil;
// check-ins are then stored without a live feed.
func NewLocationService(db *gorm.DB, notifier domain.Notifier) *LocationServiceImpl {
	return &LocationServiceImpl{db: db, notifier: notifier}
}

// ResolveCallerEmployee maps an authenticated user to their employee record.
// The direct user link wins; failing that, the mobile client's convention of
// using the mobile number as the username is honored.
func (s *LocationServiceImpl) ResolveCallerEmployee(ctx context.Context, user *model.User) (*model.Employee, error) {
	var employee model.Employee

	err := s.db.WithContext(ctx).Where("user_id = ?", user.ID).First(&employee).Error
	if err == nil {
		return &employee, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NewInternalError("failed to resolve employee", err)
	}

	if user.Username != "" {
		err = s.db.WithContext(ctx).Where("mobile_number = ?", user.Username).First(&employee).Error
		if err == nil {
			return &employee, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewInternalError("failed to resolve employee", err)
		}
	}

	return nil, &domain.AppError{Code: 403, Message: "No employee record found for this account", Err: domain.ErrNoEmployeeContext}
}

// CreateLocationUpdate persists a check-in with the next serial number for
// the employee. The serial is read from the most recently inserted row (by
// primary key, not timestamp); if a concurrent check-in claims it first the
// unique index rejects the insert and the loop retries with a fresh read.
func (s *LocationServiceImpl) CreateLocationUpdate(ctx context.Context, employee *model.Employee, input domain.CreateLocationInput) (*model.LocationUpdate, error) {
	if input.PlaceName == "" {
		return nil, domain.NewBadRequestError("place_name is required")
	}

	for attempt := 0; attempt < serialInsertAttempts; attempt++ {
		next := uint(1)
		var last model.LocationUpdate
		err := s.db.WithContext(ctx).
			Where("employee_id = ?", employee.ID).
			Order("id DESC").
			First(&last).Error
		if err == nil {
			next = last.SerialNumber + 1
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewInternalError("failed to read last location update", err)
		}

		update := &model.LocationUpdate{
			EmployeeID:   employee.ID,
			SerialNumber: next,
			Latitude:     input.Latitude,
			Longitude:    input.Longitude,
			PlaceName:    input.PlaceName,
			Timestamp:    time.Now(),
			ImageURL:     input.ImageURL,
		}

		if err := s.db.WithContext(ctx).Create(update).Error; err != nil {
			if isUniqueViolation(err) {
				// Lost the race for this serial; re-read and retry.
				continue
			}
			return nil, domain.NewInternalError("failed to store location update", err)
		}

		if s.notifier != nil {
			s.notifier.PublishLocationEvent(ctx, domain.LocationEvent{
				EmpID:        employee.EmpID,
				Name:         employee.Name,
				WardNumber:   employee.WardNumber,
				SerialNumber: update.SerialNumber,
				Latitude:     update.Latitude,
				Longitude:    update.Longitude,
				PlaceName:    update.PlaceName,
				Timestamp:    update.Timestamp,
			})
		}
		return update, nil
	}

	return nil, domain.NewConflictError("Could not assign a serial number, please retry", domain.ErrSerialConflict)
}

// ListLocationUpdates returns an employee's check-ins newest first. A date
// restricts results to that calendar day in the date's own location.
func (s *LocationServiceImpl) ListLocationUpdates(ctx context.Context, empID string, date *time.Time) ([]model.LocationUpdate, error) {
	var employee model.Employee
	if err := s.db.WithContext(ctx).Where("emp_id = ?", empID).First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Employee not found")
		}
		return nil, domain.NewInternalError("failed to look up employee", err)
	}

	query := s.db.WithContext(ctx).Where("employee_id = ?", employee.ID)
	if date != nil {
		start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		query = query.Where("timestamp >= ? AND timestamp < ?", start, start.AddDate(0, 0, 1))
	}

	var updates []model.LocationUpdate
	// serial_number breaks timestamp ties so creation order always holds.
	if err := query.Order("timestamp DESC").Order("serial_number DESC").Find(&updates).Error; err != nil {
		return nil, domain.NewInternalError("failed to list location updates", err)
	}
	return updates, nil
}

var _ domain.LocationService = (*LocationServiceImpl)(nil)
