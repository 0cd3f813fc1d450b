package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"boothtrack.in/internal/domain"
	"boothtrack.in/internal/model"
)

// empIDInsertAttempts bounds the emp_id allocation retry loop.
const empIDInsertAttempts = 10

// AdminServiceImpl implements domain.AdminService: the explicit API
// replacement for the scaffolded admin screens of the old system.
type AdminServiceImpl struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminServiceImpl {
	return &AdminServiceImpl{db: db}
}

// CreateEmployee stores a new employee with a generated emp_id. Candidates
// are max numeric suffix + 1; the unique index on emp_id arbitrates
// concurrent creates and the loser moves to the next candidate.
func (s *AdminServiceImpl) CreateEmployee(ctx context.Context, employee *model.Employee) error {
	next, err := s.nextEmpIDNumber(ctx)
	if err != nil {
		return err
	}

	for attempt := 0; attempt < empIDInsertAttempts; attempt++ {
		employee.ID = 0
		employee.EmpID = fmt.Sprintf("EMP%03d", next)
		if err := s.db.WithContext(ctx).Create(employee).Error; err != nil {
			if isUniqueViolation(err) {
				next++
				continue
			}
			return domain.NewInternalError("failed to create employee", err)
		}
		return nil
	}

	return domain.NewConflictError("Could not allocate an employee id, please retry", domain.ErrConstraintViolation)
}

// UpdateEmployee applies the non-nil fields of update. emp_id is immutable
// and not part of EmployeeUpdate by construction.
func (s *AdminServiceImpl) UpdateEmployee(ctx context.Context, empID string, update domain.EmployeeUpdate) (*model.Employee, error) {
	var employee model.Employee
	if err := s.db.WithContext(ctx).Where("emp_id = ?", empID).First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Employee not found")
		}
		return nil, domain.NewInternalError("failed to look up employee", err)
	}

	fields := map[string]interface{}{}
	setIf := func(column string, v *string) {
		if v != nil {
			fields[column] = *v
		}
	}
	setIf("name", update.Name)
	setIf("designation", update.Designation)
	setIf("mobile_number", update.MobileNumber)
	setIf("office_name", update.OfficeName)
	setIf("office_place", update.OfficePlace)
	setIf("booth_number", update.BoothNumber)
	setIf("booth_name", update.BoothName)
	setIf("building_name", update.BuildingName)
	setIf("booth_duration", update.BoothDuration)
	setIf("ward_number", update.WardNumber)
	setIf("ward_name", update.WardName)

	if len(fields) == 0 {
		return &employee, nil
	}

	if err := s.db.WithContext(ctx).Model(&employee).Updates(fields).Error; err != nil {
		return nil, domain.NewInternalError("failed to update employee", err)
	}
	return &employee, nil
}

// DeleteEmployee removes an employee and their location log in one
// transaction. The delete is hard: a freed emp_id slot must not block the
// generator with an invisible row.
func (s *AdminServiceImpl) DeleteEmployee(ctx context.Context, empID string) error {
	var employee model.Employee
	if err := s.db.WithContext(ctx).Where("emp_id = ?", empID).First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NewNotFoundError("Employee not found")
		}
		return domain.NewInternalError("failed to look up employee", err)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", employee.ID).Delete(&model.LocationUpdate{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&employee).Error
	})
	if err != nil {
		return domain.NewInternalError("failed to delete employee", err)
	}
	return nil
}

// DeleteLocationUpdate removes a single check-in. This is the only mutation
// path for the location log besides ingestion.
func (s *AdminServiceImpl) DeleteLocationUpdate(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&model.LocationUpdate{}, id)
	if result.Error != nil {
		return domain.NewInternalError("failed to delete location update", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Location update not found")
	}
	return nil
}

// CreateUser creates a login account, optionally linked to an employee.
func (s *AdminServiceImpl) CreateUser(ctx context.Context, input domain.CreateUserInput) (*model.User, error) {
	if input.Username == "" || input.Password == "" {
		return nil, domain.NewBadRequestError("username and password are required")
	}

	role := strings.ToLower(strings.TrimSpace(input.Role))
	if role == "" {
		role = model.RoleEmployee
	}
	if role != model.RoleAdmin && role != model.RoleEmployee {
		return nil, domain.NewBadRequestError("role must be admin or employee")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewInternalError("failed to hash password", err)
	}

	user := model.User{
		Username:     input.Username,
		Email:        input.Email,
		Password:     string(hashed),
		MobileNumber: input.MobileNumber,
		Role:         role,
		IsActive:     true,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if input.EmpID == "" {
			return nil
		}

		var employee model.Employee
		if err := tx.Where("emp_id = ?", input.EmpID).First(&employee).Error; err != nil {
			return err
		}
		return tx.Model(&employee).Update("user_id", user.ID).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.NewConflictError("Username already exists or employee already linked", domain.ErrConstraintViolation)
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Employee not found")
		}
		return nil, domain.NewInternalError("failed to create user", err)
	}
	return &user, nil
}

// nextEmpIDNumber scans existing EMP### ids for the max numeric suffix.
// Malformed suffixes are skipped, matching how the ids have always been
// assigned.
func (s *AdminServiceImpl) nextEmpIDNumber(ctx context.Context) (int, error) {
	var ids []string
	if err := s.db.WithContext(ctx).Model(&model.Employee{}).
		Where("emp_id LIKE ?", "EMP%").
		Pluck("emp_id", &ids).Error; err != nil {
		return 0, domain.NewInternalError("failed to scan employee ids", err)
	}

	max := 0
	for _, id := range ids {
		n, err := strconv.Atoi(id[3:])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max + 1, nil
}

var _ domain.AdminService = (*AdminServiceImpl)(nil)
