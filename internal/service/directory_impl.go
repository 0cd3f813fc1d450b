package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"boothtrack.in/internal/domain"
	"boothtrack.in/internal/model"
)

// DirectoryServiceImpl implements domain.DirectoryService.
type DirectoryServiceImpl struct {
	db *gorm.DB
}

func NewDirectoryService(db *gorm.DB) *DirectoryServiceImpl {
	return &DirectoryServiceImpl{db: db}
}

// ListEmployees returns one page of the directory ordered by emp_id. Search
// matches emp_id or name case-insensitively; ward is an exact match; the
// two filters compose with AND.
func (s *DirectoryServiceImpl) ListEmployees(ctx context.Context, filter domain.EmployeeFilter) ([]model.Employee, int64, error) {
	filter = filter.Normalized()

	query := s.db.WithContext(ctx).Model(&model.Employee{})

	if filter.Search != "" {
		term := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(emp_id) LIKE ? OR LOWER(name) LIKE ?", term, term)
	}
	if filter.Ward != "" {
		query = query.Where("ward_number = ?", filter.Ward)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, domain.NewInternalError("failed to count employees", err)
	}

	var employees []model.Employee
	if err := query.Order("emp_id ASC").
		Limit(filter.PageSize).
		Offset((filter.Page - 1) * filter.PageSize).
		Find(&employees).Error; err != nil {
		return nil, 0, domain.NewInternalError("failed to list employees", err)
	}

	return employees, total, nil
}

func (s *DirectoryServiceImpl) GetEmployee(ctx context.Context, empID string) (*model.Employee, error) {
	var employee model.Employee
	if err := s.db.WithContext(ctx).Where("emp_id = ?", empID).First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Employee not found")
		}
		return nil, domain.NewInternalError("failed to look up employee", err)
	}
	return &employee, nil
}

func (s *DirectoryServiceImpl) GetEmployeeByMobile(ctx context.Context, mobileNumber string) (*model.Employee, error) {
	var employee model.Employee
	if err := s.db.WithContext(ctx).Where("mobile_number = ?", mobileNumber).First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Employee not found with this mobile number")
		}
		return nil, domain.NewInternalError("failed to look up employee", err)
	}
	return &employee, nil
}

// ListWards returns the distinct (ward_number, ward_name) pairs over
// employees with a ward assignment. An empty ward_name falls back to the
// ward_number as display name.
func (s *DirectoryServiceImpl) ListWards(ctx context.Context) ([]domain.Ward, error) {
	var wards []domain.Ward
	if err := s.db.WithContext(ctx).Model(&model.Employee{}).
		Select("DISTINCT ward_number, ward_name").
		Where("ward_number IS NOT NULL AND ward_number <> ''").
		Order("ward_number ASC").
		Scan(&wards).Error; err != nil {
		return nil, domain.NewInternalError("failed to list wards", err)
	}

	for i := range wards {
		if wards[i].WardName == "" {
			wards[i].WardName = wards[i].WardNumber
		}
	}
	return wards, nil
}

// DashboardStats aggregates the dashboard counters. on_duty mirrors
// total_employees: there is no duty-status tracking yet.
func (s *DirectoryServiceImpl) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats

	if err := s.db.WithContext(ctx).Model(&model.Employee{}).Count(&stats.TotalEmployees).Error; err != nil {
		return nil, domain.NewInternalError("failed to count employees", err)
	}

	if err := s.db.WithContext(ctx).Model(&model.Employee{}).
		Where("booth_number IS NOT NULL AND booth_number <> ''").
		Distinct("booth_number").
		Count(&stats.ActiveBooths).Error; err != nil {
		return nil, domain.NewInternalError("failed to count booths", err)
	}

	if err := s.db.WithContext(ctx).Model(&model.Employee{}).
		Where("ward_number IS NOT NULL AND ward_number <> ''").
		Distinct("ward_number").
		Count(&stats.UniqueWards).Error; err != nil {
		return nil, domain.NewInternalError("failed to count wards", err)
	}

	stats.OnDuty = stats.TotalEmployees
	return &stats, nil
}

var _ domain.DirectoryService = (*DirectoryServiceImpl)(nil)
