package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"boothtrack.in/internal/domain"
	"boothtrack.in/internal/model"
)

func seedDirectory(t *testing.T, db *gorm.DB) {
	t.Helper()
	createTestEmployee(t, db, "EMP001", "Rajesh Kumar", "9876543210", "W001", "Ward 1")
	createTestEmployee(t, db, "EMP002", "Priya Sharma", "9876543211", "W002", "Ward 2")
	createTestEmployee(t, db, "EMP003", "Amit Singh", "9876543212", "W001", "Ward 1")
	createTestEmployee(t, db, "EMP004", "Sunita Devi", "9876543213", "", "")
}

func TestListEmployeesSearch(t *testing.T) {
	db := newTestDB(t)
	svc := NewDirectoryService(db)
	seedDirectory(t, db)

	// Case-insensitive substring on name.
	employees, total, err := svc.ListEmployees(context.Background(), domain.EmployeeFilter{Search: "rAJesh"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, employees, 1)
	assert.Equal(t, "EMP001", employees[0].EmpID)

	// Substring on emp_id matches everything here.
	_, total, err = svc.ListEmployees(context.Background(), domain.EmployeeFilter{Search: "emp00"})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)

	_, total, err = svc.ListEmployees(context.Background(), domain.EmployeeFilter{Search: "no such person"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
}

func TestListEmployeesWardFilterComposesWithSearch(t *testing.T) {
	db := newTestDB(t)
	svc := NewDirectoryService(db)
	seedDirectory(t, db)

	employees, total, err := svc.ListEmployees(context.Background(), domain.EmployeeFilter{Ward: "W001"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, employees, 2)
	assert.Equal(t, "EMP001", employees[0].EmpID)
	assert.Equal(t, "EMP003", employees[1].EmpID)

	// Both filters together narrow to the intersection.
	employees, total, err = svc.ListEmployees(context.Background(), domain.EmployeeFilter{Search: "amit", Ward: "W001"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, employees, 1)
	assert.Equal(t, "EMP003", employees[0].EmpID)

	_, total, err = svc.ListEmployees(context.Background(), domain.EmployeeFilter{Search: "priya", Ward: "W001"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
}

func TestListEmployeesPagination(t *testing.T) {
	db := newTestDB(t)
	svc := NewDirectoryService(db)
	seedDirectory(t, db)

	// Page 2 of size 2 holds the third and fourth employees by emp_id.
	employees, total, err := svc.ListEmployees(context.Background(), domain.EmployeeFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	require.Len(t, employees, 2)
	assert.Equal(t, "EMP003", employees[0].EmpID)
	assert.Equal(t, "EMP004", employees[1].EmpID)

	// Out-of-range pages are empty but still report the full total.
	employees, total, err = svc.ListEmployees(context.Background(), domain.EmployeeFilter{Page: 9, PageSize: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Empty(t, employees)

	// Zero/negative paging falls back to the defaults.
	employees, _, err = svc.ListEmployees(context.Background(), domain.EmployeeFilter{Page: -1, PageSize: -1})
	require.NoError(t, err)
	assert.Len(t, employees, 4)
}

func TestGetEmployee(t *testing.T) {
	db := newTestDB(t)
	svc := NewDirectoryService(db)
	seedDirectory(t, db)

	employee, err := svc.GetEmployee(context.Background(), "EMP002")
	require.NoError(t, err)
	assert.Equal(t, "Priya Sharma", employee.Name)

	_, err = svc.GetEmployee(context.Background(), "EMP999")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetEmployeeByMobile(t *testing.T) {
	db := newTestDB(t)
	svc := NewDirectoryService(db)
	seedDirectory(t, db)

	employee, err := svc.GetEmployeeByMobile(context.Background(), "9876543212")
	require.NoError(t, err)
	assert.Equal(t, "EMP003", employee.EmpID)

	_, err = svc.GetEmployeeByMobile(context.Background(), "1112223334")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListWards(t *testing.T) {
	db := newTestDB(t)
	svc := NewDirectoryService(db)
	seedDirectory(t, db)
	// A ward with no display name falls back to its number.
	createTestEmployee(t, db, "EMP005", "Mohan Lal", "9876543214", "W009", "")

	wards, err := svc.ListWards(context.Background())
	require.NoError(t, err)

	// EMP004 has no ward and must not produce an entry; W001 appears once.
	require.Len(t, wards, 3)
	assert.Equal(t, domain.Ward{WardNumber: "W001", WardName: "Ward 1"}, wards[0])
	assert.Equal(t, domain.Ward{WardNumber: "W002", WardName: "Ward 2"}, wards[1])
	assert.Equal(t, domain.Ward{WardNumber: "W009", WardName: "W009"}, wards[2])
}

func TestDashboardStats(t *testing.T) {
	db := newTestDB(t)
	svc := NewDirectoryService(db)
	seedDirectory(t, db)

	require.NoError(t, db.Model(&model.Employee{}).
		Where("emp_id IN ?", []string{"EMP001", "EMP002"}).
		Update("booth_number", "B001").Error)
	require.NoError(t, db.Model(&model.Employee{}).
		Where("emp_id = ?", "EMP003").
		Update("booth_number", "B002").Error)

	stats, err := svc.DashboardStats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 4, stats.TotalEmployees)
	assert.EqualValues(t, 2, stats.ActiveBooths, "shared booths count once")
	assert.EqualValues(t, 2, stats.UniqueWards)
	assert.Equal(t, stats.TotalEmployees, stats.OnDuty)
}
