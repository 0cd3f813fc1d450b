package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"boothtrack.in/internal/domain"
	"boothtrack.in/internal/model"
)

func TestCreateEmployeeGeneratesSequentialIDs(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db)

	for i, want := range []string{"EMP001", "EMP002", "EMP003"} {
		employee := &model.Employee{Name: "Officer", MobileNumber: fmt.Sprintf("900000000%d", i)}
		require.NoError(t, svc.CreateEmployee(context.Background(), employee))
		assert.Equal(t, want, employee.EmpID)
	}
}

func TestCreateEmployeeContinuesPastGapsAndClaims(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db)

	// Pre-existing directory with a gap and a malformed id.
	createTestEmployee(t, db, "EMP001", "A", "9000000001", "", "")
	createTestEmployee(t, db, "EMP007", "B", "9000000002", "", "")
	createTestEmployee(t, db, "EMPX", "C", "9000000003", "", "")

	employee := &model.Employee{Name: "New Officer", MobileNumber: "9000000004"}
	require.NoError(t, svc.CreateEmployee(context.Background(), employee))
	assert.Equal(t, "EMP008", employee.EmpID, "generator continues from the max suffix")
}

func TestUpdateEmployeeAppliesOnlyProvidedFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db)
	createTestEmployee(t, db, "EMP001", "Rajesh Kumar", "9876543210", "W001", "Ward 1")

	newName := "Rajesh K."
	newWard := "W005"
	updated, err := svc.UpdateEmployee(context.Background(), "EMP001", domain.EmployeeUpdate{
		Name:       &newName,
		WardNumber: &newWard,
	})
	require.NoError(t, err)
	assert.Equal(t, "Rajesh K.", updated.Name)
	assert.Equal(t, "W005", updated.WardNumber)
	assert.Equal(t, "9876543210", updated.MobileNumber, "untouched fields keep their values")
	assert.Equal(t, "EMP001", updated.EmpID)

	var stored model.Employee
	require.NoError(t, db.Where("emp_id = ?", "EMP001").First(&stored).Error)
	assert.Equal(t, "Rajesh K.", stored.Name)
	assert.Equal(t, "Ward 1", stored.WardName)
}

func TestUpdateEmployeeNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db)

	name := "Ghost"
	_, err := svc.UpdateEmployee(context.Background(), "EMP404", domain.EmployeeUpdate{Name: &name})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteEmployeeRemovesLocationLog(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db)
	employee := createTestEmployee(t, db, "EMP001", "Rajesh Kumar", "9876543210", "W001", "Ward 1")

	for i := uint(1); i <= 3; i++ {
		require.NoError(t, db.Create(&model.LocationUpdate{
			EmployeeID: employee.ID, SerialNumber: i,
			Latitude: 28.6, Longitude: 77.2, PlaceName: "Booth", Timestamp: time.Now(),
		}).Error)
	}

	require.NoError(t, svc.DeleteEmployee(context.Background(), "EMP001"))

	var employees, updates int64
	db.Model(&model.Employee{}).Count(&employees)
	db.Model(&model.LocationUpdate{}).Count(&updates)
	assert.EqualValues(t, 0, employees)
	assert.EqualValues(t, 0, updates)

	// The freed id slot is usable again: the delete is hard, so no hidden
	// row blocks the generator.
	fresh := &model.Employee{Name: "Replacement", MobileNumber: "9876543219"}
	require.NoError(t, svc.CreateEmployee(context.Background(), fresh))
	assert.Equal(t, "EMP001", fresh.EmpID)

	err := svc.DeleteEmployee(context.Background(), "EMP404")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteLocationUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db)
	employee := createTestEmployee(t, db, "EMP001", "Rajesh Kumar", "9876543210", "W001", "Ward 1")

	update := model.LocationUpdate{
		EmployeeID: employee.ID, SerialNumber: 1,
		Latitude: 28.6, Longitude: 77.2, PlaceName: "Booth", Timestamp: time.Now(),
	}
	require.NoError(t, db.Create(&update).Error)

	require.NoError(t, svc.DeleteLocationUpdate(context.Background(), update.ID))

	err := svc.DeleteLocationUpdate(context.Background(), update.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateUserLinksEmployee(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db)
	employee := createTestEmployee(t, db, "EMP001", "Rajesh Kumar", "9876543210", "W001", "Ward 1")

	user, err := svc.CreateUser(context.Background(), domain.CreateUserInput{
		Username:     "9876543210",
		Password:     "employee123",
		MobileNumber: "9876543210",
		Role:         model.RoleEmployee,
		EmpID:        "EMP001",
	})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("employee123")))
	assert.True(t, user.IsActive)

	var stored model.Employee
	require.NoError(t, db.First(&stored, employee.ID).Error)
	require.NotNil(t, stored.UserID)
	assert.Equal(t, user.ID, *stored.UserID)
}

func TestCreateUserValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db)

	_, err := svc.CreateUser(context.Background(), domain.CreateUserInput{Username: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.CreateUser(context.Background(), domain.CreateUserInput{
		Username: "x", Password: "y", Role: "superuser",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.CreateUser(context.Background(), domain.CreateUserInput{
		Username: "x", Password: "y", EmpID: "EMP404",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	svc := NewAdminService(db)

	_, err := svc.CreateUser(context.Background(), domain.CreateUserInput{Username: "admin", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), domain.CreateUserInput{Username: "admin", Password: "pw"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConstraintViolation)

	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.Code)
}
