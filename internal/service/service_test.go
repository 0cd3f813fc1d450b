package service

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"boothtrack.in/internal/infra"
	"boothtrack.in/internal/model"
)

// newTestDB opens an in-memory SQLite database with the full schema. A single
// connection keeps the database alive for the whole test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, infra.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username, password, role string, active bool) *model.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		Username: username,
		Password: string(hashed),
		Role:     role,
		IsActive: active,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestEmployee(t *testing.T, db *gorm.DB, empID, name, mobile, wardNumber, wardName string) *model.Employee {
	t.Helper()

	employee := &model.Employee{
		EmpID:        empID,
		Name:         name,
		MobileNumber: mobile,
		WardNumber:   wardNumber,
		WardName:     wardName,
	}
	require.NoError(t, db.Create(employee).Error)
	return employee
}
