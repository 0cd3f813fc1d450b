package auth

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// The in-memory test databases run on a single connection; the policy
// bootstrap must complete without ever needing a second one.
func TestInitCasbinBootstrapsOnSingleConnection(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	enforcer, err := InitCasbin(db)
	require.NoError(t, err)

	permit, err := enforcer.Enforce("admin", "/api/admin/users", "POST")
	require.NoError(t, err)
	assert.True(t, permit)

	permit, err = enforcer.Enforce("employee", "/api/admin/users", "POST")
	require.NoError(t, err)
	assert.False(t, permit)

	permit, err = enforcer.Enforce("employee", "/api/employees/location-updates/create", "POST")
	require.NoError(t, err)
	assert.True(t, permit)

	// A second init on the same database finds the persisted rows and must
	// not bootstrap again.
	enforcer2, err := InitCasbin(db)
	require.NoError(t, err)
	policies, err := enforcer2.GetPolicy()
	require.NoError(t, err)
	assert.Len(t, policies, 4)
}
