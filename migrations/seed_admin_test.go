package migrations

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"seriesapi/models"
	"seriesapi/services/activity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	return db
}

func TestSeedAdmin(t *testing.T) {
	db := setupTestDB(t)
	activities := activity.NewActivityService(db)
	ctx := context.Background()

	created, err := SeedAdmin(ctx, db, activities, "root", "secret123", "")
	require.NoError(t, err)
	assert.True(t, created)

	var admin models.User
	require.NoError(t, db.Where("username = ?", "root").First(&admin).Error)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.Equal(t, "root@localhost", admin.Email)
	assert.NoError(t, admin.ComparePassword("secret123"))

	recent, err := activities.GetRecentActivities(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, models.ActivitySystem, recent[0].Type)

	created, err = SeedAdmin(ctx, db, activities, "root2", "secret123", "")
	require.NoError(t, err)
	assert.False(t, created, "an admin already exists")
}

func TestSeedAdminSkipsWithoutCredentials(t *testing.T) {
	db := setupTestDB(t)

	created, err := SeedAdmin(context.Background(), db, activity.NewActivityService(db), "", "", "")
	require.NoError(t, err)
	assert.False(t, created)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSeedAdminDoesNotPromoteExistingAccounts(t *testing.T) {
	cases := []struct {
		name     string
		existing models.User
		email    string
	}{
		{
			name:     "username taken",
			existing: models.User{Username: "boss", Password: "attackerpw", Email: "boss@example.com"},
			email:    "ops@example.com",
		},
		{
			name:     "email taken",
			existing: models.User{Username: "someone", Password: "attackerpw", Email: "ops@example.com"},
			email:    "ops@example.com",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := setupTestDB(t)
			ctx := context.Background()
			activities := activity.NewActivityService(db)

			existing := tc.existing
			existing.Role = models.RoleRegular
			require.NoError(t, existing.HashPassword())
			require.NoError(t, db.Create(&existing).Error)

			created, err := SeedAdmin(ctx, db, activities, "boss", "operator-secret", tc.email)
			assert.ErrorIs(t, err, ErrAdminConflict)
			assert.False(t, created)

			var reloaded models.User
			require.NoError(t, db.First(&reloaded, existing.ID).Error)
			assert.Equal(t, models.RoleRegular, reloaded.Role)
			assert.NoError(t, reloaded.ComparePassword("attackerpw"))

			var admins int64
			require.NoError(t, db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&admins).Error)
			assert.Zero(t, admins)

			recent, err := activities.GetRecentActivities(ctx, 10)
			require.NoError(t, err)
			assert.Empty(t, recent)
		})
	}
}
