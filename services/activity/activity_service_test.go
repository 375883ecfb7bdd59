package activity

import (
	"context"
	"fmt"
	"testing"

	"seriesapi/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Activity{}))
	return db
}

func TestRecordAndList(t *testing.T) {
	svc := NewActivityService(setupTestDB(t))
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		require.NoError(t, svc.RecordActivity(ctx, models.ActivityUser, fmt.Sprintf("event %d", i)))
	}

	activities, err := svc.GetRecentActivities(ctx, 2)
	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.Equal(t, "event 3", activities[0].Content)
	assert.Equal(t, "event 2", activities[1].Content)
}

func TestLimitBounds(t *testing.T) {
	svc := NewActivityService(setupTestDB(t))
	ctx := context.Background()

	for i := 0; i < MaxLimit+5; i++ {
		require.NoError(t, svc.RecordActivity(ctx, models.ActivitySystem, "tick"))
	}

	activities, err := svc.GetRecentActivities(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, activities, DefaultLimit)

	activities, err = svc.GetRecentActivities(ctx, 1000)
	require.NoError(t, err)
	assert.Len(t, activities, MaxLimit)
}
