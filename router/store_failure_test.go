package router

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"seriesapi/repository"
	"seriesapi/services/activity"
	"seriesapi/services/auth"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockEngine(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	gin.SetMode(gin.TestMode)

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	engine := Setup(Deps{
		DB:       db,
		Repos:    repository.New(db),
		Tokens:   auth.NewTokenService("test-secret", time.Hour),
		Activity: activity.NewActivityService(db),
	})
	return engine, mock
}

func TestStoreFailureIsInternalError(t *testing.T) {
	engine, mock := newMockEngine(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `platforms`")).
		WillReturnError(errors.New("connection refused"))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/platforms/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchStoreFailure(t *testing.T) {
	engine, mock := newMockEngine(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `series` WHERE title = ?")).
		WillReturnError(errors.New("connection reset"))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/series/search/?title=Foo_Bar", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
