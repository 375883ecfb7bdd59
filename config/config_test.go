package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, ":8081", cfg.Addr())
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "logs", cfg.LogDir)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("PORT", "http")

	_, err := Load()
	assert.Error(t, err)
}

func TestDialector(t *testing.T) {
	for _, driver := range []string{"mysql", "postgres", "sqlite"} {
		d, err := Dialector(&Config{DBDriver: driver, DBPath: "test.db"})
		require.NoError(t, err, driver)
		assert.Equal(t, driver, d.Name())
	}

	_, err := Dialector(&Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestInitDBSQLite(t *testing.T) {
	cfg := &Config{DBDriver: "sqlite", DBPath: "file:config_test?mode=memory&cache=shared"}
	db, err := InitDB(cfg)
	require.NoError(t, err)

	for _, table := range []string{"platforms", "genders", "series", "seasons", "episodes", "serie_genders", "users"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}
