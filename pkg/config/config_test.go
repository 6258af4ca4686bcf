package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gst-invoicing-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "gst-invoicing", cfg.App.Name)
	assert.Equal(t, config.StoragePostgres, cfg.Storage.Driver)
	assert.Equal(t, "001", cfg.Numbering.Seed)
	assert.True(t, cfg.Numbering.AutoRenumber)
	assert.Equal(t, 30*time.Second, cfg.ViewCache.TTL)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Memory")
	t.Setenv("NUMBERING_AUTO_RENUMBER", "false")
	t.Setenv("NUMBERING_SEED", "INV-0001")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("VIEW_CACHE_TTL", "0s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StorageMemory, cfg.Storage.Driver)
	assert.False(t, cfg.Numbering.AutoRenumber)
	assert.Equal(t, "INV-0001", cfg.Numbering.Seed)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Zero(t, cfg.ViewCache.TTL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")
	_, err := config.Load()
	assert.ErrorContains(t, err, "STORAGE_DRIVER")
}

func TestValidate_ProductionNeedsSecret(t *testing.T) {
	cfg := &config.Config{
		App:     config.AppConfig{Env: "production"},
		HTTP:    config.HTTPConfig{Port: 8080},
		Storage: config.StorageConfig{Driver: config.StoragePostgres},
	}
	assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET")

	cfg.JWT.Secret = "s3cret"
	assert.NoError(t, cfg.Validate())
}

func TestDBConfig_DSNEscapesPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "gst", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/gst?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
