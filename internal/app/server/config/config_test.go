package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load(viper.New())

	assert.Equal(t, EnvLocal, cfg.Env)
	assert.Equal(t, ":5050", cfg.Server.RunAddress)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "migrations", cfg.DB.Migrations)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Contains(t, cfg.Server.AllowedOrigins, "http://localhost:5173")
	assert.Contains(t, cfg.Server.AllowedOrigins, "https://employee-management-system-mern-*.vercel.app")
	assert.Empty(t, cfg.Log.Level)
	assert.False(t, cfg.IsProd())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("RUN_ADDRESS", ":8080")
	t.Setenv("STORAGE_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/x.db")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load(viper.New())

	assert.True(t, cfg.IsProd())
	assert.Equal(t, ":8080", cfg.Server.RunAddress)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/x.db", cfg.Storage.SQLitePath)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
}
