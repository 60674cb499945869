package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("ALLOWED_ORIGIN", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("UPLOADS_DIR", "")
	t.Setenv("MIGRATIONS_DIR", "")

	cfg := Load()

	assert.Equal(t, "3300", cfg.Port)
	assert.Equal(t, ":3300", cfg.Addr())
	assert.Equal(t, "http://localhost:3000", cfg.AllowedOrigin)
	assert.Equal(t, "./users_db.db", cfg.DBPath)
	assert.Equal(t, "./uploads", cfg.UploadsDir)
	assert.Equal(t, "./database/migrations", cfg.MigrationsDir)
	assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "8081")
	t.Setenv("ALLOWED_ORIGIN", "http://example.test")
	t.Setenv("DB_PATH", "/tmp/records.db")
	t.Setenv("UPLOADS_DIR", "/tmp/photos")

	cfg := Load()

	assert.Equal(t, ":8081", cfg.Addr())
	assert.Equal(t, "http://example.test", cfg.AllowedOrigin)
	assert.Equal(t, "/tmp/records.db", cfg.DBPath)
	assert.Equal(t, "/tmp/photos", cfg.UploadsDir)
}
