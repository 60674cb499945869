package config

import (
	"os"

	"github.com/joho/godotenv"
)

// MaxUploadBytes is the largest photo accepted by the upload and student endpoints.
const MaxUploadBytes int64 = 5 * 1024 * 1024

// Config holds the runtime settings of the student records service
type Config struct {
	Port          string
	AllowedOrigin string
	DBPath        string
	UploadsDir    string
	MigrationsDir string

	MaxUploadBytes int64
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads an optional .env file and then the environment, falling back to defaults
func Load() *Config {
	// a missing .env is fine, the defaults cover a local run
	_ = godotenv.Load()

	return &Config{
		Port:          get("APP_PORT", "3300"),
		AllowedOrigin: get("ALLOWED_ORIGIN", "http://localhost:3000"),
		DBPath:        get("DB_PATH", "./users_db.db"),
		UploadsDir:    get("UPLOADS_DIR", "./uploads"),
		MigrationsDir: get("MIGRATIONS_DIR", "./database/migrations"),

		MaxUploadBytes: MaxUploadBytes,
	}
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.Port
}
