package config_test

import (
	"testing"
	"time"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/waypoint/internal/config"
	"github.com/stretchr/testify/assert"
)

func Test_MustLoadFromEnv(t *testing.T) {
	t.Setenv("WAYPOINT_ENV", "local")
	t.Setenv("WAYPOINT_BACKFILL_INTERVAL", "10m")
	t.Setenv("WAYPOINT_GEOCODER_API_KEY", "testAPIKey")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_HOST", "testHost")
	t.Setenv("DB_PORT", "12345")
	t.Setenv("DB_USERNAME", "admin")
	t.Setenv("DB_PASSWORD", "adminpass")
	t.Setenv("DB_NAME", "testName")

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "testHost", cfg.Database.Host)
	assert.Equal(t, "12345", cfg.Database.Port)
	assert.Equal(t, "admin", cfg.Database.User)
	assert.Equal(t, "adminpass", cfg.Database.Password)
	assert.Equal(t, "testName", cfg.Database.Name)
	assert.Equal(t, "secret", cfg.JWTSecret)
	assert.Equal(t, 10*time.Minute, cfg.Backfill.Interval)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 3000, cfg.HTTPPort)
	assert.Equal(t, "testAPIKey", cfg.Geocoder.APIKey)
	assert.Equal(t, "mapbox", cfg.Geocoder.ProviderType)
	assert.Equal(t, 4, cfg.Geocoder.Workers)
	assert.Equal(t, 12, cfg.Optimizer.MaxCoordinates)
	assert.Equal(t, "driving", cfg.Optimizer.Profile)
	assert.Equal(t, 60*time.Second, cfg.OptimizeTimeout)
	assert.Equal(t, 720*time.Hour, cfg.Cache.TTL)
}

func Test_MustLoadMapboxTokenFallback(t *testing.T) {
	t.Setenv("MAPBOX_ACCESS_TOKEN", "pk.token")

	cfg := config.MustLoad()

	assert.Equal(t, "pk.token", cfg.Geocoder.APIKey)
	assert.Equal(t, "pk.token", cfg.Optimizer.AccessToken)
}

func Test_MustLoadFromFile(t *testing.T) {
	defer filet.CleanUp(t)

	file := filet.TmpFile(t, "", `
env: development
http:
  port: 9000
geocoder:
  provider: nominatim
  country: ua
optimizer:
  timeout: 15s
postgres:
  db_name: routes
`)

	t.Setenv("WAYPOINT_CONFIG_FILE", file.Name())
	t.Setenv("WAYPOINT_GEOCODER_COUNTRY", "pl")

	cfg := config.MustLoad()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, "nominatim", cfg.Geocoder.ProviderType)
	assert.Equal(t, "pl", cfg.Geocoder.Country, "environment overrides the file")
	assert.Equal(t, 15*time.Second, cfg.Optimizer.Timeout)
	assert.Equal(t, "routes", cfg.Database.Name)
}

func TestMustLoad_MissingFile(t *testing.T) {
	t.Setenv("WAYPOINT_CONFIG_FILE", "/nonexistent/waypoint.yaml")

	assert.PanicsWithValue(t, "failed to read configuration file", func() {
		config.MustLoad()
	})
}

func TestMustLoad_IntervalError(t *testing.T) {
	t.Setenv("WAYPOINT_BACKFILL_INTERVAL", "error_value")

	assert.PanicsWithValue(t, "failed to parse interval from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_PortError(t *testing.T) {
	t.Setenv("WAYPOINT_MONITORING_PORT", "error_value")

	assert.PanicsWithValue(t, "failed to parse port for monitoring server from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_WorkersError(t *testing.T) {
	t.Setenv("WAYPOINT_GEOCODER_WORKERS", "error_value")

	assert.PanicsWithValue(t, "failed to parse workers from configuration, must be an integer types", func() {
		config.MustLoad()
	})
}

func TestMustLoad_OptimizeTimeoutError(t *testing.T) {
	t.Setenv("WAYPOINT_OPTIMIZE_TIMEOUT", "soon")

	assert.PanicsWithValue(t, "failed to parse optimize timeout from configuration", func() {
		config.MustLoad()
	})
}
