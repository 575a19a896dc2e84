package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the route optimization service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port for the monitoring server (health checks and metrics).
// - HTTPPort: The port of the public route API.
// - JWTSecret: The HMAC secret used to verify bearer tokens.
// - OptimizeTimeout: The upper bound of one optimization attempt.
// - Geocoder, Optimizer, Backfill, Cache: Settings of the external integrations.
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env             string          `yaml:"env"`
	Port            int             `yaml:"monitoring.port"`
	HTTPPort        int             `yaml:"http.port"`
	JWTSecret       string          `yaml:"jwt.secret"`
	OptimizeTimeout time.Duration   `yaml:"optimize.timeout"`
	Geocoder        GeocoderConfig  `yaml:"geocoder"`
	Optimizer       OptimizerConfig `yaml:"optimizer"`
	Backfill        BackfillConfig  `yaml:"backfill"`
	Cache           CacheConfig     `yaml:"cache"`
	Database        PostgresConfig  `yaml:"postgres"`
}

// GeocoderConfig selects and tunes the geocoding provider.
type GeocoderConfig struct {
	ProviderType string        // mapbox, google or nominatim
	APIKey       string        // Provider key or access token
	Country      string        // Country every lookup is restricted to
	RateLimit    int           // Requests per second
	Timeout      time.Duration // HTTP timeout of one lookup
	Workers      int           // Concurrent lookups per optimization attempt
}

// OptimizerConfig tunes the Mapbox optimization client.
type OptimizerConfig struct {
	AccessToken    string
	Profile        string
	MaxCoordinates int
	RateLimit      int
	Timeout        time.Duration
}

// BackfillConfig controls the stop coordinate backfill worker. Interval 0 disables it.
type BackfillConfig struct {
	Interval  time.Duration
	Workers   int
	BatchSize int
}

// CacheConfig configures the Redis geocode cache. An empty RedisURL disables it.
type CacheConfig struct {
	RedisURL string
	TTL      time.Duration
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// MustLoad reads .env, an optional YAML file named by WAYPOINT_CONFIG_FILE and the
// environment, in increasing order of precedence. It panics on malformed values.
func MustLoad() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("WAYPOINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	bindEnv(v)

	if path := os.Getenv("WAYPOINT_CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			panic("failed to read configuration file")
		}
	}

	return &Config{
		Env:             v.GetString("env"),
		Port:            mustInt(v, "monitoring.port", "failed to parse port for monitoring server from configuration"),
		HTTPPort:        mustInt(v, "http.port", "failed to parse port for http server from configuration"),
		JWTSecret:       v.GetString("jwt.secret"),
		OptimizeTimeout: mustDuration(v, "optimize.timeout", "failed to parse optimize timeout from configuration"),
		Geocoder: GeocoderConfig{
			ProviderType: v.GetString("geocoder.provider"),
			APIKey:       v.GetString("geocoder.api_key"),
			Country:      v.GetString("geocoder.country"),
			RateLimit:    mustInt(v, "geocoder.rate_limit", "failed to parse geocoder rate limit from configuration"),
			Timeout:      mustDuration(v, "geocoder.timeout", "failed to parse geocoder timeout from configuration"),
			Workers: mustInt(v, "geocoder.workers",
				"failed to parse workers from configuration, must be an integer types"),
		},
		Optimizer: OptimizerConfig{
			AccessToken: v.GetString("optimizer.access_token"),
			Profile:     v.GetString("optimizer.profile"),
			MaxCoordinates: mustInt(v, "optimizer.max_coordinates",
				"failed to parse optimizer max coordinates from configuration"),
			RateLimit: mustInt(v, "optimizer.rate_limit", "failed to parse optimizer rate limit from configuration"),
			Timeout:   mustDuration(v, "optimizer.timeout", "failed to parse optimizer timeout from configuration"),
		},
		Backfill: BackfillConfig{
			Interval:  mustDuration(v, "backfill.interval", "failed to parse interval from configuration"),
			Workers:   mustInt(v, "backfill.workers", "failed to parse backfill workers from configuration"),
			BatchSize: mustInt(v, "backfill.batch_size", "failed to parse backfill batch size from configuration"),
		},
		Cache: CacheConfig{
			RedisURL: v.GetString("cache.redis_url"),
			TTL:      mustDuration(v, "cache.ttl", "failed to parse cache ttl from configuration"),
		},
		Database: PostgresConfig{
			Host:     v.GetString("postgres.host"),
			Port:     v.GetString("postgres.port"),
			User:     v.GetString("postgres.user"),
			Password: v.GetString("postgres.password"),
			Name:     v.GetString("postgres.db_name"),
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "production")
	v.SetDefault("monitoring.port", "8080")
	v.SetDefault("http.port", "3000")
	v.SetDefault("optimize.timeout", "60s")
	v.SetDefault("geocoder.provider", "mapbox")
	v.SetDefault("geocoder.country", "vn")
	v.SetDefault("geocoder.rate_limit", "10")
	v.SetDefault("geocoder.timeout", "10s")
	v.SetDefault("geocoder.workers", "4")
	v.SetDefault("optimizer.profile", "driving")
	v.SetDefault("optimizer.max_coordinates", "12")
	v.SetDefault("optimizer.rate_limit", "5")
	v.SetDefault("optimizer.timeout", "30s")
	v.SetDefault("backfill.interval", "0s")
	v.SetDefault("backfill.workers", "2")
	v.SetDefault("backfill.batch_size", "100")
	v.SetDefault("cache.ttl", "720h")
	v.SetDefault("postgres.port", "5432")
}

// bindEnv maps the conventional unprefixed variables shared with the other services.
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("postgres.host", "DB_HOST")
	_ = v.BindEnv("postgres.port", "DB_PORT")
	_ = v.BindEnv("postgres.user", "DB_USERNAME")
	_ = v.BindEnv("postgres.password", "DB_PASSWORD")
	_ = v.BindEnv("postgres.db_name", "DB_NAME")
	_ = v.BindEnv("jwt.secret", "WAYPOINT_JWT_SECRET", "JWT_SECRET")
	_ = v.BindEnv("cache.redis_url", "WAYPOINT_CACHE_REDIS_URL", "REDIS_URL")
	_ = v.BindEnv("geocoder.api_key", "WAYPOINT_GEOCODER_API_KEY", "MAPBOX_ACCESS_TOKEN")
	_ = v.BindEnv("optimizer.access_token", "WAYPOINT_OPTIMIZER_ACCESS_TOKEN", "MAPBOX_ACCESS_TOKEN")
}

func mustInt(v *viper.Viper, key, msg string) int {
	value, err := strconv.Atoi(v.GetString(key))
	if err != nil {
		panic(msg)
	}

	return value
}

func mustDuration(v *viper.Viper, key, msg string) time.Duration {
	value, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		panic(msg)
	}

	return value
}
