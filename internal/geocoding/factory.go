package geocoding

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"googlemaps.github.io/maps"
)

// ProviderType represents the type of geocoding provider.
type ProviderType string

const (
	// ProviderTypeMapbox represents Mapbox geocoding v5 provider.
	ProviderTypeMapbox ProviderType = "mapbox"
	// ProviderTypeGoogle represents Google Maps geocoding provider.
	ProviderTypeGoogle ProviderType = "google"
	// ProviderTypeNominatim represents OpenStreetMap Nominatim geocoding provider.
	ProviderTypeNominatim ProviderType = "nominatim"
)

// ProviderConfig holds configuration for creating a geocoding provider.
type ProviderConfig struct {
	Type      ProviderType  // Type of provider to create
	APIKey    string        // API key or access token (Mapbox, Google)
	Country   string        // ISO 3166-1 alpha-2 country every lookup is restricted to
	RateLimit int           // Requests per second allowed towards the provider
	Timeout   time.Duration // HTTP timeout of a single lookup
	Logger    *slog.Logger  // Logger for the provider
}

// NewProvider creates a geocoding provider based on the provided configuration.
//
// Supported provider types:
// - "mapbox": Mapbox geocoding v5 (requires access token)
// - "google": Google Maps Geocoding API (requires API key)
// - "nominatim": OpenStreetMap Nominatim API (free, no API key required)
func NewProvider(config ProviderConfig) (Provider, error) {
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}

	switch config.Type {
	case ProviderTypeMapbox:
		return newMapboxProvider(config)
	case ProviderTypeGoogle:
		return newGoogleProvider(config)
	case ProviderTypeNominatim:
		return newNominatimProvider(config)
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

// newMapboxProvider creates a Mapbox geocoding provider.
func newMapboxProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("access token is required for Mapbox provider")
	}

	if config.RateLimit <= 0 {
		config.RateLimit = defaultMapboxRateLimit
		config.Logger.Warn("Rate limit for Mapbox API not set, set a default value", "value", config.RateLimit)
	}

	return NewMapboxProvider(config.APIKey, config.Country, config.RateLimit, config.Timeout, config.Logger), nil
}

// newGoogleProvider creates a Google Maps geocoding provider.
func newGoogleProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required for Google provider")
	}

	clientOpts := []maps.ClientOption{
		maps.WithAPIKey(config.APIKey),
	}

	if config.RateLimit > 0 {
		clientOpts = append(clientOpts, maps.WithRateLimit(config.RateLimit))
	}

	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleProvider(client, config.Country, config.Logger), nil
}

// newNominatimProvider creates a Nominatim geocoding provider.
func newNominatimProvider(config ProviderConfig) (Provider, error) {
	// Nominatim fair-use policy allows one request per second.
	if config.RateLimit <= 0 || config.RateLimit > 1 {
		config.RateLimit = 1
	}

	return NewNominatimProvider(config.Country, config.RateLimit, config.Timeout, config.Logger), nil
}
