package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/UnknownOlympus/waypoint/internal/models"
	"golang.org/x/time/rate"
)

// NominatimBaseURL -- public OpenStreetMap Nominatim search endpoint.
const NominatimBaseURL = "https://nominatim.openstreetmap.org/search"

// nominatimUserAgent is required by the Nominatim usage policy.
const nominatimUserAgent = "Waypoint-Route-Optimizer/1.0 (https://github.com/UnknownOlympus/waypoint)"

// NominatimProvider implements the Provider interface using OpenStreetMap's Nominatim API.
// This is a free geocoding service with usage limits (1 request/second for fair use).
type NominatimProvider struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Base URL for the Nominatim API
	country string        // Country code passed as countrycodes
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Rate limiter
}

// nominatimResponse represents the JSON response from Nominatim API.
type nominatimResponse struct {
	Lat string `json:"lat"` // Latitude as string
	Lon string `json:"lon"` // Longitude as string
}

// NewNominatimProvider creates a new Nominatim geocoding provider against the public endpoint.
func NewNominatimProvider(country string, rateLimit int, timeout time.Duration, log *slog.Logger) *NominatimProvider {
	return NewNominatimProviderWithClient(
		&http.Client{Timeout: timeout},
		NominatimBaseURL,
		country,
		rate.NewLimiter(rate.Limit(rateLimit), 1),
		log,
	)
}

// NewNominatimProviderWithClient creates a Nominatim provider with a custom HTTP client.
// Useful for testing with mocked HTTP clients.
func NewNominatimProviderWithClient(
	client HTTPClient,
	baseURL string,
	country string,
	limiter *rate.Limiter,
	log *slog.Logger,
) *NominatimProvider {
	return &NominatimProvider{
		client:  client,
		baseURL: baseURL,
		country: strings.ToLower(country),
		log:     log,
		limiter: limiter,
	}
}

// Geocode converts an address to geographic coordinates using the Nominatim API.
func (np *NominatimProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, ErrEmptyAddress
	}

	if err := np.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limit wait aborted: %w", ErrServiceFailure, err)
	}

	np.log.DebugContext(ctx, "Geocoding using Nominatim", "address", address)

	reqURL, err := url.Parse(np.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")
	if np.country != "" {
		query.Set("countrycodes", np.country)
	}
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", nominatimUserAgent)

	resp, err := np.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute geocoding request: %w", ErrServiceFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", ErrServiceFailure, err)
	}

	if resp.StatusCode != http.StatusOK {
		np.log.ErrorContext(ctx, "Nominatim API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("%w: nominatim API returned status %d: %s", ErrServiceFailure, resp.StatusCode, string(body))
	}

	var results []nominatimResponse
	if err = json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("%w: failed to decode nominatim response: %w", ErrServiceFailure, err)
	}

	if len(results) == 0 {
		return nil, ErrNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid latitude: %s", ErrServiceFailure, results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid longitude: %s", ErrServiceFailure, results[0].Lon)
	}

	return &models.Coordinates{Latitude: lat, Longitude: lon}, nil
}
