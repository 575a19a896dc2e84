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

// MapboxBaseURL -- Mapbox geocoding v5 endpoint for the permanent-free places dataset.
const MapboxBaseURL = "https://api.mapbox.com/geocoding/v5/mapbox.places"

const (
	defaultTimeout         = 10 * time.Second
	defaultMapboxRateLimit = 10
	suggestionLimit        = 5
)

// MapboxProvider implements geocoding and autocomplete using the Mapbox geocoding API.
type MapboxProvider struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Base URL for the Mapbox geocoding API
	token   string        // Mapbox access token
	country string        // Country filter applied to every lookup
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Rate limiter
}

type mapboxFeature struct {
	ID        string    `json:"id"`
	PlaceName string    `json:"place_name"`
	Center    []float64 `json:"center"` // [lon, lat]
}

type mapboxResponse struct {
	Features []mapboxFeature `json:"features"`
	Message  string          `json:"message"`
}

// NewMapboxProvider creates a new Mapbox geocoding provider.
func NewMapboxProvider(token, country string, rateLimit int, timeout time.Duration, log *slog.Logger) *MapboxProvider {
	return NewMapboxProviderWithClient(
		&http.Client{Timeout: timeout},
		MapboxBaseURL,
		token,
		country,
		rate.NewLimiter(rate.Limit(rateLimit), rateLimit),
		log,
	)
}

// NewMapboxProviderWithClient allows injecting a custom HTTP client, base URL and limiter.
func NewMapboxProviderWithClient(
	client HTTPClient,
	baseURL string,
	token string,
	country string,
	limiter *rate.Limiter,
	log *slog.Logger,
) *MapboxProvider {
	return &MapboxProvider{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		country: strings.ToLower(country),
		log:     log,
		limiter: limiter,
	}
}

// Geocode converts an address into coordinates, asking Mapbox for exactly one match.
func (mp *MapboxProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, ErrEmptyAddress
	}

	mp.log.DebugContext(ctx, "Geocoding using Mapbox", "address", address)

	params := url.Values{}
	params.Set("limit", "1")

	resp, err := mp.search(ctx, address, params)
	if err != nil {
		return nil, err
	}

	if len(resp.Features) == 0 {
		return nil, ErrNotFound
	}

	coords, err := featureCenter(resp.Features[0])
	if err != nil {
		return nil, err
	}

	mp.log.DebugContext(ctx, "Mapbox found result", "address", address, "lat", coords.Latitude, "lon", coords.Longitude)

	return coords, nil
}

// Suggest returns up to five point-of-interest or address candidates for a partial query.
func (mp *MapboxProvider) Suggest(
	ctx context.Context,
	query string,
	proximity *models.Coordinates,
) ([]models.PlaceSuggestion, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyAddress
	}

	params := url.Values{}
	params.Set("autocomplete", "true")
	params.Set("limit", strconv.Itoa(suggestionLimit))
	params.Set("types", "poi,address")
	if proximity != nil {
		// Mapbox expects longitude first.
		params.Set("proximity", formatLngLat(*proximity))
	}

	resp, err := mp.search(ctx, query, params)
	if err != nil {
		return nil, err
	}

	suggestions := make([]models.PlaceSuggestion, 0, len(resp.Features))
	for _, feature := range resp.Features {
		coords, errCenter := featureCenter(feature)
		if errCenter != nil {
			mp.log.WarnContext(ctx, "Skipping suggestion without a valid center", "id", feature.ID)
			continue
		}
		suggestions = append(suggestions, models.PlaceSuggestion{
			ID:     feature.ID,
			Name:   feature.PlaceName,
			Center: *coords,
		})
	}

	return suggestions, nil
}

// search performs one forward-geocoding request with the given extra parameters.
func (mp *MapboxProvider) search(ctx context.Context, text string, params url.Values) (*mapboxResponse, error) {
	if err := mp.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limit wait aborted: %w", ErrServiceFailure, err)
	}

	reqURL, err := url.Parse(mp.baseURL + "/" + url.PathEscape(text) + ".json")
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	params.Set("access_token", mp.token)
	if mp.country != "" {
		params.Set("country", mp.country)
	}
	reqURL.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := mp.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute geocoding request: %w", ErrServiceFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", ErrServiceFailure, err)
	}

	var result mapboxResponse
	decodeErr := json.Unmarshal(body, &result)

	if resp.StatusCode != http.StatusOK {
		msg := string(body)
		if decodeErr == nil && result.Message != "" {
			msg = result.Message
		}
		mp.log.ErrorContext(ctx, "Mapbox geocoding API error", "status", resp.StatusCode, "message", msg)
		return nil, fmt.Errorf("%w: mapbox API returned status %d: %s", ErrServiceFailure, resp.StatusCode, msg)
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("%w: failed to decode mapbox response: %w", ErrServiceFailure, decodeErr)
	}

	return &result, nil
}

func featureCenter(feature mapboxFeature) (*models.Coordinates, error) {
	const centerLength = 2
	if len(feature.Center) != centerLength {
		return nil, fmt.Errorf("%w: mapbox feature %q has invalid center", ErrServiceFailure, feature.ID)
	}

	return &models.Coordinates{Longitude: feature.Center[0], Latitude: feature.Center[1]}, nil
}

func formatLngLat(c models.Coordinates) string {
	return strconv.FormatFloat(c.Longitude, 'f', -1, 64) + "," + strconv.FormatFloat(c.Latitude, 'f', -1, 64)
}
