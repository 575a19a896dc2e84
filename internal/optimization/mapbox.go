package optimization

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

const (
	// MapboxBaseURL -- Mapbox Optimization API v1 endpoint.
	MapboxBaseURL = "https://api.mapbox.com/optimized-trips/v1/mapbox"
	// MapboxMaxCoordinates is the hard limit of the Optimization API v1.
	MapboxMaxCoordinates = 12

	mapboxCodeOK = "Ok"
)

// HTTPClient defines the interface for making HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// MapboxOptimizer calls the Mapbox Optimization API with the first coordinate fixed as
// source, the last fixed as destination and no forced round trip.
type MapboxOptimizer struct {
	client         HTTPClient
	baseURL        string
	token          string
	profile        string
	maxCoordinates int
	limiter        *rate.Limiter
	log            *slog.Logger
}

// MapboxConfig holds the settings of the Mapbox optimizer.
type MapboxConfig struct {
	AccessToken    string        // Mapbox access token
	Profile        string        // Routing profile: driving, driving-traffic, walking, cycling
	MaxCoordinates int           // Upper bound on the sequence length, capped at MapboxMaxCoordinates
	RateLimit      int           // Requests per second
	Timeout        time.Duration // HTTP timeout of one optimization request
}

type mapboxTrip struct {
	Geometry string  `json:"geometry"`
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
}

type mapboxWaypoint struct {
	WaypointIndex int `json:"waypoint_index"`
	TripsIndex    int `json:"trips_index"`
}

type mapboxTripsResponse struct {
	Code      string           `json:"code"`
	Message   string           `json:"message"`
	Trips     []mapboxTrip     `json:"trips"`
	Waypoints []mapboxWaypoint `json:"waypoints"`
}

// NewMapboxOptimizer creates an optimizer that talks to the public Mapbox endpoint.
func NewMapboxOptimizer(cfg MapboxConfig, log *slog.Logger) *MapboxOptimizer {
	const (
		defaultTimeout   = 30 * time.Second
		defaultRateLimit = 5
	)

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = defaultRateLimit
	}

	return NewMapboxOptimizerWithClient(
		&http.Client{Timeout: cfg.Timeout},
		MapboxBaseURL,
		cfg,
		rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimit),
		log,
	)
}

// NewMapboxOptimizerWithClient allows injecting a custom HTTP client, base URL and limiter.
func NewMapboxOptimizerWithClient(
	client HTTPClient,
	baseURL string,
	cfg MapboxConfig,
	limiter *rate.Limiter,
	log *slog.Logger,
) *MapboxOptimizer {
	if cfg.Profile == "" {
		cfg.Profile = "driving"
	}
	if cfg.MaxCoordinates <= 0 || cfg.MaxCoordinates > MapboxMaxCoordinates {
		cfg.MaxCoordinates = MapboxMaxCoordinates
	}

	return &MapboxOptimizer{
		client:         client,
		baseURL:        strings.TrimRight(baseURL, "/"),
		token:          cfg.AccessToken,
		profile:        cfg.Profile,
		maxCoordinates: cfg.MaxCoordinates,
		limiter:        limiter,
		log:            log,
	}
}

// MaxCoordinates returns the largest sequence the optimizer accepts.
func (mo *MapboxOptimizer) MaxCoordinates() int {
	return mo.maxCoordinates
}

// Optimize requests an optimized trip for the sequence and validates the response.
// The returned waypoints mirror the input: entry i carries InputIndex i.
func (mo *MapboxOptimizer) Optimize(
	ctx context.Context,
	sequence []models.Coordinates,
) (*models.OptimizationResult, error) {
	const minSequence = 3
	if len(sequence) < minSequence {
		return nil, ErrSequenceTooShort
	}
	if len(sequence) > mo.maxCoordinates {
		return nil, fmt.Errorf(
			"%w: %d coordinates exceed the limit of %d", ErrServiceFailure, len(sequence), mo.maxCoordinates,
		)
	}

	if err := mo.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limit wait aborted: %w", ErrServiceFailure, err)
	}

	reqURL, err := url.Parse(mo.baseURL + "/" + mo.profile + "/" + encodeCoordinates(sequence))
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := url.Values{}
	query.Set("access_token", mo.token)
	query.Set("source", "first")
	query.Set("destination", "last")
	query.Set("roundtrip", "false")
	query.Set("geometries", "polyline")
	reqURL.RawQuery = query.Encode()

	mo.log.DebugContext(ctx, "Requesting Mapbox optimized trip", "coordinates", len(sequence), "profile", mo.profile)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := mo.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute optimization request: %w", ErrServiceFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", ErrServiceFailure, err)
	}

	var result mapboxTripsResponse
	if err = json.Unmarshal(body, &result); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, &ServiceError{StatusCode: resp.StatusCode, Code: http.StatusText(resp.StatusCode), Message: string(body)}
		}
		return nil, fmt.Errorf("%w: failed to decode optimization response: %w", ErrServiceFailure, err)
	}

	if resp.StatusCode != http.StatusOK || result.Code != mapboxCodeOK {
		code := result.Code
		if code == "" {
			code = http.StatusText(resp.StatusCode)
		}
		mo.log.ErrorContext(ctx, "Mapbox optimization API error",
			"status", resp.StatusCode, "code", code, "message", result.Message)
		return nil, &ServiceError{StatusCode: resp.StatusCode, Code: code, Message: result.Message}
	}

	return mo.toResult(result, len(sequence))
}

func (mo *MapboxOptimizer) toResult(resp mapboxTripsResponse, inputLength int) (*models.OptimizationResult, error) {
	if len(resp.Trips) == 0 {
		return nil, &ServiceError{StatusCode: http.StatusOK, Code: "NoTrips", Message: "response contains no trip"}
	}
	if len(resp.Waypoints) != inputLength {
		return nil, fmt.Errorf(
			"%w: expected %d waypoints, got %d", ErrServiceFailure, inputLength, len(resp.Waypoints),
		)
	}

	trip := resp.Trips[0]
	waypoints := make([]models.Waypoint, len(resp.Waypoints))
	for i, wp := range resp.Waypoints {
		waypoints[i] = models.Waypoint{InputIndex: i, VisitOrder: wp.WaypointIndex}
	}

	return &models.OptimizationResult{
		Trip: models.Trip{
			DistanceMeters:  trip.Distance,
			DurationSeconds: trip.Duration,
			Geometry:        trip.Geometry,
		},
		Waypoints: waypoints,
	}, nil
}

// encodeCoordinates renders the sequence as "lng,lat;lng,lat;...".
func encodeCoordinates(sequence []models.Coordinates) string {
	parts := make([]string, len(sequence))
	for i, c := range sequence {
		parts[i] = strconv.FormatFloat(c.Longitude, 'f', -1, 64) + "," + strconv.FormatFloat(c.Latitude, 'f', -1, 64)
	}

	return strings.Join(parts, ";")
}
