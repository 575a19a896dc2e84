package geocoding

import (
	"context"
	"errors"
	"net/http"

	"github.com/UnknownOlympus/waypoint/internal/models"
)

// Provider is an interface that defines a method for geocoding an address.
// The Geocode method takes a context and an address string as input,
// and returns the coordinates of the single best match inside the configured country.
type Provider interface {
	Geocode(ctx context.Context, address string) (*models.Coordinates, error)
}

// Suggester returns autocomplete candidates for a partial address.
// Proximity, when not nil, biases the results around the given point.
type Suggester interface {
	Suggest(ctx context.Context, query string, proximity *models.Coordinates) ([]models.PlaceSuggestion, error)
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

var (
	// ErrNotFound is returned when the provider answers successfully but has no match for the address.
	ErrNotFound = errors.New("no geocoding match for address")
	// ErrServiceFailure wraps every transport, HTTP status, quota or decoding failure of a provider.
	ErrServiceFailure = errors.New("geocoding service failure")
	// ErrEmptyAddress is returned when an empty address is passed to a provider.
	ErrEmptyAddress = errors.New("empty address")
	// ErrSuggestUnsupported is returned when the configured provider has no autocomplete support.
	ErrSuggestUnsupported = errors.New("provider does not support place suggestions")
)
