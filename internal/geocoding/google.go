package geocoding

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/UnknownOlympus/waypoint/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider is a struct that holds the client for Google Maps API
// and a logger for logging purposes. It is used to interact with the
// Google Maps geocoding services.
type GoogleProvider struct {
	client  GoogleAPIClient // client is the Google Maps API client
	country string          // country restricts results through the components filter
	log     *slog.Logger    // log is the logger for logging operations
}

type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// NewGoogleProvider initializes a new GoogleProvider around an existing Google Maps client.
func NewGoogleProvider(client GoogleAPIClient, country string, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, country: strings.ToUpper(country), log: log}
}

// Geocode returns the coordinates of the first Google Maps result for the address.
// Results are restricted to the configured country when one is set.
func (gp *GoogleProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, ErrEmptyAddress
	}

	gp.log.DebugContext(ctx, "Geocoding using Google Maps", "address", address)

	req := gp.request(address)
	geocodeResponse, err := gp.client.Geocode(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to geocode address: %w", ErrServiceFailure, err)
	}

	if len(geocodeResponse) == 0 {
		return nil, ErrNotFound
	}
	coords := geocodeResponse[0].Geometry.Location

	return &models.Coordinates{Longitude: coords.Lng, Latitude: coords.Lat}, nil
}

func (gp *GoogleProvider) request(address string) *maps.GeocodingRequest {
	req := &maps.GeocodingRequest{Address: address}
	if gp.country != "" {
		req.Components = map[maps.Component]string{maps.ComponentCountry: gp.country}
	}

	return req
}
