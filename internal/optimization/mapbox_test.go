package optimization_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/UnknownOlympus/waypoint/internal/models"
	"github.com/UnknownOlympus/waypoint/internal/optimization"
	"github.com/UnknownOlympus/waypoint/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

const testOptimizeURL = "https://mapbox.test/optimized-trips/v1/mapbox"

var sequence = []models.Coordinates{
	{Latitude: 21.0, Longitude: 105.8},
	{Latitude: 21.1, Longitude: 105.9},
	{Latitude: 21.2, Longitude: 106.0},
	{Latitude: 21.0, Longitude: 105.8},
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

func newOptimizer(client optimization.HTTPClient, cfg optimization.MapboxConfig) *optimization.MapboxOptimizer {
	cfg.AccessToken = "pk.test"
	return optimization.NewMapboxOptimizerWithClient(
		client, testOptimizeURL, cfg, rate.NewLimiter(rate.Inf, 1), slog.Default(),
	)
}

func TestMapboxOptimizer_Optimize(t *testing.T) {
	ctx := context.Background()

	t.Run("successful optimization", func(t *testing.T) {
		client := mocks.NewHTTPClient(t)
		client.On("Do", mock.MatchedBy(func(req *http.Request) bool {
			query := req.URL.Query()
			return req.URL.Path == "/optimized-trips/v1/mapbox/driving/105.8,21;105.9,21.1;106,21.2;105.8,21" &&
				query.Get("access_token") == "pk.test" &&
				query.Get("source") == "first" &&
				query.Get("destination") == "last" &&
				query.Get("roundtrip") == "false" &&
				query.Get("geometries") == "polyline"
		})).Return(jsonResponse(http.StatusOK, `{
			"code": "Ok",
			"trips": [{"geometry": "_p~iF~ps|U", "distance": 12345.6, "duration": 1530}],
			"waypoints": [
				{"waypoint_index": 0, "trips_index": 0},
				{"waypoint_index": 2, "trips_index": 0},
				{"waypoint_index": 1, "trips_index": 0},
				{"waypoint_index": 3, "trips_index": 0}
			]
		}`), nil).Once()

		result, err := newOptimizer(client, optimization.MapboxConfig{}).Optimize(ctx, sequence)

		require.NoError(t, err)
		assert.InDelta(t, 12345.6, result.Trip.DistanceMeters, 0.001)
		assert.InDelta(t, 1530, result.Trip.DurationSeconds, 0.001)
		assert.Equal(t, "_p~iF~ps|U", result.Trip.Geometry)
		assert.Equal(t, []models.Waypoint{
			{InputIndex: 0, VisitOrder: 0},
			{InputIndex: 1, VisitOrder: 2},
			{InputIndex: 2, VisitOrder: 1},
			{InputIndex: 3, VisitOrder: 3},
		}, result.Waypoints)
	})

	t.Run("service reports no route", func(t *testing.T) {
		client := mocks.NewHTTPClient(t)
		client.On("Do", mock.Anything).
			Return(jsonResponse(http.StatusOK, `{"code":"NoRoute","message":"No route found"}`), nil).Once()

		_, err := newOptimizer(client, optimization.MapboxConfig{}).Optimize(ctx, sequence)

		var serviceErr *optimization.ServiceError
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, "NoRoute", serviceErr.Code)
		assert.Equal(t, "No route found", serviceErr.Message)
		require.ErrorIs(t, err, optimization.ErrServiceFailure)
	})

	t.Run("unauthorized", func(t *testing.T) {
		client := mocks.NewHTTPClient(t)
		client.On("Do", mock.Anything).
			Return(jsonResponse(http.StatusUnauthorized, `{"message":"Not Authorized - Invalid Token"}`), nil).Once()

		_, err := newOptimizer(client, optimization.MapboxConfig{}).Optimize(ctx, sequence)

		var serviceErr *optimization.ServiceError
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, http.StatusUnauthorized, serviceErr.StatusCode)
		assert.Equal(t, "Unauthorized", serviceErr.Code)
	})

	t.Run("non json error page", func(t *testing.T) {
		client := mocks.NewHTTPClient(t)
		client.On("Do", mock.Anything).Return(jsonResponse(http.StatusBadGateway, `<html>bad gateway</html>`), nil).Once()

		_, err := newOptimizer(client, optimization.MapboxConfig{}).Optimize(ctx, sequence)

		require.ErrorIs(t, err, optimization.ErrServiceFailure)
		assert.Contains(t, err.Error(), "Bad Gateway")
	})

	t.Run("no trips", func(t *testing.T) {
		client := mocks.NewHTTPClient(t)
		client.On("Do", mock.Anything).Return(jsonResponse(http.StatusOK, `{"code":"Ok","trips":[]}`), nil).Once()

		_, err := newOptimizer(client, optimization.MapboxConfig{}).Optimize(ctx, sequence)

		var serviceErr *optimization.ServiceError
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, "NoTrips", serviceErr.Code)
	})

	t.Run("waypoint count mismatch", func(t *testing.T) {
		client := mocks.NewHTTPClient(t)
		client.On("Do", mock.Anything).Return(jsonResponse(http.StatusOK, `{
			"code": "Ok",
			"trips": [{"geometry": "x", "distance": 1, "duration": 1}],
			"waypoints": [{"waypoint_index": 0}, {"waypoint_index": 1}]
		}`), nil).Once()

		_, err := newOptimizer(client, optimization.MapboxConfig{}).Optimize(ctx, sequence)

		require.ErrorIs(t, err, optimization.ErrServiceFailure)
		assert.Contains(t, err.Error(), "expected 4 waypoints, got 2")
	})

	t.Run("transport error", func(t *testing.T) {
		client := mocks.NewHTTPClient(t)
		client.On("Do", mock.Anything).Return(nil, assert.AnError).Once()

		_, err := newOptimizer(client, optimization.MapboxConfig{}).Optimize(ctx, sequence)

		require.ErrorIs(t, err, optimization.ErrServiceFailure)
		require.ErrorIs(t, err, assert.AnError)
	})

	t.Run("sequence too short", func(t *testing.T) {
		client := mocks.NewHTTPClient(t)

		_, err := newOptimizer(client, optimization.MapboxConfig{}).Optimize(ctx, sequence[:2])

		require.ErrorIs(t, err, optimization.ErrSequenceTooShort)
	})

	t.Run("sequence over the limit", func(t *testing.T) {
		client := mocks.NewHTTPClient(t)

		_, err := newOptimizer(client, optimization.MapboxConfig{MaxCoordinates: 3}).Optimize(ctx, sequence)

		require.ErrorIs(t, err, optimization.ErrServiceFailure)
		assert.Contains(t, err.Error(), "4 coordinates exceed the limit of 3")
	})
}

func TestMapboxOptimizer_MaxCoordinates(t *testing.T) {
	testCases := []struct {
		name string
		max  int
		want int
	}{
		{name: "default", max: 0, want: optimization.MapboxMaxCoordinates},
		{name: "lower limit kept", max: 6, want: 6},
		{name: "capped at the api limit", max: 25, want: optimization.MapboxMaxCoordinates},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			optimizer := newOptimizer(mocks.NewHTTPClient(t), optimization.MapboxConfig{MaxCoordinates: tc.max})
			assert.Equal(t, tc.want, optimizer.MaxCoordinates())
		})
	}
}

func TestNewMapboxOptimizer(t *testing.T) {
	optimizer := optimization.NewMapboxOptimizer(optimization.MapboxConfig{AccessToken: "pk.test"}, slog.Default())

	var _ optimization.Optimizer = optimizer
	assert.Equal(t, optimization.MapboxMaxCoordinates, optimizer.MaxCoordinates())
}
