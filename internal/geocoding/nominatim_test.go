package geocoding_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/UnknownOlympus/waypoint/internal/geocoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func respond(status int, body string) func(*http.Request) (*http.Response, error) {
	return func(_ *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(bytes.NewBufferString(body)),
		}, nil
	}
}

func unlimited() *rate.Limiter {
	return rate.NewLimiter(rate.Inf, 1)
}

func newNominatim(client geocoding.HTTPClient) *geocoding.NominatimProvider {
	return geocoding.NewNominatimProviderWithClient(client, geocoding.NominatimBaseURL, "VN", unlimited(), slog.Default())
}

func TestNominatimProvider_Geocode(t *testing.T) {
	ctx := context.Background()

	t.Run("successful geocoding", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, http.MethodGet, req.Method)
				assert.Contains(t, req.URL.String(), "nominatim.openstreetmap.org")
				assert.Equal(t, "1 Dai Co Viet, Ha Noi", req.URL.Query().Get("q"))
				assert.Equal(t, "json", req.URL.Query().Get("format"))
				assert.Equal(t, "1", req.URL.Query().Get("limit"))
				assert.Equal(t, "vn", req.URL.Query().Get("countrycodes"))
				assert.Equal(
					t,
					"Waypoint-Route-Optimizer/1.0 (https://github.com/UnknownOlympus/waypoint)",
					req.Header.Get("User-Agent"),
				)

				return respond(http.StatusOK, `[{"lat":"21.0058","lon":"105.8431"}]`)(req)
			},
		}

		coords, err := newNominatim(mockClient).Geocode(ctx, "  1 Dai Co Viet, Ha Noi ")

		require.NoError(t, err)
		require.NotNil(t, coords)
		assert.InEpsilon(t, 21.0058, coords.Latitude, 0.0001)
		assert.InEpsilon(t, 105.8431, coords.Longitude, 0.0001)
	})

	t.Run("empty response from API", func(t *testing.T) {
		provider := newNominatim(&mockHTTPClient{doFunc: respond(http.StatusOK, `[]`)})

		coords, err := provider.Geocode(ctx, "invalid address")

		require.Nil(t, coords)
		require.ErrorIs(t, err, geocoding.ErrNotFound)
	})

	t.Run("non-200 status code", func(t *testing.T) {
		provider := newNominatim(&mockHTTPClient{doFunc: respond(http.StatusTooManyRequests, "slow down")})

		coords, err := provider.Geocode(ctx, "some address")

		require.Nil(t, coords)
		require.ErrorIs(t, err, geocoding.ErrServiceFailure)
		assert.Contains(t, err.Error(), "nominatim API returned status 429")
	})

	t.Run("invalid JSON response", func(t *testing.T) {
		provider := newNominatim(&mockHTTPClient{doFunc: respond(http.StatusOK, `{invalid json}`)})

		_, err := provider.Geocode(ctx, "some address")

		require.ErrorIs(t, err, geocoding.ErrServiceFailure)
		assert.Contains(t, err.Error(), "failed to decode nominatim response")
	})

	t.Run("invalid latitude format", func(t *testing.T) {
		provider := newNominatim(&mockHTTPClient{doFunc: respond(http.StatusOK, `[{"lat":"north","lon":"105.8"}]`)})

		_, err := provider.Geocode(ctx, "some address")

		require.ErrorIs(t, err, geocoding.ErrServiceFailure)
		assert.Contains(t, err.Error(), "invalid latitude")
	})

	t.Run("invalid longitude format", func(t *testing.T) {
		provider := newNominatim(&mockHTTPClient{doFunc: respond(http.StatusOK, `[{"lat":"21.0","lon":"east"}]`)})

		_, err := provider.Geocode(ctx, "some address")

		require.ErrorIs(t, err, geocoding.ErrServiceFailure)
		assert.Contains(t, err.Error(), "invalid longitude")
	})

	t.Run("HTTP client error", func(t *testing.T) {
		provider := newNominatim(&mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, errors.New("connection refused")
			},
		})

		_, err := provider.Geocode(ctx, "some address")

		require.ErrorIs(t, err, geocoding.ErrServiceFailure)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("empty address never reaches the API", func(t *testing.T) {
		provider := newNominatim(&mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				t.Fatal("unexpected request")
				return nil, nil
			},
		})

		_, err := provider.Geocode(ctx, "")

		require.ErrorIs(t, err, geocoding.ErrEmptyAddress)
	})

	t.Run("cancelled context aborts the rate limit wait", func(t *testing.T) {
		limiter := rate.NewLimiter(rate.Limit(0.001), 1)
		require.True(t, limiter.Allow())
		provider := geocoding.NewNominatimProviderWithClient(
			&mockHTTPClient{doFunc: respond(http.StatusOK, `[]`)},
			geocoding.NominatimBaseURL, "", limiter, slog.Default(),
		)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := provider.Geocode(cancelled, "some address")

		require.ErrorIs(t, err, geocoding.ErrServiceFailure)
	})
}

func TestNewNominatimProvider(t *testing.T) {
	provider := geocoding.NewNominatimProvider("vn", 1, 0, slog.Default())

	require.NotNil(t, provider)
	var _ geocoding.Provider = provider
}
