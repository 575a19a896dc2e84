package geocoding_test

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/UnknownOlympus/waypoint/internal/geocoding"
	"github.com/UnknownOlympus/waypoint/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMapboxURL = "https://mapbox.test/geocoding/v5/mapbox.places/"

func newMapbox(client geocoding.HTTPClient) *geocoding.MapboxProvider {
	return geocoding.NewMapboxProviderWithClient(client, testMapboxURL, "pk.test", "VN", unlimited(), slog.Default())
}

func TestMapboxProvider_Geocode(t *testing.T) {
	ctx := context.Background()

	t.Run("successful geocoding", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, http.MethodGet, req.Method)
				assert.Equal(t, "/geocoding/v5/mapbox.places/1 Dai Co Viet, Ha Noi.json", req.URL.Path)
				assert.Equal(t, "pk.test", req.URL.Query().Get("access_token"))
				assert.Equal(t, "vn", req.URL.Query().Get("country"))
				assert.Equal(t, "1", req.URL.Query().Get("limit"))

				return respond(http.StatusOK,
					`{"features":[{"id":"address.1","place_name":"1 Dai Co Viet","center":[105.8431,21.0058]}]}`)(req)
			},
		}

		coords, err := newMapbox(mockClient).Geocode(ctx, "1 Dai Co Viet, Ha Noi")

		require.NoError(t, err)
		assert.InEpsilon(t, 21.0058, coords.Latitude, 0.0001)
		assert.InEpsilon(t, 105.8431, coords.Longitude, 0.0001)
	})

	t.Run("no features", func(t *testing.T) {
		provider := newMapbox(&mockHTTPClient{doFunc: respond(http.StatusOK, `{"features":[]}`)})

		coords, err := provider.Geocode(ctx, "atlantis")

		require.Nil(t, coords)
		require.ErrorIs(t, err, geocoding.ErrNotFound)
	})

	t.Run("unauthorized token", func(t *testing.T) {
		provider := newMapbox(&mockHTTPClient{doFunc: respond(http.StatusUnauthorized, `{"message":"Not Authorized - Invalid Token"}`)})

		_, err := provider.Geocode(ctx, "somewhere")

		require.ErrorIs(t, err, geocoding.ErrServiceFailure)
		assert.Contains(t, err.Error(), "status 401: Not Authorized - Invalid Token")
	})

	t.Run("malformed center", func(t *testing.T) {
		provider := newMapbox(&mockHTTPClient{doFunc: respond(http.StatusOK, `{"features":[{"id":"x","center":[1]}]}`)})

		_, err := provider.Geocode(ctx, "somewhere")

		require.ErrorIs(t, err, geocoding.ErrServiceFailure)
	})

	t.Run("undecodable body", func(t *testing.T) {
		provider := newMapbox(&mockHTTPClient{doFunc: respond(http.StatusOK, `<html>`)})

		_, err := provider.Geocode(ctx, "somewhere")

		require.ErrorIs(t, err, geocoding.ErrServiceFailure)
	})

	t.Run("blank address", func(t *testing.T) {
		_, err := newMapbox(&mockHTTPClient{}).Geocode(ctx, " \t")

		require.ErrorIs(t, err, geocoding.ErrEmptyAddress)
	})
}

func TestMapboxProvider_Suggest(t *testing.T) {
	ctx := context.Background()

	t.Run("returns candidates biased by proximity", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				query := req.URL.Query()
				assert.True(t, strings.HasSuffix(req.URL.Path, "/coffee.json"))
				assert.Equal(t, "true", query.Get("autocomplete"))
				assert.Equal(t, "5", query.Get("limit"))
				assert.Equal(t, "poi,address", query.Get("types"))
				assert.Equal(t, "105.85,21.02", query.Get("proximity"))

				return respond(http.StatusOK, `{"features":[
					{"id":"poi.1","place_name":"Coffee One","center":[105.851,21.021]},
					{"id":"poi.2","place_name":"Broken","center":[]},
					{"id":"poi.3","place_name":"Coffee Three","center":[105.86,21.03]}
				]}`)(req)
			},
		}

		suggestions, err := newMapbox(mockClient).Suggest(ctx, "coffee", &models.Coordinates{Latitude: 21.02, Longitude: 105.85})

		require.NoError(t, err)
		require.Len(t, suggestions, 2)
		assert.Equal(t, "poi.1", suggestions[0].ID)
		assert.Equal(t, "Coffee One", suggestions[0].Name)
		assert.InEpsilon(t, 21.021, suggestions[0].Center.Latitude, 0.0001)
		assert.Equal(t, "poi.3", suggestions[1].ID)
	})

	t.Run("no proximity parameter without user location", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Empty(t, req.URL.Query().Get("proximity"))
				return respond(http.StatusOK, `{"features":[]}`)(req)
			},
		}

		suggestions, err := newMapbox(mockClient).Suggest(ctx, "bank", nil)

		require.NoError(t, err)
		assert.Empty(t, suggestions)
	})

	t.Run("empty query", func(t *testing.T) {
		_, err := newMapbox(&mockHTTPClient{}).Suggest(ctx, "", nil)

		require.ErrorIs(t, err, geocoding.ErrEmptyAddress)
	})
}
