package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantry-finder/internal/api"
	"pantry-finder/internal/db"
	"pantry-finder/internal/geo"
	"pantry-finder/internal/locate"
	"pantry-finder/internal/models"
)

type stubGeocoder struct {
	coords map[string]geo.Coordinate
}

func (s *stubGeocoder) Geocode(_ context.Context, query string) (geo.Coordinate, error) {
	if c, ok := s.coords[query]; ok {
		return c, nil
	}
	return geo.Coordinate{}, errors.New("no results")
}

func newTestServer(t *testing.T, pantries []models.Pantry, coords map[string]geo.Coordinate) *httptest.Server {
	t.Helper()

	database, err := db.New(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	for i := range pantries {
		require.NoError(t, database.UpsertPantry(&pantries[i]))
	}

	resolver := locate.NewResolver(&stubGeocoder{coords: coords}, nil)
	srv := httptest.NewServer(api.NewRouter(database, resolver))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()

	buf, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestNearestEndpoint(t *testing.T) {
	pantries := []models.Pantry{
		{Name: "Far", Address: "F", Latitude: 0.05, Longitude: 0},
		{Name: "Here", Address: "H", Latitude: 0, Longitude: 0},
		{Name: "Near", Address: "N", Latitude: 0.03, Longitude: 0},
	}

	t.Run("ranks by distance from explicit coordinates", func(t *testing.T) {
		srv := newTestServer(t, pantries, nil)

		resp := postJSON(t, srv.URL+"/api/nearest", map[string]interface{}{"lat": 0.0, "lng": 0.0, "limit": 2})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out api.NearestResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		require.Equal(t, 2, out.Count)
		assert.Equal(t, "Here", out.Matches[0].Pantry.Name)
		assert.Equal(t, "Near", out.Matches[1].Pantry.Name)
	})

	t.Run("defaults to the single nearest match", func(t *testing.T) {
		srv := newTestServer(t, pantries, nil)

		resp := postJSON(t, srv.URL+"/api/nearest", map[string]interface{}{"lat": 0.0, "lng": 0.0})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out api.NearestResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		require.Equal(t, 1, out.Count)
		assert.Equal(t, "Here", out.Matches[0].Pantry.Name)
	})

	t.Run("resolves a free-text address", func(t *testing.T) {
		srv := newTestServer(t, pantries, map[string]geo.Coordinate{
			"downtown": {Latitude: 0.03, Longitude: 0},
		})

		resp := postJSON(t, srv.URL+"/api/nearest", map[string]interface{}{"address": "downtown"})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out api.NearestResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		require.Equal(t, 1, out.Count)
		assert.Equal(t, "Near", out.Matches[0].Pantry.Name)
		assert.InDelta(t, 0.03, out.Origin.Latitude, 1e-9)
	})

	t.Run("radius filters distant pantries", func(t *testing.T) {
		srv := newTestServer(t, pantries, nil)

		resp := postJSON(t, srv.URL+"/api/nearest", map[string]interface{}{"lat": 0.0, "lng": 0.0, "limit": 10, "radius_km": 4.0})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out api.NearestResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, 2, out.Count)
	})

	t.Run("unresolvable address yields 422", func(t *testing.T) {
		srv := newTestServer(t, pantries, nil)

		resp := postJSON(t, srv.URL+"/api/nearest", map[string]interface{}{"address": "nowhere special"})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("missing origin yields 400", func(t *testing.T) {
		srv := newTestServer(t, pantries, nil)

		resp := postJSON(t, srv.URL+"/api/nearest", map[string]interface{}{"limit": 3})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("address and coordinates together yield 400", func(t *testing.T) {
		srv := newTestServer(t, pantries, nil)

		resp := postJSON(t, srv.URL+"/api/nearest", map[string]interface{}{"address": "downtown", "lat": 0.0, "lng": 0.0})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("out-of-range latitude fails validation", func(t *testing.T) {
		srv := newTestServer(t, pantries, nil)

		resp := postJSON(t, srv.URL+"/api/nearest", map[string]interface{}{"lat": 200.0, "lng": 0.0})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var out struct {
			Validation []string `json:"validation"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.NotEmpty(t, out.Validation)
	})

	t.Run("empty dataset returns an empty match list", func(t *testing.T) {
		srv := newTestServer(t, nil, nil)

		resp := postJSON(t, srv.URL+"/api/nearest", map[string]interface{}{"lat": 0.0, "lng": 0.0, "limit": 5})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out api.NearestResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, 0, out.Count)
	})
}

func TestPantryEndpoints(t *testing.T) {
	pantries := []models.Pantry{
		{Name: "Bowery Mission", Address: "227 Bowery", Latitude: 40.7224, Longitude: -73.9930},
		{Name: "River Fund", Address: "89-11 Lefferts Blvd", Latitude: 40.6925, Longitude: -73.8312},
	}

	t.Run("health", func(t *testing.T) {
		srv := newTestServer(t, nil, nil)

		resp, err := http.Get(srv.URL + "/api/health")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("lists stored pantries", func(t *testing.T) {
		srv := newTestServer(t, pantries, nil)

		resp, err := http.Get(srv.URL + "/api/pantries")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out struct {
			Pantries []models.Pantry `json:"pantries"`
			Count    int             `json:"count"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, 2, out.Count)
		assert.Len(t, out.Pantries, 2)
	})

	t.Run("filters pantries by name", func(t *testing.T) {
		srv := newTestServer(t, pantries, nil)

		resp, err := http.Get(srv.URL + "/api/pantries?name=river")
		require.NoError(t, err)
		defer resp.Body.Close()

		var out struct {
			Pantries []models.Pantry `json:"pantries"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		require.Len(t, out.Pantries, 1)
		assert.Equal(t, "River Fund", out.Pantries[0].Name)
	})

	t.Run("fetches a pantry by id", func(t *testing.T) {
		srv := newTestServer(t, pantries, nil)

		list, err := http.Get(srv.URL + "/api/pantries")
		require.NoError(t, err)
		defer list.Body.Close()

		var out struct {
			Pantries []models.Pantry `json:"pantries"`
		}
		require.NoError(t, json.NewDecoder(list.Body).Decode(&out))
		require.NotEmpty(t, out.Pantries)

		resp, err := http.Get(fmt.Sprintf("%s/api/pantries/%d", srv.URL, out.Pantries[0].ID))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got models.Pantry
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, out.Pantries[0].Name, got.Name)
	})

	t.Run("unknown pantry id yields 404", func(t *testing.T) {
		srv := newTestServer(t, pantries, nil)

		resp, err := http.Get(srv.URL + "/api/pantries/99999")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("non-numeric pantry id yields 400", func(t *testing.T) {
		srv := newTestServer(t, pantries, nil)

		resp, err := http.Get(srv.URL + "/api/pantries/abc")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("exposes prometheus metrics", func(t *testing.T) {
		srv := newTestServer(t, nil, nil)

		resp, err := http.Get(srv.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
