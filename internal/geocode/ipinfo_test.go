package geocode_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantry-finder/internal/geocode"
)

func TestIPLocator(t *testing.T) {
	ctx := context.Background()

	t.Run("parses the loc field", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"ip":"203.0.113.7","city":"Sydney","loc":"-33.8688,151.2093"}`))
		}))
		defer srv.Close()

		l := geocode.NewIPLocator(geocode.IPLocatorConfig{BaseURL: srv.URL})

		c, err := l.Locate(ctx)
		require.NoError(t, err)
		assert.InDelta(t, -33.8688, c.Latitude, 1e-9)
		assert.InDelta(t, 151.2093, c.Longitude, 1e-9)
	})

	t.Run("missing loc is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"ip":"203.0.113.7"}`))
		}))
		defer srv.Close()

		l := geocode.NewIPLocator(geocode.IPLocatorConfig{BaseURL: srv.URL})

		_, err := l.Locate(ctx)
		assert.Error(t, err)
	})

	t.Run("malformed loc is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"loc":"somewhere"}`))
		}))
		defer srv.Close()

		l := geocode.NewIPLocator(geocode.IPLocatorConfig{BaseURL: srv.URL})

		_, err := l.Locate(ctx)
		assert.Error(t, err)
	})

	t.Run("server errors propagate", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		l := geocode.NewIPLocator(geocode.IPLocatorConfig{BaseURL: srv.URL})

		_, err := l.Locate(ctx)
		assert.Error(t, err)
	})
}
