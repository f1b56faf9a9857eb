package geocode

import (
	"context"
	"errors"
	"kundli-service/internal/domain"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestORSGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geocode/search", r.URL.Path)
		assert.Equal(t, "Mumbai, India", r.URL.Query().Get("text"))
		assert.Equal(t, "secret", r.Header.Get("Authorization"))

		w.Write([]byte(`{"features":[{"geometry":{"coordinates":[72.8777,19.076]}}]}`))
	}))
	defer srv.Close()

	g, err := NewORSGeocoder(srv.URL, "secret", time.Second, 1)
	require.NoError(t, err)

	got, err := g.Geocode(context.Background(), "Mumbai, India")
	require.NoError(t, err)
	assert.Equal(t, domain.Coordinates{Lon: 72.8777, Lat: 19.076}, got)
}

func TestORSGeocodeNoFeatures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features":[]}`))
	}))
	defer srv.Close()

	g, err := NewORSGeocoder(srv.URL, "secret", time.Second, 1)
	require.NoError(t, err)

	_, err = g.Geocode(context.Background(), "Atlantis, Nowhere")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestNewORSGeocoderRequiresKey(t *testing.T) {
	_, err := NewORSGeocoder("", "", time.Second, 1)
	require.Error(t, err)
}
