package api

import (
	"encoding/json"
	"kundli-service/internal/adapters/geocode"
	"kundli-service/internal/adapters/timezone"
	"kundli-service/internal/api/dto"
	"kundli-service/internal/domain"
	"kundli-service/internal/services"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// steppedEphemeris places body b at 30b + 7 degrees tropical.
type steppedEphemeris struct{}

func (steppedEphemeris) JulianDay(t time.Time) float64 {
	return float64(t.Unix())/86400 + 2440587.5
}

func (steppedEphemeris) Ayanamsa(jd float64, mode domain.Ayanamsa) (float64, error) {
	return 23.7, nil
}

func (steppedEphemeris) Ascendant(jd float64, at domain.Coordinates) (float64, error) {
	return 200, nil
}

func (steppedEphemeris) Bodies() []domain.Body { return domain.Bodies() }

func (steppedEphemeris) Longitude(jd float64, body domain.Body) (float64, error) {
	return float64(body)*30 + 7, nil
}

func newTestRouter(t *testing.T, strict bool) http.Handler {
	t.Helper()

	zones, err := timezone.NewFixedLocator("Asia/Kolkata")
	require.NoError(t, err)

	resolver := &services.Resolver{
		Geocoder: geocode.NewStaticGeocoder(nil),
		Fallback: geocode.KnownCities(),
		Zones:    zones,
	}
	svc, err := services.NewKundliService(resolver, steppedEphemeris{})
	require.NoError(t, err)

	return NewRouter(svc, Options{
		DefaultAyanamsa: domain.Lahiri,
		StrictStatus:    strict,
		CORSOrigins:     "*",
	})
}

func TestKundliEndToEnd(t *testing.T) {
	router := newTestRouter(t, false)

	body := `{"dob":"1990-05-17","tob":"10:00:00","city":"Bangalore","country":"India"}`
	req := httptest.NewRequest(http.MethodPost, "/api/kundli", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var res dto.KundliResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	require.Len(t, res.Graha, 15)
	assert.Len(t, res.Longitude, 15)
	assert.Len(t, res.Formatted, 15)
	assert.Equal(t, "Lagna", res.Graha[0])

	rahu, ketu := -1, -1
	for i, g := range res.Graha {
		switch g {
		case "Rahu":
			require.Equal(t, -1, rahu, "Rahu appears twice")
			rahu = i
		case "Ketu":
			require.Equal(t, -1, ketu, "Ketu appears twice")
			ketu = i
		}
	}
	require.NotEqual(t, -1, rahu)
	assert.Equal(t, rahu-1, ketu)
	assert.InDelta(t, 180, domain.Normalize(res.Longitude[ketu]-res.Longitude[rahu]), 1e-9)

	for _, lon := range res.Longitude {
		assert.GreaterOrEqual(t, lon, 0.0)
		assert.Less(t, lon, 360.0)
	}
}

func TestKundliUnresolvableCity(t *testing.T) {
	for _, strict := range []bool{false, true} {
		router := newTestRouter(t, strict)

		body := `{"dob":"1990-05-17","tob":"10:00:00","city":"Nowhereville","country":"Atlantis"}`
		req := httptest.NewRequest(http.MethodPost, "/api/kundli", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		want := http.StatusOK
		if strict {
			want = http.StatusUnprocessableEntity
		}
		assert.Equal(t, want, rec.Code)
		assert.JSONEq(t, `{"error":"Could not resolve location"}`, rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t, false).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouterMisses(t *testing.T) {
	router := newTestRouter(t, false)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/kundli", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"error":"method not allowed"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not found"}`, rec.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/kundli", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := httptest.NewRecorder()
	newTestRouter(t, false).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDIsKept(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")

	rec := httptest.NewRecorder()
	newTestRouter(t, false).ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, splitOrigins(""))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, splitOrigins(" https://a.example, https://b.example ,"))
}
