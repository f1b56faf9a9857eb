package services

import (
	"context"
	"kundli-service/internal/adapters/ephemeris"
	"kundli-service/internal/adapters/geocode"
	"kundli-service/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKundliServiceCast(t *testing.T) {
	eph := newFakeEphemeris()
	resolver := &Resolver{
		Geocoder: failingGeocoder{err: domain.ErrNotFound},
		Fallback: geocode.KnownCities(),
		Zones:    fixedIST(t),
	}

	svc, err := NewKundliService(resolver, eph)
	require.NoError(t, err)

	q := mustQuery(t, "1990-05-17", "10:00:00", "Bangalore", "India")
	q.Ayanamsa = ""

	chart, err := svc.Cast(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, "Lagna", chart.Names()[0])
	assert.Equal(t, []domain.Ayanamsa{domain.Lahiri}, eph.modes)
}

func TestKundliServiceCastWithBuiltInEphemeris(t *testing.T) {
	resolver := &Resolver{Geocoder: geocode.KnownCities(), Zones: fixedIST(t)}
	svc, err := NewKundliService(resolver, ephemeris.NewEngine(""))
	require.NoError(t, err)

	chart, err := svc.Cast(context.Background(), mustQuery(t, "1990-05-17", "10:00:00", "Bangalore", "India"))
	require.NoError(t, err)

	require.Len(t, chart.Positions, 15)
	assert.Equal(t, []string{
		"Lagna", "Sun", "Moon", "Mercury", "Venus", "Mars", "Jupiter", "Saturn",
		"Uranus", "Neptune", "Pluto", "mean Node", "Ketu", "Rahu", "mean Apogee",
	}, chart.Names())

	for _, p := range chart.Positions {
		assert.GreaterOrEqual(t, p.Longitude, 0.0, p.Name)
		assert.Less(t, p.Longitude, 360.0, p.Name)
	}

	// Mid-May the Sun is early in sidereal Taurus.
	sun, ok := chart.Find("Sun")
	require.True(t, ok)
	assert.InDelta(t, 32.5, sun.Longitude, 1.0)

	rahu, _ := chart.Find("Rahu")
	ketu, _ := chart.Find("Ketu")
	assert.InDelta(t, 180, domain.Normalize(ketu.Longitude-rahu.Longitude), 1e-9)
}

func TestKundliServiceUsesUTCJulianDay(t *testing.T) {
	eph := &recordingEphemeris{fakeEphemeris: newFakeEphemeris()}
	resolver := &Resolver{Geocoder: geocode.KnownCities(), Zones: fixedIST(t)}

	svc, err := NewKundliService(resolver, eph)
	require.NoError(t, err)

	_, err = svc.Cast(context.Background(), mustQuery(t, "1990-05-17", "10:00:00", "Delhi", "India"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(1990, 5, 17, 4, 30, 0, 0, time.UTC), eph.at)
}

func TestKundliServiceUnresolved(t *testing.T) {
	resolver := &Resolver{Geocoder: geocode.KnownCities(), Fallback: geocode.KnownCities(), Zones: fixedIST(t)}
	svc, err := NewKundliService(resolver, newFakeEphemeris())
	require.NoError(t, err)

	_, err = svc.Cast(context.Background(), mustQuery(t, "1990-05-17", "10:00:00", "Nowhereville", "Atlantis"))
	assert.ErrorIs(t, err, domain.ErrLocationUnresolved)
}

func TestNewKundliServiceRequiresCollaborators(t *testing.T) {
	_, err := NewKundliService(nil, newFakeEphemeris())
	require.Error(t, err)
}

type recordingEphemeris struct {
	*fakeEphemeris
	at time.Time
}

func (r *recordingEphemeris) JulianDay(t time.Time) float64 {
	r.at = t
	return r.fakeEphemeris.JulianDay(t)
}
