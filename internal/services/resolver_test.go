package services

import (
	"context"
	"errors"
	"kundli-service/internal/adapters/geocode"
	"kundli-service/internal/adapters/timezone"
	"kundli-service/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingGeocoder struct{ err error }

func (g failingGeocoder) Geocode(ctx context.Context, place string) (domain.Coordinates, error) {
	return domain.Coordinates{}, g.err
}

type failingZones struct{}

func (failingZones) LookupZone(ctx context.Context, at domain.Coordinates) (*time.Location, error) {
	return nil, errors.New("ocean")
}

func mustQuery(t *testing.T, dob, tob, city, country string) domain.BirthQuery {
	t.Helper()
	q, err := domain.NewBirthQuery(dob, tob, city, country)
	require.NoError(t, err)
	return q
}

func fixedIST(t *testing.T) *timezone.FixedLocator {
	t.Helper()
	z, err := timezone.NewFixedLocator("Asia/Kolkata")
	require.NoError(t, err)
	return z
}

func TestResolverFixedZone(t *testing.T) {
	r := &Resolver{
		Geocoder: geocode.NewStaticGeocoder(map[string]domain.Coordinates{
			"Paris, France": {Lat: 48.8566, Lon: 2.3522},
		}),
		Zones: fixedIST(t),
	}

	res, err := r.Resolve(context.Background(), mustQuery(t, "1990-05-17", "10:00:00", "Paris", "France"))
	require.NoError(t, err)

	// Fixed mode reads every local time as IST, wherever the place is.
	assert.Equal(t, time.Date(1990, 5, 17, 4, 30, 0, 0, time.UTC), res.UTC)
	assert.Equal(t, domain.Coordinates{Lat: 48.8566, Lon: 2.3522}, res.At)
}

func TestResolverFallsBackToKnownCities(t *testing.T) {
	r := &Resolver{
		Geocoder: failingGeocoder{err: errors.New("connection refused")},
		Fallback: geocode.KnownCities(),
		Zones:    fixedIST(t),
	}

	res, err := r.Resolve(context.Background(), mustQuery(t, "2000-01-01", "00:00:00", " Bangalore ", "India"))
	require.NoError(t, err)
	assert.Equal(t, domain.Coordinates{Lat: 12.9716, Lon: 77.5946}, res.At)
	assert.Equal(t, time.Date(1999, 12, 31, 18, 30, 0, 0, time.UTC), res.UTC)
}

func TestResolverUnresolvable(t *testing.T) {
	r := &Resolver{
		Geocoder: failingGeocoder{err: domain.ErrNotFound},
		Fallback: geocode.KnownCities(),
		Zones:    fixedIST(t),
	}

	_, err := r.Resolve(context.Background(), mustQuery(t, "2000-01-01", "00:00:00", "Nowhereville", "Atlantis"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLocationUnresolved)
}

func TestResolverLookupModeHasNoFallback(t *testing.T) {
	r := &Resolver{
		Geocoder: failingGeocoder{err: domain.ErrNotFound},
		Zones:    timezone.NewLatLongLocator(),
	}

	_, err := r.Resolve(context.Background(), mustQuery(t, "2000-01-01", "00:00:00", "Bangalore", "India"))
	assert.ErrorIs(t, err, domain.ErrLocationUnresolved)
}

func TestResolverLookupZone(t *testing.T) {
	r := &Resolver{
		Geocoder: geocode.NewStaticGeocoder(map[string]domain.Coordinates{
			"Tokyo, Japan": {Lat: 35.6762, Lon: 139.6503},
		}),
		Zones: timezone.NewLatLongLocator(),
	}

	res, err := r.Resolve(context.Background(), mustQuery(t, "2001-07-04", "09:00:00", "Tokyo", "Japan"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2001, 7, 4, 0, 0, 0, 0, time.UTC), res.UTC)
}

func TestResolverTimezoneFailureNamesPlace(t *testing.T) {
	r := &Resolver{
		Geocoder: geocode.NewStaticGeocoder(map[string]domain.Coordinates{
			"Point Nemo, Pacific": {Lat: -48.87, Lon: -123.39},
		}),
		Zones: failingZones{},
	}

	_, err := r.Resolve(context.Background(), mustQuery(t, "2001-07-04", "09:00:00", "Point Nemo", "Pacific"))
	require.Error(t, err)

	var tzErr *domain.TimezoneError
	require.ErrorAs(t, err, &tzErr)
	assert.Equal(t, "Could not determine timezone for Point Nemo, Pacific", err.Error())
}

func TestResolverRequiresCollaborators(t *testing.T) {
	_, err := (&Resolver{}).Resolve(context.Background(), mustQuery(t, "2001-07-04", "09:00:00", "a", "b"))
	require.Error(t, err)
}
