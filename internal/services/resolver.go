package services

import (
	"context"
	"errors"
	"fmt"
	"kundli-service/internal/domain"
	"kundli-service/internal/ports"
	"time"

	"github.com/sirupsen/logrus"
)

// Resolution is a birth moment pinned to UTC and a place on the globe.
type Resolution struct {
	UTC   time.Time
	At    domain.Coordinates
	Zone  *time.Location
	Place string
}

// Resolver turns a BirthQuery into coordinates and a UTC instant.
//
// With Fallback set (fixed-zone mode) a failed or empty geocode is retried
// against the fallback table before giving up. Zones decides which zone the
// naive local time is read in; a failure there names the place.
type Resolver struct {
	Geocoder ports.Geocoder
	Fallback ports.Geocoder
	Zones    ports.ZoneLocator
}

func (r *Resolver) Resolve(ctx context.Context, q domain.BirthQuery) (*Resolution, error) {
	if r.Geocoder == nil || r.Zones == nil {
		return nil, errors.New("resolve: geocoder and zone locator are required")
	}

	place := q.Place()

	at, err := r.locate(ctx, place)
	if err != nil {
		return nil, err
	}

	loc, err := r.Zones.LookupZone(ctx, at)
	if err != nil {
		return nil, &domain.TimezoneError{City: q.City, Country: q.Country, Err: err}
	}

	return &Resolution{
		UTC:   q.In(loc).UTC(),
		At:    at,
		Zone:  loc,
		Place: place,
	}, nil
}

func (r *Resolver) locate(ctx context.Context, place string) (domain.Coordinates, error) {
	at, err := r.Geocoder.Geocode(ctx, place)
	if err == nil {
		return at, nil
	}

	if r.Fallback == nil {
		logrus.WithError(err).WithField("place", place).Info("geocode failed")
		return domain.Coordinates{}, fmt.Errorf("resolve %q: %w: %w", place, domain.ErrLocationUnresolved, err)
	}

	at, fbErr := r.Fallback.Geocode(ctx, place)
	if fbErr != nil {
		logrus.WithError(err).WithField("place", place).Info("geocode and fallback failed")
		return domain.Coordinates{}, fmt.Errorf("resolve %q: %w: %w", place, domain.ErrLocationUnresolved, err)
	}

	logrus.WithError(err).WithField("place", place).Debug("geocode failed, using fallback table")
	return at, nil
}
