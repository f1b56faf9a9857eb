package timezone

import (
	"context"
	"errors"
	"fmt"
	"kundli-service/internal/domain"
	"kundli-service/internal/ports"
	"time"
	_ "time/tzdata"

	"github.com/bradfitz/latlong"
)

var _ ports.ZoneLocator = (*LatLongLocator)(nil)

// LatLongLocator maps coordinates to IANA zones with the offline tables
// bundled in github.com/bradfitz/latlong. No network calls are made.
type LatLongLocator struct{}

func NewLatLongLocator() *LatLongLocator { return &LatLongLocator{} }

// LookupZone returns the zone in effect at the coordinates.
func (l *LatLongLocator) LookupZone(ctx context.Context, at domain.Coordinates) (*time.Location, error) {
	if err := at.Validate(); err != nil {
		return nil, fmt.Errorf("lookup zone: %w", err)
	}

	name := latlong.LookupZoneName(at.Lat, at.Lon)
	if name == "tables not generated yet" {
		return nil, errors.New("lookup zone: tables data not initialized")
	}
	if name == "" {
		return nil, fmt.Errorf("lookup zone: unknown zone at lat=%v lon=%v", at.Lat, at.Lon)
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("lookup zone: load %q: %w", name, err)
	}

	return loc, nil
}

// FixedLocator answers the same zone for every coordinate.
type FixedLocator struct {
	loc *time.Location
}

func NewFixedLocator(name string) (*FixedLocator, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("fixed zone %q: %w", name, err)
	}
	return &FixedLocator{loc: loc}, nil
}

func (f *FixedLocator) LookupZone(ctx context.Context, at domain.Coordinates) (*time.Location, error) {
	return f.loc, nil
}
