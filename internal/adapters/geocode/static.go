package geocode

import (
	"context"
	"fmt"
	"kundli-service/internal/domain"
	"kundli-service/internal/ports"
)

var _ ports.Geocoder = (*StaticGeocoder)(nil)

// StaticGeocoder answers from a fixed place -> coordinate table.
// Keys are matched after whitespace normalization, case-sensitively.
type StaticGeocoder struct {
	m map[string]domain.Coordinates
}

func NewStaticGeocoder(table map[string]domain.Coordinates) *StaticGeocoder {
	m := make(map[string]domain.Coordinates, len(table))
	for k, v := range table {
		m[normalize(k)] = v
	}
	return &StaticGeocoder{m: m}
}

// Fallback table of well-known cities consulted when the live geocoder fails.
func KnownCities() *StaticGeocoder {
	return NewStaticGeocoder(map[string]domain.Coordinates{
		"Bangalore, India": {Lat: 12.9716, Lon: 77.5946},
		"Chennai, India":   {Lat: 13.0827, Lon: 80.2707},
		"Delhi, India":     {Lat: 28.6139, Lon: 77.2090},
		"Mumbai, India":    {Lat: 19.0760, Lon: 72.8777},
		"Kolkata, India":   {Lat: 22.5726, Lon: 88.3639},
	})
}

func (s *StaticGeocoder) Geocode(ctx context.Context, place string) (domain.Coordinates, error) {
	c, ok := s.m[normalize(place)]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("static table has no entry for %q: %w", place, domain.ErrNotFound)
	}
	return c, nil
}
