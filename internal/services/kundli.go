package services

import (
	"context"
	"errors"
	"fmt"
	"kundli-service/internal/domain"
	"kundli-service/internal/ports"
)

// KundliService orchestrates resolution and chart casting for one request.
type KundliService struct {
	Resolver  *Resolver
	Ephemeris ports.Ephemeris
}

func NewKundliService(resolver *Resolver, eph ports.Ephemeris) (*KundliService, error) {
	if resolver == nil || eph == nil {
		return nil, errors.New("kundli service: resolver and ephemeris are required")
	}
	return &KundliService{Resolver: resolver, Ephemeris: eph}, nil
}

// Cast resolves the query's place and time, then casts its chart.
func (s *KundliService) Cast(ctx context.Context, q domain.BirthQuery) (*domain.Chart, error) {
	res, err := s.Resolver.Resolve(ctx, q)
	if err != nil {
		return nil, err
	}

	mode := q.Ayanamsa
	if mode == "" {
		mode = domain.Lahiri
	}

	jd := s.Ephemeris.JulianDay(res.UTC)

	chart, err := CastChart(ctx, s.Ephemeris, jd, res.At, mode)
	if err != nil {
		return nil, fmt.Errorf("kundli for %q at %s: %w", res.Place, res.UTC.Format("2006-01-02T15:04:05Z"), err)
	}

	return chart, nil
}
