package services

import (
	"context"
	"fmt"
	"kundli-service/internal/domain"
	"kundli-service/internal/platform/obs"
	"kundli-service/internal/ports"
)

// Empirical corrections applied after the ayanamsa to every longitude,
// the ascendant included. Kept exactly for compatibility with existing charts.
const (
	SiderealDelta = 0.88
	UniformOffset = 1.0
)

// Lagna, 12 single bodies, Ketu and Rahu.
const positionsCount = 15

// Sidereal converts a tropical longitude to the corrected sidereal longitude in [0, 360).
func Sidereal(tropical, ayanamsa float64) float64 {
	return domain.Normalize(tropical - ayanamsa + SiderealDelta - UniformOffset)
}

type bodyLongitude struct {
	body domain.Body
	lon  float64
}

// CastChart computes the ordered chart for a Julian Day and place.
//
// Lagna comes first, then every body the engine enumerates in engine order.
// The true node expands into Ketu followed by Rahu, Ketu sitting opposite.
func CastChart(
	ctx context.Context,
	eph ports.Ephemeris,
	jd float64,
	at domain.Coordinates,
	mode domain.Ayanamsa,
) (_ *domain.Chart, err error) {
	defer obs.Time(ctx, "ephemeris.CastChart")(&err)

	ayan, err := eph.Ayanamsa(jd, mode)
	if err != nil {
		return nil, fmt.Errorf("cast chart: ayanamsa: %w", err)
	}

	asc, err := eph.Ascendant(jd, at)
	if err != nil {
		return nil, fmt.Errorf("cast chart: ascendant: %w", err)
	}

	bodies := eph.Bodies()
	longitudes := make([]bodyLongitude, 0, len(bodies))
	for _, b := range bodies {
		lon, err := eph.Longitude(jd, b)
		if err != nil {
			return nil, fmt.Errorf("cast chart: %s: %w", b, err)
		}
		longitudes = append(longitudes, bodyLongitude{body: b, lon: Sidereal(lon, ayan)})
	}

	positions := make([]domain.Position, 0, positionsCount)
	positions = append(positions, domain.NewPosition(domain.LagnaName, Sidereal(asc, ayan)))
	for _, bl := range longitudes {
		positions = append(positions, expand(bl)...)
	}

	return &domain.Chart{Positions: positions}, nil
}

// expand maps one body to its chart entries.
func expand(bl bodyLongitude) []domain.Position {
	if bl.body != domain.TrueNode {
		return []domain.Position{domain.NewPosition(bl.body.Name(), bl.lon)}
	}
	return []domain.Position{
		domain.NewPosition(domain.KetuName, bl.lon+180),
		domain.NewPosition(domain.RahuName, bl.lon),
	}
}
