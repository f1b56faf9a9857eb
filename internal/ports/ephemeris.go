package ports

import (
	"kundli-service/internal/domain"
	"time"
)

// Contract for the astronomical engine behind the chart.
//
// All longitudes are tropical ecliptic degrees. The sidereal reference is an
// explicit argument, so implementations hold no per-request mode.
type Ephemeris interface {
	// Convert a UTC instant to a Julian Day (UT).
	JulianDay(t time.Time) float64
	// Ayanamsa value in degrees at jd for the given reference.
	Ayanamsa(jd float64, mode domain.Ayanamsa) (float64, error)
	// Ascendant (first Placidus cusp) in degrees at jd for the observer.
	Ascendant(jd float64, at domain.Coordinates) (float64, error)
	// Bodies the engine enumerates, in engine order.
	Bodies() []domain.Body
	// Geocentric longitude of a body in degrees at jd.
	Longitude(jd float64, body domain.Body) (float64, error)
}
