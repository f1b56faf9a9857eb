// Package ephemeris computes the astronomical inputs of a chart with the
// algorithms of Jean Meeus (github.com/soniakeys/meeus).
package ephemeris

import (
	"fmt"
	"kundli-service/internal/domain"
	"kundli-service/internal/ports"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/apparent"
	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"
)

var _ ports.Ephemeris = (*Engine)(nil)

// Engine is safe for concurrent use.
//
// Planets come from VSOP87B when a data directory is configured and from
// built-in Keplerian orbits otherwise; the latter is good to about two
// arcminutes around the present. Positions are apparent: corrected for light
// time, annual aberration and nutation.
//
// The Julian Day passed to the calculations is UT; it is used directly as the
// dynamical time argument, the sub-minute difference is ignored.
type Engine struct {
	theory planetTheory
}

// NewEngine returns an engine reading VSOP87B files from vsop87Path, or using
// the built-in planet theory when the path is empty. Files are read on the
// first planet calculation unless Preload is called.
func NewEngine(vsop87Path string) *Engine {
	if vsop87Path == "" {
		return &Engine{theory: keplerOrbits{}}
	}
	return &Engine{theory: &vsop87{path: vsop87Path}}
}

// Preload reads the VSOP87 files now so a bad data directory surfaces at
// startup. It is a no-op for the built-in theory.
func (e *Engine) Preload() error {
	if v, ok := e.theory.(*vsop87); ok {
		return v.load()
	}
	return nil
}

func (e *Engine) JulianDay(t time.Time) float64 {
	return julian.TimeToJD(t.UTC())
}

func (e *Engine) Bodies() []domain.Body {
	return domain.Bodies()
}

func (e *Engine) Ayanamsa(jd float64, mode domain.Ayanamsa) (float64, error) {
	return ayanamsa(jd, mode)
}

// Ascendant returns the ecliptic longitude rising on the eastern horizon,
// which is the first cusp of the Placidus house system.
func (e *Engine) Ascendant(jd float64, at domain.Coordinates) (float64, error) {
	if err := at.Validate(); err != nil {
		return 0, fmt.Errorf("ascendant: %w", err)
	}
	if math.Abs(at.Lat) >= 90 {
		return 0, fmt.Errorf("ascendant: undefined at the pole (lat=%v)", at.Lat)
	}

	_, deps := nutation.Nutation(jd)
	eps := nutation.MeanObliquity(jd).Rad() + deps.Rad()

	ramc := sidereal.Apparent(jd).Rad() + at.Lon*math.Pi/180

	return ascendant(ramc, eps, at.Lat*math.Pi/180), nil
}

// ascendant solves for the rising ecliptic point given the right ascension of
// the meridian, the obliquity and the geographic latitude, all in radians.
func ascendant(ramc, eps, lat float64) float64 {
	y := math.Cos(ramc)
	x := -(math.Sin(ramc)*math.Cos(eps) + math.Tan(lat)*math.Sin(eps))
	return domain.Normalize(math.Atan2(y, x) * 180 / math.Pi)
}

// Longitude returns the apparent geocentric ecliptic longitude of body,
// referred to the true equinox of date.
func (e *Engine) Longitude(jd float64, body domain.Body) (float64, error) {
	T := base.J2000Century(jd)
	dpsi, _ := nutation.Nutation(jd)

	switch body {
	case domain.Sun:
		return domain.Normalize(solar.ApparentLongitude(T).Deg()), nil
	case domain.Moon:
		lon, _, _ := moonposition.Position(jd)
		return domain.Normalize(lon.Deg() + dpsi.Deg()), nil
	case domain.Mercury, domain.Venus, domain.Mars, domain.Jupiter,
		domain.Saturn, domain.Uranus, domain.Neptune, domain.Pluto:
		lon, err := e.planet(jd, body)
		if err != nil {
			return 0, err
		}
		return domain.Normalize(lon.Deg() + dpsi.Deg()), nil
	case domain.MeanNode:
		return domain.Normalize(moonposition.Node(jd).Deg() + dpsi.Deg()), nil
	case domain.TrueNode:
		return domain.Normalize(trueNode(jd) + dpsi.Deg()), nil
	case domain.MeanApogee:
		return domain.Normalize(meanApogee(jd) + dpsi.Deg()), nil
	default:
		return 0, fmt.Errorf("longitude: unsupported body %d", int(body))
	}
}

// planet returns the geocentric longitude of a planet corrected for light time
// and aberration, referred to the mean equinox of date.
func (e *Engine) planet(jd float64, body domain.Body) (unit.Angle, error) {
	L0, B0, R0, err := e.theory.earth(jd)
	if err != nil {
		return 0, err
	}

	var (
		lon, lat unit.Angle
		tau      float64
	)
	for range 3 {
		var (
			L, B unit.Angle
			R    float64
		)
		if body == domain.Pluto {
			L, B, R = plutoHeliocentric(jd - tau)
		} else if L, B, R, err = e.theory.heliocentric(jd-tau, body); err != nil {
			return 0, err
		}

		var dist float64
		lon, lat, dist = geometric(L, B, R, L0, B0, R0)
		tau = lightTimePerAU * dist
	}

	dlon, _ := apparent.EclipticAberration(lon, lat, jd)
	return lon + dlon, nil
}
