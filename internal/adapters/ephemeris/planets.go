package ephemeris

import (
	"fmt"
	"kundli-service/internal/domain"
	"math"
	"sync"

	pp "github.com/soniakeys/meeus/v3/planetposition"
	"github.com/soniakeys/meeus/v3/pluto"
	"github.com/soniakeys/unit"
)

// planetTheory yields heliocentric ecliptic coordinates referred to the mean
// equinox of date, with the radius vector in AU.
type planetTheory interface {
	heliocentric(jd float64, body domain.Body) (L, B unit.Angle, R float64, err error)
	earth(jd float64) (L, B unit.Angle, R float64, err error)
}

var vsopIndex = map[domain.Body]int{
	domain.Mercury: pp.Mercury,
	domain.Venus:   pp.Venus,
	domain.Mars:    pp.Mars,
	domain.Jupiter: pp.Jupiter,
	domain.Saturn:  pp.Saturn,
	domain.Uranus:  pp.Uranus,
	domain.Neptune: pp.Neptune,
}

// vsop87 holds the VSOP87B planet theories, loaded once on first use.
type vsop87 struct {
	path string

	once    sync.Once
	planets [pp.Neptune + 1]*pp.V87Planet
	err     error
}

func (v *vsop87) load() error {
	v.once.Do(func() {
		for i := pp.Mercury; i <= pp.Neptune; i++ {
			p, err := pp.LoadPlanetPath(i, v.path)
			if err != nil {
				v.err = fmt.Errorf("load VSOP87 planet %d from %s: %w", i, v.path, err)
				return
			}
			v.planets[i] = p
		}
	})
	return v.err
}

func (v *vsop87) heliocentric(jd float64, body domain.Body) (unit.Angle, unit.Angle, float64, error) {
	idx, ok := vsopIndex[body]
	if !ok {
		return 0, 0, 0, fmt.Errorf("planet position: %s is not a VSOP87 planet", body)
	}
	if err := v.load(); err != nil {
		return 0, 0, 0, err
	}
	L, B, R := v.planets[idx].Position(jd)
	return L, B, R, nil
}

func (v *vsop87) earth(jd float64) (unit.Angle, unit.Angle, float64, error) {
	if err := v.load(); err != nil {
		return 0, 0, 0, err
	}
	L, B, R := v.planets[pp.Earth].Position(jd)
	return L, B, R, nil
}

// plutoHeliocentric precesses Meeus' Pluto series from J2000.0 to date.
func plutoHeliocentric(jd float64) (unit.Angle, unit.Angle, float64) {
	l, b, r := pluto.Heliocentric(jd)
	return l + unit.AngleFromDeg(precession(jd)), b, r
}

// lightTimePerAU is the light travel time over one AU, in days.
const lightTimePerAU = 0.0057755183

// geometric is the geocentric position of a planet seen from earth (L0, B0, R0).
func geometric(L, B unit.Angle, R float64, L0, B0 unit.Angle, R0 float64) (lon, lat unit.Angle, dist float64) {
	sL, cL := L.Sincos()
	sB, cB := B.Sincos()
	sL0, cL0 := L0.Sincos()
	sB0, cB0 := B0.Sincos()

	x := R*cB*cL - R0*cB0*cL0
	y := R*cB*sL - R0*cB0*sL0
	z := R*sB - R0*sB0

	return unit.Angle(math.Atan2(y, x)), unit.Angle(math.Atan2(z, math.Hypot(x, y))), math.Sqrt(x*x + y*y + z*z)
}
