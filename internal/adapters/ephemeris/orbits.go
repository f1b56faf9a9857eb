package ephemeris

import (
	"fmt"
	"kundli-service/internal/domain"
	"math"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/kepler"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"
)

// orbit holds osculating elements at day 0 (1999 Dec 31 0h) and their daily
// rates, after Paul Schlyter's "How to compute planetary positions". Angles are
// in degrees referred to the equinox of date, a in AU.
type orbit struct {
	node, nodeRate float64
	inc, incRate   float64
	peri, periRate float64 // argument of perihelion
	a, aRate       float64
	ecc, eccRate   float64
	anom, anomRate float64 // mean anomaly
}

const orbitEpoch = 2451543.5

var orbits = map[domain.Body]orbit{
	domain.Mercury: {48.3313, 3.24587e-5, 7.0047, 5.00e-8, 29.1241, 1.01444e-5, 0.387098, 0, 0.205635, 5.59e-10, 168.6562, 4.0923344368},
	domain.Venus:   {76.6799, 2.46590e-5, 3.3946, 2.75e-8, 54.8910, 1.38374e-5, 0.723330, 0, 0.006773, -1.302e-9, 48.0052, 1.6021302244},
	domain.Mars:    {49.5574, 2.11081e-5, 1.8497, -1.78e-8, 286.5016, 2.92961e-5, 1.523688, 0, 0.093405, 2.516e-9, 18.6021, 0.5240207766},
	domain.Jupiter: {100.4542, 2.76854e-5, 1.3030, -1.557e-7, 273.8777, 1.64505e-5, 5.20256, 0, 0.048498, 4.469e-9, 19.8950, 0.0830853001},
	domain.Saturn:  {113.6634, 2.38980e-5, 2.4886, -1.081e-7, 339.3939, 2.97661e-5, 9.55475, 0, 0.055546, -9.499e-9, 316.9670, 0.0334442282},
	domain.Uranus:  {74.0005, 1.3978e-5, 0.7733, 1.9e-8, 96.6612, 3.0565e-5, 19.18171, -1.55e-8, 0.047318, 7.45e-9, 142.5905, 0.011725806},
	domain.Neptune: {131.7806, 3.0173e-5, 1.7700, -2.55e-7, 272.8461, -6.027e-6, 30.05826, 3.313e-8, 0.008606, 2.15e-9, 260.2471, 0.005995147},
}

// meanAnomaly in degrees, not reduced.
func (o orbit) meanAnomaly(d float64) float64 { return o.anom + o.anomRate*d }

// keplerOrbits is the built-in planet theory: Keplerian orbits plus the
// largest mutual perturbations of Jupiter, Saturn and Uranus. It stays within
// a couple of arcminutes of VSOP87 for dates near the present and needs no
// data files.
type keplerOrbits struct{}

func (keplerOrbits) heliocentric(jd float64, body domain.Body) (unit.Angle, unit.Angle, float64, error) {
	o, ok := orbits[body]
	if !ok {
		return 0, 0, 0, fmt.Errorf("planet position: no orbit for %s", body)
	}
	d := jd - orbitEpoch

	node := unit.AngleFromDeg(o.node + o.nodeRate*d)
	inc := unit.AngleFromDeg(o.inc + o.incRate*d)
	a := o.a + o.aRate*d
	ecc := o.ecc + o.eccRate*d

	E, err := kepler.Kepler2(ecc, unit.AngleFromDeg(o.meanAnomaly(d)).Mod1(), 10)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("planet position: %s: %w", body, err)
	}
	R := kepler.Radius(E, ecc, a)

	// argument of latitude
	u := kepler.True(E, ecc) + unit.AngleFromDeg(o.peri+o.periRate*d)
	su, cu := u.Sincos()
	si, ci := inc.Sincos()

	dL, dB := perturbations(body, d)
	L := node + unit.Angle(math.Atan2(su*ci, cu)) + unit.AngleFromDeg(dL)
	B := unit.Angle(math.Asin(su*si)) + unit.AngleFromDeg(dB)

	return L.Mod1(), B, R, nil
}

// earth is the Sun's geometric position turned around (Meeus ch. 25).
func (keplerOrbits) earth(jd float64) (unit.Angle, unit.Angle, float64, error) {
	T := base.J2000Century(jd)
	s, _ := solar.True(T)
	return (s + math.Pi).Mod1(), 0, solar.Radius(T), nil
}

// perturbations returns the longitude and latitude corrections in degrees.
func perturbations(body domain.Body, d float64) (dL, dB float64) {
	Mj := orbits[domain.Jupiter].meanAnomaly(d)
	Ms := orbits[domain.Saturn].meanAnomaly(d)
	Mu := orbits[domain.Uranus].meanAnomaly(d)

	switch body {
	case domain.Jupiter:
		dL = -0.332*sinDeg(2*Mj-5*Ms-67.6) -
			0.056*sinDeg(2*Mj-2*Ms+21) +
			0.042*sinDeg(3*Mj-5*Ms+21) -
			0.036*sinDeg(Mj-2*Ms) +
			0.022*cosDeg(Mj-Ms) +
			0.023*sinDeg(2*Mj-3*Ms+52) -
			0.016*sinDeg(Mj-5*Ms-69)
	case domain.Saturn:
		dL = 0.812*sinDeg(2*Mj-5*Ms-67.6) -
			0.229*cosDeg(2*Mj-4*Ms-2) +
			0.119*sinDeg(Mj-2*Ms-3) +
			0.046*sinDeg(2*Mj-6*Ms-69) +
			0.014*sinDeg(Mj-3*Ms+32)
		dB = -0.020*cosDeg(2*Mj-4*Ms-2) +
			0.018*sinDeg(2*Mj-6*Ms-49)
	case domain.Uranus:
		dL = 0.040*sinDeg(Ms-2*Mu+6) +
			0.035*sinDeg(Ms-3*Mu+33) -
			0.015*sinDeg(Mj-Mu+20)
	}
	return dL, dB
}
