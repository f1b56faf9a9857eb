package ephemeris

import (
	"kundli-service/internal/domain"
	"math"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/moonposition"
)

func sinDeg(d float64) float64 { return math.Sin(d * math.Pi / 180) }
func cosDeg(d float64) float64 { return math.Cos(d * math.Pi / 180) }

// moonVector is the Moon's geocentric ecliptic position in km.
func moonVector(jd float64) [3]float64 {
	lon, lat, dist := moonposition.Position(jd)
	sl, cl := lon.Sincos()
	sb, cb := lat.Sincos()
	return [3]float64{dist * cb * cl, dist * cb * sl, dist * sb}
}

// nodeStep is the half-width, in days, of the velocity difference quotient.
const nodeStep = 0.05

// trueNode is the ascending node of the osculating lunar orbit, in degrees of
// geometric longitude. The orbital plane is spanned by the position at jd and
// the velocity from a central difference.
func trueNode(jd float64) float64 {
	r := moonVector(jd)
	ahead, behind := moonVector(jd+nodeStep), moonVector(jd-nodeStep)

	var v [3]float64
	for i := range v {
		v[i] = (ahead[i] - behind[i]) / (2 * nodeStep)
	}

	// angular momentum r × v; the node lies along ẑ × h.
	hx := r[1]*v[2] - r[2]*v[1]
	hy := r[2]*v[0] - r[0]*v[2]

	return domain.Normalize(math.Atan2(hx, -hy) * 180 / math.Pi)
}

// meanApogee is the mean lunar perigee advanced half a turn.
func meanApogee(jd float64) float64 {
	T := base.J2000Century(jd)
	perigee := base.Horner(T, 83.3532465, 4069.0137287, -0.0103200, -1/80053., 1/18999000.)
	return domain.Normalize(perigee + 180)
}
