package ephemeris

import (
	"fmt"
	"kundli-service/internal/domain"

	"github.com/soniakeys/meeus/v3/base"
)

// reference epoch (Julian Day) and ayanamsa value at that epoch, in degrees.
type ayanamsaRef struct {
	t0     float64
	ayanT0 float64
}

// Reference values follow the Swiss Ephemeris sidereal mode table.
var ayanamsaRefs = map[domain.Ayanamsa]ayanamsaRef{
	domain.Lahiri:       {t0: 2435553.5, ayanT0: 23.250182778 - 0.004658035},
	domain.Raman:        {t0: 2415020.0, ayanT0: 21.01444},
	domain.Krishnamurti: {t0: 2415020.0, ayanT0: 22.363889},
	domain.FaganBradley: {t0: 2433282.42346, ayanT0: 24.042044444},
}

// ayanamsa advances the reference value by general precession in longitude.
func ayanamsa(jd float64, mode domain.Ayanamsa) (float64, error) {
	ref, ok := ayanamsaRefs[mode]
	if !ok {
		return 0, fmt.Errorf("ayanamsa: unknown sidereal mode %q", mode)
	}
	return ref.ayanT0 + precession(jd) - precession(ref.t0), nil
}

// precession returns the accumulated general precession in longitude since
// J2000.0, in degrees (Lieske 1977, Meeus ch. 21).
func precession(jd float64) float64 {
	T := base.J2000Century(jd)
	return base.Horner(T, 0, 5029.0966, 1.11113, -0.000006) / 3600
}
