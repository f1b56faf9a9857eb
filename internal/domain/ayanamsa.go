package domain

import (
	"fmt"
	"strings"
)

// Ayanamsa names the reference used to convert tropical longitudes to sidereal ones.
type Ayanamsa string

const (
	Lahiri       Ayanamsa = "lahiri"
	Raman        Ayanamsa = "raman"
	Krishnamurti Ayanamsa = "krishnamurti"
	FaganBradley Ayanamsa = "fagan_bradley"
)

// ParseAyanamsa accepts the names above case-insensitively. Empty selects Lahiri.
func ParseAyanamsa(s string) (Ayanamsa, error) {
	switch a := Ayanamsa(strings.ToLower(strings.TrimSpace(s))); a {
	case "":
		return Lahiri, nil
	case Lahiri, Raman, Krishnamurti, FaganBradley:
		return a, nil
	default:
		return "", fmt.Errorf("%w: unknown ayanamsa %q", ErrInvalidInput, s)
	}
}
