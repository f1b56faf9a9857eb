package domain

import (
	"fmt"
	"math"
)

// Names of the chart entries that do not come from the body enumeration.
const (
	LagnaName = "Lagna"
	RahuName  = "Rahu"
	KetuName  = "Ketu"
)

// Normalize wraps an angle in degrees into [0, 360).
func Normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// -tiny + 360 rounds up to exactly 360.
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// Sign/degree/minute rendering of a normalized longitude.
type SignPosition struct {
	Sign   int
	Degree int
	Minute int
}

// NewSignPosition splits a longitude in [0, 360) into sign, degree within the
// sign and arc-minute. Sub-minute precision is truncated, never rounded.
func NewSignPosition(lon float64) SignPosition {
	return SignPosition{
		Sign:   int(math.Floor(lon / 30)),
		Degree: int(math.Floor(math.Mod(lon, 30))),
		Minute: int(math.Floor(math.Mod(lon, 1) * 60)),
	}
}

func (s SignPosition) String() string {
	return fmt.Sprintf("%ds %dd %dm", s.Sign, s.Degree, s.Minute)
}

// Degrees reconstructs the longitude, accurate to one arc-minute.
func (s SignPosition) Degrees() float64 {
	return float64(s.Sign*30+s.Degree) + float64(s.Minute)/60
}

// One named chart entry.
type Position struct {
	Name      string
	Longitude float64
	Sign      SignPosition
}

func NewPosition(name string, lon float64) Position {
	lon = Normalize(lon)
	return Position{Name: name, Longitude: lon, Sign: NewSignPosition(lon)}
}

// Chart is the ordered list of sidereal positions: Lagna first, then the
// enumerated bodies with the true node expanded into Ketu and Rahu.
type Chart struct {
	Positions []Position
}

func (c *Chart) Names() []string {
	out := make([]string, 0, len(c.Positions))
	for _, p := range c.Positions {
		out = append(out, p.Name)
	}
	return out
}

func (c *Chart) Longitudes() []float64 {
	out := make([]float64, 0, len(c.Positions))
	for _, p := range c.Positions {
		out = append(out, p.Longitude)
	}
	return out
}

func (c *Chart) Formatted() []string {
	out := make([]string, 0, len(c.Positions))
	for _, p := range c.Positions {
		out = append(out, p.Sign.String())
	}
	return out
}

// Find returns the first position with the given name.
func (c *Chart) Find(name string) (Position, bool) {
	for _, p := range c.Positions {
		if p.Name == name {
			return p, true
		}
	}
	return Position{}, false
}
