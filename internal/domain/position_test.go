package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{359.5, 359.5},
		{360, 0},
		{725, 5},
		{-14.12, 345.88},
		{-360, 0},
		{-1e-16, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Normalize(tt.in), 1e-9, "Normalize(%v)", tt.in)
	}
}

func TestNormalizeRange(t *testing.T) {
	for x := -1000.0; x <= 1000; x += 0.37 {
		got := Normalize(x)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.Less(t, got, 360.0)
	}
}

func TestSignPositionString(t *testing.T) {
	tests := []struct {
		lon  float64
		want string
	}{
		{0, "0s 0d 0m"},
		{29.999, "0s 29d 59m"},
		{30, "1s 0d 0m"},
		{123.5, "4s 3d 30m"},
		{359.99, "11s 29d 59m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NewSignPosition(tt.lon).String(), "lon %v", tt.lon)
	}
}

func TestSignPositionReconstruction(t *testing.T) {
	for lon := 0.0; lon < 360; lon += 0.731 {
		s := NewSignPosition(lon)
		assert.True(t, s.Sign >= 0 && s.Sign <= 11)
		assert.True(t, s.Degree >= 0 && s.Degree <= 29)
		assert.True(t, s.Minute >= 0 && s.Minute <= 59)

		diff := lon - s.Degrees()
		assert.True(t, diff > -1e-9 && diff < 1.0/60, "lon %v reconstructs to %v", lon, s.Degrees())
	}
}

func TestChartSequences(t *testing.T) {
	c := &Chart{Positions: []Position{
		NewPosition(LagnaName, -10),
		NewPosition(KetuName, 400),
	}}

	assert.Equal(t, []string{"Lagna", "Ketu"}, c.Names())
	assert.InDeltaSlice(t, []float64{350, 40}, c.Longitudes(), 1e-9)
	assert.Equal(t, []string{"11s 20d 0m", "1s 10d 0m"}, c.Formatted())

	p, ok := c.Find(KetuName)
	assert.True(t, ok)
	assert.InDelta(t, 40, p.Longitude, 1e-9)

	_, ok = c.Find(RahuName)
	assert.False(t, ok)
	assert.False(t, math.IsNaN(c.Longitudes()[0]))
}
