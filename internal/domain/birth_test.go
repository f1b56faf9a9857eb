package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBirthQuery(t *testing.T) {
	q, err := NewBirthQuery("1990-05-17", " 10:00:00", "  Bangalore ", "India ")
	require.NoError(t, err)

	assert.Equal(t, "Bangalore, India", q.Place())
	assert.Equal(t, Lahiri, q.Ayanamsa)
	assert.Equal(t, time.Date(1990, 5, 17, 10, 0, 0, 0, time.UTC), q.Local)
}

func TestNewBirthQueryRejects(t *testing.T) {
	tests := []struct {
		name                    string
		dob, tob, city, country string
	}{
		{"blank city", "1990-05-17", "10:00:00", " ", "India"},
		{"blank country", "1990-05-17", "10:00:00", "Bangalore", ""},
		{"date format", "17-05-1990", "10:00:00", "Bangalore", "India"},
		{"missing seconds", "1990-05-17", "10:00", "Bangalore", "India"},
		{"impossible date", "1990-02-30", "10:00:00", "Bangalore", "India"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBirthQuery(tt.dob, tt.tob, tt.city, tt.country)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}
}

func TestBirthQueryIn(t *testing.T) {
	q, err := NewBirthQuery("1990-05-17", "10:00:00", "Bangalore", "India")
	require.NoError(t, err)

	ist, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	assert.Equal(t, time.Date(1990, 5, 17, 4, 30, 0, 0, time.UTC), q.In(ist).UTC())
}

func TestParseAyanamsa(t *testing.T) {
	for in, want := range map[string]Ayanamsa{
		"":              Lahiri,
		"Lahiri":        Lahiri,
		" raman ":       Raman,
		"krishnamurti":  Krishnamurti,
		"FAGAN_BRADLEY": FaganBradley,
	} {
		got, err := ParseAyanamsa(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseAyanamsa("sayana")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTimezoneError(t *testing.T) {
	cause := errors.New("no zone")
	err := error(&TimezoneError{City: "Point Nemo", Country: "Pacific", Err: cause})

	assert.Equal(t, "Could not determine timezone for Point Nemo, Pacific", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestBodies(t *testing.T) {
	bodies := Bodies()
	require.Len(t, bodies, 13)
	assert.Equal(t, "Sun", bodies[0].Name())
	assert.Equal(t, "true Node", TrueNode.String())
	assert.Equal(t, "mean Apogee", bodies[12].Name())
	assert.Equal(t, "unknown", Body(42).Name())
}
