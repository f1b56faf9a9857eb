package domain

import (
	"fmt"
	"strings"
	"time"
)

// Layout of the combined dob/tob request fields.
const BirthLayout = "2006-01-02 15:04:05"

// Represents a single chart request.
// Local is a naive wall-clock reading: only its calendar fields are meaningful,
// the zone it is interpreted in is decided by the resolver.
type BirthQuery struct {
	Local    time.Time
	City     string
	Country  string
	Ayanamsa Ayanamsa
}

// NewBirthQuery parses the raw request fields into a BirthQuery.
// City and country are trimmed and must be non-empty.
func NewBirthQuery(dob, tob, city, country string) (BirthQuery, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return BirthQuery{}, fmt.Errorf("%w: city must not be empty", ErrInvalidInput)
	}
	country = strings.TrimSpace(country)
	if country == "" {
		return BirthQuery{}, fmt.Errorf("%w: country must not be empty", ErrInvalidInput)
	}

	raw := strings.TrimSpace(dob) + " " + strings.TrimSpace(tob)
	local, err := time.Parse(BirthLayout, raw)
	if err != nil {
		return BirthQuery{}, fmt.Errorf("%w: invalid dob/tob %q: expected YYYY-MM-DD HH:MM:SS", ErrInvalidInput, raw)
	}

	return BirthQuery{
		Local:    local,
		City:     city,
		Country:  country,
		Ayanamsa: Lahiri,
	}, nil
}

// Place returns the free-text address handed to geocoders, e.g. "Bangalore, India".
func (q BirthQuery) Place() string {
	return q.City + ", " + q.Country
}

// In reinterprets the naive local reading as wall-clock time in loc.
func (q BirthQuery) In(loc *time.Location) time.Time {
	l := q.Local
	return time.Date(l.Year(), l.Month(), l.Day(), l.Hour(), l.Minute(), l.Second(), l.Nanosecond(), loc)
}
