package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks request fields that are missing or malformed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrLocationUnresolved is returned when neither the geocoder nor the
	// fallback table knows the place. Its text is part of the public API.
	ErrLocationUnresolved = errors.New("Could not resolve location")

	// ErrNotFound is returned by geocoders and caches when a lookup has no result.
	ErrNotFound = errors.New("not found")
)

// TimezoneError reports a place whose coordinates did not map to a zone.
type TimezoneError struct {
	City    string
	Country string
	Err     error
}

func (e *TimezoneError) Error() string {
	return fmt.Sprintf("Could not determine timezone for %s, %s", e.City, e.Country)
}

func (e *TimezoneError) Unwrap() error { return e.Err }
