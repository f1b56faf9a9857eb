package ports

import (
	"context"
	"kundli-service/internal/domain"
)

// Contract for resolving a free-text place ("City, Country") to coordinates.
type Geocoder interface {
	// Return coordinates for the place, or an error wrapping domain.ErrNotFound
	// when the provider has no match.
	Geocode(ctx context.Context, place string) (domain.Coordinates, error)
}
