package ports

import (
	"context"
	"kundli-service/internal/domain"
)

// Port: persistent place -> coordinate mappings shared across requests.
type GeocodeCache interface {
	// Fetch cached coordinates for the given places. Missing places are absent from the map.
	GetMany(ctx context.Context, places []string) (map[string]domain.Coordinates, error)
	// Store place -> coordinate mappings.
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}
