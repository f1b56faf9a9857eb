package ports

import (
	"context"
	"kundli-service/internal/domain"
	"time"
)

// Contract for determining the IANA timezone in effect at a coordinate.
type ZoneLocator interface {
	LookupZone(ctx context.Context, at domain.Coordinates) (*time.Location, error)
}
