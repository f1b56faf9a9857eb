package geocode

import (
	"context"
	"kundli-service/internal/domain"
	"kundli-service/internal/ports"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

var _ ports.Geocoder = (*CachedGeocoder)(nil)

const sharedLookupTimeout = 30 * time.Second

// CachedGeocoder consults a persistent cache before the wrapped geocoder and
// stores fresh results. Concurrent lookups of the same place share one call.
//
// Cache failures are logged and never fail the lookup.
type CachedGeocoder struct {
	next  ports.Geocoder
	cache ports.GeocodeCache
	group singleflight.Group
}

func NewCachedGeocoder(next ports.Geocoder, cache ports.GeocodeCache) *CachedGeocoder {
	return &CachedGeocoder{next: next, cache: cache}
}

// Geocode waits for the shared lookup or for its own ctx, whichever ends first.
// The shared lookup ignores caller cancellation and is bounded by
// sharedLookupTimeout.
func (c *CachedGeocoder) Geocode(ctx context.Context, place string) (domain.Coordinates, error) {
	key := normalize(place)

	ch := c.group.DoChan(key, func() (any, error) {
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLookupTimeout)
		defer cancel()
		return c.lookup(shared, key)
	})

	select {
	case <-ctx.Done():
		return domain.Coordinates{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return domain.Coordinates{}, res.Err
		}
		return res.Val.(domain.Coordinates), nil
	}
}

func (c *CachedGeocoder) lookup(ctx context.Context, key string) (domain.Coordinates, error) {
	hits, err := c.cache.GetMany(ctx, []string{key})
	if err != nil {
		logrus.WithError(err).WithField("place", key).Warn("geocode cache read failed")
	} else if coord, ok := hits[key]; ok {
		return coord, nil
	}

	coord, err := c.next.Geocode(ctx, key)
	if err != nil {
		return domain.Coordinates{}, err
	}

	if err := c.cache.PutMany(ctx, map[string]domain.Coordinates{key: coord}); err != nil {
		logrus.WithError(err).WithField("place", key).Warn("geocode cache write failed")
	}

	return coord, nil
}
