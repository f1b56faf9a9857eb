package cache

import (
	"context"
	"kundli-service/internal/domain"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisCache(t *testing.T, ttl time.Duration) (*RedisGeocodeCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return NewRedisGeocodeCache(rdb, ttl), mr
}

func TestRedisGeocodeCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, _ := newRedisCache(t, time.Hour)

	require.NoError(t, c.Ping(ctx))
	require.NoError(t, c.PutMany(ctx, map[string]domain.Coordinates{
		"Kolkata, India": {Lon: 88.3639, Lat: 22.5726},
	}))

	got, err := c.GetMany(ctx, []string{"Kolkata, India", "Atlantis, Nowhere"})
	require.NoError(t, err)

	assert.Len(t, got, 1)
	assert.InDelta(t, 88.3639, got["Kolkata, India"].Lon, 1e-12)
	assert.InDelta(t, 22.5726, got["Kolkata, India"].Lat, 1e-12)
}

func TestRedisGeocodeCacheExpires(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t, time.Minute)

	require.NoError(t, c.PutMany(ctx, map[string]domain.Coordinates{
		"Delhi, India": {Lon: 77.2090, Lat: 28.6139},
	}))

	mr.FastForward(2 * time.Minute)

	got, err := c.GetMany(ctx, []string{"Delhi, India"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRedisGeocodeCacheKeysAreCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t, 0)

	require.NoError(t, c.PutMany(ctx, map[string]domain.Coordinates{
		"Chennai,   India": {Lon: 80.2707, Lat: 13.0827},
	}))
	assert.True(t, mr.Exists("geocode:chennai, india"))

	got, err := c.GetMany(ctx, []string{"CHENNAI, INDIA", " Chennai, India"})
	require.NoError(t, err)
	assert.Contains(t, got, "CHENNAI, INDIA")
	assert.Contains(t, got, " Chennai, India")
}
