package cache

import (
	"context"
	"errors"
	"fmt"
	"kundli-service/internal/domain"
	"kundli-service/internal/platform/obs"
	"kundli-service/internal/ports"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var _ ports.GeocodeCache = (*RedisGeocodeCache)(nil)

// RedisGeocodeCache stores each place as a hash {lon, lat} with an expiry.
type RedisGeocodeCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{client: client, ttl: ttl}
}

// Ping checks the connection to the Redis server.
func (c *RedisGeocodeCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisGeocodeCache) key(place string) string {
	return "geocode:" + placeKey(place)
}

// Fetch cached coordinates for the given places.
func (c *RedisGeocodeCache) GetMany(
	ctx context.Context,
	places []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.cache.redis.GetMany")(&err)

	if c.client == nil {
		return nil, errors.New("geocode cache: redis client is nil")
	}

	keys, spellings := groupPlaces(places)
	if len(keys) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	pipe := c.client.Pipeline()
	cmds := make([]*redis.SliceCmd, 0, len(keys))
	for _, k := range keys {
		cmds = append(cmds, pipe.HMGet(ctx, c.key(k), "lon", "lat"))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("get geocode cache: redis pipeline: %w", err)
	}

	out := make(map[string]domain.Coordinates, len(places))
	for i, cmd := range cmds {
		vals, err := cmd.Result()
		if err != nil || len(vals) != 2 || vals[0] == nil || vals[1] == nil {
			continue
		}

		lon, errLon := strconv.ParseFloat(fmt.Sprint(vals[0]), 64)
		lat, errLat := strconv.ParseFloat(fmt.Sprint(vals[1]), 64)
		if errLon != nil || errLat != nil {
			continue
		}
		for _, p := range spellings[keys[i]] {
			out[p] = domain.Coordinates{Lon: lon, Lat: lat}
		}
	}

	return out, nil
}

// Store place -> coordinate mappings, refreshing their expiry.
func (c *RedisGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	if c.client == nil {
		return errors.New("geocode cache: redis client is nil")
	}

	if len(results) == 0 {
		return nil
	}

	pipe := c.client.TxPipeline()
	for place, coord := range results {
		if placeKey(place) == "" {
			return fmt.Errorf("insert geocode cache: empty place key")
		}

		key := c.key(place)
		pipe.HSet(ctx, key,
			"lon", strconv.FormatFloat(coord.Lon, 'f', -1, 64),
			"lat", strconv.FormatFloat(coord.Lat, 'f', -1, 64),
		)
		if c.ttl > 0 {
			pipe.Expire(ctx, key, c.ttl)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert geocode cache: redis pipeline: %w", err)
	}

	return nil
}
