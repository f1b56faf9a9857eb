package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"kundli-service/internal/domain"
	"kundli-service/internal/platform/obs"
	"kundli-service/internal/ports"
	"strings"
	"time"
)

var _ ports.GeocodeCache = (*SqliteGeocodeCache)(nil)

// SqliteGeocodeCache maps places to coordinates in a local SQLite file.
// Places are stored case- and whitespace-insensitively; GetMany answers in
// the caller's own spelling.
type SqliteGeocodeCache struct {
	DB  *sql.DB
	TTL time.Duration

	now func() time.Time
}

// NewSqliteGeocodeCache returns a cache whose rows expire after ttl; zero keeps them forever.
func NewSqliteGeocodeCache(db *sql.DB, ttl time.Duration) *SqliteGeocodeCache {
	return &SqliteGeocodeCache{DB: db, TTL: ttl, now: time.Now}
}

// Fetch cached coordinates for the given places.
func (s *SqliteGeocodeCache) GetMany(
	ctx context.Context,
	places []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.cache.sqlite.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("geocode cache: db is nil")
	}

	keys, spellings := groupPlaces(places)
	if len(keys) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	ph := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys)+1)
	for _, k := range keys {
		ph = append(ph, "?")
		args = append(args, k)
	}

	// SQLite does not support binding slices directly in an IN (...) clause.
	// Only the placeholder structure is interpolated; all values remain parameterized.
	q := fmt.Sprintf(`
	SELECT 
        place,
        lon,
        lat
    FROM geocode_cache
    WHERE place IN (%s) AND cached_at >= ?;
	`, strings.Join(ph, ","))
	args = append(args, cutoff(s.now(), s.TTL))

	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.Coordinates, len(places))
	for rows.Next() {
		var key string
		var c domain.Coordinates
		if err := rows.Scan(&key, &c.Lon, &c.Lat); err != nil {
			return nil, fmt.Errorf("get geocode cache: scan rows: %w", err)
		}
		for _, p := range spellings[key] {
			out[p] = c
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get geocode cache: row iteration: %w", err)
	}

	return out, nil
}

// Store place -> coordinate mappings in the cache.
func (s *SqliteGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT OR REPLACE INTO geocode_cache (
        place,
        lon,
        lat,
        cached_at
    )
    VALUES (?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db prepare: %w", err)
	}
	defer stmt.Close()

	stamp := s.now().Unix()
	for place, c := range results {
		key := placeKey(place)
		if key == "" {
			return fmt.Errorf("insert geocode cache: empty place key")
		}

		if _, err := stmt.ExecContext(ctx, key, c.Lon, c.Lat, stamp); err != nil {
			return fmt.Errorf("insert geocode cache place=%q: %w", place, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert geocode cache commit: %w", err)
	}

	return nil
}
