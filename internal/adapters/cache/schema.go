package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"kundli-service/internal/domain"
	"kundli-service/internal/ports"
	"os"
	"strings"
)

// SQL dialects understood by InitSchema.
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// Initialize the geocode cache schema.
func InitSchema(db *sql.DB, dialect string) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	var coordType string
	switch dialect {
	case DialectSQLite:
		coordType = "REAL"
	case DialectPostgres:
		coordType = "DOUBLE PRECISION"
	default:
		return fmt.Errorf("init schema: unknown dialect %q", dialect)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createGeocodeCacheQuery := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS geocode_cache (
        place TEXT PRIMARY KEY,
        lon %[1]s NOT NULL,
        lat %[1]s NOT NULL,
        cached_at BIGINT NOT NULL DEFAULT 0
    );
	`, coordType)

	statements := []string{
		createGeocodeCacheQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type CitySeed struct {
	City    string  `json:"city"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Populate a geocode cache with known city coordinates from a JSON file.
// Returns the number of places written.
func SeedFromJSON(ctx context.Context, c ports.GeocodeCache, jsonPath string) (int, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed cities: read %q: %w", jsonPath, err)
	}

	var data []CitySeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return 0, fmt.Errorf("seed cities: parse json: %w", err)
	}

	rows := make(map[string]domain.Coordinates, len(data))
	for i, item := range data {
		city := strings.TrimSpace(item.City)
		country := strings.TrimSpace(item.Country)
		if city == "" || country == "" {
			return 0, fmt.Errorf("seed cities: item at index %d: city and country cannot be empty", i+1)
		}

		coord := domain.Coordinates{Lon: item.Lon, Lat: item.Lat}
		if err := coord.Validate(); err != nil {
			return 0, fmt.Errorf("seed cities: item at index %d: %w", i+1, err)
		}
		rows[city+", "+country] = coord
	}

	if err := c.PutMany(ctx, rows); err != nil {
		return 0, fmt.Errorf("seed cities: %w", err)
	}

	return len(rows), nil
}
