package main

import (
	"context"
	"database/sql"
	"errors"
	"kundli-service/internal/adapters/cache"
	"kundli-service/internal/config"
	"kundli-service/internal/platform/db"
	"kundli-service/internal/platform/obs"
	"kundli-service/internal/ports"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// dbtool creates the geocode cache schema and preloads it with the seed cities.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config")
	}
	obs.ConfigureLogging(os.Stdout, cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var target ports.GeocodeCache

	switch backend := strings.ToLower(cfg.Cache.Backend); backend {
	case cache.DialectSQLite, cache.DialectPostgres:
		sqlDB, err := openSQL(cfg.Cache, backend)
		if err != nil {
			logrus.WithError(err).Fatal("open database")
		}
		defer sqlDB.Close()

		logrus.Info("initializing schema")
		if err := cache.InitSchema(sqlDB, backend); err != nil {
			logrus.WithError(err).Fatal("schema initialization failed")
		}
		logrus.Info("schema ready")

		if backend == cache.DialectSQLite {
			target = cache.NewSqliteGeocodeCache(sqlDB, cfg.Cache.TTL)
		} else {
			target = cache.NewSQLGeocodeCache(sqlDB, cfg.Cache.TTL)
		}

	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr, DB: cfg.Cache.RedisDB})
		defer client.Close()

		rc := cache.NewRedisGeocodeCache(client, cfg.Cache.TTL)
		if err := rc.Ping(ctx); err != nil {
			logrus.WithError(err).Fatal("redis unreachable")
		}
		target = rc

	default:
		logrus.Fatalf("CACHE_BACKEND must be sqlite, postgres or redis, got %q", cfg.Cache.Backend)
	}

	logrus.WithField("path", cfg.Cache.SeedPath).Info("seeding geocode cache")
	n, err := cache.SeedFromJSON(ctx, target, cfg.Cache.SeedPath)
	if err != nil {
		logrus.WithError(err).Fatal("seeding failed")
	}
	logrus.WithField("places", n).Info("seeding complete")
}

func openSQL(c config.CacheConfig, dialect string) (*sql.DB, error) {
	if dialect == cache.DialectSQLite {
		return db.OpenSQLite(c.SQLitePath)
	}
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	return db.Open(c.DatabaseURL)
}
