package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"kundli-service/internal/adapters/cache"
	"kundli-service/internal/adapters/ephemeris"
	"kundli-service/internal/adapters/geocode"
	"kundli-service/internal/adapters/timezone"
	"kundli-service/internal/api"
	"kundli-service/internal/config"
	"kundli-service/internal/domain"
	"kundli-service/internal/platform/db"
	"kundli-service/internal/platform/obs"
	"kundli-service/internal/ports"
	"kundli-service/internal/services"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// main is the application composition root.
// It wires concrete adapters (geocoder, cache, zone lookup, ephemeris) behind
// ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config")
	}
	obs.ConfigureLogging(os.Stdout, cfg.Log.Level, cfg.Log.Format)

	defaultMode, err := domain.ParseAyanamsa(cfg.Ephemeris.Ayanamsa)
	if err != nil {
		logrus.WithError(err).Fatal("DEFAULT_AYANAMSA")
	}

	geocodeCache, closeCache, err := openCache(cfg.Cache)
	if err != nil {
		logrus.WithError(err).Fatal("geocode cache")
	}
	defer closeCache()

	resolver, err := newResolver(cfg, geocodeCache)
	if err != nil {
		logrus.WithError(err).Fatal("resolver")
	}

	engine := ephemeris.NewEngine(cfg.Ephemeris.VSOP87Path)
	if err := engine.Preload(); err != nil {
		logrus.WithError(err).Fatal("ephemeris")
	}
	if cfg.Ephemeris.VSOP87Path == "" {
		logrus.Info("VSOP87 is unset; using the built-in planet theory")
	}

	svc, err := services.NewKundliService(resolver, engine)
	if err != nil {
		logrus.WithError(err).Fatal("kundli service")
	}

	router := api.NewRouter(svc, api.Options{
		DefaultAyanamsa: defaultMode,
		StrictStatus:    cfg.Server.StrictStatus,
		CORSOrigins:     cfg.Server.CORSOrigins,
	})

	// Write timeout covers a cold geocode with retries.
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logrus.WithFields(logrus.Fields{
			"addr":     srv.Addr,
			"tz_mode":  cfg.Resolver.Mode,
			"geocoder": cfg.Geocoder.Provider,
			"cache":    cfg.Cache.Backend,
			"ayanamsa": defaultMode,
			"strict":   cfg.Server.StrictStatus,
		}).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("listen")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("shutdown")
	}
	logrus.Info("server stopped")
}

func newResolver(cfg *config.Config, geocodeCache ports.GeocodeCache) (*services.Resolver, error) {
	var live ports.Geocoder
	switch g := cfg.Geocoder; strings.ToLower(g.Provider) {
	case "nominatim", "":
		n, err := geocode.NewNominatimGeocoder(g.BaseURL, g.UserAgent, g.Timeout, g.MaxAttempts)
		if err != nil {
			return nil, err
		}
		live = n
	case "ors":
		o, err := geocode.NewORSGeocoder(g.BaseURL, g.APIKey, g.Timeout, g.MaxAttempts)
		if err != nil {
			return nil, err
		}
		live = o
	default:
		return nil, fmt.Errorf("unknown GEOCODER %q", g.Provider)
	}

	if geocodeCache != nil {
		live = geocode.NewCachedGeocoder(live, geocodeCache)
	}

	if cfg.Resolver.Mode == config.ModeLookup {
		return &services.Resolver{Geocoder: live, Zones: timezone.NewLatLongLocator()}, nil
	}

	zones, err := timezone.NewFixedLocator(cfg.Resolver.FixedZone)
	if err != nil {
		return nil, err
	}
	return &services.Resolver{Geocoder: live, Fallback: geocode.KnownCities(), Zones: zones}, nil
}

// openCache returns a nil cache for backend "none".
func openCache(c config.CacheConfig) (ports.GeocodeCache, func(), error) {
	noop := func() {}

	switch strings.ToLower(c.Backend) {
	case "", "none":
		return nil, noop, nil

	case cache.DialectSQLite:
		conn, err := db.OpenSQLite(c.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return sqlCache(conn, cache.DialectSQLite, cache.NewSqliteGeocodeCache(conn, c.TTL))

	case cache.DialectPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return nil, noop, errors.New("DATABASE_URL is required for the postgres cache")
		}
		conn, err := db.Open(c.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		return sqlCache(conn, cache.DialectPostgres, cache.NewSQLGeocodeCache(conn, c.TTL))

	case "redis":
		client := redis.NewClient(&redis.Options{Addr: c.RedisAddr, DB: c.RedisDB})
		rc := cache.NewRedisGeocodeCache(client, c.TTL)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rc.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("redis %s: %w", c.RedisAddr, err)
		}
		return rc, func() { _ = client.Close() }, nil

	default:
		return nil, noop, fmt.Errorf("unknown CACHE_BACKEND %q", c.Backend)
	}
}

func sqlCache(conn *sql.DB, dialect string, gc ports.GeocodeCache) (ports.GeocodeCache, func(), error) {
	if err := cache.InitSchema(conn, dialect); err != nil {
		_ = conn.Close()
		return nil, func() {}, err
	}
	return gc, func() { _ = conn.Close() }, nil
}
