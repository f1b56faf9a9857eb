package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Port         string `mapstructure:"port"`
		StrictStatus bool   `mapstructure:"strict_status"`
		CORSOrigins  string `mapstructure:"cors_origins"`
	}

	LogConfig struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	}

	ResolverConfig struct {
		// "fixed" assumes FixedZone for every query; "lookup" derives the zone from coordinates.
		Mode      string `mapstructure:"mode"`
		FixedZone string `mapstructure:"fixed_zone"`
	}

	GeocoderConfig struct {
		Provider    string        `mapstructure:"provider"`
		BaseURL     string        `mapstructure:"base_url"`
		APIKey      string        `mapstructure:"api_key"`
		UserAgent   string        `mapstructure:"user_agent"`
		Timeout     time.Duration `mapstructure:"timeout"`
		MaxAttempts int           `mapstructure:"max_attempts"`
	}

	CacheConfig struct {
		Backend     string        `mapstructure:"backend"`
		SQLitePath  string        `mapstructure:"sqlite_path"`
		DatabaseURL string        `mapstructure:"database_url"`
		RedisAddr   string        `mapstructure:"redis_addr"`
		RedisDB     int           `mapstructure:"redis_db"`
		TTL         time.Duration `mapstructure:"ttl"`
		SeedPath    string        `mapstructure:"seed_path"`
	}

	EphemerisConfig struct {
		VSOP87Path string `mapstructure:"vsop87_path"`
		Ayanamsa   string `mapstructure:"ayanamsa"`
	}

	Config struct {
		Server    ServerConfig    `mapstructure:"server"`
		Log       LogConfig       `mapstructure:"log"`
		Resolver  ResolverConfig  `mapstructure:"resolver"`
		Geocoder  GeocoderConfig  `mapstructure:"geocoder"`
		Cache     CacheConfig     `mapstructure:"cache"`
		Ephemeris EphemerisConfig `mapstructure:"ephemeris"`
	}
)

const (
	ModeFixed  = "fixed"
	ModeLookup = "lookup"
)

// binding of a config key to its environment variable and default.
type binding struct {
	key, env string
	def      any
}

var bindings = []binding{
	{"server.port", "PORT", "5000"},
	{"server.strict_status", "STRICT_STATUS", false},
	{"server.cors_origins", "CORS_ORIGINS", "*"},
	{"log.level", "LOG_LEVEL", "info"},
	{"log.format", "LOG_FORMAT", "text"},
	{"resolver.mode", "TIMEZONE_MODE", ModeFixed},
	{"resolver.fixed_zone", "FIXED_TIMEZONE", "Asia/Kolkata"},
	{"geocoder.provider", "GEOCODER", "nominatim"},
	{"geocoder.base_url", "GEOCODER_URL", ""},
	{"geocoder.api_key", "ORS_API_KEY", ""},
	{"geocoder.user_agent", "GEOCODER_USER_AGENT", "kundli-api"},
	{"geocoder.timeout", "GEOCODER_TIMEOUT", 10 * time.Second},
	{"geocoder.max_attempts", "GEOCODER_MAX_ATTEMPTS", 1},
	{"cache.backend", "CACHE_BACKEND", "none"},
	{"cache.sqlite_path", "DB_PATH", "data/app.db"},
	{"cache.database_url", "DATABASE_URL", ""},
	{"cache.redis_addr", "REDIS_ADDR", "localhost:6379"},
	{"cache.redis_db", "REDIS_DB", 0},
	{"cache.ttl", "CACHE_TTL", 720 * time.Hour},
	{"cache.seed_path", "SEED_PATH", "data/seeds/cities.json"},
	{"ephemeris.vsop87_path", "VSOP87", ""},
	{"ephemeris.ayanamsa", "DEFAULT_AYANAMSA", "lahiri"},
}

// Load reads .env (if present), an optional YAML file named by CONFIG_FILE,
// and the environment. Environment variables win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found (using environment variables)")
	}

	v := viper.New()
	for _, b := range bindings {
		v.SetDefault(b.key, b.def)
		if err := v.BindEnv(b.key, b.env); err != nil {
			return nil, fmt.Errorf("load config: bind %s: %w", b.env, err)
		}
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("load config: read %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("load config: unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	c.Resolver.Mode = strings.ToLower(strings.TrimSpace(c.Resolver.Mode))
	switch c.Resolver.Mode {
	case ModeFixed, ModeLookup:
	default:
		return fmt.Errorf("TIMEZONE_MODE must be %q or %q, got %q", ModeFixed, ModeLookup, c.Resolver.Mode)
	}

	if strings.TrimSpace(c.Server.Port) == "" {
		return errors.New("PORT is required")
	}

	if c.Geocoder.MaxAttempts < 1 {
		c.Geocoder.MaxAttempts = 1
	}
	if c.Geocoder.Timeout <= 0 {
		c.Geocoder.Timeout = 10 * time.Second
	}

	return nil
}
