package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

type AppConfig struct {
	ServiceName    string `toml:"service_name"`
	ServiceVersion string `toml:"service_version"`
	Port           string `toml:"port"`
	Environment    string `toml:"environment"`
	EnforceHTTPS   bool   `toml:"enforce_https"`

	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`

	Database  DatabaseConfig  `toml:"database"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Telemetry TelemetryConfig `toml:"telemetry"`

	LokiURL string `toml:"loki_url"`
}

type DatabaseConfig struct {
	Driver string `toml:"driver"`
	Path   string `toml:"path"`
	URL    string `toml:"url"`
}

type RateLimitConfig struct {
	Enabled  bool                     `toml:"enabled"`
	Backend  string                   `toml:"backend"`
	RedisURL string                   `toml:"redis_url"`
	Routes   map[string]RouteRateLimit `toml:"routes"`
}

// RouteRateLimit bounds one "METHOD /path" key. The "default" key applies to
// any route without its own entry.
type RouteRateLimit struct {
	Requests int      `toml:"requests"`
	Window   Duration `toml:"window"`
}

type TelemetryConfig struct {
	OTLPEndpoint string `toml:"otlp_endpoint"`
	MetricsPort  string `toml:"metrics_port"`
}

// Duration decodes "30s"-style strings from TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))

	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}

	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		ServiceName:     "todos",
		ServiceVersion:  "1.0.0",
		Port:            "8080",
		Environment:     "development",
		EnforceHTTPS:    false,
		ReadTimeout:     Duration{15 * time.Second},
		WriteTimeout:    Duration{15 * time.Second},
		ShutdownTimeout: Duration{10 * time.Second},
		Database: DatabaseConfig{
			Driver: "sqlite",
			Path:   "todos.db",
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			Backend: "memory",
			Routes: map[string]RouteRateLimit{
				"GET /": {
					Requests: 100,
					Window:   Duration{time.Minute},
				},
				"POST /": {
					Requests: 20,
					Window:   Duration{time.Minute},
				},
				"default": {
					Requests: 60,
					Window:   Duration{time.Minute},
				},
			},
		},
		Telemetry: TelemetryConfig{
			MetricsPort: "9091",
		},
	}
}

// Load builds the configuration from defaults, then the TOML file at path
// (skipped when path is empty), then environment variables.
func Load(path string) (*AppConfig, error) {
	cfg := GetDefaultConfig()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *AppConfig) applyEnv() error {
	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}

	if os.Getenv("GIN_MODE") == "release" {
		cfg.Environment = "production"
		cfg.EnforceHTTPS = true
	}

	if raw := os.Getenv("ENFORCE_HTTPS"); raw != "" {
		enforce, err := strconv.ParseBool(raw)

		if err != nil {
			return fmt.Errorf("ENFORCE_HTTPS: %w", err)
		}

		cfg.EnforceHTTPS = enforce
	}

	setString(&cfg.Database.Driver, "DATABASE_DRIVER")
	setString(&cfg.Database.Path, "DATABASE_PATH")
	setString(&cfg.Database.URL, "DATABASE_URL")
	setString(&cfg.RateLimit.Backend, "RATE_LIMIT_BACKEND")
	setString(&cfg.RateLimit.RedisURL, "REDIS_URL")
	setString(&cfg.Telemetry.OTLPEndpoint, "OTLP_ENDPOINT")
	setString(&cfg.Telemetry.MetricsPort, "METRICS_PORT")
	setString(&cfg.LokiURL, "LOKI_URL")

	return nil
}

func setString(target *string, key string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}

func (cfg *AppConfig) Validate() error {
	switch cfg.Database.Driver {
	case "sqlite":
		if cfg.Database.Path == "" {
			return errors.New("database path is required for the sqlite driver")
		}
	case "postgres":
		if cfg.Database.URL == "" {
			return errors.New("DATABASE_URL is required for the postgres driver")
		}
	case "memory":
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	switch cfg.RateLimit.Backend {
	case "memory":
	case "redis":
		if cfg.RateLimit.RedisURL == "" {
			return errors.New("REDIS_URL is required for the redis rate limit backend")
		}
	default:
		return fmt.Errorf("unsupported rate limit backend %q", cfg.RateLimit.Backend)
	}

	return nil
}

func (cfg *AppConfig) IsProduction() bool {
	return cfg.Environment == "production"
}
