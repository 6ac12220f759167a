// Package config assembles the API's settings from an optional YAML file and the
// environment. Environment variables win over the file; secrets are read from the
// environment only.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	pkgconfig "inkwell/internal/pkg/config"
	env "inkwell/pkg/config"
)

// Storage backends.
const (
	BackendJSON     = "json"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMongo    = "mongo"
)

// Config is the complete API configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Storage StorageConfig `yaml:"storage"`
	Auth    AuthConfig    `yaml:"auth"`
	Policy  PolicyConfig  `yaml:"policy"`
	Tracing TracingConfig `yaml:"tracing"`
	Jobs    JobsConfig    `yaml:"jobs"`
	Version string        `yaml:"-"`

	// Fallbacks lists environment values that were rejected in favour of the
	// file or default value.
	Fallbacks []Fallback `yaml:"-"`
}

// Fallback records one rejected environment value.
type Fallback struct {
	Field   string
	Warning string
}

type HTTPConfig struct {
	Addr              string        `yaml:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes"`
}

type StorageConfig struct {
	Backend       string `yaml:"backend"`
	JSONPath      string `yaml:"json_path"`
	SQLitePath    string `yaml:"sqlite_path"`
	MongoDatabase string `yaml:"mongo_database"`
	Migrate       bool   `yaml:"migrate"`

	// Connection strings carry credentials and come from the environment.
	PostgresDSN string `yaml:"-"`
	MongoURI    string `yaml:"-"`
}

type AuthConfig struct {
	AdminEmail        string `yaml:"admin_email"`
	AdminPasswordHash string `yaml:"admin_password_hash"`
	JWTSecretEnv      string `yaml:"jwt_secret_env"`
	CookieSecure      bool   `yaml:"cookie_secure"`

	AdminPassword string `yaml:"-"`
	JWTSecret     string `yaml:"-"`
}

type PolicyConfig struct {
	// DraftLookup is "open" or "restricted".
	DraftLookup string `yaml:"draft_lookup"`
}

type TracingConfig struct {
	SampleRatio float64 `yaml:"sample_ratio"`
}

type JobsConfig struct {
	GaugeRefreshSchedule string `yaml:"gauge_refresh_schedule"`
	SLOFlushSchedule     string `yaml:"slo_flush_schedule"`
}

// Default returns the settings used when neither file nor environment say otherwise.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 10 * time.Second,
			RequestTimeout:    15 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			MaxBodyBytes:      1 << 20,
		},
		Storage: StorageConfig{
			Backend:       BackendJSON,
			JSONPath:      "data/blogs.json",
			SQLitePath:    "data/inkwell.db",
			MongoDatabase: "blog",
			Migrate:       true,
		},
		Auth:    AuthConfig{JWTSecretEnv: "JWT_SECRET"},
		Policy:  PolicyConfig{DraftLookup: "open"},
		Tracing: TracingConfig{SampleRatio: 1.0},
		Jobs: JobsConfig{
			GaugeRefreshSchedule: "*/5 * * * *",
			SLOFlushSchedule:     "@every 1m",
		},
		Version: "dev",
	}
}

// Load builds the configuration: defaults, then the YAML file named by
// CONFIG_FILE (if any), then environment overrides. The result is validated.
func Load() (*Config, error) {
	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// loadFile overlays the YAML file onto cfg.
// The path comes from the operator's environment, not from request input.
func (c *Config) loadFile(path string) error {
	// #nosec G304 -- path is provided by trusted source (deployment env)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.HTTP.Addr = env.GetEnvString("HTTP_ADDR", c.HTTP.Addr)
	c.HTTP.ReadHeaderTimeout = env.GetEnvDuration("HTTP_READ_HEADER_TIMEOUT", c.HTTP.ReadHeaderTimeout)
	c.HTTP.RequestTimeout = fallbackDuration(c, "http.request_timeout", "HTTP_REQUEST_TIMEOUT", c.HTTP.RequestTimeout)
	c.HTTP.ShutdownTimeout = fallbackDuration(c, "http.shutdown_timeout", "HTTP_SHUTDOWN_TIMEOUT", c.HTTP.ShutdownTimeout)
	c.HTTP.MaxBodyBytes = env.GetEnvInt64("HTTP_MAX_BODY_BYTES", c.HTTP.MaxBodyBytes)

	c.Storage.Backend = env.GetEnvString("STORAGE_BACKEND", c.Storage.Backend)
	c.Storage.JSONPath = env.GetEnvString("JSON_STORE_PATH", c.Storage.JSONPath)
	c.Storage.SQLitePath = env.GetEnvString("SQLITE_PATH", c.Storage.SQLitePath)
	c.Storage.MongoDatabase = env.GetEnvString("MONGODB_DB_NAME", c.Storage.MongoDatabase)
	c.Storage.Migrate = env.GetEnvBool("DB_MIGRATE", c.Storage.Migrate)
	c.Storage.PostgresDSN = os.Getenv("DATABASE_URL")
	c.Storage.MongoURI = os.Getenv("MONGODB_URI")

	c.Auth.AdminEmail = env.GetEnvString("ADMIN_EMAIL", c.Auth.AdminEmail)
	c.Auth.AdminPasswordHash = env.GetEnvString("ADMIN_PASSWORD_HASH", c.Auth.AdminPasswordHash)
	c.Auth.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	c.Auth.CookieSecure = env.GetEnvBool("COOKIE_SECURE", c.Auth.CookieSecure)
	c.Auth.JWTSecret = os.Getenv(c.Auth.JWTSecretEnv)

	c.Policy.DraftLookup = env.GetEnvString("POST_DRAFT_LOOKUP", c.Policy.DraftLookup)
	c.Tracing.SampleRatio = env.GetEnvFloat("TRACE_SAMPLE_RATIO", c.Tracing.SampleRatio)
	c.Jobs.GaugeRefreshSchedule = fallbackSchedule(c, "jobs.gauge_refresh_schedule", "GAUGE_REFRESH_SCHEDULE", c.Jobs.GaugeRefreshSchedule)
	c.Jobs.SLOFlushSchedule = fallbackSchedule(c, "jobs.slo_flush_schedule", "SLO_FLUSH_SCHEDULE", c.Jobs.SLOFlushSchedule)
	c.Version = env.GetEnvString("VERSION", c.Version)
}

// Schedules and timeouts only tune background behaviour, so a bad environment
// value keeps the current one instead of failing startup.
func fallbackSchedule(c *Config, field, key, current string) string {
	res := pkgconfig.LoadEnvWithFallback(key, current, pkgconfig.ValidateCronSchedule)
	if res.FallbackApplied {
		c.Fallbacks = append(c.Fallbacks, Fallback{Field: field, Warning: res.Warning})
	}
	return res.Value
}

func fallbackDuration(c *Config, field, key string, current time.Duration) time.Duration {
	res := pkgconfig.LoadEnvDuration(key, current, pkgconfig.ValidatePositiveDuration)
	if res.FallbackApplied {
		c.Fallbacks = append(c.Fallbacks, Fallback{Field: field, Warning: res.Warning})
	}
	return res.Value
}

// Validate checks settings that do not depend on other packages. Admin identity
// and session secret strength are checked by the auth packages at startup.
func (c *Config) Validate() error {
	var errs []error

	switch c.Storage.Backend {
	case BackendJSON:
		if c.Storage.JSONPath == "" {
			errs = append(errs, errors.New("storage.json_path is required for the json backend"))
		}
	case BackendSQLite:
		if c.Storage.SQLitePath == "" {
			errs = append(errs, errors.New("storage.sqlite_path is required for the sqlite backend"))
		}
	case BackendPostgres:
		if c.Storage.PostgresDSN == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres backend"))
		}
	case BackendMongo:
		if c.Storage.MongoURI == "" {
			errs = append(errs, errors.New("MONGODB_URI is required for the mongo backend"))
		}
		if c.Storage.MongoDatabase == "" {
			errs = append(errs, errors.New("storage.mongo_database is required for the mongo backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend %q (want json, postgres, sqlite or mongo)", c.Storage.Backend))
	}

	if c.Auth.JWTSecretEnv == "" {
		errs = append(errs, errors.New("auth.jwt_secret_env is required"))
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("tracing.sample_ratio must be within [0, 1], got %v", c.Tracing.SampleRatio))
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("http.max_body_bytes must be positive, got %d", c.HTTP.MaxBodyBytes))
	}
	for name, d := range map[string]time.Duration{
		"http.read_header_timeout": c.HTTP.ReadHeaderTimeout,
		"http.request_timeout":     c.HTTP.RequestTimeout,
		"http.shutdown_timeout":    c.HTTP.ShutdownTimeout,
	} {
		if err := pkgconfig.ValidatePositiveDuration(d); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	for name, s := range map[string]string{
		"jobs.gauge_refresh_schedule": c.Jobs.GaugeRefreshSchedule,
		"jobs.slo_flush_schedule":     c.Jobs.SLOFlushSchedule,
	} {
		if err := pkgconfig.ValidateCronSchedule(s); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	return errors.Join(errs...)
}
