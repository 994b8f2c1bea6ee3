package config

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"os"
	"strconv"
	"time"
)

const (
	defaultCatalogURL     = "https://stores.example.com/data/ContosoCoffee.txt"
	defaultCatalogTable   = "store-catalog-snapshots"
	defaultFetchTimeout   = 3 * time.Second
	defaultMaxClusterZoom = 11
)

type Config struct {
	Environment string
	LogLevel    zerolog.Level
	HTTPTimeout time.Duration

	// Catalog location, checked in order: local file, S3 object, URL
	CatalogFile     string
	CatalogS3Bucket string
	CatalogS3Key    string
	CatalogURL      string
	CatalogTable    string

	// Upper bound on the startup fetch; on timeout the service serves an empty catalog
	FetchTimeout time.Duration

	// Zoom level at which the list panel switches from overview to detail
	MaxClusterZoom float64
}

type Option func(*Config)

// WithEnvironment allows setting the environment
func WithEnvironment(env string) Option {
	return func(c *Config) {
		c.Environment = env
	}
}

// WithLogLevel allows setting the log level
func WithLogLevel(level string) Option {
	return func(c *Config) {
		parsedLevel, err := zerolog.ParseLevel(level)
		if err != nil {
			parsedLevel = zerolog.InfoLevel
		}
		c.LogLevel = parsedLevel
	}
}

// WithHTTPTimeout allows setting the HTTP timeout
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.HTTPTimeout = timeout
	}
}

func WithCatalogURL(url string) Option {
	return func(c *Config) {
		c.CatalogURL = url
	}
}

func WithCatalogFile(path string) Option {
	return func(c *Config) {
		c.CatalogFile = path
	}
}

func WithCatalogS3(bucket, key string) Option {
	return func(c *Config) {
		c.CatalogS3Bucket = bucket
		c.CatalogS3Key = key
	}
}

func WithCatalogTable(table string) Option {
	return func(c *Config) {
		c.CatalogTable = table
	}
}

func WithFetchTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.FetchTimeout = timeout
	}
}

func WithMaxClusterZoom(zoom float64) Option {
	return func(c *Config) {
		c.MaxClusterZoom = zoom
	}
}

// New creates a new configuration with default values
func New(opts ...Option) *Config {
	cfg := &Config{
		Environment:    "production",
		LogLevel:       zerolog.InfoLevel,
		HTTPTimeout:    10 * time.Second,
		CatalogURL:     defaultCatalogURL,
		CatalogTable:   defaultCatalogTable,
		FetchTimeout:   defaultFetchTimeout,
		MaxClusterZoom: defaultMaxClusterZoom,
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// InitializeLogging sets up logging based on the configuration
func (c *Config) InitializeLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(c.LogLevel)

	// Console output for local work, structured JSON everywhere else
	if c.Environment == "local" || c.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	} else {
		log.Logger = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Logger()
	}
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	return New(
		WithEnvironment(getEnvOrDefault("ENV", "production")),
		WithLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
		WithHTTPTimeout(getDurationEnvOrDefault("HTTP_TIMEOUT", 10*time.Second)),
		WithCatalogURL(getEnvOrDefault("CATALOG_URL", defaultCatalogURL)),
		WithCatalogFile(os.Getenv("CATALOG_FILE")),
		WithCatalogS3(os.Getenv("CATALOG_S3_BUCKET"), getEnvOrDefault("CATALOG_S3_KEY", "ContosoCoffee.txt")),
		WithCatalogTable(getEnvOrDefault("CATALOG_TABLE", defaultCatalogTable)),
		WithFetchTimeout(getDurationEnvOrDefault("CATALOG_FETCH_TIMEOUT", defaultFetchTimeout)),
		WithMaxClusterZoom(getFloatEnvOrDefault("MAX_CLUSTER_ZOOM", defaultMaxClusterZoom)),
	)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getFloatEnvOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Warn().Str("key", key).Msg("Invalid numeric value in environment variable, using default")
	}
	return defaultValue
}
