package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// CacheConfig holds all cache-related configuration
type CacheConfig struct {
	// Rendered list panels
	PanelLRUSize       int
	PanelLRUTTLMinutes int

	// Loaded catalog, in memory and in DynamoDB
	CatalogTTLHours int

	// Batch processing settings
	BatchSize       int
	MaxBatchRetries int

	// General settings
	EnablePanelCache  bool
	EnableDynamoCache bool
}

const (
	// Default values
	defaultPanelLRUSize       = 2000
	defaultPanelLRUTTLMinutes = 10
	defaultCatalogTTLHours    = 24
	defaultBatchSize          = 25
	defaultMaxBatchRetries    = 3
)

// GetCacheConfig returns the cache configuration from environment variables or defaults
func GetCacheConfig() *CacheConfig {
	config := &CacheConfig{
		PanelLRUSize:       getEnvInt("CACHE_PANEL_LRU_SIZE", defaultPanelLRUSize),
		PanelLRUTTLMinutes: getEnvInt("CACHE_PANEL_TTL_MINUTES", defaultPanelLRUTTLMinutes),
		CatalogTTLHours:    getEnvInt("CACHE_CATALOG_TTL_HOURS", defaultCatalogTTLHours),
		BatchSize:          getEnvInt("CACHE_BATCH_SIZE", defaultBatchSize),
		MaxBatchRetries:    getEnvInt("CACHE_MAX_BATCH_RETRIES", defaultMaxBatchRetries),
		EnablePanelCache:   getEnvBool("CACHE_ENABLE_PANEL", true),
		EnableDynamoCache:  getEnvBool("CACHE_ENABLE_DYNAMO", false),
	}

	// BatchWriteItem accepts at most 25 items
	if config.BatchSize <= 0 || config.BatchSize > defaultBatchSize {
		config.BatchSize = defaultBatchSize
	}

	log.Debug().
		Int("PanelLRUSize", config.PanelLRUSize).
		Int("PanelLRUTTLMinutes", config.PanelLRUTTLMinutes).
		Int("CatalogTTLHours", config.CatalogTTLHours).
		Int("BatchSize", config.BatchSize).
		Int("MaxBatchRetries", config.MaxBatchRetries).
		Bool("EnablePanelCache", config.EnablePanelCache).
		Bool("EnableDynamoCache", config.EnableDynamoCache).
		Msg("Cache configuration loaded")

	return config
}

func (c *CacheConfig) GetPanelLRUTTL() time.Duration {
	return time.Duration(c.PanelLRUTTLMinutes) * time.Minute
}

func (c *CacheConfig) GetCatalogTTL() time.Duration {
	return time.Duration(c.CatalogTTLHours) * time.Hour
}

// Helper functions to get environment variables with defaults
func getEnvInt(key string, defaultVal int) int {
	if val, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
		log.Warn().Str("key", key).Msg("Invalid integer value in environment variable, using default")
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val, exists := os.LookupEnv(key); exists {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}
