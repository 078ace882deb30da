package config

import (
	"errors"
	"sync"

	"github.com/spf13/viper"
)

// Storage drivers understood by the server.
const (
	StorageMongo  = "mongo"
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Validation errors returned by Config.Validate.
var (
	ErrAppPortRange        = errors.New("APP_PORT must be between 1 and 65535")
	ErrLogLevelEmpty       = errors.New("LOG_LEVEL cannot be empty")
	ErrLogFormatEmpty      = errors.New("LOG_FORMAT cannot be empty")
	ErrStorageDriver       = errors.New("STORAGE_DRIVER must be one of mongo, sqlite, memory")
	ErrMongoURIEmpty       = errors.New("MONGO_URI cannot be empty")
	ErrMongoDBNameEmpty    = errors.New("MONGO_DB_NAME cannot be empty")
	ErrSQLitePathEmpty     = errors.New("SQLITE_PATH cannot be empty")
	ErrWriteRateNegative   = errors.New("WRITE_RATE_PER_MIN must be greater than or equal to 0")
	ErrClientURLEmpty      = errors.New("CLIENT_URL cannot be empty")
	ErrDefaultGradientSize = errors.New("DEFAULT_GRADIENT must be at most 256 characters")
)

// Config holds all application configuration
type Config struct {
	AppPort                int    `mapstructure:"APP_PORT"`
	LogLevel               string `mapstructure:"LOG_LEVEL"`
	LogFormat              string `mapstructure:"LOG_FORMAT"`
	StorageDriver          string `mapstructure:"STORAGE_DRIVER"`
	MongoURI               string `mapstructure:"MONGO_URI"`
	MongoDBName            string `mapstructure:"MONGO_DB_NAME"`
	SQLitePath             string `mapstructure:"SQLITE_PATH"`
	ClientURL              string `mapstructure:"CLIENT_URL"`
	DefaultGradient        string `mapstructure:"DEFAULT_GRADIENT"`
	WriteRatePerMin        int    `mapstructure:"WRITE_RATE_PER_MIN"`
	RouteMetricsEnabled    bool   `mapstructure:"ROUTE_METRICS_ENABLED"`
	RequestLoggingEnabled  bool   `mapstructure:"REQUEST_LOGGING_ENABLED"`
	PyroscopeServerAddress string `mapstructure:"PYROSCOPE_SERVER_ADDRESS"`
}

var (
	cachedConfig *Config
	configMutex  sync.RWMutex
)

// Load loads configuration from environment variables and .env file
// It caches the result for subsequent calls
func Load() (Config, error) {
	configMutex.RLock()
	if cachedConfig != nil {
		defer configMutex.RUnlock()
		return *cachedConfig, nil
	}
	configMutex.RUnlock()

	configMutex.Lock()
	defer configMutex.Unlock()

	if cachedConfig != nil {
		return *cachedConfig, nil
	}

	v := viper.New()

	v.SetDefault("APP_PORT", 8080)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("STORAGE_DRIVER", StorageMongo)
	v.SetDefault("MONGO_URI", "mongodb://mongo:27017")
	v.SetDefault("MONGO_DB_NAME", "noteslides")
	v.SetDefault("SQLITE_PATH", "./data/noteslides.db")
	v.SetDefault("CLIENT_URL", "http://localhost:3000")
	v.SetDefault("DEFAULT_GRADIENT", "linear-gradient(135deg, #1db954 0%, #1ed760 100%)")
	v.SetDefault("WRITE_RATE_PER_MIN", 60) // 0 disables the limiter
	v.SetDefault("ROUTE_METRICS_ENABLED", true)
	v.SetDefault("REQUEST_LOGGING_ENABLED", true)
	v.SetDefault("PYROSCOPE_SERVER_ADDRESS", "")

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	// A missing .env is fine, a broken one is not.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	cachedConfig = &cfg

	return cfg, nil
}

// ResetCache clears the cached configuration (for testing purposes)
func ResetCache() {
	configMutex.Lock()
	defer configMutex.Unlock()
	cachedConfig = nil
}

// Validate checks if required configuration fields are properly set.
// Storage settings are only checked for the selected driver.
func (c Config) Validate() error {
	if c.AppPort <= 0 || c.AppPort > 65535 {
		return ErrAppPortRange
	}
	if c.LogLevel == "" {
		return ErrLogLevelEmpty
	}
	if c.LogFormat == "" {
		return ErrLogFormatEmpty
	}
	switch c.StorageDriver {
	case StorageMongo:
		if c.MongoURI == "" {
			return ErrMongoURIEmpty
		}
		if c.MongoDBName == "" {
			return ErrMongoDBNameEmpty
		}
	case StorageSQLite:
		if c.SQLitePath == "" {
			return ErrSQLitePathEmpty
		}
	case StorageMemory:
	default:
		return ErrStorageDriver
	}
	if c.WriteRatePerMin < 0 {
		return ErrWriteRateNegative
	}
	if c.ClientURL == "" {
		return ErrClientURLEmpty
	}
	if len(c.DefaultGradient) > 256 {
		return ErrDefaultGradientSize
	}
	return nil
}
