// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// Supported store drivers.
const (
	DriverMongo    = "mongo"
	DriverDynamoDB = "dynamodb"
	DriverMemory   = "memory"
)

// DefaultMongoDatabase is used when neither MONGO_DATABASE nor the URI path names a database.
const DefaultMongoDatabase = "flights"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Mongo    MongoConfig
	DynamoDB DynamoDBConfig
	Logging  LoggingConfig
	App      AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `env:"PORT" envDefault:"3000"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`

	// CORSOrigins lists allowed browser origins; empty allows any origin.
	CORSOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:","`
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	Driver  string        `env:"STORE_DRIVER" envDefault:"mongo"`
	Timeout time.Duration `env:"STORE_TIMEOUT" envDefault:"5s"`
}

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI        string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017/flights"`
	Database   string `env:"MONGO_DATABASE"`
	Collection string `env:"MONGO_COLLECTION" envDefault:"flights"`
}

// DynamoDBConfig holds DynamoDB settings.
// Endpoint is only set for local emulators.
type DynamoDBConfig struct {
	Table    string `env:"DYNAMODB_FLIGHTS" envDefault:"flights"`
	Endpoint string `env:"DYNAMODB_ENDPOINT"`
	Region   string `env:"AWS_REGION" envDefault:"us-east-1"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env        string `env:"APP_ENV" envDefault:"development"`
	SeedSample bool   `env:"SEED_SAMPLE_DATA" envDefault:"true"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}
	if cfg.Store.Timeout <= 0 {
		return fmt.Errorf("STORE_TIMEOUT must be positive")
	}

	switch cfg.Store.Driver {
	case DriverMongo:
		if _, err := cfg.Mongo.DatabaseName(); err != nil {
			return err
		}
		if strings.TrimSpace(cfg.Mongo.Collection) == "" {
			return fmt.Errorf("MONGO_COLLECTION must not be empty")
		}
	case DriverDynamoDB:
		if strings.TrimSpace(cfg.DynamoDB.Table) == "" {
			return fmt.Errorf("DYNAMODB_FLIGHTS must not be empty")
		}
		if strings.TrimSpace(cfg.DynamoDB.Region) == "" {
			return fmt.Errorf("AWS_REGION must not be empty")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be one of: mongo, dynamodb, memory; got %q", cfg.Store.Driver)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	return nil
}

// DatabaseName resolves the database to use. An explicit MONGO_DATABASE wins,
// then the path component of MONGO_URI, then DefaultMongoDatabase.
func (m MongoConfig) DatabaseName() (string, error) {
	cs, err := connstring.ParseAndValidate(m.URI)
	if err != nil {
		return "", fmt.Errorf("MONGO_URI is invalid: %w", err)
	}
	if name := strings.TrimSpace(m.Database); name != "" {
		return name, nil
	}
	if cs.Database != "" {
		return cs.Database, nil
	}
	return DefaultMongoDatabase, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
