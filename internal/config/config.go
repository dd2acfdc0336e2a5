// Package config provides configuration structures and validation for the tracker.
// Settings come from defaults, an optional .env file and the environment, and only
// the storage backend that is actually selected gets validated.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Storage backends
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
)

// Config holds the complete application configuration
type Config struct {
	Application ApplicationConfig
	Logging     LoggingConfig
	Server      ServerConfig
	Storage     StorageConfig
	Postgres    PostgresConfig
	MongoDB     MongoDBConfig
	Writer      WriterConfig
}

// ApplicationConfig contains general application configuration
type ApplicationConfig struct {
	Env      string
	Name     string
	Timezone string // IANA name used to decide what "today" is
}

// Location resolves Timezone; an empty value means the host's local zone
func (c ApplicationConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string
}

// ServerConfig contains HTTP server configuration settings
type ServerConfig struct {
	Port            int           // Port to listen on
	ShutdownTimeout time.Duration // Grace period for server shutdown
	ReadTimeout     time.Duration // Maximum duration for reading entire request
	WriteTimeout    time.Duration // Maximum duration for writing response
	IdleTimeout     time.Duration // Maximum duration to wait for next request
}

// StorageConfig selects where the ledger is persisted
type StorageConfig struct {
	Backend  string // file, postgres or mongo
	DataFile string // Path of the JSON document used by the file backend
}

// PostgresConfig contains PostgreSQL configuration
type PostgresConfig struct {
	URL             string        // Database connection string
	MaxConns        int32         // Maximum number of open connections
	MinConns        int32         // Maximum number of idle connections
	ConnMaxLifetime time.Duration // Maximum lifetime of a connection
	ConnMaxIdleTime time.Duration // Maximum idle time of a connection
	MigrationsPath  string        // Path to migration files
}

// MongoDBConfig contains MongoDB configuration
type MongoDBConfig struct {
	URI             string
	Database        string
	Timeout         time.Duration
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
}

// WriterConfig tunes the single writer that serializes store operations
type WriterConfig struct {
	MaxBlockingTasks int // Callers allowed to wait for the writer, 0 for unbounded
}

// validate checks every setting and reports all problems at once
func (c *Config) validate() error {
	var validationErrors []string

	if _, err := c.Application.Location(); err != nil {
		validationErrors = append(validationErrors, fmt.Sprintf("APP_TIMEZONE is invalid: %v", err))
	}

	// Validate Server config
	if c.Server.Port <= 0 {
		validationErrors = append(validationErrors, "SERVER_PORT must be greater than 0")
	}
	if c.Server.ShutdownTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_SHUTDOWN_TIMEOUT must be greater than 0")
	}
	if c.Server.ReadTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_READ_TIMEOUT must be greater than 0")
	}
	if c.Server.WriteTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_WRITE_TIMEOUT must be greater than 0")
	}
	if c.Server.IdleTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_IDLE_TIMEOUT must be greater than 0")
	}

	if c.Writer.MaxBlockingTasks < 0 {
		validationErrors = append(validationErrors, "WRITER_MAX_BLOCKING_TASKS must not be negative")
	}

	switch c.Storage.Backend {
	case BackendFile:
		if c.Storage.DataFile == "" {
			validationErrors = append(validationErrors, "STORAGE_DATA_FILE is required")
		}
	case BackendPostgres:
		validationErrors = append(validationErrors, c.Postgres.validate()...)
	case BackendMongo:
		validationErrors = append(validationErrors, c.MongoDB.validate()...)
	default:
		validationErrors = append(validationErrors, fmt.Sprintf("STORAGE_BACKEND must be one of %s, %s, %s", BackendFile, BackendPostgres, BackendMongo))
	}

	if len(validationErrors) > 0 {
		return errors.New(strings.Join(validationErrors, ", "))
	}

	return nil
}

func (c PostgresConfig) validate() []string {
	var validationErrors []string
	if c.URL == "" {
		validationErrors = append(validationErrors, "POSTGRES_URL is required")
	}
	if c.MaxConns <= 0 {
		validationErrors = append(validationErrors, "POSTGRES_MAX_CONNS must be greater than 0")
	}
	if c.MinConns <= 0 {
		validationErrors = append(validationErrors, "POSTGRES_MIN_CONNS must be greater than 0")
	}
	if c.ConnMaxLifetime <= 0 {
		validationErrors = append(validationErrors, "POSTGRES_MAX_CONN_LIFETIME must be greater than 0")
	}
	if c.ConnMaxIdleTime <= 0 {
		validationErrors = append(validationErrors, "POSTGRES_MAX_CONN_IDLE_TIME must be greater than 0")
	}
	if c.MigrationsPath == "" {
		validationErrors = append(validationErrors, "POSTGRES_MIGRATIONS_PATH is required")
	}
	return validationErrors
}

func (c MongoDBConfig) validate() []string {
	var validationErrors []string
	if c.URI == "" {
		validationErrors = append(validationErrors, "MONGO_URI is required")
	}
	if c.Database == "" {
		validationErrors = append(validationErrors, "MONGO_DATABASE is required")
	}
	if c.Timeout <= 0 {
		validationErrors = append(validationErrors, "MONGO_TIMEOUT must be greater than 0")
	}
	if c.MaxPoolSize <= 0 {
		validationErrors = append(validationErrors, "MONGO_MAX_POOL_SIZE must be greater than 0")
	}
	if c.MaxConnIdleTime <= 0 {
		validationErrors = append(validationErrors, "MONGO_MAX_CONN_IDLE_TIME must be greater than 0")
	}
	return validationErrors
}
