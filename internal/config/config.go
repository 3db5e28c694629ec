package config

import "time"

// Storage backends selectable through DatabaseConfig.Driver.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port               int           `mapstructure:"port"                 validate:"required,gt=0,lt=65536"`
	LogLevel           string        `mapstructure:"log_level"            validate:"required,oneof=debug info warn error"`
	RequestTimeout     time.Duration `mapstructure:"request_timeout"      validate:"gt=0"`
	CORSAllowedOrigins []string      `mapstructure:"cors_allowed_origins" validate:"dive,required"`
}

// DatabaseConfig selects and configures the task storage backend.
// URL is a PostgreSQL connection string for the postgres driver and a file
// path (or ":memory:") for the sqlite driver; it is ignored by the memory driver.
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"         validate:"required,oneof=memory sqlite postgres"`
	URL          string `mapstructure:"url"            validate:"required_unless=Driver memory"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=0"`
}
