package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Job      JobConfig      `mapstructure:"job" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret         string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMins int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	BcryptCost        int    `mapstructure:"bcrypt_cost" validate:"omitempty,gte=4,lte=31"`
}

// JobConfig contains background job runner settings.
type JobConfig struct {
	WorkerCount     int `mapstructure:"worker_count" validate:"required,gt=0,lte=32"`
	QueueSize       int `mapstructure:"queue_size" validate:"required,gt=0"`
	StuckJobAgeMins int `mapstructure:"stuck_job_age_minutes" validate:"required,gt=0"`
	StuckCheckMins  int `mapstructure:"stuck_check_interval_minutes" validate:"required,gt=0"`
}
