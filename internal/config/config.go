// Package config loads and validates application configuration.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Redis    RedisConfig    `mapstructure:"redis"    validate:"required"`
	Session  SessionConfig  `mapstructure:"session"  validate:"required"`
}

// ServerConfig contains process-level settings.
type ServerConfig struct {
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// RedisConfig contains the session-state store settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr" validate:"required"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`

	// SessionTTLMinutes bounds how long an abandoned session survives before
	// Redis drops it. Completed and cancelled sessions are deleted eagerly.
	SessionTTLMinutes int `mapstructure:"session_ttl_minutes" validate:"required,gt=0"`
}

// SessionConfig caps the batch materialized at session start, per exercise
// kind. Sizes are bounded to keep one sitting manageable.
type SessionConfig struct {
	LearningBatchSize      int `mapstructure:"learning_batch_size"      validate:"required,gte=10,lte=20"`
	ReviewBatchSize        int `mapstructure:"review_batch_size"        validate:"required,gte=10,lte=20"`
	PronunciationBatchSize int `mapstructure:"pronunciation_batch_size" validate:"required,gte=10,lte=20"`
}
