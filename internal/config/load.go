package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from an optional config.yaml and from environment
// variables with the LINGOORU_ prefix. Environment variables take precedence
// over values from the config file (LINGOORU_DATABASE_URL overrides
// database.url). Returns a populated, validated Config.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("LINGOORU")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; env vars and defaults still apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.log_level", "info")
	// Empty defaults register the keys so AutomaticEnv can populate them;
	// validation rejects the ones that stay empty.
	v.SetDefault("database.url", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.session_ttl_minutes", 24*60)
	v.SetDefault("session.learning_batch_size", 20)
	v.SetDefault("session.review_batch_size", 20)
	v.SetDefault("session.pronunciation_batch_size", 10)
}
