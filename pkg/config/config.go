// Package config loads the provisioner's runtime configuration.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	// Groups is the platform's closed set of access groups, in processing
	// order. Property keys outside this set are ignored.
	Groups []string `mapstructure:"groups"`

	// SecretNamespace prefixes every secret identifier.
	SecretNamespace string `mapstructure:"secret_namespace"`

	// PasswordLength is the generated password length.
	PasswordLength int `mapstructure:"password_length"`

	// LogLevel is the zerolog level name.
	LogLevel string `mapstructure:"log_level"`
}

// Load reads configuration from environment variables and an optional config
// file. Environment variables override file values. Prefix: STACKUSERS_
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("groups", []string{"Admins", "Developers", "Auditors"})
	v.SetDefault("secret_namespace", "stackusers")
	v.SetDefault("password_length", 14)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("STACKUSERS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Try loading config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // Not required

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
