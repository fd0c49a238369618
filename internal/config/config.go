// Package config loads the application configuration.
//
// Values come from built-in defaults, an optional config.yaml and
// environment variables prefixed with FINWALL_, in ascending precedence.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Recurring RecurringConfig `mapstructure:"recurring"`
	Email     EmailConfig     `mapstructure:"email"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port        string   `mapstructure:"port"`
	Mode        string   `mapstructure:"mode"`
	CORSOrigins []string `mapstructure:"cors_origins"`
	EnablePprof bool     `mapstructure:"enable_pprof"`
}

// DatabaseConfig holds the SQLite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// RecurringConfig controls the background trigger for the recurring
// processor.
type RecurringConfig struct {
	// Interval between processing passes. The processor is also
	// triggered on demand via the API, the interval only needs to be
	// coarse.
	Interval time.Duration `mapstructure:"interval"`
}

// EmailConfig holds the SMTP settings for budget notifications.
type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	To       string `mapstructure:"to"`
}

// Load reads the configuration. configPath may be empty, in which case
// config.yaml is searched in the working directory and /etc/finwall.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.cors_origins", []string{})
	v.SetDefault("server.enable_pprof", false)
	v.SetDefault("database.path", "data/finwall.db")
	v.SetDefault("recurring.interval", 6*time.Hour)
	v.SetDefault("email.enabled", false)
	v.SetDefault("email.port", 587)

	v.SetEnvPrefix("FINWALL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("could not read config file %s: %w", configPath, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/finwall")

		// A missing config file is fine, defaults and env carry the day
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("could not read config file: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	return &config, nil
}
