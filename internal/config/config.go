package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service settings.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Geodetic GeodeticConfig `mapstructure:"geodetic"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// GeodeticConfig controls the transform API client and its response cache.
type GeodeticConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	CacheSize int           `mapstructure:"cache_size"`
}

// LogConfig controls log output.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from an optional config.yaml and environment
// variables. Environment variables use the HKGRID prefix with underscores:
// HKGRID_GEODETIC_TIMEOUT → geodetic.timeout.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("geodetic.base_url", "https://www.geodetic.gov.hk/transform/v2/")
	v.SetDefault("geodetic.timeout", "10s")
	v.SetDefault("geodetic.cache_size", 1000)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	v.SetEnvPrefix("HKGRID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return errors.New("server.shutdown_timeout must be positive")
	}
	if c.Geodetic.BaseURL == "" {
		return errors.New("geodetic.base_url is required")
	}
	if c.Geodetic.Timeout <= 0 {
		return errors.New("geodetic.timeout must be positive")
	}
	if c.Geodetic.CacheSize <= 0 {
		return errors.New("geodetic.cache_size must be positive")
	}
	return nil
}
