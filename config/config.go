// Copyright 2025 The Chantier Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads chantier settings from chantier.yaml, CHANTIER_*
// environment variables and command line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	CacheMemory = "memory"
	CacheDuckDB = "duckdb"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	DB       DBConfig       `mapstructure:"db"`
	Branches BranchesConfig `mapstructure:"branches"`
	Geocode  GeocodeConfig  `mapstructure:"geocode"`
	Search   SearchConfig   `mapstructure:"search"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	Mode string `mapstructure:"mode"` // debug, release or test
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type BranchesConfig struct {
	File string `mapstructure:"file"` // empty uses the bundled directory
}

type GeocodeConfig struct {
	APIKey     string        `mapstructure:"api_key"`
	Country    string        `mapstructure:"country"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Rate       float64       `mapstructure:"rate"`
	Burst      int           `mapstructure:"burst"`
	Cache      string        `mapstructure:"cache"`
	CacheSize  int           `mapstructure:"cache_size"`
	CacheTTL   time.Duration `mapstructure:"cache_ttl"`
	TraceHTTP  bool          `mapstructure:"trace_http"`
	ADCProject string        `mapstructure:"adc_project"`
	ADCKeyName string        `mapstructure:"adc_key_name"`
}

type SearchConfig struct {
	DefaultLimit    int `mapstructure:"default_limit"`
	MaxLimit        int `mapstructure:"max_limit"`
	RankedSuppliers int `mapstructure:"ranked_suppliers"`
}

// New returns a viper instance with defaults, config file locations and
// environment binding set up.
func New() *viper.Viper {
	v := viper.New()

	v.SetConfigName("chantier")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/chantier/")

	v.SetEnvPrefix("CHANTIER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", "localhost:8080")
	v.SetDefault("server.mode", "debug")

	v.SetDefault("db.path", "db/chantier.duckdb")

	v.SetDefault("branches.file", "")

	v.SetDefault("geocode.api_key", "")
	v.SetDefault("geocode.country", "CA")
	v.SetDefault("geocode.timeout", "5s")
	v.SetDefault("geocode.rate", 10.0)
	v.SetDefault("geocode.burst", 5)
	v.SetDefault("geocode.cache", CacheMemory)
	v.SetDefault("geocode.cache_size", 4096)
	v.SetDefault("geocode.cache_ttl", "0s")
	v.SetDefault("geocode.trace_http", false)
	v.SetDefault("geocode.adc_project", "")
	v.SetDefault("geocode.adc_key_name", "Chantier Geocoding Key")

	v.SetDefault("search.default_limit", 12)
	v.SetDefault("search.max_limit", 48)
	v.SetDefault("search.ranked_suppliers", 2)
}

// Load reads the optional config file and decodes v.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	cfg.Geocode.Country = strings.ToUpper(strings.TrimSpace(cfg.Geocode.Country))
	cfg.Geocode.Cache = strings.ToLower(strings.TrimSpace(cfg.Geocode.Cache))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []error

	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("server.mode must be debug, release or test, got %q", c.Server.Mode))
	}

	if c.DB.Path == "" {
		errs = append(errs, errors.New("db.path is required"))
	}

	if len(c.Geocode.Country) != 2 {
		errs = append(errs, fmt.Errorf("geocode.country must be a two letter code, got %q", c.Geocode.Country))
	}

	if c.Geocode.Timeout <= 0 {
		errs = append(errs, errors.New("geocode.timeout must be positive"))
	}

	if c.Geocode.Rate < 0 || c.Geocode.Burst < 0 {
		errs = append(errs, errors.New("geocode.rate and geocode.burst can't be negative"))
	}

	switch c.Geocode.Cache {
	case CacheMemory:
		if c.Geocode.CacheSize <= 0 {
			errs = append(errs, errors.New("geocode.cache_size must be positive"))
		}
	case CacheDuckDB:
	default:
		errs = append(errs, fmt.Errorf("geocode.cache must be %q or %q, got %q", CacheMemory, CacheDuckDB, c.Geocode.Cache))
	}

	if c.Search.DefaultLimit <= 0 || c.Search.MaxLimit <= 0 {
		errs = append(errs, errors.New("search limits must be positive"))
	} else if c.Search.DefaultLimit > c.Search.MaxLimit {
		errs = append(errs, fmt.Errorf("search.default_limit %d exceeds search.max_limit %d", c.Search.DefaultLimit, c.Search.MaxLimit))
	}

	if c.Search.RankedSuppliers < 0 {
		errs = append(errs, errors.New("search.ranked_suppliers can't be negative"))
	}

	return errors.Join(errs...)
}
