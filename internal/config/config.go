// Package config loads yeargrid settings from a TOML file.
//
// The default location is $XDG_CONFIG_HOME/yeargrid/config.toml (see
// [os.UserConfigDir]). A missing default file is not an error; every key has a
// default:
//
//	page_size = 4
//	precision = "day"
//	year_end_months = [11]
//	container_width = 960
//	events = "~/calendar/work.ics"
//
//	[cache]
//	backend = "file"          # file, redis or none
//	redis_addr = "localhost:6379"
//	namespace = ""
//	ttl = "168h"
//
//	[server]
//	addr = ":8080"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/yeargrid/pkg/cache"
	"github.com/matzehuels/yeargrid/pkg/errors"
	"github.com/matzehuels/yeargrid/pkg/layout"
	"github.com/matzehuels/yeargrid/pkg/pipeline"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the root configuration structure.
type Config struct {
	PageSize       int          `toml:"page_size"`
	Precision      string       `toml:"precision"`
	YearEndMonths  []int        `toml:"year_end_months"`
	ContainerWidth float64      `toml:"container_width"`
	Events         string       `toml:"events"`
	Cache          CacheConfig  `toml:"cache"`
	Server         ServerConfig `toml:"server"`
}

// CacheConfig selects and configures the layout cache.
type CacheConfig struct {
	Backend   string        `toml:"backend"`
	RedisAddr string        `toml:"redis_addr"`
	Namespace string        `toml:"namespace"`
	TTL       time.Duration `toml:"ttl"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Path returns the default config file location.
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config dir: %w", err)
	}
	return filepath.Join(configDir, "yeargrid", "config.toml"), nil
}

// Load reads the default config file, falling back to [Default] when it
// does not exist.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	path = expandPath(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "read config file")
	}
	return Parse(data)
}

// Parse decodes TOML config data, applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "parse config file")
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults sets default values for unspecified config options.
func (c *Config) applyDefaults() {
	if c.PageSize == 0 {
		c.PageSize = pipeline.DefaultPageSize
	}
	if c.Precision == "" {
		c.Precision = string(layout.DefaultPrecision)
	}
	if c.YearEndMonths == nil {
		c.YearEndMonths = append([]int(nil), pipeline.DefaultYearEndMonths...)
	}
	if c.ContainerWidth == 0 {
		c.ContainerWidth = 960
	}
	c.Events = expandPath(c.Events)
	if c.Cache.Backend == "" {
		c.Cache.Backend = BackendFile
	}
	if c.Cache.RedisAddr == "" {
		c.Cache.RedisAddr = "localhost:6379"
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = cache.TTLLayout
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
}

// Validate checks every setting, failing with a CONFIGURATION error.
func (c *Config) Validate() error {
	if err := errors.ValidatePageSize(c.PageSize); err != nil {
		return err
	}
	p, err := layout.ParsePrecision(c.Precision)
	if err != nil {
		return err
	}
	c.Precision = string(p)
	for _, m := range c.YearEndMonths {
		if err := errors.ValidateMonthIndex(m); err != nil {
			return err
		}
	}
	if c.ContainerWidth <= 0 {
		return errors.Configuration("invalid container_width %v (must be > 0)", c.ContainerWidth)
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errors.Configuration("invalid cache backend %q (must be file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.Configuration("invalid cache ttl %s", c.Cache.TTL)
	}
	return nil
}

// PipelineOptions returns pipeline options seeded from the config.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		PageSize:      c.PageSize,
		Precision:     c.Precision,
		YearEndMonths: append([]int(nil), c.YearEndMonths...),
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
