// Package config loads the absorb CLI configuration.
//
// Settings are layered, later layers winning:
//
//  1. built-in defaults
//  2. the TOML file ($XDG_CONFIG_HOME/absorb/config.toml or --config)
//  3. ABSORB_* environment variables, optionally seeded from a .env file
//  4. command-line flags (applied by the caller)
//
// Example file:
//
//	[defaults]
//	radius = 0.40
//	spectrum = 0.41
//	spectrum_type = "Wavelength"
//	density = 0.5
//	density_type = "PackedFraction"
//	resolution = 300
//
//	[tables]
//	xsect = "/usr/share/fprime/Xsect.dat"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//	ttl = "24h"
//
//	[log]
//	file = "/var/log/absorb.log"
//	level = "debug"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/matzehuels/absorb/pkg/cache"
	"github.com/matzehuels/absorb/pkg/density"
	"github.com/matzehuels/absorb/pkg/pipeline"
	"github.com/matzehuels/absorb/pkg/spectrum"
)

// AppName names the configuration and cache directories.
const AppName = "absorb"

// Environment variables that override the file.
const (
	EnvConfig       = "ABSORB_CONFIG"
	EnvCacheBackend = "ABSORB_CACHE_BACKEND"
	EnvCacheDir     = "ABSORB_CACHE_DIR"
	EnvRedisURL     = "ABSORB_REDIS_URL"
	EnvXsect        = "ABSORB_XSECT"
	EnvLogFile      = "ABSORB_LOG_FILE"
	EnvLogLevel     = "ABSORB_LOG_LEVEL"
	EnvResolution   = "ABSORB_RESOLUTION"
)

// Config is the complete CLI configuration.
type Config struct {
	Defaults Defaults    `toml:"defaults"`
	Tables   Tables      `toml:"tables"`
	Cache    CacheConfig `toml:"cache"`
	Log      LogConfig   `toml:"log"`
}

// Defaults are the request values used when a flag is not given.
type Defaults struct {
	Radius       float64 `toml:"radius"`
	Spectrum     float64 `toml:"spectrum"`
	SpectrumType string  `toml:"spectrum_type"`
	Density      float64 `toml:"density"`
	DensityType  string  `toml:"density_type"`
	Resolution   int     `toml:"resolution"`
}

// Tables selects the scattering data.
type Tables struct {
	// Xsect is the path of a Cromer-Liberman Xsect.dat file replacing the
	// embedded orbital tables. Empty means embedded.
	Xsect string `toml:"xsect"`

	// AtomicVolume overrides the reference volume per atom (Å³) used to
	// estimate density from a packing fraction.
	AtomicVolume float64 `toml:"atomic_volume"`
}

// CacheConfig selects the result cache backend.
type CacheConfig struct {
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
	Prefix   string   `toml:"prefix"`
	TTL      Duration `toml:"ttl"`
}

// LogConfig configures logging. An empty File logs to stderr only.
type LogConfig struct {
	File       string `toml:"file"`
	Level      string `toml:"level"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// Duration is a time.Duration read from a string such as "24h".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the configuration at path and applies environment overrides.
//
// An empty path means the ABSORB_CONFIG variable or, failing that, the
// default location; a missing file at the default location is not an error.
// An explicitly named file must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfig)
		explicit = path != ""
	}
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	var cfg Config
	if path != "" {
		path = os.ExpandEnv(path)
		_, err := toml.DecodeFile(path, &cfg)
		switch {
		case err == nil:
		case os.IsNotExist(err) && !explicit:
		case os.IsNotExist(err):
			return nil, fmt.Errorf("config file not found: %s", path)
		default:
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDotEnv loads KEY=value pairs from a .env file into the environment.
// Variables already set are left untouched. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvCacheBackend); v != "" {
		c.Cache.Backend = v
	}
	if v := os.Getenv(EnvCacheDir); v != "" {
		c.Cache.Dir = v
	}
	if v := os.Getenv(EnvRedisURL); v != "" {
		c.Cache.RedisURL = v
	}
	if v := os.Getenv(EnvXsect); v != "" {
		c.Tables.Xsect = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvResolution); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: invalid integer %q", EnvResolution, v)
		}
		c.Defaults.Resolution = n
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Defaults.Radius == 0 {
		c.Defaults.Radius = pipeline.DefaultRadius
	}
	if c.Defaults.Spectrum == 0 {
		c.Defaults.Spectrum = pipeline.DefaultSpectrum
	}
	if c.Defaults.SpectrumType == "" {
		c.Defaults.SpectrumType = string(pipeline.DefaultSpectrumType)
	}
	if c.Defaults.Density == 0 {
		c.Defaults.Density = pipeline.DefaultDensity
	}
	if c.Defaults.DensityType == "" {
		c.Defaults.DensityType = string(pipeline.DefaultDensityType)
	}
	if c.Defaults.Resolution == 0 {
		c.Defaults.Resolution = pipeline.DefaultResolution
	}

	if c.Cache.Backend == "" {
		c.Cache.Backend = cache.BackendFile
	}
	if c.Cache.Dir == "" {
		if dir, err := CacheDir(); err == nil {
			c.Cache.Dir = dir
		}
	}
	if c.Cache.TTL.Duration == 0 {
		c.Cache.TTL.Duration = cache.TTLResult
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = 10
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = 3
	}
	if c.Log.MaxAgeDays == 0 {
		c.Log.MaxAgeDays = 28
	}
}

// Validate checks values that cannot be caught when a request is built.
func (c *Config) Validate() error {
	if _, err := spectrum.ParseKind(c.Defaults.SpectrumType); err != nil {
		return fmt.Errorf("defaults.spectrum_type: %w", err)
	}
	switch strings.ToLower(c.Cache.Backend) {
	case cache.BackendFile, cache.BackendRedis, cache.BackendNone:
	default:
		return fmt.Errorf("cache.backend: %w: %q", cache.ErrUnknownBackend, c.Cache.Backend)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Tables.AtomicVolume < 0 {
		return fmt.Errorf("tables.atomic_volume: must be positive, got %g", c.Tables.AtomicVolume)
	}
	return nil
}

// Request returns a pipeline request for formula filled from the defaults.
func (c *Config) Request(formula string) pipeline.Request {
	kind, _ := spectrum.ParseKind(c.Defaults.SpectrumType)
	return pipeline.Request{
		Formula:      formula,
		Radius:       c.Defaults.Radius,
		Spectrum:     c.Defaults.Spectrum,
		SpectrumType: kind,
		Density:      c.Defaults.Density,
		DensityType:  density.ParseMode(c.Defaults.DensityType),
		Resolution:   c.Defaults.Resolution,
	}
}

// CacheOptions returns the options for cache.Open.
func (c *Config) CacheOptions() cache.Options {
	return cache.Options{
		Backend:  c.Cache.Backend,
		Dir:      c.Cache.Dir,
		RedisURL: c.Cache.RedisURL,
		Prefix:   c.Cache.Prefix,
	}
}

// =============================================================================
// Paths
// =============================================================================

// DefaultPath returns the configuration file path using the XDG standard
// (~/.config/absorb/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// CacheDir returns the cache directory using the XDG standard (~/.cache/absorb/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
