// Package config resolves settings from flags, the environment, a TOML file
// and built-in defaults, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/pable/go-duel-matrix/internal/api"
	"github.com/pable/go-duel-matrix/internal/duels"
	"github.com/pable/go-duel-matrix/internal/model"
)

// Environment variables that override the config file.
const (
	EnvAPIURL  = "DUELMATRIX_API_URL"
	EnvDB      = "DUELMATRIX_DB"
	EnvAddr    = "DUELMATRIX_ADDR"
	EnvTimeout = "DUELMATRIX_TIMEOUT"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	API     APIConfig     `toml:"api"`
	Storage StorageConfig `toml:"storage"`
	Matrix  MatrixConfig  `toml:"matrix"`
	Serve   ServeConfig   `toml:"serve"`
}

// APIConfig maps backend settings.
type APIConfig struct {
	BaseURL        *string `toml:"base_url"`
	TimeoutSeconds *int    `toml:"timeout_seconds"`
}

// StorageConfig maps database settings.
type StorageConfig struct {
	DBPath *string `toml:"db_path"`
}

// MatrixConfig maps the default matrix filter.
type MatrixConfig struct {
	Map        *string `toml:"map"`
	KillType   *string `toml:"kill_type"`
	Duplicates *string `toml:"duplicates"`
}

// ServeConfig maps JSON API settings.
type ServeConfig struct {
	Addr *string `toml:"addr"`
}

// LoadFile reads a TOML config from the given path. Missing file is not an error.
func LoadFile(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Config is the resolved runtime configuration.
type Config struct {
	APIBaseURL string
	APITimeout time.Duration
	DBPath     string
	Map        string
	KillType   string
	Duplicates duels.DuplicatePolicy
	Addr       string
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		APIBaseURL: api.DefaultBaseURL,
		APITimeout: 30 * time.Second,
		DBPath:     DefaultDBPath(),
		Map:        model.AllMaps,
		KillType:   model.AllKills,
		Duplicates: duels.LastWins,
		Addr:       ":8080",
	}
}

// Overrides holds values given explicitly on the command line; empty means unset.
type Overrides struct {
	APIBaseURL string
	DBPath     string
	Addr       string
}

// Load resolves the configuration. A .env file in the working directory is
// loaded first so its variables behave like real environment variables.
// An empty path means the default config file, which may be absent; an
// explicit path must exist.
func Load(path string, o Overrides) (Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = DefaultConfigPath()
	} else if _, err := os.Stat(path); err != nil {
		return Config{}, fmt.Errorf("config file: %w", err)
	}
	fc, err := LoadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Resolve(fc, os.Getenv, o)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Resolve merges file values, environment lookups and overrides onto the defaults.
func Resolve(fc FileConfig, getenv func(string) string, o Overrides) (Config, error) {
	cfg := Defaults()

	setString(&cfg.APIBaseURL, fc.API.BaseURL)
	setString(&cfg.DBPath, fc.Storage.DBPath)
	setString(&cfg.Map, fc.Matrix.Map)
	setString(&cfg.KillType, fc.Matrix.KillType)
	setString(&cfg.Addr, fc.Serve.Addr)
	if fc.API.TimeoutSeconds != nil {
		if *fc.API.TimeoutSeconds <= 0 {
			return Config{}, fmt.Errorf("api.timeout_seconds must be positive")
		}
		cfg.APITimeout = time.Duration(*fc.API.TimeoutSeconds) * time.Second
	}
	if fc.Matrix.Duplicates != nil {
		p, ok := duels.ParsePolicy(*fc.Matrix.Duplicates)
		if !ok {
			return Config{}, fmt.Errorf("matrix.duplicates: unknown policy %q", *fc.Matrix.Duplicates)
		}
		cfg.Duplicates = p
	}

	if v := getenv(EnvAPIURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := getenv(EnvDB); v != "" {
		cfg.DBPath = v
	}
	if v := getenv(EnvAddr); v != "" {
		cfg.Addr = v
	}
	if v := getenv(EnvTimeout); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("%s: invalid timeout %q", EnvTimeout, v)
		}
		cfg.APITimeout = time.Duration(n) * time.Second
	}

	if o.APIBaseURL != "" {
		cfg.APIBaseURL = o.APIBaseURL
	}
	if o.DBPath != "" {
		cfg.DBPath = o.DBPath
	}
	if o.Addr != "" {
		cfg.Addr = o.Addr
	}
	return cfg, nil
}

func setString(dst *string, v *string) {
	if v != nil && *v != "" {
		*dst = *v
	}
}
