// Copyright (c) 2025 Promptsql
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; the API token goes to the OS keychain.
// Values are layered: file (or defaults), then PROMPTSQL_* environment
// variables, then command-line flags applied by the caller.
package config

import (
	"encoding/json"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	errs "promptsql/cli/internal/errors"
	"promptsql/cli/internal/xdg"
)

// Defaults used when no config file exists.
const (
	DefaultServerURL = "http://localhost:9000"
	DefaultQueryPath = "/api/query"
	DefaultLogLevel  = "info"
)

// Environment variables that override file settings.
const (
	EnvServer   = "PROMPTSQL_SERVER"
	EnvLogLevel = "PROMPTSQL_LOG_LEVEL"
	EnvTimeout  = "PROMPTSQL_TIMEOUT"
	EnvToken    = "PROMPTSQL_TOKEN"
	EnvVerbose  = "PROMPTSQL_VERBOSE"
)

// LogLevels lists the accepted log_level values.
var LogLevels = []string{"trace", "debug", "info", "warn", "error", "disabled"}

// Config holds non-sensitive CLI settings.
type Config struct {
	ServerURL string    `json:"server_url"`
	Endpoints Endpoints `json:"endpoints"`
	LogLevel  string    `json:"log_level"`
	// TimeoutSeconds bounds a whole request; 0 leaves the transport defaults in place.
	TimeoutSeconds int `json:"timeout_seconds"`
}

// Endpoints contains REST API endpoint paths relative to ServerURL.
type Endpoints struct {
	Query string `json:"query"` // e.g., "/api/query"
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ServerURL: DefaultServerURL,
		Endpoints: Endpoints{Query: DefaultQueryPath},
		LogLevel:  DefaultLogLevel,
	}
}

// Timeout returns the request timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Validate rejects values the client cannot work with.
func (c Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errs.New(errs.ConfigInvalid, "server_url must be an absolute http(s) URL, got "+strconv.Quote(c.ServerURL))
	}
	if !strings.HasPrefix(c.Endpoints.Query, "/") {
		return errs.New(errs.ConfigInvalid, "endpoints.query must start with '/', got "+strconv.Quote(c.Endpoints.Query))
	}
	if !ValidLogLevel(c.LogLevel) {
		return errs.New(errs.ConfigInvalid, "log_level must be one of "+strings.Join(LogLevels, ", "))
	}
	if c.TimeoutSeconds < 0 {
		return errs.New(errs.ConfigInvalid, "timeout_seconds must not be negative")
	}
	return nil
}

// ValidLogLevel reports whether level is one of LogLevels.
func ValidLogLevel(level string) bool {
	for _, l := range LogLevels {
		if l == level {
			return true
		}
	}
	return false
}

// path returns the path to the config file.
func path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Path returns the config file location for display purposes.
func Path() (string, error) { return path() }

// Load reads configuration; missing file returns defaults. Environment
// overrides are applied on top and the result is validated.
func Load() (Config, error) {
	c, err := loadFile()
	if err != nil {
		return c, err
	}
	if err := applyEnv(&c); err != nil {
		return c, err
	}
	return c, c.Validate()
}

func loadFile() (Config, error) {
	c := Default()
	p, err := path()
	if err != nil {
		return c, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return c, err
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, errs.Wrap(errs.ConfigInvalid, "parse "+p, err)
	}
	// Fields absent from an older file keep their defaults.
	if c.ServerURL == "" {
		c.ServerURL = DefaultServerURL
	}
	if c.Endpoints.Query == "" {
		c.Endpoints.Query = DefaultQueryPath
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	return c, nil
}

func applyEnv(c *Config) error {
	if v := strings.TrimSpace(os.Getenv(EnvServer)); v != "" {
		c.ServerURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvTimeout)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errs.Wrap(errs.ConfigInvalid, EnvTimeout+" must be a whole number of seconds", err)
		}
		c.TimeoutSeconds = n
	}
	return nil
}

// Save writes configuration with 0600 permissions. Environment overrides are
// not persisted because Save receives exactly what the caller passes.
func Save(c Config) error {
	if err := c.Validate(); err != nil {
		return err
	}
	p, err := path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

// LoadFile reads the persisted configuration without environment overrides,
// for commands that edit and save it.
func LoadFile() (Config, error) { return loadFile() }
