package httpserver

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrNoAddr is returned when Config.Addr is empty.
var ErrNoAddr = errors.New("httpserver: listen address must not be empty")

// Config configures the Server behaviour. Each field maps to a YAML key
// in LoadConfig files; zero values fall back to the documented defaults.
type Config struct {
	// Addr is the TCP listen address, e.g. ":8080". Required.
	// YAML key: addr.
	Addr string

	// ReadHeaderTimeout bounds reading the request headers.
	// Defaults to 10 seconds. YAML key: read_header_timeout.
	ReadHeaderTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown once the serve context is
	// cancelled. Defaults to 30 seconds. YAML key: shutdown_timeout.
	ShutdownTimeout time.Duration

	// MaxBodyBytes limits the request body size. Requests exceeding the
	// limit fail with 413 Content Too Large (RFC 9110 Section 15.5.14).
	// Zero means no limit. YAML key: max_body_bytes.
	MaxBodyBytes int64

	// EnableH2C serves cleartext HTTP/2 (RFC 9113 Section 3.1) alongside
	// HTTP/1.1 on the same listener. YAML key: enable_h2c.
	EnableH2C bool

	// Hostname is the value written to the X-Server-Hostname response
	// header. Resolution order: Hostname field, then HostnameEnv
	// environment variables, then os.Hostname. YAML key: hostname.
	Hostname string

	// HostnameEnv is a list of environment variable names checked in
	// order (e.g. ["POD_NAME", "HOSTNAME"]). The first non-empty value
	// is used. Only consulted when Hostname is empty.
	// YAML key: hostname_env.
	HostnameEnv []string
}

// withDefaults returns the config with zero-value fields replaced by their
// defaults.
func (c Config) withDefaults() Config {
	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = 10 * time.Second
	}

	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 30 * time.Second
	}

	return c
}

// resolveHostname applies the documented resolution order.
func (c Config) resolveHostname() (string, error) {
	if c.Hostname != "" {
		return c.Hostname, nil
	}

	for _, env := range c.HostnameEnv {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			return v, nil
		}
	}

	return os.Hostname()
}

// fileConfig mirrors Config for YAML decoding. Durations are given as
// strings ("10s", "1m30s") and parsed with time.ParseDuration.
type fileConfig struct {
	Addr              string   `yaml:"addr"`
	ReadHeaderTimeout string   `yaml:"read_header_timeout"`
	ShutdownTimeout   string   `yaml:"shutdown_timeout"`
	MaxBodyBytes      int64    `yaml:"max_body_bytes"`
	EnableH2C         bool     `yaml:"enable_h2c"`
	Hostname          string   `yaml:"hostname"`
	HostnameEnv       []string `yaml:"hostname_env"`
}

// LoadConfig reads a YAML config file. Unknown keys are rejected so typos
// in config files surface at startup instead of silently falling back to
// defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("httpserver: read config: %w", err)
	}

	var raw fileConfig

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&raw); err != nil {
		return Config{}, fmt.Errorf("httpserver: parse config %s: %w", path, err)
	}

	cfg := Config{
		Addr:         raw.Addr,
		MaxBodyBytes: raw.MaxBodyBytes,
		EnableH2C:    raw.EnableH2C,
		Hostname:     raw.Hostname,
		HostnameEnv:  raw.HostnameEnv,
	}

	if cfg.ReadHeaderTimeout, err = parseDuration(raw.ReadHeaderTimeout, "read_header_timeout"); err != nil {
		return Config{}, err
	}

	if cfg.ShutdownTimeout, err = parseDuration(raw.ShutdownTimeout, "shutdown_timeout"); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func parseDuration(value, key string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("httpserver: parse config key %s: %w", key, err)
	}

	return d, nil
}
