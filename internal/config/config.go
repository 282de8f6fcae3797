// Package config provides configuration loading and validation for the srp6 tool.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fzdarsky/srp6a/pkg/srp"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// EnvVerifierPath overrides verifier.path when set.
const EnvVerifierPath = "SRP6A_VERIFIER_PATH"

// Defaults.
const (
	DefaultGroup        = 2048
	DefaultDigest       = srp.SHA256
	DefaultSaltLength   = 32
	DefaultVerifierPath = "/var/lib/srp6a/verifier.json"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "json"
	DefaultTimeout      = "30s"

	// MinSaltLength is the shortest salt accepted for new registrations.
	MinSaltLength = 16

	// MinTimeout is the shortest handshake timeout accepted.
	MinTimeout = 100 * time.Millisecond
)

// Config represents the srp6 configuration file.
type Config struct {
	SRP       SRPSettings       `yaml:"srp"`
	Handshake HandshakeSettings `yaml:"handshake"`
	Verifier  VerifierSettings  `yaml:"verifier"`
	Logging   LoggingSettings   `yaml:"logging"`
}

// SRPSettings selects the group and digest both peers agree on.
type SRPSettings struct {
	Group      int                 `yaml:"group"`
	Digest     srp.DigestAlgorithm `yaml:"digest"`
	SaltLength int                 `yaml:"salt_length"`
}

// HandshakeSettings bounds one protocol run.
type HandshakeSettings struct {
	Timeout string `yaml:"timeout"`
}

// VerifierSettings locates the stored verifier record.
type VerifierSettings struct {
	Path string `yaml:"path"`
}

// LoggingSettings contains logging configuration.
type LoggingSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		SRP: SRPSettings{
			Group:      DefaultGroup,
			Digest:     DefaultDigest,
			SaltLength: DefaultSaltLength,
		},
		Handshake: HandshakeSettings{Timeout: DefaultTimeout},
		Verifier:  VerifierSettings{Path: DefaultVerifierPath},
		Logging: LoggingSettings{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Load reads the configuration file, layering it over Default. Keys absent
// from the file keep their defaults.
//
//nolint:gosec // G304: Config path is from command-line argument
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyEnv()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// ApplyEnv applies environment variable overrides.
func (c *Config) ApplyEnv() {
	if path := os.Getenv(EnvVerifierPath); path != "" {
		c.Verifier.Path = path
	}
}

// ProtocolConfig resolves the protocol configuration: the named group and digest
// paired with the crypto/rand source.
func (c *Config) ProtocolConfig() (srp.Config, error) {
	cfg, err := srp.NewConfig(c.SRP.Group, c.SRP.Digest)
	if err != nil {
		return srp.Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// GetHandshakeTimeout parses and returns the per-handshake timeout.
func (c *Config) GetHandshakeTimeout() (time.Duration, error) {
	duration, err := time.ParseDuration(c.Handshake.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout: %w", err)
	}

	if duration < MinTimeout {
		return 0, fmt.Errorf("timeout must be at least %v", MinTimeout)
	}

	return duration, nil
}
