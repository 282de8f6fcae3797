package config

import (
	"fmt"
	"path/filepath"

	"github.com/fzdarsky/srp6a/internal/logging"
	"github.com/fzdarsky/srp6a/pkg/srp"
)

// Validate performs comprehensive validation on the configuration and
// canonicalizes the digest name. Every returned error wraps ErrInvalidConfig.
func Validate(cfg *Config) error {
	if err := validateSRP(cfg); err != nil {
		return fmt.Errorf("%w: srp: %w", ErrInvalidConfig, err)
	}

	if _, err := cfg.GetHandshakeTimeout(); err != nil {
		return fmt.Errorf("%w: handshake: %w", ErrInvalidConfig, err)
	}

	if err := validateVerifier(cfg); err != nil {
		return fmt.Errorf("%w: verifier: %w", ErrInvalidConfig, err)
	}

	if err := validateLogging(cfg); err != nil {
		return fmt.Errorf("%w: logging: %w", ErrInvalidConfig, err)
	}

	return nil
}

func validateSRP(cfg *Config) error {
	if _, err := srp.GroupBySize(cfg.SRP.Group); err != nil {
		return fmt.Errorf("group must be one of %v", srp.GroupSizes())
	}

	digest, err := srp.NewDigest(cfg.SRP.Digest)
	if err != nil {
		return fmt.Errorf("digest must be one of %v", srp.DigestAlgorithms())
	}
	cfg.SRP.Digest = digest.Algorithm()

	if cfg.SRP.SaltLength < MinSaltLength {
		return fmt.Errorf("salt_length must be at least %d bytes", MinSaltLength)
	}

	return nil
}

func validateVerifier(cfg *Config) error {
	if cfg.Verifier.Path == "" {
		return fmt.Errorf("path is required")
	}

	if !filepath.IsAbs(cfg.Verifier.Path) {
		return fmt.Errorf("path must be absolute")
	}

	return nil
}

func validateLogging(cfg *Config) error {
	if _, err := logging.ParseLevel(cfg.Logging.Level); err != nil {
		return err
	}

	if _, err := logging.ParseFormat(cfg.Logging.Format); err != nil {
		return err
	}

	return nil
}
