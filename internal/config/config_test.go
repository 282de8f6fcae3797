//nolint:gosec // G306: Test files use standard permissions
package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fzdarsky/srp6a/internal/config"
	"github.com/fzdarsky/srp6a/pkg/srp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, 2048, cfg.SRP.Group)
	assert.Equal(t, srp.SHA256, cfg.SRP.Digest)
	assert.Equal(t, 32, cfg.SRP.SaltLength)
	assert.Equal(t, "/var/lib/srp6a/verifier.json", cfg.Verifier.Path)
	assert.Equal(t, "30s", cfg.Handshake.Timeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	require.NoError(t, config.Validate(cfg))
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
srp:
  group: 3072
  digest: sha3-256
  salt_length: 16
handshake:
  timeout: 5s
verifier:
  path: /tmp/srp6a/verifier.json
logging:
  level: debug
  format: human
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3072, cfg.SRP.Group)
	assert.Equal(t, srp.SHA3_256, cfg.SRP.Digest)
	assert.Equal(t, 16, cfg.SRP.SaltLength)
	assert.Equal(t, "/tmp/srp6a/verifier.json", cfg.Verifier.Path)

	timeout, err := cfg.GetHandshakeTimeout()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, timeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "human", cfg.Logging.Format)
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
srp:
  digest: sha-512
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, srp.SHA512, cfg.SRP.Digest)
	assert.Equal(t, config.DefaultGroup, cfg.SRP.Group)
	assert.Equal(t, config.DefaultSaltLength, cfg.SRP.SaltLength)
	assert.Equal(t, config.DefaultVerifierPath, cfg.Verifier.Path)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv(config.EnvVerifierPath, "/run/srp6a/alice.json")
	path := writeConfig(t, "logging:\n  level: warn\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/run/srp6a/alice.json", cfg.Verifier.Path)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := config.Load(writeConfig(t, "srp: [\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		errMsg string
	}{
		{
			name:   "unknown group",
			mutate: func(c *config.Config) { c.SRP.Group = 1000 },
			errMsg: "group must be one of",
		},
		{
			name:   "unknown digest",
			mutate: func(c *config.Config) { c.SRP.Digest = "md5" },
			errMsg: "digest must be one of",
		},
		{
			name:   "short salt",
			mutate: func(c *config.Config) { c.SRP.SaltLength = 8 },
			errMsg: "salt_length must be at least 16",
		},
		{
			name:   "bad timeout",
			mutate: func(c *config.Config) { c.Handshake.Timeout = "soon" },
			errMsg: "invalid timeout",
		},
		{
			name:   "short timeout",
			mutate: func(c *config.Config) { c.Handshake.Timeout = "1ms" },
			errMsg: "timeout must be at least 100ms",
		},
		{
			name:   "empty verifier path",
			mutate: func(c *config.Config) { c.Verifier.Path = "" },
			errMsg: "path is required",
		},
		{
			name:   "relative verifier path",
			mutate: func(c *config.Config) { c.Verifier.Path = "verifier.json" },
			errMsg: "path must be absolute",
		},
		{
			name:   "bad log level",
			mutate: func(c *config.Config) { c.Logging.Level = "trace" },
			errMsg: "invalid log level",
		},
		{
			name:   "bad log format",
			mutate: func(c *config.Config) { c.Logging.Format = "xml" },
			errMsg: "invalid log format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)

			err := config.Validate(cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestConfig_ProtocolConfig(t *testing.T) {
	cfg := config.Default()
	cfg.SRP.Group = 1536
	cfg.SRP.Digest = srp.BLAKE2b256

	srpCfg, err := cfg.ProtocolConfig()
	require.NoError(t, err)
	assert.Equal(t, 1536, srpCfg.Group.Bits())
	assert.Equal(t, 32, srpCfg.Digest.Size())
	assert.NotNil(t, srpCfg.Random)

	cfg.SRP.Group = 512
	_, err = cfg.ProtocolConfig()
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestLoadOrDefault(t *testing.T) {
	// Point the user config dir at an empty directory.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	t.Run("explicit path", func(t *testing.T) {
		cfg, err := config.LoadOrDefault(writeConfig(t, "srp:\n  group: 4096\n"))
		require.NoError(t, err)
		assert.Equal(t, 4096, cfg.SRP.Group)
	})

	t.Run("no user file", func(t *testing.T) {
		t.Setenv(config.EnvVerifierPath, "/srv/verifier.json")
		cfg, err := config.LoadOrDefault("")
		require.NoError(t, err)
		assert.Equal(t, config.DefaultGroup, cfg.SRP.Group)
		assert.Equal(t, "/srv/verifier.json", cfg.Verifier.Path)
	})

	t.Run("relative env path rejected", func(t *testing.T) {
		t.Setenv(config.EnvVerifierPath, "verifier.json")
		_, err := config.LoadOrDefault("")
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})

	t.Run("user file", func(t *testing.T) {
		path, err := config.DefaultPath()
		require.NoError(t, err)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
		require.NoError(t, os.WriteFile(path, []byte("srp:\n  digest: sha-384\n"), 0o600))

		cfg, err := config.LoadOrDefault("")
		require.NoError(t, err)
		assert.Equal(t, srp.SHA384, cfg.SRP.Digest)
	})
}

func TestValidate_CanonicalDigest(t *testing.T) {
	cfg := config.Default()
	cfg.SRP.Digest = "SHA3-512"

	require.NoError(t, config.Validate(cfg))
	assert.Equal(t, srp.SHA3_512, cfg.SRP.Digest)
}
