package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fzdarsky/srp6a/internal/util/memzero"
	"github.com/fzdarsky/srp6a/pkg/srp"
)

// ErrVerifierNotFound is returned when no verifier record exists for the
// requested path or identity.
var ErrVerifierNotFound = errors.New("verifier record not found")

// VerifierRecord is the registration output stored on the verifier holder's
// side: the identity, the salt and v = g^x mod N, plus the group and digest
// they were computed with.
type VerifierRecord struct {
	Identity string              `json:"identity"`
	Group    int                 `json:"group"`
	Digest   srp.DigestAlgorithm `json:"digest"`
	Salt     string              `json:"salt"`     // Base64-encoded
	Verifier string              `json:"verifier"` // Base64-encoded
}

// algorithmNamer is implemented by digests that know their registry name.
type algorithmNamer interface {
	Algorithm() srp.DigestAlgorithm
}

// NewVerifierRecord registers identity with password: it draws a fresh salt of
// saltLength bytes from cfg.Random and computes the verifier.
func NewVerifierRecord(cfg srp.Config, identity string, password []byte, saltLength int) (*VerifierRecord, error) {
	if identity == "" {
		return nil, fmt.Errorf("identity is required")
	}
	namer, ok := cfg.Digest.(algorithmNamer)
	if !ok {
		return nil, fmt.Errorf("digest %T cannot be recorded by name", cfg.Digest)
	}

	client, err := srp.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create client role: %w", err)
	}
	salt, err := srp.GenerateSalt(cfg.Random, saltLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	v, err := client.ComputeVerifier(salt, []byte(identity), password)
	if err != nil {
		return nil, fmt.Errorf("failed to compute verifier: %w", err)
	}
	defer memzero.Zero(v)

	return &VerifierRecord{
		Identity: identity,
		Group:    cfg.Group.Bits(),
		Digest:   namer.Algorithm(),
		Salt:     base64.StdEncoding.EncodeToString(salt),
		Verifier: base64.StdEncoding.EncodeToString(v),
	}, nil
}

// LoadVerifierRecord reads and validates a verifier record. A missing file
// yields an error wrapping ErrVerifierNotFound.
func LoadVerifierRecord(path string) (*VerifierRecord, error) {
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrVerifierNotFound, cleanPath)
		}
		return nil, fmt.Errorf("failed to read verifier record: %w", err)
	}

	var record VerifierRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse verifier record: %w", err)
	}
	if err := record.validate(); err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *VerifierRecord) validate() error {
	if r.Identity == "" {
		return fmt.Errorf("identity is required in verifier record")
	}
	if _, err := srp.GroupBySize(r.Group); err != nil {
		return fmt.Errorf("invalid group in verifier record: %w", err)
	}
	if _, err := srp.NewDigest(r.Digest); err != nil {
		return fmt.Errorf("invalid digest in verifier record: %w", err)
	}
	if _, err := r.SaltBytes(); err != nil {
		return err
	}
	if _, err := r.VerifierBytes(); err != nil {
		return err
	}
	return nil
}

// SaltBytes decodes the stored salt.
func (r *VerifierRecord) SaltBytes() ([]byte, error) {
	salt, err := base64.StdEncoding.DecodeString(r.Salt)
	if err != nil {
		return nil, fmt.Errorf("salt must be valid base64: %w", err)
	}
	if len(salt) == 0 {
		return nil, fmt.Errorf("salt is required in verifier record")
	}
	return salt, nil
}

// VerifierBytes decodes the stored verifier.
func (r *VerifierRecord) VerifierBytes() ([]byte, error) {
	v, err := base64.StdEncoding.DecodeString(r.Verifier)
	if err != nil {
		return nil, fmt.Errorf("verifier must be valid base64: %w", err)
	}
	if len(v) == 0 {
		return nil, fmt.Errorf("verifier is required in verifier record")
	}
	return v, nil
}

// Config resolves the protocol configuration the record was created with,
// using the process-wide secure random source.
func (r *VerifierRecord) Config() (srp.Config, error) {
	return srp.NewConfig(r.Group, r.Digest)
}

// Save writes the record to path with owner-only permissions.
func (r *VerifierRecord) Save(path string) error {
	if err := r.validate(); err != nil {
		return err
	}

	jsonData, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal verifier record: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create verifier directory: %w", err)
	}

	cleanPath := filepath.Clean(path)
	if err := os.WriteFile(cleanPath, jsonData, 0o600); err != nil {
		return fmt.Errorf("failed to write verifier record: %w", err)
	}

	return nil
}

// VerifierExists checks if a verifier record exists at the specified path.
func VerifierExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
