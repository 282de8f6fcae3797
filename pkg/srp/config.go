package srp

import (
	"math/big"
)

// Config is the explicit, immutable protocol configuration shared by the
// client and server roles. Both peers must agree on Group and Digest
// out-of-band.
type Config struct {
	Group  *Group
	Digest Digest
	Random RandomSource
}

// NewConfig resolves a standard group and digest by name and pairs them with
// the crypto/rand source.
func NewConfig(groupBits int, algorithm DigestAlgorithm) (Config, error) {
	grp, err := GroupBySize(groupBits)
	if err != nil {
		return Config{}, err
	}
	digest, err := NewDigest(algorithm)
	if err != nil {
		return Config{}, err
	}
	return Config{Group: grp, Digest: digest, Random: SecureRandom{}}, nil
}

func (c Config) validate() error {
	if c.Group == nil {
		return missing("group")
	}
	if c.Digest == nil {
		return missing("digest")
	}
	if c.Random == nil {
		return missing("random")
	}
	return nil
}

// roleParams holds what both roles derive once from a Config.
type roleParams struct {
	n      *big.Int
	g      *big.Int
	k      *big.Int
	digest Digest
	random RandomSource
}

func newRoleParams(cfg Config) (roleParams, error) {
	if err := cfg.validate(); err != nil {
		return roleParams{}, err
	}
	k, err := ComputeK(cfg.Digest, cfg.Group.n, cfg.Group.g)
	if err != nil {
		return roleParams{}, err
	}
	return roleParams{
		n:      cfg.Group.n,
		g:      cfg.Group.g,
		k:      k,
		digest: cfg.Digest,
		random: cfg.Random,
	}, nil
}

// evidenceBytes renders a digest-derived value at the digest's fixed width.
func (p roleParams) evidenceBytes(x *big.Int) []byte {
	return pad(x, p.digest.Size())
}

// GenerateSalt returns length random bytes for use as a verifier salt.
func GenerateSalt(random RandomSource, length int) ([]byte, error) {
	if random == nil {
		return nil, missing("random")
	}
	if length <= 0 {
		return nil, invalid("length", "must be positive")
	}
	return random.RandomBytes(length)
}
