package srp

import (
	"crypto/sha1" //nolint:gosec // SHA-1 is kept for RFC 5054 interoperability only
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"slices"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Digest is the hash capability the protocol is parameterized by.
// Implementations must be safe for concurrent use.
type Digest interface {
	// Sum returns the digest of data.
	Sum(data []byte) []byte
	// Size returns the fixed digest length in bytes.
	Size() int
}

// DigestAlgorithm names a supported digest.
type DigestAlgorithm string

// Supported digest algorithms.
const (
	SHA1       DigestAlgorithm = "sha-1"
	SHA224     DigestAlgorithm = "sha-224"
	SHA256     DigestAlgorithm = "sha-256"
	SHA384     DigestAlgorithm = "sha-384"
	SHA512     DigestAlgorithm = "sha-512"
	SHA3_256   DigestAlgorithm = "sha3-256"
	SHA3_384   DigestAlgorithm = "sha3-384"
	SHA3_512   DigestAlgorithm = "sha3-512"
	BLAKE2b256 DigestAlgorithm = "blake2b-256"
	BLAKE2b512 DigestAlgorithm = "blake2b-512"
)

var digestConstructors = map[DigestAlgorithm]func() hash.Hash{
	SHA1:     sha1.New,
	SHA224:   sha256.New224,
	SHA256:   sha256.New,
	SHA384:   sha512.New384,
	SHA512:   sha512.New,
	SHA3_256: sha3.New256,
	SHA3_384: sha3.New384,
	SHA3_512: sha3.New512,
	BLAKE2b256: func() hash.Hash {
		h, _ := blake2b.New256(nil) // only fails for keys longer than 64 bytes
		return h
	},
	BLAKE2b512: func() hash.Hash {
		h, _ := blake2b.New512(nil)
		return h
	},
}

// HashDigest adapts a hash.Hash constructor to the Digest capability.
// A fresh hash state is created per call, so one HashDigest may be shared.
type HashDigest struct {
	algorithm DigestAlgorithm
	newHash   func() hash.Hash
	size      int
}

// NewDigest returns the digest for a supported algorithm name.
// Names are matched case-insensitively.
func NewDigest(algorithm DigestAlgorithm) (*HashDigest, error) {
	alg := DigestAlgorithm(strings.ToLower(string(algorithm)))
	newHash, ok := digestConstructors[alg]
	if !ok {
		return nil, invalid("digest", fmt.Sprintf("unsupported algorithm %q (supported: %v)", algorithm, DigestAlgorithms()))
	}
	return NewHashDigest(alg, newHash), nil
}

// NewHashDigest wraps an arbitrary hash constructor.
func NewHashDigest(algorithm DigestAlgorithm, newHash func() hash.Hash) *HashDigest {
	return &HashDigest{
		algorithm: algorithm,
		newHash:   newHash,
		size:      newHash().Size(),
	}
}

// Sum implements Digest.
func (d *HashDigest) Sum(data []byte) []byte {
	h := d.newHash()
	h.Write(data)
	return h.Sum(nil)
}

// Size implements Digest.
func (d *HashDigest) Size() int {
	return d.size
}

// Algorithm returns the algorithm name.
func (d *HashDigest) Algorithm() DigestAlgorithm {
	return d.algorithm
}

// DigestAlgorithms lists the supported algorithm names in sorted order.
func DigestAlgorithms() []DigestAlgorithm {
	algs := make([]DigestAlgorithm, 0, len(digestConstructors))
	for alg := range digestConstructors {
		algs = append(algs, alg)
	}
	slices.Sort(algs)
	return algs
}
