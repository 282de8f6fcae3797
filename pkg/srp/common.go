package srp

import (
	"fmt"
	"math/big"
)

// MinPrivateValueBits is the entropy floor for generated private values,
// independent of the group size.
const MinPrivateValueBits = 256

// hashPadded hashes the concatenation of values, each rendered as an
// unsigned big-endian string padded to padLen bytes.
func hashPadded(digest Digest, padLen int, values ...*big.Int) *big.Int {
	buf := make([]byte, 0, padLen*len(values))
	for _, v := range values {
		buf = append(buf, pad(v, padLen)...)
	}
	return new(big.Int).SetBytes(digest.Sum(buf))
}

// ComputeK computes the multiplier k = H(PAD(N) | PAD(g)).
//
//nolint:gocritic // N is capitalized per RFC 5054 SRP-6a specification
func ComputeK(digest Digest, N, g *big.Int) (*big.Int, error) {
	if digest == nil {
		return nil, missing("digest")
	}
	if N == nil {
		return nil, missing("N")
	}
	if g == nil {
		return nil, missing("g")
	}
	return hashPadded(digest, PadLength(N), N, g), nil
}

// ComputeU computes the scrambling parameter u = H(PAD(A) | PAD(B)).
// Both public values are validated first.
//
//nolint:gocritic // N, A, B are capitalized per RFC 5054 SRP-6a specification
func ComputeU(digest Digest, N, A, B *big.Int) (*big.Int, error) {
	if digest == nil {
		return nil, missing("digest")
	}
	if N == nil {
		return nil, missing("N")
	}
	if A == nil {
		return nil, missing("A")
	}
	if B == nil {
		return nil, missing("B")
	}
	if !IsValidPublicValue(N, A) {
		return nil, invalid("A", "public value is 0 mod N")
	}
	if !IsValidPublicValue(N, B) {
		return nil, invalid("B", "public value is 0 mod N")
	}
	return hashPadded(digest, PadLength(N), A, B), nil
}

// ComputeX derives the private key x = H(salt | H(identity | ":" | password)).
func ComputeX(digest Digest, salt, identity, password []byte) (*big.Int, error) {
	if digest == nil {
		return nil, missing("digest")
	}
	if salt == nil {
		return nil, missing("salt")
	}
	if identity == nil {
		return nil, missing("identity")
	}
	if password == nil {
		return nil, missing("password")
	}

	inner := make([]byte, 0, len(identity)+1+len(password))
	inner = append(inner, identity...)
	inner = append(inner, ':')
	inner = append(inner, password...)
	identityHash := digest.Sum(inner)

	outer := make([]byte, 0, len(salt)+len(identityHash))
	outer = append(outer, salt...)
	outer = append(outer, identityHash...)
	return new(big.Int).SetBytes(digest.Sum(outer)), nil
}

// ComputeM1 computes the client evidence M1 = H(PAD(A) | PAD(B) | PAD(S)).
//
//nolint:gocritic // N, A, B, S are capitalized per RFC 5054 SRP-6a specification
func ComputeM1(digest Digest, N, A, B, S *big.Int) (*big.Int, error) {
	if digest == nil {
		return nil, missing("digest")
	}
	if N == nil {
		return nil, missing("N")
	}
	if A == nil {
		return nil, missing("A")
	}
	if B == nil {
		return nil, missing("B")
	}
	if S == nil {
		return nil, missing("S")
	}
	return hashPadded(digest, PadLength(N), A, B, S), nil
}

// ComputeM2 computes the server evidence M2 = H(PAD(A) | PAD(M1) | PAD(S)).
//
//nolint:gocritic // N, A, M1, S are capitalized per RFC 5054 SRP-6a specification
func ComputeM2(digest Digest, N, A, M1, S *big.Int) (*big.Int, error) {
	if digest == nil {
		return nil, missing("digest")
	}
	if N == nil {
		return nil, missing("N")
	}
	if A == nil {
		return nil, missing("A")
	}
	if M1 == nil {
		return nil, missing("M1")
	}
	if S == nil {
		return nil, missing("S")
	}
	return hashPadded(digest, PadLength(N), A, M1, S), nil
}

// ComputeSessionKey computes K = H(PAD(S)).
//
//nolint:gocritic // N, S are capitalized per RFC 5054 SRP-6a specification
func ComputeSessionKey(digest Digest, N, S *big.Int) (*big.Int, error) {
	if digest == nil {
		return nil, missing("digest")
	}
	if N == nil {
		return nil, missing("N")
	}
	if S == nil {
		return nil, missing("S")
	}
	return hashPadded(digest, PadLength(N), S), nil
}

// GeneratePrivateValue draws random values of N's byte width (at least
// MinPrivateValueBits wide) until one has a bit length of at least
// MinPrivateValueBits. There is no retry cap; the expected number of draws
// is one.
//
//nolint:gocritic // N is capitalized per RFC 5054 SRP-6a specification
func GeneratePrivateValue(N *big.Int, random RandomSource) (*big.Int, error) {
	if N == nil {
		return nil, missing("N")
	}
	if random == nil {
		return nil, missing("random")
	}

	size := max(PadLength(N), MinPrivateValueBits/8)
	for {
		b, err := random.RandomBytes(size)
		if err != nil {
			return nil, fmt.Errorf("failed to generate private value: %w", err)
		}
		value := new(big.Int).SetBytes(b)
		if value.BitLen() >= MinPrivateValueBits {
			return value, nil
		}
	}
}

// IsValidPublicValue reports whether value mod N != 0. A public value that
// reduces to zero forces a predictable shared secret and must be rejected.
//
//nolint:gocritic // N is capitalized per RFC 5054 SRP-6a specification
func IsValidPublicValue(N, value *big.Int) bool {
	if N == nil || value == nil || N.Sign() == 0 {
		return false
	}
	return new(big.Int).Mod(value, N).Sign() != 0
}
