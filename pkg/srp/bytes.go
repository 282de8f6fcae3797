package srp

import (
	"crypto/subtle"
	"math/big"
)

// ToUnsignedBytes returns the minimal unsigned big-endian encoding of x.
// Zero encodes to an empty slice. x must not be negative.
func ToUnsignedBytes(x *big.Int) []byte {
	return x.Bytes()
}

// ToBigInt interprets b as an unsigned big-endian integer.
func ToBigInt(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}

// PadLength returns the byte width implied by n's bit length, ceil(bits/8).
// A value hashed in a group with modulus n is left-padded with zero bytes
// to this width. PadLength(0) is 0.
func PadLength(n *big.Int) int {
	return (n.BitLen() + 7) / 8
}

// pad renders x as a big-endian byte string of exactly length bytes.
// Values wider than length are returned unpadded.
func pad(x *big.Int, length int) []byte {
	if x.BitLen() > length*8 {
		return x.Bytes()
	}
	return x.FillBytes(make([]byte, length))
}

// leftPad returns b left-padded with zero bytes to length.
func leftPad(b []byte, length int) []byte {
	if len(b) >= length {
		return b
	}
	out := make([]byte, length)
	copy(out[length-len(b):], b)
	return out
}

// EqualEvidence compares a locally computed evidence value with one received
// from the peer. Received values may use the minimal unsigned encoding, so a
// shorter input is left-padded to the expected width first. The comparison
// time does not depend on where the first differing byte is.
func EqualEvidence(expected, received []byte) bool {
	if len(received) > len(expected) {
		return false
	}
	return subtle.ConstantTimeCompare(expected, leftPad(received, len(expected))) == 1
}
