package srp

import (
	"math/big"
)

// ClientEphemeral is the client's per-run key pair (a, A). It must not be
// reused across protocol runs.
type ClientEphemeral struct {
	Private []byte // a
	Public  []byte // A = g^a mod N
}

// Client implements the client role of SRP-6a. All methods are pure
// functions of their arguments, so one Client may be shared by any number
// of concurrent protocol runs.
type Client struct {
	roleParams
}

// NewClient creates a client role for the given configuration.
func NewClient(cfg Config) (*Client, error) {
	params, err := newRoleParams(cfg)
	if err != nil {
		return nil, err
	}
	return &Client{roleParams: params}, nil
}

// ComputeValuesA generates a fresh private value a and its public value
// A = g^a mod N.
func (c *Client) ComputeValuesA() (*ClientEphemeral, error) {
	a, err := GeneratePrivateValue(c.n, c.random)
	if err != nil {
		return nil, err
	}
	A := new(big.Int).Exp(c.g, a, c.n)

	return &ClientEphemeral{
		Private: ToUnsignedBytes(a),
		Public:  ToUnsignedBytes(A),
	}, nil
}

// ComputeS derives the shared secret S = (B - k*g^x)^(a + u*x) mod N, where
// x = H(salt | H(identity | ":" | password)) and u = H(PAD(A) | PAD(B)).
//
//nolint:gocritic // A, B are capitalized per RFC 5054 SRP-6a specification
func (c *Client) ComputeS(salt, identity, password, a, A, B []byte) ([]byte, error) {
	switch {
	case salt == nil:
		return nil, missing("salt")
	case identity == nil:
		return nil, missing("identity")
	case password == nil:
		return nil, missing("password")
	case a == nil:
		return nil, missing("a")
	case A == nil:
		return nil, missing("A")
	case B == nil:
		return nil, missing("B")
	}

	x, err := ComputeX(c.digest, salt, identity, password)
	if err != nil {
		return nil, err
	}

	bigA, bigB := ToBigInt(A), ToBigInt(B)
	u, err := ComputeU(c.digest, c.n, bigA, bigB)
	if err != nil {
		return nil, err
	}

	// B - k*g^x mod N
	kgx := new(big.Int).Exp(c.g, x, c.n)
	kgx.Mul(kgx, c.k)
	base := new(big.Int).Sub(bigB, kgx)
	base.Mod(base, c.n)

	// a + u*x
	exponent := new(big.Int).Mul(u, x)
	exponent.Add(exponent, ToBigInt(a))

	S := new(big.Int).Exp(base, exponent, c.n)
	return ToUnsignedBytes(S), nil
}

// ComputeM1 returns the client evidence H(PAD(A) | PAD(B) | PAD(S)).
//
//nolint:gocritic // A, B, S are capitalized per RFC 5054 SRP-6a specification
func (c *Client) ComputeM1(A, B, S []byte) ([]byte, error) {
	switch {
	case A == nil:
		return nil, missing("A")
	case B == nil:
		return nil, missing("B")
	case S == nil:
		return nil, missing("S")
	}

	m1, err := ComputeM1(c.digest, c.n, ToBigInt(A), ToBigInt(B), ToBigInt(S))
	if err != nil {
		return nil, err
	}
	return c.evidenceBytes(m1), nil
}

// IsValidReceivedM2 recomputes the server evidence and compares it with the
// received value in constant time. A mismatch is a false result, not an error.
//
//nolint:gocritic // A, S, M1, M2 are capitalized per RFC 5054 SRP-6a specification
func (c *Client) IsValidReceivedM2(A, S, M1, receivedM2 []byte) (bool, error) {
	switch {
	case A == nil:
		return false, missing("A")
	case S == nil:
		return false, missing("S")
	case M1 == nil:
		return false, missing("M1")
	case receivedM2 == nil:
		return false, missing("M2")
	}

	expected, err := ComputeM2(c.digest, c.n, ToBigInt(A), ToBigInt(M1), ToBigInt(S))
	if err != nil {
		return false, err
	}
	return EqualEvidence(c.evidenceBytes(expected), receivedM2), nil
}

// ComputeSessionKey returns K = H(PAD(S)).
//
//nolint:gocritic // S is capitalized per RFC 5054 SRP-6a specification
func (c *Client) ComputeSessionKey(S []byte) ([]byte, error) {
	if S == nil {
		return nil, missing("S")
	}
	key, err := ComputeSessionKey(c.digest, c.n, ToBigInt(S))
	if err != nil {
		return nil, err
	}
	return c.evidenceBytes(key), nil
}

// ComputeVerifier computes the registration-time verifier v = g^x mod N
// that the server stores instead of the password.
func (c *Client) ComputeVerifier(salt, identity, password []byte) ([]byte, error) {
	x, err := ComputeX(c.digest, salt, identity, password)
	if err != nil {
		return nil, err
	}
	return ToUnsignedBytes(new(big.Int).Exp(c.g, x, c.n)), nil
}
