package srp

import (
	"math/big"
)

// ServerEphemeral is the server's per-run key pair (b, B).
type ServerEphemeral struct {
	Private []byte // b
	Public  []byte // B = (k*v + g^b) mod N
}

// Server implements the server role of SRP-6a. It holds no per-run state;
// the verifier and ephemeral values are passed explicitly.
type Server struct {
	roleParams
}

// NewServer creates a server role for the given configuration.
func NewServer(cfg Config) (*Server, error) {
	params, err := newRoleParams(cfg)
	if err != nil {
		return nil, err
	}
	return &Server{roleParams: params}, nil
}

// ComputeValuesB generates a fresh private value b and the public value
// B = (k*v + g^b) mod N. A b yielding B = 0 mod N is discarded.
func (s *Server) ComputeValuesB(verifier []byte) (*ServerEphemeral, error) {
	if verifier == nil {
		return nil, missing("verifier")
	}
	v := ToBigInt(verifier)

	kv := new(big.Int).Mul(s.k, v)
	kv.Mod(kv, s.n)

	for {
		b, err := GeneratePrivateValue(s.n, s.random)
		if err != nil {
			return nil, err
		}

		B := new(big.Int).Exp(s.g, b, s.n)
		B.Add(B, kv)
		B.Mod(B, s.n)
		if !IsValidPublicValue(s.n, B) {
			continue
		}

		return &ServerEphemeral{
			Private: ToUnsignedBytes(b),
			Public:  ToUnsignedBytes(B),
		}, nil
	}
}

// ComputeS derives the shared secret S = (A * v^u)^b mod N. The client's A
// is rejected if it is 0 mod N.
//
//nolint:gocritic // A, B are capitalized per RFC 5054 SRP-6a specification
func (s *Server) ComputeS(A, B, b, verifier []byte) ([]byte, error) {
	switch {
	case A == nil:
		return nil, missing("A")
	case B == nil:
		return nil, missing("B")
	case b == nil:
		return nil, missing("b")
	case verifier == nil:
		return nil, missing("verifier")
	}

	bigA := ToBigInt(A)
	u, err := ComputeU(s.digest, s.n, bigA, ToBigInt(B))
	if err != nil {
		return nil, err
	}

	base := new(big.Int).Exp(ToBigInt(verifier), u, s.n)
	base.Mul(base, bigA)
	base.Mod(base, s.n)

	S := new(big.Int).Exp(base, ToBigInt(b), s.n)
	return ToUnsignedBytes(S), nil
}

// ComputeM2 returns the server evidence H(PAD(A) | PAD(M1) | PAD(S)).
// Callers must only send it after IsValidReceivedM1 returned true.
//
//nolint:gocritic // A, M1, S are capitalized per RFC 5054 SRP-6a specification
func (s *Server) ComputeM2(A, M1, S []byte) ([]byte, error) {
	switch {
	case A == nil:
		return nil, missing("A")
	case M1 == nil:
		return nil, missing("M1")
	case S == nil:
		return nil, missing("S")
	}

	m2, err := ComputeM2(s.digest, s.n, ToBigInt(A), ToBigInt(M1), ToBigInt(S))
	if err != nil {
		return nil, err
	}
	return s.evidenceBytes(m2), nil
}

// IsValidReceivedM1 recomputes the client evidence and compares it with the
// received value in constant time. A mismatch is a false result, not an error.
//
//nolint:gocritic // A, B, S, M1 are capitalized per RFC 5054 SRP-6a specification
func (s *Server) IsValidReceivedM1(A, B, S, receivedM1 []byte) (bool, error) {
	switch {
	case A == nil:
		return false, missing("A")
	case B == nil:
		return false, missing("B")
	case S == nil:
		return false, missing("S")
	case receivedM1 == nil:
		return false, missing("M1")
	}

	expected, err := ComputeM1(s.digest, s.n, ToBigInt(A), ToBigInt(B), ToBigInt(S))
	if err != nil {
		return false, err
	}
	return EqualEvidence(s.evidenceBytes(expected), receivedM1), nil
}

// ComputeSessionKey returns K = H(PAD(S)).
//
//nolint:gocritic // S is capitalized per RFC 5054 SRP-6a specification
func (s *Server) ComputeSessionKey(S []byte) ([]byte, error) {
	if S == nil {
		return nil, missing("S")
	}
	key, err := ComputeSessionKey(s.digest, s.n, ToBigInt(S))
	if err != nil {
		return nil, err
	}
	return s.evidenceBytes(key), nil
}
