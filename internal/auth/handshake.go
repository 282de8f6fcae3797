// Package auth drives one SRP-6a protocol run per role and stores the
// verifier records produced at registration.
package auth

import (
	"errors"
	"fmt"

	"github.com/fzdarsky/srp6a/internal/util/memzero"
	"github.com/fzdarsky/srp6a/pkg/srp"
)

// ErrInvalidState is returned when a handshake step is called out of order
// or after the run has finished or failed.
var ErrInvalidState = errors.New("invalid handshake state")

// State is the position of a handshake driver in its protocol run.
type State int

// Handshake states. Both roles move forward through them exactly once.
const (
	StateInitial State = iota
	StateValuesComputed
	StateEvidenceComputed
	StateAuthenticated
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateValuesComputed:
		return "values-computed"
	case StateEvidenceComputed:
		return "evidence-computed"
	case StateAuthenticated:
		return "authenticated"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

func stateError(step string, have State) error {
	return fmt.Errorf("%w: %s not allowed in state %s", ErrInvalidState, step, have)
}

// ClientHandshake runs the client side of one protocol run:
// Start, then ProcessChallenge, then VerifyServer. A handshake is owned by a
// single goroutine and must not be reused; concurrent runs use separate
// handshakes sharing one *srp.Client.
type ClientHandshake struct {
	client   *srp.Client
	identity []byte
	password []byte
	state    State

	a, A, B, S, M1, K []byte
}

// NewClientHandshake prepares a run for identity. The password is copied and
// wiped once S has been derived.
func NewClientHandshake(client *srp.Client, identity string, password []byte) (*ClientHandshake, error) {
	if client == nil {
		return nil, fmt.Errorf("client role is required")
	}
	if identity == "" {
		return nil, fmt.Errorf("identity is required")
	}
	if password == nil {
		return nil, fmt.Errorf("password is required")
	}
	return &ClientHandshake{
		client:   client,
		identity: []byte(identity),
		password: append([]byte{}, password...),
	}, nil
}

// State returns the current position in the run.
func (h *ClientHandshake) State() State {
	return h.state
}

// Identity returns the identity this run authenticates.
func (h *ClientHandshake) Identity() string {
	return string(h.identity)
}

// Start generates the client ephemeral pair and returns A for the server.
func (h *ClientHandshake) Start() ([]byte, error) {
	if h.state != StateInitial {
		return nil, stateError("start", h.state)
	}

	values, err := h.client.ComputeValuesA()
	if err != nil {
		h.fail()
		return nil, fmt.Errorf("failed to compute client values: %w", err)
	}
	h.a, h.A = values.Private, values.Public
	h.state = StateValuesComputed

	return h.A, nil
}

// ProcessChallenge consumes the server's salt and B, derives S and returns
// the client evidence M1. A degenerate B fails the run.
//
//nolint:gocritic // B is capitalized per RFC 5054 SRP-6a specification
func (h *ClientHandshake) ProcessChallenge(salt, B []byte) ([]byte, error) {
	if h.state != StateValuesComputed {
		return nil, stateError("process challenge", h.state)
	}

	S, err := h.client.ComputeS(salt, h.identity, h.password, h.a, h.A, B)
	memzero.Zero(h.password)
	if err != nil {
		h.fail()
		return nil, fmt.Errorf("failed to compute shared secret: %w", err)
	}
	// Held by the driver from here on so fail wipes it.
	h.S = S

	M1, err := h.client.ComputeM1(h.A, B, S)
	if err != nil {
		h.fail()
		return nil, fmt.Errorf("failed to compute client evidence: %w", err)
	}

	h.B, h.M1 = B, M1
	h.state = StateEvidenceComputed

	return M1, nil
}

// VerifyServer checks the server evidence M2. On success the session key
// becomes available; a mismatch returns false and fails the run.
func (h *ClientHandshake) VerifyServer(receivedM2 []byte) (bool, error) {
	if h.state != StateEvidenceComputed {
		return false, stateError("verify server", h.state)
	}

	ok, err := h.client.IsValidReceivedM2(h.A, h.S, h.M1, receivedM2)
	if err != nil {
		h.fail()
		return false, fmt.Errorf("failed to verify server evidence: %w", err)
	}
	if !ok {
		h.fail()
		return false, nil
	}

	K, err := h.client.ComputeSessionKey(h.S)
	if err != nil {
		h.fail()
		return false, fmt.Errorf("failed to compute session key: %w", err)
	}
	h.K = K
	h.state = StateAuthenticated

	return true, nil
}

// SessionKey returns K once the server has been verified. The slice is
// the driver's own and ClearSecrets wipes it in place; copy it to keep K
// beyond the run.
func (h *ClientHandshake) SessionKey() ([]byte, error) {
	if h.state != StateAuthenticated {
		return nil, stateError("session key", h.state)
	}
	return h.K, nil
}

// ClearSecrets wipes the private value, password, S and K.
func (h *ClientHandshake) ClearSecrets() {
	memzero.ZeroAll(h.a, h.password, h.S, h.K)
	h.a, h.password, h.S, h.K = nil, nil, nil, nil
}

func (h *ClientHandshake) fail() {
	h.state = StateFailed
	h.ClearSecrets()
}

// ServerHandshake runs the server side of one protocol run against a stored
// verifier record: Challenge, then Verify.
type ServerHandshake struct {
	server   *srp.Server
	record   *VerifierRecord
	salt     []byte
	verifier []byte
	state    State

	b, A, B, S, K []byte
}

// NewServerHandshake prepares a run for the identity held in record.
func NewServerHandshake(server *srp.Server, record *VerifierRecord) (*ServerHandshake, error) {
	if server == nil {
		return nil, fmt.Errorf("server role is required")
	}
	if record == nil {
		return nil, fmt.Errorf("verifier record is required")
	}
	salt, err := record.SaltBytes()
	if err != nil {
		return nil, err
	}
	verifier, err := record.VerifierBytes()
	if err != nil {
		return nil, err
	}
	return &ServerHandshake{
		server:   server,
		record:   record,
		salt:     salt,
		verifier: verifier,
	}, nil
}

// State returns the current position in the run.
func (h *ServerHandshake) State() State {
	return h.state
}

// Challenge accepts the client's identity and A, generates the server
// ephemeral pair and returns the salt and B. S is derived immediately so a
// degenerate A is rejected before any evidence is exchanged.
//
//nolint:gocritic // A is capitalized per RFC 5054 SRP-6a specification
func (h *ServerHandshake) Challenge(identity string, A []byte) (salt, B []byte, err error) {
	if h.state != StateInitial {
		return nil, nil, stateError("challenge", h.state)
	}
	if identity != h.record.Identity {
		h.fail()
		return nil, nil, fmt.Errorf("%w: identity %q", ErrVerifierNotFound, identity)
	}

	values, err := h.server.ComputeValuesB(h.verifier)
	if err != nil {
		h.fail()
		return nil, nil, fmt.Errorf("failed to compute server values: %w", err)
	}
	S, err := h.server.ComputeS(A, values.Public, values.Private, h.verifier)
	if err != nil {
		memzero.Zero(values.Private)
		h.fail()
		return nil, nil, fmt.Errorf("failed to compute shared secret: %w", err)
	}

	h.b, h.A, h.B, h.S = values.Private, A, values.Public, S
	h.state = StateValuesComputed

	return h.salt, h.B, nil
}

// Verify checks the client evidence M1. On success it returns the server
// evidence M2 and the session key becomes available; a mismatch returns
// ok == false, no M2, and fails the run.
//
//nolint:gocritic // M2 is capitalized per RFC 5054 SRP-6a specification
func (h *ServerHandshake) Verify(receivedM1 []byte) (M2 []byte, ok bool, err error) {
	if h.state != StateValuesComputed {
		return nil, false, stateError("verify", h.state)
	}

	ok, err = h.server.IsValidReceivedM1(h.A, h.B, h.S, receivedM1)
	if err != nil {
		h.fail()
		return nil, false, fmt.Errorf("failed to verify client evidence: %w", err)
	}
	if !ok {
		h.fail()
		return nil, false, nil
	}

	// M1 is hashed as an integer, so a minimal encoding yields the same M2.
	M2, err = h.server.ComputeM2(h.A, receivedM1, h.S)
	if err != nil {
		h.fail()
		return nil, false, fmt.Errorf("failed to compute server evidence: %w", err)
	}
	K, err := h.server.ComputeSessionKey(h.S)
	if err != nil {
		h.fail()
		return nil, false, fmt.Errorf("failed to compute session key: %w", err)
	}
	h.K = K
	h.state = StateAuthenticated

	return M2, true, nil
}

// SessionKey returns K once the client has been verified. The slice is
// the driver's own and ClearSecrets wipes it in place; copy it to keep K
// beyond the run.
func (h *ServerHandshake) SessionKey() ([]byte, error) {
	if h.state != StateAuthenticated {
		return nil, stateError("session key", h.state)
	}
	return h.K, nil
}

// ClearSecrets wipes the private value, S and K.
func (h *ServerHandshake) ClearSecrets() {
	memzero.ZeroAll(h.b, h.S, h.K)
	h.b, h.S, h.K = nil, nil, nil
}

func (h *ServerHandshake) fail() {
	h.state = StateFailed
	h.ClearSecrets()
}
