// Package protocol defines the JSON messages exchanged during one SRP-6a
// handshake and the error codes reported to peers.
package protocol

import (
	"encoding/base64"
	"fmt"
)

// SRPInitRequest carries the client identity and ephemeral public value A.
type SRPInitRequest struct {
	Identity string `json:"identity"`
	A        string `json:"A"` // Base64-encoded client ephemeral public value
}

// SRPInitResponse carries the stored salt and the server ephemeral public value B.
type SRPInitResponse struct {
	Salt string `json:"salt"` // Base64-encoded salt
	B    string `json:"B"`    // Base64-encoded server ephemeral public value
}

// SRPVerifyRequest carries the client evidence M1.
type SRPVerifyRequest struct {
	M1 string `json:"M1"` // Base64-encoded client proof
}

// SRPVerifyResponse carries the server evidence M2.
type SRPVerifyResponse struct {
	M2 string `json:"M2"` // Base64-encoded server proof
}

// EncodeBytes renders a protocol value for the wire.
func EncodeBytes(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeBytes parses a wire value. field names the message field in errors.
func DecodeBytes(field, s string) ([]byte, error) {
	if s == "" {
		return nil, NewInvalidRequestError(field + " is required")
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, NewInvalidRequestError(fmt.Sprintf("%s must be valid base64: %v", field, err))
	}
	return b, nil
}

// NewSRPInitRequest encodes the first client message.
//
//nolint:gocritic // A is capitalized per RFC 5054 SRP-6a specification
func NewSRPInitRequest(identity string, A []byte) SRPInitRequest {
	return SRPInitRequest{Identity: identity, A: EncodeBytes(A)}
}

// Decode returns the raw A value.
func (r SRPInitRequest) Decode() ([]byte, error) {
	if r.Identity == "" {
		return nil, NewInvalidRequestError("identity is required")
	}
	return DecodeBytes("A", r.A)
}

// NewSRPInitResponse encodes the server's reply to an init request.
//
//nolint:gocritic // B is capitalized per RFC 5054 SRP-6a specification
func NewSRPInitResponse(salt, B []byte) SRPInitResponse {
	return SRPInitResponse{Salt: EncodeBytes(salt), B: EncodeBytes(B)}
}

// Decode returns the raw salt and B values.
func (r SRPInitResponse) Decode() (salt, b []byte, err error) {
	if salt, err = DecodeBytes("salt", r.Salt); err != nil {
		return nil, nil, err
	}
	if b, err = DecodeBytes("B", r.B); err != nil {
		return nil, nil, err
	}
	return salt, b, nil
}

// Decode returns the raw M1 value.
func (r SRPVerifyRequest) Decode() ([]byte, error) {
	return DecodeBytes("M1", r.M1)
}

// Decode returns the raw M2 value.
func (r SRPVerifyResponse) Decode() ([]byte, error) {
	return DecodeBytes("M2", r.M2)
}
