package protocol

import "fmt"

// ErrorCode represents a standardized error code reported to a peer.
type ErrorCode string

// Error codes.
const (
	// ErrCodeAuthenticationFailed indicates the peer's evidence did not verify.
	ErrCodeAuthenticationFailed ErrorCode = "AUTHENTICATION_FAILED"
	// ErrCodeInvalidRequest indicates a message could not be decoded.
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	// ErrCodeInvalidArgument indicates a protocol value was absent or degenerate.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeInvalidState indicates a handshake step was called out of order.
	ErrCodeInvalidState ErrorCode = "INVALID_STATE"
	// ErrCodeConfigurationError indicates a configuration error.
	ErrCodeConfigurationError ErrorCode = "CONFIGURATION_ERROR"
	// ErrCodeVerifierNotFound indicates no verifier record exists for the identity.
	ErrCodeVerifierNotFound ErrorCode = "VERIFIER_NOT_FOUND"
	// ErrCodeTimeout indicates the handshake did not finish in time.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeCancelled indicates the handshake was abandoned.
	ErrCodeCancelled ErrorCode = "CANCELLED"
	// ErrCodeSystemError indicates a system-level error occurred.
	ErrCodeSystemError ErrorCode = "SYSTEM_ERROR"
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *ErrorResponse) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError creates a new ErrorResponse.
func NewError(code ErrorCode, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// NewErrorWithDetails creates a new ErrorResponse with details.
func NewErrorWithDetails(code ErrorCode, message, details string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewAuthenticationFailedError creates an authentication failed error.
func NewAuthenticationFailedError(details string) *ErrorResponse {
	return NewErrorWithDetails(ErrCodeAuthenticationFailed, "Authentication failed", details)
}

// NewInvalidRequestError creates an invalid request error.
func NewInvalidRequestError(details string) *ErrorResponse {
	return NewErrorWithDetails(ErrCodeInvalidRequest, "Invalid request", details)
}

// NewVerifierNotFoundError creates a verifier not found error.
func NewVerifierNotFoundError(path string) *ErrorResponse {
	return NewErrorWithDetails(ErrCodeVerifierNotFound, "SRP verifier record not found", path)
}
