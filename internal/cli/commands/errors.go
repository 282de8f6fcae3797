package commands

import (
	"context"
	"errors"

	"github.com/fzdarsky/srp6a/internal/auth"
	"github.com/fzdarsky/srp6a/internal/config"
	"github.com/fzdarsky/srp6a/pkg/protocol"
	"github.com/fzdarsky/srp6a/pkg/srp"
)

// errorResponse maps an error from the handshake stack to the response a peer
// would receive. Anything unrecognized is reported as a system error.
func errorResponse(err error) *protocol.ErrorResponse {
	if err == nil {
		return nil
	}

	var resp *protocol.ErrorResponse
	if errors.As(err, &resp) {
		return resp
	}

	switch {
	case errors.Is(err, srp.ErrInvalidArgument):
		return protocol.NewErrorWithDetails(protocol.ErrCodeInvalidArgument, "Invalid argument", err.Error())
	case errors.Is(err, auth.ErrInvalidState):
		return protocol.NewErrorWithDetails(protocol.ErrCodeInvalidState, "Handshake step out of order", err.Error())
	case errors.Is(err, auth.ErrVerifierNotFound):
		return protocol.NewErrorWithDetails(protocol.ErrCodeVerifierNotFound, "SRP verifier record not found", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return protocol.NewErrorWithDetails(protocol.ErrCodeTimeout, "Handshake timed out", err.Error())
	case errors.Is(err, context.Canceled):
		return protocol.NewErrorWithDetails(protocol.ErrCodeCancelled, "Handshake cancelled", err.Error())
	case errors.Is(err, config.ErrInvalidConfig):
		return protocol.NewErrorWithDetails(protocol.ErrCodeConfigurationError, "Configuration error", err.Error())
	default:
		return protocol.NewErrorWithDetails(protocol.ErrCodeSystemError, "System error", err.Error())
	}
}
