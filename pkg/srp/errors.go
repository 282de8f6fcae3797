package srp

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the sentinel every argument rejection unwraps to.
var ErrInvalidArgument = errors.New("invalid argument")

// ArgumentError reports which parameter was rejected and why.
type ArgumentError struct {
	Param  string
	Reason string
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Param, e.Reason)
}

// Unwrap allows errors.Is(err, ErrInvalidArgument).
func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

func missing(param string) error {
	return &ArgumentError{Param: param, Reason: "must not be nil"}
}

func invalid(param, reason string) error {
	return &ArgumentError{Param: param, Reason: reason}
}
