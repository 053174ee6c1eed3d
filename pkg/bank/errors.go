package bank

import "github.com/pkg/errors"

// ErrInsufficientFunds is returned by Withdraw when the requested amount
// exceeds the current balance
var ErrInsufficientFunds = errors.New("Insufficient funds.")

// InvalidArgumentError represents an amount or balance that failed validation
type InvalidArgumentError struct {
	msg string
}

func (e *InvalidArgumentError) Error() string {
	return e.msg
}

func errInvalidArgument(msg string) error {
	return &InvalidArgumentError{msg: msg}
}

// IsInvalidArgument reports whether err (or its cause) is a validation failure
func IsInvalidArgument(err error) bool {
	_, ok := errors.Cause(err).(*InvalidArgumentError)
	return ok
}

// IsInsufficientFunds reports whether err (or its cause) is ErrInsufficientFunds
func IsInsufficientFunds(err error) bool {
	return errors.Cause(err) == ErrInsufficientFunds
}
