package domain

import (
	"errors"
	"fmt"
)

// ErrUsage is returned when the request options name no recognized operation
// or miss a required companion option.
var ErrUsage = errors.New("invalid request options")

// ErrInput is returned when an option value cannot be read or coerced.
var ErrInput = errors.New("invalid input")

// ErrNodeNotFound is returned when a path resolves to no node.
var ErrNodeNotFound = errors.New("no such path")

// ErrOperationFailed is returned when a device executed a request but
// reported failure.
var ErrOperationFailed = errors.New("operation failed")

// ErrNotConnected is returned by devices used outside a connection.
var ErrNotConnected = errors.New("device not connected")

// Exit statuses of a request.
const (
	ExitSuccess = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// NotFoundError carries the path that resolved to no node.
type NotFoundError struct {
	Path Path
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("There is no such path: %s", e.Path)
}

func (e *NotFoundError) Unwrap() error { return ErrNodeNotFound }

// InputError reports an option whose value could not be used.
type InputError struct {
	Option string
	Err    error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid value for %q: %v", e.Option, e.Err)
}

func (e *InputError) Is(target error) bool { return target == ErrInput }

func (e *InputError) Unwrap() error { return e.Err }

// ExitCode maps an error returned by a request to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUsage), errors.Is(err, ErrInput):
		return ExitUsage
	default:
		return ExitFailure
	}
}
