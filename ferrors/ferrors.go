// Package ferrors defines the error kinds the engine surfaces to its callers
// (§7 of the spec), following the same two-layer design as the teacher's
// errors package: a DriverError interface that every sentinel and wrapped
// error implements, so a caller can always chain WithMessage/WrapError
// without type-switching.
package ferrors

import "fmt"

// DriverError is an error that can be annotated with extra context while
// still satisfying errors.Is against the sentinel it originated from.
type DriverError interface {
	error
	WithMessage(message string) DriverError
	WrapError(err error) DriverError
	Unwrap() error
}

type customDriverError struct {
	message       string
	originalError error
}

func (e customDriverError) Error() string {
	return e.message
}

func (e customDriverError) WithMessage(message string) DriverError {
	return customDriverError{
		message:       fmt.Sprintf("%s: %s", e.message, message),
		originalError: e,
	}
}

func (e customDriverError) WrapError(err error) DriverError {
	return customDriverError{
		message:       fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		originalError: err,
	}
}

func (e customDriverError) Unwrap() error {
	return e.originalError
}

// FatError is a bare sentinel error kind, named for the condition it
// represents rather than an errno code (this engine has no POSIX process to
// answer to).
type FatError string

func (e FatError) Error() string {
	return string(e)
}

func (e FatError) WithMessage(message string) DriverError {
	return customDriverError{
		message:       fmt.Sprintf("%s: %s", string(e), message),
		originalError: e,
	}
}

func (e FatError) WrapError(err error) DriverError {
	return customDriverError{
		message:       fmt.Sprintf("%s: %s", string(e), err.Error()),
		originalError: err,
	}
}

func (e FatError) Unwrap() error {
	return nil
}

// Sentinel error kinds, per spec §7.
const (
	ErrPathNotFound     = FatError("path not found")
	ErrNotADirectory    = FatError("not a directory")
	ErrAlreadyExists    = FatError("already exists")
	ErrOutOfSpace       = FatError("out of space")
	ErrInvalidPartition = FatError("partition is not formatted")
	ErrInvalidSector    = FatError("invalid sector index")
	ErrUnknownCommand   = FatError("unknown command")
	ErrCorruptImage     = FatError("corrupt image")
	ErrNotSupported     = FatError("operation not supported")
)
