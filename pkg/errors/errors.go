package errors

import (
	"errors"
	"fmt"
)

var (
	ErrFileOpen     = errors.New("cannot open file")
	ErrFileRead     = errors.New("cannot read file")
	ErrExcludeFile  = errors.New("cannot load exclusion file")
	ErrInvalidInput = errors.New("invalid input")
	ErrInvariant    = errors.New("internal invariant violated")
	ErrUnavailable  = errors.New("backend unavailable")
	ErrTimeout      = errors.New("operation timed out")
)

type AppError struct {
	Err      error
	Message  string
	ExitCode int
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(sentinel error, exitCode int, message string) *AppError {
	return &AppError{
		Err:      sentinel,
		Message:  message,
		ExitCode: exitCode,
	}
}

func Newf(sentinel error, exitCode int, format string, args ...any) *AppError {
	return &AppError{
		Err:      sentinel,
		Message:  fmt.Sprintf(format, args...),
		ExitCode: exitCode,
	}
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.ExitCode
	}

	switch {
	case errors.Is(err, ErrInvalidInput):
		return 2
	default:
		return 1
	}
}
