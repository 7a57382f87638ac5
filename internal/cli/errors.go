package cli

import (
	"errors"
	"fmt"
)

// Exit codes.
const (
	ExitClean     = 0 // Success; for merges, no conflicts remain.
	ExitConflicts = 1 // The command worked but conflicts remain.
	ExitUsage     = 2 // Bad arguments or flags.
	ExitFailure   = 3 // I/O, configuration or other failure.
)

// ErrConflicts is reported when a merge or check leaves conflict markers behind.
var ErrConflicts = errors.New("conflicts remain")

// ExitCoder is an error with an explicit process exit code.
type ExitCoder interface {
	error
	ExitCode() int
}

// UsageError indicates a user-facing mistake (exit code 2).
type UsageError struct {
	Message string
}

func (e UsageError) Error() string { return e.Message }
func (e UsageError) ExitCode() int { return ExitUsage }

func usageErrorf(format string, args ...any) UsageError {
	return UsageError{Message: fmt.Sprintf(format, args...)}
}

// ExitError wraps an error with a specific exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e ExitError) Unwrap() error { return e.Err }
func (e ExitError) ExitCode() int { return e.Code }

// exitCodeFor maps an error returned from a command to a process exit code. Errors that carry no code come from cobra's own argument and
// flag parsing, so they are usage errors.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitClean
	}
	var ec ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return ExitUsage
}

// failure marks err as a command failure unless it already carries an exit code.
func failure(err error) error {
	if err == nil {
		return nil
	}
	var ec ExitCoder
	if errors.As(err, &ec) {
		return err
	}
	return ExitError{Code: ExitFailure, Err: err}
}
