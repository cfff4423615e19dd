package cli

import (
	"errors"

	"github.com/yaklabco/inclex/pkg/fsutil"
)

// Exit codes for inclex.
const (
	// ExitSuccess indicates every file lexed and every check passed.
	ExitSuccess = 0

	// ExitFailures indicates files that could not be lexed or a replay
	// whose incremental result diverged from a full lex.
	ExitFailures = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates a bad configuration file or edit script.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrLexFailures is returned when some files could not be lexed.
	ErrLexFailures = errors.New("some files could not be lexed")

	// ErrVerifyMismatch is returned when replay verification found an
	// incremental result that differs from a full lex.
	ErrVerifyMismatch = errors.New("incremental result differs from full lex")
)

// exitError attaches an exit code to an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func withExit(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

// ExitCode maps an error returned by the root command to a process exit
// code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *exitError
	switch {
	case errors.As(err, &exitErr):
		return exitErr.code
	case errors.Is(err, ErrLexFailures), errors.Is(err, ErrVerifyMismatch):
		return ExitFailures
	case errors.Is(err, fsutil.ErrNotFound), errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory):
		return ExitIOError
	default:
		return ExitFailures
	}
}

// IsReported reports whether err only signals an exit status whose details
// were already printed.
func IsReported(err error) bool {
	return errors.Is(err, ErrLexFailures) || errors.Is(err, ErrVerifyMismatch)
}
