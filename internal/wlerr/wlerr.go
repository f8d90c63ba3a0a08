// Package wlerr is the CLI-facing error type: it wraps an
// object.ErrorKind (or any other underlying error) with an exit code and
// optional actionable suggestion, the shape grounded in the example
// pack's adoctl-style typed CLI error (Code, Message, Underlying,
// Suggestion). Internal call sites keep using *object.Error directly for
// control flow; wlerr exists only at the process boundary where a human
// reads the message and a shell script reads the exit code.
package wlerr

import "fmt"

// ExitCode maps a failure class to a process exit status.
type ExitCode int

const (
	ExitOK ExitCode = iota
	ExitConfigError
	ExitSpawnFailure
	ExitServerFailure
	ExitProtocolViolation
)

// Error is the typed error returned by cmd/wlveil's command handlers.
type Error struct {
	Code       ExitCode
	Message    string
	Underlying error
	Suggestion string
}

func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Underlying)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

// New builds an Error with no underlying cause.
func New(code ExitCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap builds an Error around an underlying cause.
func Wrap(code ExitCode, message string, err error) *Error {
	return &Error{Code: code, Message: message, Underlying: err}
}

// WithSuggestion attaches actionable follow-up text, returned alongside
// the error by the CLI's top-level handler.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// ConfigError builds an ExitConfigError wrapping a config-loading failure.
func ConfigError(err error) *Error {
	return Wrap(ExitConfigError, "failed to load configuration", err).
		WithSuggestion("check the --config file path and YAML syntax")
}

// SpawnError builds an ExitSpawnFailure wrapping a child-process start
// failure.
func SpawnError(err error) *Error {
	return Wrap(ExitSpawnFailure, "failed to spawn child process", err)
}

// ServerError builds an ExitServerFailure wrapping an upstream-connection
// failure.
func ServerError(err error) *Error {
	return Wrap(ExitServerFailure, "upstream Wayland server connection failed", err).
		WithSuggestion("confirm --upstream points at a running compositor's socket")
}

// ProtocolViolation builds an ExitProtocolViolation for a fatal object
// error that forced a client session closed.
func ProtocolViolation(err error) *Error {
	return Wrap(ExitProtocolViolation, "protocol violation", err)
}
