// Package errs defines the error kinds the core distinguishes, per the
// error handling design: user CLI errors, config parse errors, and
// non-fatal channel runtime errors.
package errs

import "github.com/pkg/errors"

// Kind classifies an error for the purposes of exit-code selection and
// whether the TUI should keep running after it.
type Kind int

const (
	// KindCLI is a user-facing CLI validation error. Fatal, pre-TUI.
	KindCLI Kind = iota
	// KindConfig is a malformed TOML document. Fatal, pre-TUI.
	KindConfig
	// KindChannel is a source/preview command failure. Non-fatal.
	KindChannel
	// KindContent is a preview-content placeholder condition. Never fatal.
	KindContent
	// KindStore is a history/frecency I/O error. Logged, non-fatal.
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindCLI:
		return "cli"
	case KindConfig:
		return "config"
	case KindChannel:
		return "channel"
	case KindContent:
		return "content"
	case KindStore:
		return "store"
	default:
		return "unknown"
	}
}

// Error wraps an underlying error with a Kind and contextual message.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Wrap builds a new *Error of the given kind, attaching a stack trace via
// pkg/errors when the underlying error doesn't already carry one.
func Wrap(kind Kind, err error, msg string) *Error {
	if err != nil {
		if _, ok := err.(interface{ StackTrace() errors.StackTrace }); !ok {
			err = errors.WithStack(err)
		}
	}
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// New creates a bare *Error of the given kind with no wrapped cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
