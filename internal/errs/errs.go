// Package errs defines the failure kinds a gitai run can end with.
//
// Every kind is fatal for the run. Callers wrap errors with fmt.Errorf("%w")
// as usual; the kind survives the chain and can be recovered with KindOf or
// matched with errors.Is against the Err* sentinels.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a fatal failure.
type Kind int

const (
	KindUnknown Kind = iota
	ToolMissing
	NoRepository
	SubprocessFailure
	GenerationFailure
	InvalidChoice
	EncodingFailure
)

func (k Kind) String() string {
	switch k {
	case ToolMissing:
		return "tool missing"
	case NoRepository:
		return "no repository"
	case SubprocessFailure:
		return "subprocess failure"
	case GenerationFailure:
		return "generation failure"
	case InvalidChoice:
		return "invalid choice"
	case EncodingFailure:
		return "encoding failure"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrToolMissing       = &Error{Kind: ToolMissing}
	ErrNoRepository      = &Error{Kind: NoRepository}
	ErrSubprocessFailure = &Error{Kind: SubprocessFailure}
	ErrGenerationFailure = &Error{Kind: GenerationFailure}
	ErrInvalidChoice     = &Error{Kind: InvalidChoice}
	ErrEncodingFailure   = &Error{Kind: EncodingFailure}
)

// Error carries a kind, a user-facing message and an optional cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// New returns an *Error of the given kind.
func New(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
