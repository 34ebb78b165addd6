// Package bounded provides the allocation-free primitives the rest of
// termcore is built on: checked integer arithmetic, a bump arena with a
// hard cap, a growable byte builder backed by a fixed buffer, and the
// narrow error taxonomy shared by every public entry point.
package bounded

import "fmt"

// Code is the narrow error taxonomy every public entry point reports.
type Code int

const (
	// OK indicates success; Code zero value is never returned as an error.
	OK Code = iota
	// InvalidArgument covers null-where-required, dimension mismatches,
	// nonzero reserved fields, out-of-range enums, and clip underflow.
	InvalidArgument
	// Limit covers any exceeded bound: output cap, command count, damage
	// capacity, payload size, or integer overflow in size/offset math.
	Limit
	// Unsupported covers a feature unavailable in the active capability
	// profile.
	Unsupported
	// OOM covers a growable structure failing to expand.
	OOM
	// Platform wraps a failure from an external collaborator, surfaced
	// without translation beyond code widening.
	Platform
)

func (c Code) String() string {
	switch c {
	case OK:
		return "ok"
	case InvalidArgument:
		return "invalid_argument"
	case Limit:
		return "limit"
	case Unsupported:
		return "unsupported"
	case OOM:
		return "oom"
	case Platform:
		return "platform"
	default:
		return "unknown"
	}
}

// Error pairs a Code with a message, matching the teacher's
// fmt.Errorf("...: %w", err) wrapping convention so callers can still
// use errors.Is/errors.As against the Code.
type Error struct {
	Code Code
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is allows errors.Is(err, bounded.Limit.AsError()) style checks against a bare Code.
func (e *Error) Is(target error) bool {
	if c, ok := target.(codeSentinel); ok {
		return e.Code == c.code
	}
	return false
}

type codeSentinel struct{ code Code }

func (codeSentinel) Error() string { return "" }

// AsError wraps a Code as a sentinel error usable with errors.Is.
func (c Code) AsError() error { return codeSentinel{c} }

// New builds an *Error with the given code and message.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

// Wrap builds an *Error with the given code, message, and wrapped cause.
func Wrap(code Code, msg string, err error) *Error {
	return &Error{Code: code, Msg: msg, Err: err}
}
