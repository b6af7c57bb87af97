// Package synerr defines the error kinds a synthesis or execution pass can
// fail with. Every constructor produces a value that implements error and
// also exposes the machine-checkable Kind, so callers can dispatch on
// failure reason without string-matching the message.
package synerr

import "fmt"

// Kind identifies which of the failure modes in spec section 7 produced an
// error.
type Kind int

const (
	// KindNoConsistentProgram means no start-to-finish path survived
	// intersection and ranking.
	KindNoConsistentProgram Kind = iota
	// KindOutOfBounds means a ConstantPosition referred outside the string
	// it was evaluated against.
	KindOutOfBounds
	// KindNoMatch means a requested token occurrence does not exist.
	KindNoMatch
)

func (k Kind) String() string {
	switch k {
	case KindNoConsistentProgram:
		return "no consistent program"
	case KindOutOfBounds:
		return "out of bounds"
	case KindNoMatch:
		return "no match"
	default:
		return "unknown"
	}
}

// Error is a synox failure that carries both a Kind for dispatch and a
// human-readable message.
type Error struct {
	kind Kind
	msg  string
	wrap error
}

func (e *Error) Error() string {
	if e.wrap != nil {
		return fmt.Sprintf("%s: %s", e.msg, e.wrap)
	}
	return e.msg
}

// Kind returns the failure kind of the receiver.
func (e *Error) Kind() Kind {
	return e.kind
}

func (e *Error) Unwrap() error {
	return e.wrap
}

// NoConsistentProgram reports that no DAG path survived intersection and
// ranking for the given examples.
func NoConsistentProgram() error {
	return &Error{kind: KindNoConsistentProgram, msg: "no consistent program synthesizes all examples"}
}

// OutOfBounds reports that a ConstantPosition index fell outside the valid
// range [1, len(s)+1] of the string it was evaluated against.
func OutOfBounds(index, length int) error {
	return &Error{
		kind: KindOutOfBounds,
		msg:  fmt.Sprintf("position %d is out of bounds for string of length %d", index, length),
	}
}

// NoMatch reports that a token's occurrence did not exist in the string it
// was evaluated against.
func NoMatch(tokenDesc string, occurrence int) error {
	return &Error{
		kind: KindNoMatch,
		msg:  fmt.Sprintf("token %s has no occurrence %d", tokenDesc, occurrence),
	}
}

// ExecutionFailed wraps any of the above into the ExecutionFailed{kind}
// envelope described in spec section 6/7.
func ExecutionFailed(err error) error {
	kind := KindNoMatch
	var e *Error
	if as, ok := err.(*Error); ok {
		e = as
		kind = e.kind
	}
	return &Error{kind: kind, msg: fmt.Sprintf("execution failed (%s)", kind), wrap: err}
}
