package rpn

import (
	"errors"
	"fmt"
)

var (
	// ErrStackUnderflow is returned when an operator finds fewer than two
	// operands on the stack.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrIncorrectFormat is returned when the expression does not reduce to
	// exactly one value.
	ErrIncorrectFormat = errors.New("incorrect format")

	// ErrInvalidToken is returned for unrecognized tokens under
	// UnknownTokenError.
	ErrInvalidToken = errors.New("invalid token")
)

// EvalError ties an evaluation failure to the token that caused it.
// Pos is the 1-based token position; it is 0 for failures detected after
// the last token.
type EvalError struct {
	Err   error
	Token string
	Pos   int
	Depth int
}

func (e *EvalError) Error() string {
	if e.Pos == 0 {
		return fmt.Sprintf("%v: %d values left on stack", e.Err, e.Depth)
	}
	return fmt.Sprintf("%v at token %d %q", e.Err, e.Pos, e.Token)
}

func (e *EvalError) Unwrap() error { return e.Err }

// Kind returns a short machine-readable name for the error class of err,
// or "" when err is not an evaluation error.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrStackUnderflow):
		return "stack_underflow"
	case errors.Is(err, ErrIncorrectFormat):
		return "incorrect_format"
	case errors.Is(err, ErrInvalidToken):
		return "invalid_token"
	}
	return ""
}
