package pattern

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is the sentinel wrapped by every SyntaxError.
	ErrSyntax = errors.New("pattern syntax error")
)

// SyntaxError reports a malformed dot-path: unbalanced brackets, an unknown
// filter shape, a bad regular expression or threshold. Pos is a byte index
// into Input, or -1 when no position applies.
type SyntaxError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *SyntaxError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("%s: %s in %q", ErrSyntax.Error(), e.Msg, e.Input)
	}
	return fmt.Sprintf("%s: %s at index %d in %q", ErrSyntax.Error(), e.Msg, e.Pos, e.Input)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

func syntaxErr(input string, pos int, format string, args ...any) error {
	return &SyntaxError{Input: input, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
