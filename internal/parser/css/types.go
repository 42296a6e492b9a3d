package css

import (
	"errors"
	"fmt"
)

// ErrSyntax indicates source that tree-sitter could not parse cleanly
var ErrSyntax = errors.New("invalid CSS")

// SyntaxError locates the first error or missing node in a parse tree.
// Line and Column are 0-indexed.
type SyntaxError struct {
	Line   uint
	Column uint
	Kind   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid CSS at %d:%d near %s", e.Line+1, e.Column+1, e.Kind)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}
