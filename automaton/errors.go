package automaton

import (
	"errors"
	"fmt"

	"github.com/martinemde/megabuilder/grammar"
)

var (
	// ErrUnsupportedExpression is returned for tree nodes outside the five
	// grammar variants, including nil sub-expressions.
	ErrUnsupportedExpression = grammar.ErrUnsupportedExpression

	// ErrEmptySequence is returned for a Sequence with no elements.
	ErrEmptySequence = errors.New("empty sequence")

	// ErrEmptyAlternative is returned for an Alternative with no elements.
	ErrEmptyAlternative = errors.New("empty alternative")
)

// BuildError locates a construction failure inside the expression tree.
type BuildError struct {
	Path string // e.g. "seq[1].repeat.alt[0]"; empty for the root
	Err  error
}

func (e *BuildError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("at root: %v", e.Err)
	}
	return fmt.Sprintf("at %s: %v", e.Path, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }
