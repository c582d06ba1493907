package automaton

import (
	"errors"
	"fmt"
	"strings"

	"github.com/martinemde/megabuilder/grammar"
)

// fragment is the (start, end) pair produced for one sub-expression.
type fragment struct {
	start StateID
	end   StateID
}

// Build translates e into an NFA. Each call owns a fresh arena, so state IDs
// start at zero and Build is safe to call concurrently on different trees.
func Build(e grammar.Expr) (*NFA, error) {
	b := &builder{nfa: &NFA{}}
	f, err := b.visit(e)
	if err != nil {
		return nil, err
	}
	b.nfa.start, b.nfa.accept = f.start, f.end
	return b.nfa, nil
}

type builder struct {
	nfa  *NFA
	path []string
}

func (b *builder) visit(e grammar.Expr) (fragment, error) {
	f, err := grammar.Visit[fragment](e, b)
	if err == nil {
		return f, nil
	}
	var buildErr *BuildError
	if errors.As(err, &buildErr) {
		return fragment{}, err
	}
	return fragment{}, &BuildError{Path: strings.Join(b.path, "."), Err: err}
}

func (b *builder) visitChild(segment string, e grammar.Expr) (fragment, error) {
	b.path = append(b.path, segment)
	defer func() { b.path = b.path[:len(b.path)-1] }()
	return b.visit(e)
}

func (b *builder) VisitSymbol(s *grammar.Symbol) (fragment, error) {
	start, end := b.nfa.newState(), b.nfa.newState()
	b.nfa.addTransition(start, end, s.Name)
	return fragment{start, end}, nil
}

func (b *builder) VisitSequence(s *grammar.Sequence) (fragment, error) {
	if len(s.Elements) == 0 {
		return fragment{}, ErrEmptySequence
	}
	var result fragment
	for i, el := range s.Elements {
		f, err := b.visitChild(fmt.Sprintf("seq[%d]", i), el)
		if err != nil {
			return fragment{}, err
		}
		if i == 0 {
			result = f
			continue
		}
		b.nfa.addEpsilon(result.end, f.start)
		result.end = f.end
	}
	return result, nil
}

func (b *builder) VisitAlternative(a *grammar.Alternative) (fragment, error) {
	if len(a.Elements) == 0 {
		return fragment{}, ErrEmptyAlternative
	}
	start, end := b.nfa.newState(), b.nfa.newState()
	for i, el := range a.Elements {
		f, err := b.visitChild(fmt.Sprintf("alt[%d]", i), el)
		if err != nil {
			return fragment{}, err
		}
		b.nfa.addEpsilon(start, f.start)
		b.nfa.addEpsilon(f.end, end)
	}
	return fragment{start, end}, nil
}

func (b *builder) VisitRepeat(r *grammar.Repeat) (fragment, error) {
	f, err := b.visitChild("repeat", r.Element)
	if err != nil {
		return fragment{}, err
	}
	b.nfa.addEpsilon(f.start, f.end) // skip
	b.nfa.addEpsilon(f.end, f.start) // loop
	return f, nil
}

func (b *builder) VisitRepeat1(r *grammar.Repeat1) (fragment, error) {
	f, err := b.visitChild("repeat1", r.Element)
	if err != nil {
		return fragment{}, err
	}
	b.nfa.addEpsilon(f.end, f.start)
	return f, nil
}
