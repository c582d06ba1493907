package automaton

import (
	"testing"

	"github.com/martinemde/megabuilder/grammar"
	"github.com/stretchr/testify/require"
)

// accepts walks d over input. Running automata is a test-only concern.
func accepts(d *DFA, input []string) bool {
	s := d.Initial
	for _, sym := range input {
		next, ok := s.Next(sym)
		if !ok {
			return false
		}
		s = next
	}
	return s.IsFinal
}

// matches is a reference matcher that interprets e directly.
func matches(e grammar.Expr, input []string) bool {
	return ends(e, input, 0)[len(input)]
}

// ends returns every position at which a match of e starting at i can end.
func ends(e grammar.Expr, input []string, i int) map[int]bool {
	out := make(map[int]bool)
	switch e := e.(type) {
	case *grammar.Symbol:
		if i < len(input) && input[i] == e.Name {
			out[i+1] = true
		}
	case *grammar.Sequence:
		cur := map[int]bool{i: true}
		for _, el := range e.Elements {
			next := make(map[int]bool)
			for p := range cur {
				for q := range ends(el, input, p) {
					next[q] = true
				}
			}
			cur = next
		}
		out = cur
	case *grammar.Alternative:
		for _, el := range e.Elements {
			for q := range ends(el, input, i) {
				out[q] = true
			}
		}
	case *grammar.Repeat:
		out = repeatFrom(e.Element, input, map[int]bool{i: true})
	case *grammar.Repeat1:
		out = repeatFrom(e.Element, input, ends(e.Element, input, i))
	}
	return out
}

func repeatFrom(el grammar.Expr, input []string, start map[int]bool) map[int]bool {
	out := make(map[int]bool)
	frontier := make([]int, 0, len(start))
	for p := range start {
		out[p] = true
		frontier = append(frontier, p)
	}
	for len(frontier) > 0 {
		p := frontier[0]
		frontier = frontier[1:]
		for q := range ends(el, input, p) {
			if !out[q] {
				out[q] = true
				frontier = append(frontier, q)
			}
		}
	}
	return out
}

// words enumerates every sequence over alphabet up to maxLen symbols long.
func words(alphabet []string, maxLen int) [][]string {
	result := [][]string{{}}
	layer := [][]string{{}}
	for i := 0; i < maxLen; i++ {
		var next [][]string
		for _, w := range layer {
			for _, a := range alphabet {
				word := append(append([]string(nil), w...), a)
				next = append(next, word)
			}
		}
		result = append(result, next...)
		layer = next
	}
	return result
}

func mustBuild(t *testing.T, e grammar.Expr) *NFA {
	t.Helper()
	n, err := Build(e)
	require.NoError(t, err)
	return n
}

// shape summarizes a DFA by discovery index so two runs can be compared
// independently of pointer identity.
type shape struct {
	Final bool
	Next  map[string]int
}

func shapeOf(d *DFA) []shape {
	out := make([]shape, len(d.States))
	for i, s := range d.States {
		out[i] = shape{Final: s.IsFinal, Next: make(map[string]int)}
		for _, t := range s.Transitions() {
			out[i].Next[t.Symbol] = t.To.ID
		}
	}
	return out
}
