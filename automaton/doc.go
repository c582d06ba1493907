// Package automaton turns grammar expressions into finite-state automata.
//
// Build performs a Thompson-style construction: every sub-expression becomes
// a fragment with one start and one accept state, and fragments are joined
// with epsilon edges. States live in an arena owned by the returned NFA and
// are addressed by StateID; labeled and epsilon edges are kept in two
// adjacency tables rather than as pointers between states.
//
// Determinize performs the subset construction. Each DFA state is the
// epsilon closure of a set of NFA states and is interned under the sorted
// list of its members, so equal subsets always yield the same *DFAState.
//
//	nfa, err := automaton.Build(grammar.MustParse("a (b | c)*"))
//	if err != nil {
//	    return err
//	}
//	dfa := automaton.Determinize(nfa)
//
// Nothing in this package executes an automaton against input.
package automaton
