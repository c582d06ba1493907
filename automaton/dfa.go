package automaton

import (
	"slices"
	"strings"
)

// DFATransition is an outgoing edge of a DFA state.
type DFATransition struct {
	Symbol string
	To     *DFAState
}

// DFAState is a set of NFA states treated as one deterministic state.
type DFAState struct {
	ID      int       // discovery order, 0 for the initial state
	Members []StateID // sorted epsilon closure
	IsFinal bool      // Members contains the NFA accept state

	transitions []DFATransition // sorted by symbol, one per symbol
}

// Key returns the canonical identity of the state: its member IDs joined by
// underscores, e.g. "0_2_3".
func (s *DFAState) Key() string {
	return subsetKey(s.Members)
}

// Transitions returns the outgoing edges in symbol order. The slice must not
// be modified.
func (s *DFAState) Transitions() []DFATransition {
	return s.transitions
}

// Next returns the successor under symbol. A missing transition means the
// symbol cannot be matched from s.
func (s *DFAState) Next(symbol string) (*DFAState, bool) {
	i, ok := slices.BinarySearchFunc(s.transitions, symbol, func(t DFATransition, sym string) int {
		return strings.Compare(t.Symbol, sym)
	})
	if !ok {
		return nil, false
	}
	return s.transitions[i].To, true
}

// DFA is the result of the subset construction.
type DFA struct {
	Initial *DFAState
	States  []*DFAState // discovery order; States[0] == Initial

	index map[string]*DFAState
}

// Lookup returns the state whose members are exactly ids, in any order.
func (d *DFA) Lookup(ids ...StateID) (*DFAState, bool) {
	members := slices.Clone(ids)
	slices.Sort(members)
	s, ok := d.index[subsetKey(slices.Compact(members))]
	return s, ok
}

// Finals returns the final states in discovery order.
func (d *DFA) Finals() []*DFAState {
	var finals []*DFAState
	for _, s := range d.States {
		if s.IsFinal {
			finals = append(finals, s)
		}
	}
	return finals
}

// Determinize runs the subset construction over n. States are discovered
// breadth-first from the closure of the start state, and symbols are
// processed in lexicographic order, so the result depends only on n.
func Determinize(n *NFA) *DFA {
	d := &DFA{index: make(map[string]*DFAState)}
	d.Initial, _ = d.intern(n.Closure(n.start), n.accept)

	worklist := []*DFAState{d.Initial}
	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]

		moves := make(map[string][]StateID)
		for _, id := range cur.Members {
			for _, t := range n.labeled[id] {
				moves[t.Symbol] = append(moves[t.Symbol], t.To)
			}
		}

		symbols := make([]string, 0, len(moves))
		for sym := range moves {
			symbols = append(symbols, sym)
		}
		slices.Sort(symbols)

		for _, sym := range symbols {
			target, created := d.intern(n.Closure(moves[sym]...), n.accept)
			if created {
				worklist = append(worklist, target)
			}
			cur.transitions = append(cur.transitions, DFATransition{Symbol: sym, To: target})
		}
	}
	return d
}

// intern returns the state for members, creating it when the subset has not
// been seen. members must be sorted and duplicate-free.
func (d *DFA) intern(members []StateID, accept StateID) (*DFAState, bool) {
	key := subsetKey(members)
	if s, ok := d.index[key]; ok {
		return s, false
	}
	_, final := slices.BinarySearch(members, accept)
	s := &DFAState{
		ID:      len(d.States),
		Members: members,
		IsFinal: final,
	}
	d.index[key] = s
	d.States = append(d.States, s)
	return s, true
}

func subsetKey(members []StateID) string {
	parts := make([]string, len(members))
	for i, id := range members {
		parts[i] = id.String()
	}
	return strings.Join(parts, "_")
}
