package dot

import (
	"github.com/martinemde/megabuilder/automaton"
)

// FinalShape is the shape attribute marking final DFA states.
const FinalShape = "box"

// NFANodeID names an NFA state.
func NFANodeID(id automaton.StateID) string {
	return "n_" + id.String()
}

// DFANodeID names a DFA state after its member NFA states.
func DFANodeID(s *automaton.DFAState) string {
	return "n_" + s.Key()
}

// FromNFA visits every state reachable from the start state once, in
// breadth-first order, and emits its labeled edges followed by its epsilon
// edges.
func FromNFA(n *automaton.NFA) *Graph {
	g := &Graph{Name: "G"}
	for _, id := range n.Reachable() {
		from := NFANodeID(id)
		for _, t := range n.Transitions(id) {
			g.Edges = append(g.Edges, &Edge{
				From:  from,
				To:    NFANodeID(t.To),
				Attrs: []Attr{{Key: "label", Value: t.Symbol}},
			})
		}
		for _, to := range n.Epsilon(id) {
			g.Edges = append(g.Edges, &Edge{From: from, To: NFANodeID(to)})
		}
	}
	return g
}

// FromDFA emits a shape declaration for each final state and one labeled
// edge per transition, in discovery order.
func FromDFA(d *automaton.DFA) *Graph {
	g := &Graph{Name: "G"}
	for _, s := range d.States {
		from := DFANodeID(s)
		if s.IsFinal {
			g.Nodes = append(g.Nodes, &Node{
				ID:    from,
				Attrs: []Attr{{Key: "shape", Value: FinalShape}},
			})
		}
		for _, t := range s.Transitions() {
			g.Edges = append(g.Edges, &Edge{
				From:  from,
				To:    DFANodeID(t.To),
				Attrs: []Attr{{Key: "label", Value: t.Symbol}},
			})
		}
	}
	return g
}
