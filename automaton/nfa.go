package automaton

import (
	"slices"
	"strconv"
)

// StateID identifies an NFA state within its NFA.
type StateID int

func (id StateID) String() string { return strconv.Itoa(int(id)) }

// Transition is a labeled edge.
type Transition struct {
	Symbol string
	To     StateID
}

// NFA is an arena of states with a single start and a single accept state.
// It is immutable once Build returns.
type NFA struct {
	start   StateID
	accept  StateID
	labeled [][]Transition // per state, insertion order, at most one per symbol
	epsilon [][]StateID    // per state, insertion order
}

// Start returns the start state.
func (n *NFA) Start() StateID { return n.start }

// Accept returns the single accept state.
func (n *NFA) Accept() StateID { return n.accept }

// Len returns the number of states in the arena.
func (n *NFA) Len() int { return len(n.labeled) }

// Transitions returns the labeled edges leaving id. The slice must not be modified.
func (n *NFA) Transitions(id StateID) []Transition {
	return n.labeled[id]
}

// Epsilon returns the epsilon successors of id. The slice must not be modified.
func (n *NFA) Epsilon(id StateID) []StateID {
	return n.epsilon[id]
}

// Next returns the successor of id under symbol, if any.
func (n *NFA) Next(id StateID, symbol string) (StateID, bool) {
	for _, t := range n.labeled[id] {
		if t.Symbol == symbol {
			return t.To, true
		}
	}
	return 0, false
}

// Reachable returns every state reachable from the start state in
// breadth-first order, following labeled edges before epsilon edges.
func (n *NFA) Reachable() []StateID {
	visited := make([]bool, n.Len())
	queue := []StateID{n.start}
	var order []StateID
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			continue
		}
		visited[id] = true
		order = append(order, id)
		for _, t := range n.labeled[id] {
			queue = append(queue, t.To)
		}
		queue = append(queue, n.epsilon[id]...)
	}
	return order
}

// Closure returns the epsilon closure of ids as a sorted, duplicate-free slice.
func (n *NFA) Closure(ids ...StateID) []StateID {
	seen := make(map[StateID]bool, len(ids))
	stack := append([]StateID(nil), ids...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[id] {
			continue
		}
		seen[id] = true
		stack = append(stack, n.epsilon[id]...)
	}
	members := make([]StateID, 0, len(seen))
	for id := range seen {
		members = append(members, id)
	}
	slices.Sort(members)
	return members
}

// newState allocates the next state ID. IDs are never reused.
func (n *NFA) newState() StateID {
	id := StateID(len(n.labeled))
	n.labeled = append(n.labeled, nil)
	n.epsilon = append(n.epsilon, nil)
	return id
}

func (n *NFA) addTransition(from, to StateID, symbol string) {
	n.labeled[from] = append(n.labeled[from], Transition{Symbol: symbol, To: to})
}

func (n *NFA) addEpsilon(from, to StateID) {
	n.epsilon[from] = append(n.epsilon[from], to)
}
