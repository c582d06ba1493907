package automaton

import (
	"fmt"
	"strings"
)

// Diagnostic is a single invariant violation.
type Diagnostic struct {
	Rule    string // rule identifier (e.g., "accept_reachable")
	Message string // human-readable description
	State   string // related state, NFA ID or DFA key (optional)
}

func (d Diagnostic) String() string {
	if d.State != "" {
		return fmt.Sprintf("%s: %s (state: %s)", d.Rule, d.Message, d.State)
	}
	return fmt.Sprintf("%s: %s", d.Rule, d.Message)
}

// ValidationError is returned by ValidateOrError when diagnostics exist.
type ValidationError struct {
	Diagnostics []Diagnostic
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		msgs[i] = d.String()
	}
	return fmt.Sprintf("validation failed with %d error(s):\n  %s", len(e.Diagnostics), strings.Join(msgs, "\n  "))
}

// ValidateNFA checks the construction invariants of n.
func ValidateNFA(n *NFA) []Diagnostic {
	var diags []Diagnostic

	reachable := false
	for _, id := range n.Reachable() {
		if id == n.accept {
			reachable = true
			break
		}
	}
	if !reachable {
		diags = append(diags, Diagnostic{
			Rule:    "accept_reachable",
			Message: "accept state is not reachable from the start state",
			State:   n.accept.String(),
		})
	}

	for id := 0; id < n.Len(); id++ {
		seen := make(map[string]bool)
		for _, t := range n.labeled[id] {
			if seen[t.Symbol] {
				diags = append(diags, Diagnostic{
					Rule:    "labeled_edge_unique",
					Message: fmt.Sprintf("more than one edge labeled %q", t.Symbol),
					State:   StateID(id).String(),
				})
			}
			seen[t.Symbol] = true
		}
	}
	return diags
}

// ValidateDFA checks d against the NFA it was determinized from.
func ValidateDFA(d *DFA, n *NFA) []Diagnostic {
	var diags []Diagnostic
	add := func(rule, state, format string, args ...any) {
		diags = append(diags, Diagnostic{Rule: rule, Message: fmt.Sprintf(format, args...), State: state})
	}

	if len(d.States) == 0 || d.States[0] != d.Initial {
		add("initial_state", "", "initial state must be the first discovered state")
	}

	known := make(map[*DFAState]bool, len(d.States))
	keys := make(map[string]bool, len(d.States))
	for _, s := range d.States {
		known[s] = true
		key := s.Key()
		if keys[key] {
			add("unique_subset", key, "two states share the same NFA subset")
		}
		keys[key] = true
	}

	for _, s := range d.States {
		key := s.Key()
		final := false
		for _, m := range s.Members {
			if m == n.accept {
				final = true
			}
		}
		if final != s.IsFinal {
			add("final_flag", key, "IsFinal=%t but accept state membership is %t", s.IsFinal, final)
		}

		symbols := make(map[string]bool)
		for _, t := range s.transitions {
			if symbols[t.Symbol] {
				add("deterministic", key, "more than one transition on %q", t.Symbol)
			}
			symbols[t.Symbol] = true
			if !known[t.To] {
				add("target_known", key, "transition on %q leads to an undiscovered state", t.Symbol)
			}
		}
	}
	return diags
}

// ValidateOrError validates both automata and returns a *ValidationError
// when any diagnostic is found.
func ValidateOrError(n *NFA, d *DFA) error {
	diags := ValidateNFA(n)
	if d != nil {
		diags = append(diags, ValidateDFA(d, n)...)
	}
	if len(diags) > 0 {
		return &ValidationError{Diagnostics: diags}
	}
	return nil
}
