// Package dot renders automata as Graphviz DOT digraphs.
//
// FromNFA and FromDFA convert an automaton into a small DOT AST (Graph,
// Node, Edge, Attr); Write serializes it:
//
//	digraph G {
//	n_0 -> n_1 [label="a"];
//	n_1 -> n_2;
//	}
//
// Nodes are declared only when they carry attributes (final DFA states get
// shape="box"); every other node is implied by its edges. NFA nodes are
// named n_<id>, DFA nodes n_<sorted member ids joined by underscores>.
// Edges without a label are epsilon transitions.
package dot
