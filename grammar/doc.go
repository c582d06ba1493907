// Package grammar defines the grammar expression tree consumed by the
// automaton builder, together with a parser for its compact text notation.
//
// An expression is one of exactly five variants:
//
//   - Sequence: concatenation of one or more sub-expressions.
//   - Alternative: union of one or more sub-expressions.
//   - Repeat: zero or more occurrences of a sub-expression.
//   - Repeat1: one or more occurrences of a sub-expression.
//   - Symbol: a single terminal, identified by name.
//
// Trees can be built by hand with the Seq, Alt, Star, Plus and Sym
// constructors, or parsed from text:
//
//	expr, err := grammar.Parse([]byte(`of (fullArticle | article modele+)*`))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(expr)
//
// The notation is:
//
//	alternative := sequence ('|' sequence)*
//	sequence    := postfix postfix*
//	postfix     := atom ('*' | '+')*
//	atom        := IDENT | STRING | '(' alternative ')'
//
// Juxtaposition is a Sequence, '|' an Alternative, '*' a Repeat and '+' a
// Repeat1. A sequence or alternative with a single element collapses to
// that element. Both // line and /* block */ comments are ignored.
package grammar
