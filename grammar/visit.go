package grammar

import "fmt"

// Visitor handles each expression variant. Implementations must provide a
// method for every variant, so adding a variant breaks every visitor at
// compile time.
type Visitor[T any] interface {
	VisitSequence(*Sequence) (T, error)
	VisitAlternative(*Alternative) (T, error)
	VisitRepeat(*Repeat) (T, error)
	VisitRepeat1(*Repeat1) (T, error)
	VisitSymbol(*Symbol) (T, error)
}

// Visit dispatches e to the matching Visitor method. A nil expression, or a
// nil pointer of one of the variant types, fails with ErrUnsupportedExpression.
func Visit[T any](e Expr, v Visitor[T]) (T, error) {
	var zero T
	switch e := e.(type) {
	case *Sequence:
		if e != nil {
			return v.VisitSequence(e)
		}
	case *Alternative:
		if e != nil {
			return v.VisitAlternative(e)
		}
	case *Repeat:
		if e != nil {
			return v.VisitRepeat(e)
		}
	case *Repeat1:
		if e != nil {
			return v.VisitRepeat1(e)
		}
	case *Symbol:
		if e != nil {
			return v.VisitSymbol(e)
		}
	}
	return zero, fmt.Errorf("%w: %T", ErrUnsupportedExpression, e)
}

// Symbols returns the distinct symbol names of e in first-occurrence order.
func Symbols(e Expr) []string {
	seen := make(map[string]bool)
	var names []string
	var walk func(Expr)
	walk = func(e Expr) {
		switch e := e.(type) {
		case *Sequence:
			if e != nil {
				for _, el := range e.Elements {
					walk(el)
				}
			}
		case *Alternative:
			if e != nil {
				for _, el := range e.Elements {
					walk(el)
				}
			}
		case *Repeat:
			if e != nil {
				walk(e.Element)
			}
		case *Repeat1:
			if e != nil {
				walk(e.Element)
			}
		case *Symbol:
			if e != nil && !seen[e.Name] {
				seen[e.Name] = true
				names = append(names, e.Name)
			}
		}
	}
	walk(e)
	return names
}
