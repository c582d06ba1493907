package grammar

import (
	"strconv"
	"strings"
)

// Kind discriminates the Expr tagged union.
type Kind string

const (
	KindSequence    Kind = "seq"
	KindAlternative Kind = "alt"
	KindRepeat      Kind = "repeat"
	KindRepeat1     Kind = "repeat1"
	KindSymbol      Kind = "symbol"
)

// Expr is a node of a grammar expression tree. The set of implementations is
// closed: only the five types in this package satisfy it.
type Expr interface {
	Kind() Kind
	String() string
	sealed()
}

// Sequence matches its elements one after the other.
type Sequence struct {
	Elements []Expr
}

// Alternative matches any one of its elements.
type Alternative struct {
	Elements []Expr
}

// Repeat matches zero or more occurrences of Element.
type Repeat struct {
	Element Expr
}

// Repeat1 matches one or more occurrences of Element.
type Repeat1 struct {
	Element Expr
}

// Symbol matches exactly one terminal named Name.
type Symbol struct {
	Name string
}

func (*Sequence) Kind() Kind    { return KindSequence }
func (*Alternative) Kind() Kind { return KindAlternative }
func (*Repeat) Kind() Kind      { return KindRepeat }
func (*Repeat1) Kind() Kind     { return KindRepeat1 }
func (*Symbol) Kind() Kind      { return KindSymbol }

func (*Sequence) sealed()    {}
func (*Alternative) sealed() {}
func (*Repeat) sealed()      {}
func (*Repeat1) sealed()     {}
func (*Symbol) sealed()      {}

// Seq returns a Sequence over a copy of elements.
func Seq(elements ...Expr) *Sequence {
	return &Sequence{Elements: append([]Expr(nil), elements...)}
}

// Alt returns an Alternative over a copy of elements.
func Alt(elements ...Expr) *Alternative {
	return &Alternative{Elements: append([]Expr(nil), elements...)}
}

// Star returns a Repeat of element.
func Star(element Expr) *Repeat {
	return &Repeat{Element: element}
}

// Plus returns a Repeat1 of element.
func Plus(element Expr) *Repeat1 {
	return &Repeat1{Element: element}
}

// Sym returns a Symbol named name.
func Sym(name string) *Symbol {
	return &Symbol{Name: name}
}

// String renders the sequence in grammar notation.
func (s *Sequence) String() string {
	if s == nil {
		return nilExpr
	}
	if len(s.Elements) == 0 {
		return "()"
	}
	parts := make([]string, len(s.Elements))
	for i, e := range s.Elements {
		parts[i] = render(e, precPostfix)
	}
	return strings.Join(parts, " ")
}

// String renders the alternative in grammar notation.
func (a *Alternative) String() string {
	if a == nil {
		return nilExpr
	}
	if len(a.Elements) == 0 {
		return "()"
	}
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = render(e, precSequence)
	}
	return strings.Join(parts, " | ")
}

func (r *Repeat) String() string {
	if r == nil {
		return nilExpr
	}
	return render(r.Element, precAtom) + "*"
}

func (r *Repeat1) String() string {
	if r == nil {
		return nilExpr
	}
	return render(r.Element, precAtom) + "+"
}

// String renders the symbol as a bare identifier when possible, quoted otherwise.
func (s *Symbol) String() string {
	if s == nil {
		return nilExpr
	}
	if isIdentifier(s.Name) {
		return s.Name
	}
	return strconv.Quote(s.Name)
}

// nilExpr stands in for a missing node, including a typed nil pointer.
const nilExpr = "<nil>"

// Binding strength of each notation form, loosest first.
const (
	precAlternative = iota
	precSequence
	precPostfix
	precAtom
)

func precedence(e Expr) int {
	switch e := e.(type) {
	case *Alternative:
		if e != nil && len(e.Elements) == 1 {
			return precedence(e.Elements[0])
		}
		return precAlternative
	case *Sequence:
		if e != nil && len(e.Elements) == 1 {
			return precedence(e.Elements[0])
		}
		return precSequence
	case *Repeat, *Repeat1:
		return precPostfix
	default:
		return precAtom
	}
}

// render wraps e in parentheses when it binds looser than min.
func render(e Expr, min int) string {
	if e == nil {
		return nilExpr
	}
	if precedence(e) < min {
		return "(" + e.String() + ")"
	}
	return e.String()
}

func isIdentifier(s string) bool {
	if s == "" || !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentPart(s[i]) {
			return false
		}
	}
	return true
}
