package grammar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringRendersNotation(t *testing.T) {
	tests := []struct {
		expr     Expr
		expected string
	}{
		{Sym("a"), "a"},
		{Sym("two words"), `"two words"`},
		{Seq(Sym("a"), Sym("b")), "a b"},
		{Alt(Sym("a"), Seq(Sym("b"), Sym("c"))), "a | b c"},
		{Seq(Sym("a"), Alt(Sym("b"), Sym("c"))), "a (b | c)"},
		{Star(Seq(Sym("a"), Sym("b"))), "(a b)*"},
		{Plus(Star(Sym("a"))), "(a*)+"},
		{Seq(Sym("a"), Seq(Sym("b"), Sym("c"))), "a (b c)"},
		{Seq(), "()"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.expr.String())
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	exprs := []Expr{
		Seq(Sym("of"), Star(Alt(Sym("fullArticle"), Seq(Sym("article"), Plus(Sym("modele")))))),
		Alt(Alt(Sym("a"), Sym("b")), Sym("c")),
		Plus(Plus(Sym("x"))),
		Seq(Sym("quoted \"name\""), Star(Sym("b"))),
		Sym("a\rb"),
		Sym("a\x01"),
		Sym("\xff"),
		Alt(Sym("tab\there"), Sym("line\nbreak"), Sym("é")),
	}
	for _, e := range exprs {
		t.Run(e.String(), func(t *testing.T) {
			parsed, err := Parse([]byte(e.String()))
			require.NoError(t, err)
			assert.Equal(t, e, parsed)
		})
	}
}

func TestStringToleratesTypedNilNodes(t *testing.T) {
	tests := []struct {
		expr     Expr
		expected string
	}{
		{Seq(Sym("a"), (*Symbol)(nil)), "a <nil>"},
		{Alt((*Sequence)(nil), Sym("b")), "<nil> | b"},
		{Star((*Alternative)(nil)), "<nil>*"},
		{Plus((*Repeat)(nil)), "<nil>+"},
		{(*Repeat1)(nil), "<nil>"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Equal(t, tt.expected, tt.expr.String())
			})
		})
	}
	assert.Equal(t, []string{"a"}, Symbols(Seq(Sym("a"), (*Sequence)(nil), Star((*Symbol)(nil)))))
}

func TestConstructorsCopyElements(t *testing.T) {
	elements := []Expr{Sym("a"), Sym("b")}
	s := Seq(elements...)
	elements[0] = Sym("z")
	assert.Equal(t, Sym("a"), s.Elements[0])
}

type kindVisitor struct{}

func (kindVisitor) VisitSequence(*Sequence) (Kind, error)       { return KindSequence, nil }
func (kindVisitor) VisitAlternative(*Alternative) (Kind, error) { return KindAlternative, nil }
func (kindVisitor) VisitRepeat(*Repeat) (Kind, error)           { return KindRepeat, nil }
func (kindVisitor) VisitRepeat1(*Repeat1) (Kind, error)         { return KindRepeat1, nil }
func (kindVisitor) VisitSymbol(*Symbol) (Kind, error)           { return KindSymbol, nil }

func TestVisitDispatchesByKind(t *testing.T) {
	for _, e := range []Expr{Seq(Sym("a")), Alt(Sym("a")), Star(Sym("a")), Plus(Sym("a")), Sym("a")} {
		kind, err := Visit[Kind](e, kindVisitor{})
		require.NoError(t, err)
		assert.Equal(t, e.Kind(), kind)
	}
}

func TestVisitRejectsNil(t *testing.T) {
	_, err := Visit[Kind](nil, kindVisitor{})
	assert.True(t, errors.Is(err, ErrUnsupportedExpression))

	var sym *Symbol
	_, err = Visit[Kind](sym, kindVisitor{})
	assert.True(t, errors.Is(err, ErrUnsupportedExpression))
}

func TestSymbolsFirstOccurrenceOrder(t *testing.T) {
	e := MustParse("of (fullArticle | article modele+)* of")
	assert.Equal(t, []string{"of", "fullArticle", "article", "modele"}, Symbols(e))
}
