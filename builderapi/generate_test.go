package builderapi

import (
	"errors"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/martinemde/megabuilder/automaton"
	"github.com/martinemde/megabuilder/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDFA(t *testing.T, src string) *automaton.DFA {
	t.Helper()
	n, err := automaton.Build(grammar.MustParse(src))
	require.NoError(t, err)
	return automaton.Determinize(n)
}

func TestGenerateCatalogue(t *testing.T) {
	d := mustDFA(t, "of (fullArticle | article modele+)*")

	src, err := Generate(d, Options{Package: "catalogue", Result: "Catalogue"})
	require.NoError(t, err)

	expected := `// Code generated by megabuilder. DO NOT EDIT.

package catalogue

// CatalogueBuilder is the entry point of the builder.
type CatalogueBuilder interface {
	Of() CatalogueBuilder1
}

type CatalogueBuilder1 interface {
	Build() Catalogue
	Article() CatalogueBuilder2
	FullArticle() CatalogueBuilder3
}

type CatalogueBuilder2 interface {
	Modele() CatalogueBuilder4
}

type CatalogueBuilder3 interface {
	Build() Catalogue
	Article() CatalogueBuilder2
	FullArticle() CatalogueBuilder3
}

type CatalogueBuilder4 interface {
	Build() Catalogue
	Article() CatalogueBuilder2
	FullArticle() CatalogueBuilder3
	Modele() CatalogueBuilder4
}
`
	assert.Equal(t, expected, string(src))
}

func TestGenerateDefaults(t *testing.T) {
	src, err := Generate(mustDFA(t, "a*"), Options{})
	require.NoError(t, err)

	expected := `// Code generated by megabuilder. DO NOT EDIT.

package builder

// ResultBuilder is the entry point of the builder.
type ResultBuilder interface {
	Build() Result
	A() ResultBuilder
}
`
	assert.Equal(t, expected, string(src))
}

func TestGenerateParamsAndImports(t *testing.T) {
	d := mustDFA(t, "of article+")

	src, err := Generate(d, Options{
		Package: "shop",
		Result:  "*model.Catalogue",
		Imports: []string{"example.com/shop/model", "example.com/shop/model"},
		Params:  map[string]string{"article": "name string, price int"},
	})
	require.NoError(t, err)

	text := string(src)
	assert.Contains(t, text, "import (\n\t\"example.com/shop/model\"\n)\n")
	assert.Contains(t, text, "type CatalogueBuilder interface {\n\tOf() CatalogueBuilder1\n}")
	assert.Contains(t, text, "\tArticle(name string, price int) CatalogueBuilder2\n")
	assert.Contains(t, text, "\tBuild() *model.Catalogue\n")

	_, err = parser.ParseFile(token.NewFileSet(), "api.go", src, parser.AllErrors)
	assert.NoError(t, err)
}

func TestGenerateFinalStatesOnlyDeclareBuild(t *testing.T) {
	d := mustDFA(t, "a (b | c)+")
	src, err := Generate(d, Options{})
	require.NoError(t, err)

	text := string(src)
	for _, s := range d.States {
		assert.Contains(t, text, "type "+InterfaceName("ResultBuilder", s.ID)+" interface {", "state %s", s.Key())
	}
	assert.Equal(t, len(d.States), strings.Count(text, " interface {"))
	assert.Contains(t, text, "type ResultBuilder interface {\n\tA() ResultBuilder1\n}")
	assert.Equal(t, len(d.Finals()), strings.Count(text, "\tBuild() Result\n"))
}

func TestGenerateIsDeterministic(t *testing.T) {
	d := mustDFA(t, "of (fullArticle | article modele+)*")
	first, err := Generate(d, Options{})
	require.NoError(t, err)
	second, err := Generate(d, Options{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		grammar string
		opts    Options
		target  error
		message string
	}{
		{"symbol is not an identifier", `"two words"`, Options{}, ErrInvalidSymbol, "two words"},
		{"symbol cannot be exported", "_private", Options{}, ErrInvalidSymbol, "_private"},
		{"case collision", "of Of", Options{}, ErrMethodConflict, `"of" and "Of"`},
		{"reserved build", "a build", Options{}, ErrMethodConflict, "reserved Build"},
		{"bad package", "a", Options{Package: "my-pkg"}, nil, "invalid package name"},
		{"bad result", "a", Options{Result: "model."}, nil, "invalid result type"},
		{"bad params", "a", Options{Params: map[string]string{"a": "x )"}}, nil, "formatting generated source"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(mustDFA(t, tt.grammar), tt.opts)
			require.Error(t, err)
			if tt.target != nil {
				assert.True(t, errors.Is(err, tt.target), "got %v", err)
			}
			assert.Contains(t, err.Error(), tt.message)
		})
	}

	_, err := Generate(nil, Options{})
	assert.Error(t, err)
}

func TestMethodName(t *testing.T) {
	name, err := MethodName("fullArticle")
	require.NoError(t, err)
	assert.Equal(t, "FullArticle", name)

	name, err = MethodName("type")
	require.NoError(t, err)
	assert.Equal(t, "Type", name)

	_, err = MethodName("9lives")
	assert.ErrorIs(t, err, ErrInvalidSymbol)
}

func TestInterfaceName(t *testing.T) {
	assert.Equal(t, "ResultBuilder", InterfaceName("ResultBuilder", 0))
	assert.Equal(t, "ResultBuilder12", InterfaceName("ResultBuilder", 12))
}
