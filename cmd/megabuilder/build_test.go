package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/martinemde/megabuilder/grammar"
	"github.com/martinemde/megabuilder/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGrammarDefaultsToCatalogue(t *testing.T) {
	expr, err := loadGrammar(nil, "")
	require.NoError(t, err)
	assert.Equal(t, grammar.MustParse("of (fullArticle | article modele+)*"), expr)
}

func TestLoadGrammarFromExpr(t *testing.T) {
	expr, err := loadGrammar(nil, "a | b")
	require.NoError(t, err)
	assert.Equal(t, grammar.Alt(grammar.Sym("a"), grammar.Sym("b")), expr)
}

func TestLoadGrammarFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogue.grammar")
	src := "// catalogue\nof (fullArticle | article modele+)*\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))

	expr, err := loadGrammar([]string{path}, "")
	require.NoError(t, err)
	assert.Equal(t, catalogueGrammar(), expr)
}

func TestLoadGrammarErrors(t *testing.T) {
	_, err := loadGrammar([]string{"x.grammar"}, "a")
	assert.ErrorContains(t, err, "not both")

	_, err = loadGrammar(nil, "a |")
	assert.ErrorContains(t, err, "parsing --expr")

	_, err = loadGrammar([]string{filepath.Join(t.TempDir(), "missing")}, "")
	assert.ErrorContains(t, err, "reading grammar file")
}

func TestBuildCommandWritesGraphs(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"build", "--expr", "a*", "--out-dir", dir, "--print", "dfa"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())

	expected := "digraph G {\nn_0_1 [shape=\"box\"];\nn_0_1 -> n_0_1 [label=\"a\"];\n}\n"
	assert.Equal(t, expected, stdout.String())

	dfa, err := os.ReadFile(filepath.Join(dir, "dfa.dot"))
	require.NoError(t, err)
	assert.Equal(t, expected, string(dfa))
	assert.FileExists(t, filepath.Join(dir, "out.dot"))
	assert.Contains(t, stderr.String(), "[write]")
}

func TestPrintBuildSummaryReadsDFAGraph(t *testing.T) {
	result, err := pipeline.Run(grammar.MustParse("a | b"), nil)
	require.NoError(t, err)

	var out bytes.Buffer
	printBuildSummary(&out, result)

	text := out.String()
	assert.Contains(t, text, "  DFA: 3 states, 2 final, 2 transitions\n")
	assert.Contains(t, text, "    - n_0_2_4: 0 in, 2 out\n")
	assert.Contains(t, text, "    - n_1_3: 1 in, 0 out (final)\n")
	assert.Contains(t, text, "    - n_1_5: 1 in, 0 out (final)\n")
}
