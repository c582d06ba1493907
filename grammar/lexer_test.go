package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectTokens(t *testing.T, src string) []Token {
	t.Helper()
	lex := NewLexer([]byte(src))
	var tokens []Token
	for {
		tok, err := lex.Next()
		require.NoError(t, err)
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			break
		}
	}
	return tokens
}

func TestLexerPunctuation(t *testing.T) {
	tokens := collectTokens(t, "( ) | * +")
	expected := []TokenKind{
		TokenLParen, TokenRParen, TokenPipe, TokenStar, TokenPlus, TokenEOF,
	}
	require.Len(t, tokens, len(expected))
	for i, tok := range tokens {
		assert.Equal(t, expected[i], tok.Kind, "token %d", i)
	}
}

func TestLexerIdentifiers(t *testing.T) {
	cases := []string{"of", "_bar", "modele2", "full_Article"}
	for _, id := range cases {
		tokens := collectTokens(t, id)
		require.Len(t, tokens, 2, "input: %s", id)
		assert.Equal(t, TokenIdentifier, tokens[0].Kind, "input: %s", id)
		assert.Equal(t, id, tokens[0].Literal, "input: %s", id)
	}
}

func TestLexerStringEscapes(t *testing.T) {
	tokens := collectTokens(t, `"a \"b\" \\ c"`)
	require.Len(t, tokens, 2)
	assert.Equal(t, TokenString, tokens[0].Kind)
	assert.Equal(t, `a "b" \ c`, tokens[0].Literal)

	tokens = collectTokens(t, `"\r\x01\xff\u00e9"`)
	require.Len(t, tokens, 2)
	assert.Equal(t, "\r\x01\xff\u00e9", tokens[0].Literal)
}

func TestLexerPostfixWithoutSpaces(t *testing.T) {
	tokens := collectTokens(t, "modele+)*")
	kinds := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	assert.Equal(t, []TokenKind{TokenIdentifier, TokenPlus, TokenRParen, TokenStar, TokenEOF}, kinds)
}

func TestLexerSkipsComments(t *testing.T) {
	tokens := collectTokens(t, "a // trailing\n/* block\ncomment */ b")
	require.Len(t, tokens, 3)
	assert.Equal(t, "a", tokens[0].Literal)
	assert.Equal(t, "b", tokens[1].Literal)
	assert.Equal(t, 3, tokens[1].Pos.Line)
}

func TestLexerPositions(t *testing.T) {
	tokens := collectTokens(t, "a\n  b")
	require.Len(t, tokens, 3)
	assert.Equal(t, Position{Line: 1, Column: 1, Offset: 0}, tokens[0].Pos)
	assert.Equal(t, Position{Line: 2, Column: 3, Offset: 4}, tokens[1].Pos)
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"unterminated string", `"abc`, "unterminated string"},
		{"unterminated escape", `"abc\`, "unterminated string escape"},
		{"unknown escape", `"a\qb"`, "invalid string literal"},
		{"raw newline in string", "\"a\nb\"", "invalid string literal"},
		{"unterminated comment", "/* abc", "unterminated block comment"},
		{"optional operator", "a?", "optional operator"},
		{"bad character", "a & b", "unexpected character"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lex := NewLexer([]byte(tt.input))
			var err error
			for err == nil {
				var tok Token
				tok, err = lex.Next()
				if tok.Kind == TokenEOF && err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
			}
			var lexErr *LexError
			require.ErrorAs(t, err, &lexErr)
			assert.Contains(t, lexErr.Error(), tt.message)
		})
	}
}
