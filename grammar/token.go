package grammar

// TokenKind identifies the type of a lexical token.
type TokenKind int

const (
	TokenEOF        TokenKind = iota
	TokenIdentifier           // [A-Za-z_][A-Za-z0-9_]*
	TokenString               // "..." with escape processing
	TokenLParen               // (
	TokenRParen               // )
	TokenPipe                 // |
	TokenStar                 // *
	TokenPlus                 // +
)

var tokenNames = map[TokenKind]string{
	TokenEOF:        "EOF",
	TokenIdentifier: "identifier",
	TokenString:     "string",
	TokenLParen:     "'('",
	TokenRParen:     "')'",
	TokenPipe:       "'|'",
	TokenStar:       "'*'",
	TokenPlus:       "'+'",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return "unknown"
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Kind    TokenKind
	Literal string // text content (decoded for strings, raw for others)
	Pos     Position
}
