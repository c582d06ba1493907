package grammar

import "fmt"

// Parse parses grammar notation and returns the expression tree.
// Returns a *SyntaxError or *LexError on failure.
func Parse(src []byte) (Expr, error) {
	p := &parser{lex: NewLexer(src)}
	expr, err := p.parseAlternative()
	if err != nil {
		return nil, err
	}
	tok, err := p.lex.Peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind != TokenEOF {
		return nil, unexpected(tok, "EOF")
	}
	return expr, nil
}

// MustParse is like Parse but panics on error. Intended for grammars
// written as literals in Go source.
func MustParse(src string) Expr {
	e, err := Parse([]byte(src))
	if err != nil {
		panic(fmt.Sprintf("grammar: MustParse(%q): %v", src, err))
	}
	return e
}

type parser struct {
	lex *Lexer
}

func unexpected(tok Token, expected string) *SyntaxError {
	got := tok.Kind.String()
	if tok.Kind != TokenEOF {
		got = fmt.Sprintf("%s (%q)", tok.Kind, tok.Literal)
	}
	return &SyntaxError{
		ParseError: ParseError{Pos: tok.Pos},
		Expected:   expected,
		Got:        got,
	}
}

func (p *parser) expect(kind TokenKind) (Token, error) {
	tok, err := p.lex.Next()
	if err != nil {
		return Token{}, err
	}
	if tok.Kind != kind {
		return Token{}, unexpected(tok, kind.String())
	}
	return tok, nil
}

// parseAlternative handles: sequence ('|' sequence)*
func (p *parser) parseAlternative() (Expr, error) {
	first, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	elements := []Expr{first}
	for {
		tok, err := p.lex.Peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind != TokenPipe {
			break
		}
		_, _ = p.lex.Next()
		next, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		elements = append(elements, next)
	}
	if len(elements) == 1 {
		return first, nil
	}
	return &Alternative{Elements: elements}, nil
}

// parseSequence handles: postfix postfix*
func (p *parser) parseSequence() (Expr, error) {
	var elements []Expr
	for {
		tok, err := p.lex.Peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind != TokenIdentifier && tok.Kind != TokenString && tok.Kind != TokenLParen {
			break
		}
		e, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		elements = append(elements, e)
	}
	switch len(elements) {
	case 0:
		tok, err := p.lex.Peek()
		if err != nil {
			return nil, err
		}
		return nil, unexpected(tok, "expression")
	case 1:
		return elements[0], nil
	}
	return &Sequence{Elements: elements}, nil
}

// parsePostfix handles: atom ('*' | '+')*
func (p *parser) parsePostfix() (Expr, error) {
	e, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.lex.Peek()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case TokenStar:
			e = &Repeat{Element: e}
		case TokenPlus:
			e = &Repeat1{Element: e}
		default:
			return e, nil
		}
		_, _ = p.lex.Next()
	}
}

// parseAtom handles: IDENT | STRING | '(' alternative ')'
func (p *parser) parseAtom() (Expr, error) {
	tok, err := p.lex.Next()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case TokenIdentifier, TokenString:
		if tok.Literal == "" {
			return nil, &SyntaxError{
				ParseError: ParseError{Message: "empty symbol name", Pos: tok.Pos},
				Expected:   "symbol name",
				Got:        `""`,
			}
		}
		return &Symbol{Name: tok.Literal}, nil
	case TokenLParen:
		e, err := p.parseAlternative()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return e, nil
	}
	return nil, unexpected(tok, "expression")
}
