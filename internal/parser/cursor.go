package parser

import "github.com/cwbudde/go-mbasic/internal/lexer"

// TokenCursor is an immutable cursor over a lexer's token stream: every
// navigation method returns a new cursor rather than mutating one, so
// speculative parsing can hold onto an earlier cursor and discard the rest.
type TokenCursor struct {
	l       *lexer.Lexer
	tokens  []lexer.Token
	index   int
}

// NewTokenCursor creates a cursor positioned at the first token l produces.
func NewTokenCursor(l *lexer.Lexer) *TokenCursor {
	first := l.NextToken()
	return &TokenCursor{l: l, tokens: []lexer.Token{first}, index: 0}
}

// Current returns the token at the cursor's position.
func (c *TokenCursor) Current() lexer.Token { return c.tokens[c.index] }

// Peek returns the token n positions ahead of Current; Peek(0) == Current().
func (c *TokenCursor) Peek(n int) lexer.Token {
	target := c.index + n
	for target >= len(c.tokens) {
		last := c.tokens[len(c.tokens)-1]
		if last.Type == lexer.EOF {
			return last
		}
		c.tokens = append(c.tokens, c.l.NextToken())
	}
	return c.tokens[target]
}

// Advance returns a cursor at the next token.
func (c *TokenCursor) Advance() *TokenCursor {
	c.Peek(1)
	next := c.index + 1
	if next >= len(c.tokens) {
		next = len(c.tokens) - 1
	}
	return &TokenCursor{l: c.l, tokens: c.tokens, index: next}
}

// Is reports whether Current() has type t.
func (c *TokenCursor) Is(t lexer.TokenType) bool { return c.Current().Type == t }

// PeekIs reports whether the token n ahead has type t.
func (c *TokenCursor) PeekIs(n int, t lexer.TokenType) bool { return c.Peek(n).Type == t }

// Mark is a lightweight saved position for backtracking.
type Mark struct{ index int }

// Mark saves the cursor's current position.
func (c *TokenCursor) Mark() Mark { return Mark{index: c.index} }

// ResetTo returns a cursor at a previously saved Mark.
func (c *TokenCursor) ResetTo(m Mark) *TokenCursor {
	return &TokenCursor{l: c.l, tokens: c.tokens, index: m.index}
}
