// Package parser implements a recursive-descent, Pratt-style parser for
// MBASIC 5.21 source text.
package parser

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-mbasic/internal/ast"
	"github.com/cwbudde/go-mbasic/internal/lexer"
)

// Precedence levels, loosest to tightest, per the §4.D table: OR/XOR/EQV/IMP
// < AND < NOT < relational < +/- < */ < \ < MOD < unary -/+ < ^.
const (
	_ int = iota
	LOWEST
	LOGIC_OR  // OR, XOR, EQV, IMP
	LOGIC_AND // AND
	LOGIC_NOT // NOT (prefix)
	RELATIONAL
	SUM     // + -
	PRODUCT // * /
	INTDIV  // \
	MODULO  // MOD
	UNARY   // unary - +
	POWER   // ^ (right-associative)
)

var infixPrecedence = map[lexer.TokenType]int{
	lexer.OR:         LOGIC_OR,
	lexer.XOR:        LOGIC_OR,
	lexer.EQV:        LOGIC_OR,
	lexer.IMP:        LOGIC_OR,
	lexer.AND:        LOGIC_AND,
	lexer.ASSIGN:     RELATIONAL,
	lexer.NOT_EQ:     RELATIONAL,
	lexer.LT:         RELATIONAL,
	lexer.GT:         RELATIONAL,
	lexer.LT_EQ:      RELATIONAL,
	lexer.GT_EQ:      RELATIONAL,
	lexer.PLUS:       SUM,
	lexer.MINUS:      SUM,
	lexer.ASTERISK:   PRODUCT,
	lexer.SLASH:      PRODUCT,
	lexer.BACKSLASH:  INTDIV,
	lexer.MOD:        MODULO,
	lexer.CARET:      POWER,
}

type prefixParseFn func() ast.Expression
type infixParseFn func(ast.Expression) ast.Expression

// Parser turns a token stream into an *ast.Program.
type Parser struct {
	cursor         *TokenCursor
	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn
	errors         []*ParserError
	program        *ast.Program
	defFnNames     map[string]bool
}

// New creates a Parser reading from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{
		cursor:     NewTokenCursor(l),
		program:    ast.NewProgram(),
		defFnNames: make(map[string]bool),
	}

	p.prefixParseFns = map[lexer.TokenType]prefixParseFn{
		lexer.IDENT:  p.parseIdentifierOrCall,
		lexer.INT:    p.parseIntegerLiteral,
		lexer.FLOAT:  p.parseFloatLiteral,
		lexer.STRING: p.parseStringLiteral,
		lexer.MINUS:  p.parseUnaryExpression,
		lexer.PLUS:   p.parseUnaryExpression,
		lexer.NOT:    p.parseNotExpression,
		lexer.LPAREN: p.parseGroupedExpression,
	}

	p.infixParseFns = map[lexer.TokenType]infixParseFn{}
	for t := range infixPrecedence {
		p.infixParseFns[t] = p.parseBinaryExpression
	}

	return p
}

func (p *Parser) Errors() []*ParserError { return p.errors }

func (p *Parser) addError(pos lexer.Position, msg, code string) {
	p.errors = append(p.errors, NewParserError(pos, msg, code))
}

func (p *Parser) cur() lexer.Token  { return p.cursor.Current() }
func (p *Parser) peek() lexer.Token { return p.cursor.Peek(1) }
func (p *Parser) advance()          { p.cursor = p.cursor.Advance() }

func (p *Parser) curIs(t lexer.TokenType) bool  { return p.cursor.Is(t) }
func (p *Parser) peekIs(t lexer.TokenType) bool { return p.cursor.PeekIs(1, t) }

func precedenceOf(t lexer.TokenType) int {
	if pr, ok := infixPrecedence[t]; ok {
		return pr
	}
	return LOWEST
}

// ParseProgram consumes the entire token stream and returns the assembled
// *ast.Program, with DEFtype statements folded into its DEF-type map as they
// are encountered.
func (p *Parser) ParseProgram() *ast.Program {
	for !p.curIs(lexer.EOF) {
		line := p.parseLine()
		if line != nil {
			p.program.AddOrReplaceLine(line)
		}
		if p.curIs(lexer.EOF) {
			break
		}
	}
	return p.program
}

// parseLine parses one source line: a LINENUM token followed by one or more
// colon-separated statements.
func (p *Parser) parseLine() *ast.Line {
	if !p.curIs(lexer.LINENUM) {
		p.addError(p.cur().Pos, fmt.Sprintf("expected line number, got %s", p.cur().Type), ErrBadLineNumber)
		p.synchronizeToNextLine()
		return nil
	}
	tok := p.cur()
	line := &ast.Line{Token: tok, Number: int(tok.IntValue)}
	p.advance()

	for {
		if p.curIs(lexer.LINENUM) || p.curIs(lexer.EOF) {
			break
		}
		stmt := p.parseStatement()
		if stmt != nil {
			line.Statements = append(line.Statements, stmt)
			if rem, ok := stmt.(*ast.RemStatement); ok {
				_ = rem
				break // a REM consumes the remainder of the physical line
			}
		}
		if p.curIs(lexer.COLON) {
			p.advance()
			continue
		}
		break
	}
	return line
}

func (p *Parser) synchronizeToNextLine() {
	for !p.curIs(lexer.LINENUM) && !p.curIs(lexer.EOF) {
		p.advance()
	}
}

// parseExpression is the Pratt-parsing core: parse a prefix term, then
// repeatedly fold in infix operators whose precedence exceeds minPrec.
func (p *Parser) parseExpression(minPrec int) ast.Expression {
	prefix, ok := p.prefixParseFns[p.cur().Type]
	if !ok {
		p.addError(p.cur().Pos, fmt.Sprintf("no prefix parse function for %s", p.cur().Type), ErrNoPrefixParse)
		return nil
	}
	left := prefix()

	for !p.curIs(lexer.EOF) && minPrec < precedenceOf(p.cur().Type) {
		infix, ok := p.infixParseFns[p.cur().Type]
		if !ok {
			return left
		}
		left = infix(left)
	}
	return left
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	tok := p.cur()
	op := tok.Type.String()
	prec := precedenceOf(tok.Type)
	p.advance()

	// ^ is right-associative: parse its RHS at one less than its own
	// precedence so a chain of ^ nests to the right.
	rhsPrec := prec
	if tok.Type == lexer.CARET {
		rhsPrec = prec - 1
	}
	right := p.parseExpression(rhsPrec)
	return &ast.BinaryExpression{Token: tok, Left: left, Operator: op, Right: right}
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	tok := p.cur()
	op := "-"
	if tok.Type == lexer.PLUS {
		op = "+"
	}
	p.advance()
	operand := p.parseExpression(UNARY)
	return &ast.UnaryExpression{Token: tok, Operator: op, Operand: operand}
}

func (p *Parser) parseNotExpression() ast.Expression {
	tok := p.cur()
	p.advance()
	operand := p.parseExpression(LOGIC_NOT)
	return &ast.UnaryExpression{Token: tok, Operator: "NOT", Operand: operand}
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.advance() // consume '('
	expr := p.parseExpression(LOWEST)
	if !p.curIs(lexer.RPAREN) {
		p.addError(p.cur().Pos, "expected ')'", ErrUnexpectedToken)
		return expr
	}
	p.advance()
	return expr
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	tok := p.cur()
	p.advance()
	return &ast.IntegerLiteral{Token: tok, Value: tok.IntValue}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	tok := p.cur()
	p.advance()
	return &ast.FloatLiteral{Token: tok, Value: tok.FloatValue, IsDouble: tok.Suffix == '#'}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	tok := p.cur()
	p.advance()
	return &ast.StringLiteral{Token: tok, Value: tok.StringValue}
}

// parseIdentifierOrCall parses a bare identifier, an array reference, or a
// function/DEF FN call: name(args...). Which it is cannot always be told
// apart syntactically; the parser marks IsCall true whenever name resolves
// against the built-in/DEF-FN catalogue (checked via isKnownFunction), and
// otherwise leaves it as a potential array reference for the analyzer or
// interpreter to resolve against the DIM table.
func (p *Parser) parseIdentifierOrCall() ast.Expression {
	tok := p.cur()
	name := tok.StringValue
	suffix := tok.Suffix
	p.advance()

	full := name + suffixString(suffix)
	if p.curIs(lexer.LPAREN) {
		return p.finishCallOrIndex(tok, name, suffix)
	}
	// RND and INKEY$ are the two built-ins §4.D permits without parentheses.
	if full == "RND" {
		return &ast.IndexExpression{Token: tok, Name: name, Suffix: suffix, IsCall: true,
			Args: []ast.Expression{&ast.IntegerLiteral{Token: tok, Value: 1}}}
	}
	if full == "INKEY$" {
		return &ast.IndexExpression{Token: tok, Name: name, Suffix: suffix, IsCall: true}
	}
	if p.isKnownFunction(full) {
		return &ast.IndexExpression{Token: tok, Name: name, Suffix: suffix, IsCall: true}
	}
	return &ast.Identifier{Token: tok, Name: name, Suffix: suffix}
}

func suffixString(b byte) string {
	if b == 0 {
		return ""
	}
	return string(b)
}

func (p *Parser) finishCallOrIndex(tok lexer.Token, name string, suffix byte) ast.Expression {
	full := name + suffixString(suffix)
	p.advance() // consume '('
	var args []ast.Expression
	if !p.curIs(lexer.RPAREN) {
		args = append(args, p.parseExpression(LOWEST))
		for p.curIs(lexer.COMMA) {
			p.advance()
			args = append(args, p.parseExpression(LOWEST))
		}
	}
	if !p.curIs(lexer.RPAREN) {
		p.addError(p.cur().Pos, "expected ')' to close argument list", ErrUnexpectedToken)
	} else {
		p.advance()
	}
	return &ast.IndexExpression{
		Token:  tok,
		Name:   name,
		Suffix: suffix,
		Args:   args,
		IsCall: p.isKnownFunction(full) || strings.HasPrefix(name, "FN"),
	}
}
