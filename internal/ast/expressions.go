package ast

import (
	"strconv"
	"strings"

	"github.com/cwbudde/go-mbasic/internal/lexer"
)

// Identifier is a variable reference without an argument list. A name
// followed by parenthesized arguments parses as an IndexExpression instead,
// whose IsCall records whether the parser resolved it against the built-in
// catalogue (§4.D) as a function call rather than an array element.
type Identifier struct {
	Token  lexer.Token
	Name   string // canonical (upper-cased) name, without type suffix
	Suffix byte   // '%','!','#','$', or 0
}

func (i *Identifier) expressionNode()            {}
func (i *Identifier) TokenLiteral() string       { return i.Token.Literal }
func (i *Identifier) Pos() lexer.Position        { return i.Token.Pos }
func (i *Identifier) String() string             { return i.Name + suffixString(i.Suffix) }

func suffixString(b byte) string {
	if b == 0 {
		return ""
	}
	return string(b)
}

// IntegerLiteral is an integer numeric literal.
type IntegerLiteral struct {
	Token lexer.Token
	Value int64
}

func (n *IntegerLiteral) expressionNode()      {}
func (n *IntegerLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *IntegerLiteral) Pos() lexer.Position  { return n.Token.Pos }
func (n *IntegerLiteral) String() string       { return strconv.FormatInt(n.Value, 10) }

// FloatLiteral is a SINGLE or DOUBLE numeric literal; IsDouble distinguishes
// them (set by a D exponent or # suffix).
type FloatLiteral struct {
	Token    lexer.Token
	Value    float64
	IsDouble bool
}

func (n *FloatLiteral) expressionNode()      {}
func (n *FloatLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *FloatLiteral) Pos() lexer.Position  { return n.Token.Pos }
func (n *FloatLiteral) String() string       { return strconv.FormatFloat(n.Value, 'g', -1, 64) }

// StringLiteral is a quoted string literal.
type StringLiteral struct {
	Token lexer.Token
	Value string
}

func (n *StringLiteral) expressionNode()      {}
func (n *StringLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *StringLiteral) Pos() lexer.Position  { return n.Token.Pos }
func (n *StringLiteral) String() string       { return `"` + n.Value + `"` }

// IndexExpression is an array element reference or function/DEF FN call:
// name(args...). The parser cannot always tell which without a symbol table,
// so this one node covers both (§4.D); IsCall records the resolution.
type IndexExpression struct {
	Token  lexer.Token // the name token
	Name   string
	Suffix byte
	Args   []Expression
	IsCall bool // true if Name resolves to a built-in or DEF FN function
}

func (n *IndexExpression) expressionNode()      {}
func (n *IndexExpression) TokenLiteral() string { return n.Token.Literal }
func (n *IndexExpression) Pos() lexer.Position  { return n.Token.Pos }
func (n *IndexExpression) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return n.Name + suffixString(n.Suffix) + "(" + strings.Join(args, ", ") + ")"
}

// UnaryExpression is a prefix operator: -x, +x, NOT x.
type UnaryExpression struct {
	Token    lexer.Token
	Operator string
	Operand  Expression
}

func (n *UnaryExpression) expressionNode()      {}
func (n *UnaryExpression) TokenLiteral() string { return n.Token.Literal }
func (n *UnaryExpression) Pos() lexer.Position  { return n.Token.Pos }
func (n *UnaryExpression) String() string       { return n.Operator + n.Operand.String() }

// BinaryExpression is an infix operator application, per the §4.D
// precedence table.
type BinaryExpression struct {
	Token    lexer.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (n *BinaryExpression) expressionNode()      {}
func (n *BinaryExpression) TokenLiteral() string { return n.Token.Literal }
func (n *BinaryExpression) Pos() lexer.Position  { return n.Token.Pos }
func (n *BinaryExpression) String() string {
	return "(" + n.Left.String() + " " + n.Operator + " " + n.Right.String() + ")"
}
