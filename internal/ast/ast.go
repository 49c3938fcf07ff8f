// Package ast defines the Abstract Syntax Tree node types for MBASIC 5.21.
//
// Expressions and statements are modeled as closed sum types: every node
// implements Expression or Statement and carries its own source position.
// There is no attribute-probing or dynamic dispatch by method name; every
// consumer (parser, analyzer, interpreter) is expected to switch over the
// concrete node type.
package ast

import (
	"strings"

	"github.com/cwbudde/go-mbasic/internal/lexer"
)

// TypeTag is MBASIC's closed value-type enumeration (§3).
type TypeTag int

const (
	TypeUnknown TypeTag = iota
	TypeInteger
	TypeSingle
	TypeDouble
	TypeString
)

func (t TypeTag) String() string {
	switch t {
	case TypeInteger:
		return "INTEGER"
	case TypeSingle:
		return "SINGLE"
	case TypeDouble:
		return "DOUBLE"
	case TypeString:
		return "STRING"
	default:
		return "UNKNOWN"
	}
}

// IsNumeric reports whether t is one of the numeric type tags.
func (t TypeTag) IsNumeric() bool {
	return t == TypeInteger || t == TypeSingle || t == TypeDouble
}

// SuffixTypeTag maps an identifier/literal type suffix character to a type
// tag, or TypeUnknown if b is not a recognized suffix.
func SuffixTypeTag(b byte) TypeTag {
	switch b {
	case '%':
		return TypeInteger
	case '!':
		return TypeSingle
	case '#':
		return TypeDouble
	case '$':
		return TypeString
	default:
		return TypeUnknown
	}
}

// Node is the base interface implemented by every AST node.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() lexer.Position
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// Line is one source line: its number plus the colon-separated statements
// on it (§3 "Line = line number + ordered list of statements").
type Line struct {
	Token      lexer.Token // the LINENUM token
	Number     int
	Statements []Statement
}

func (l *Line) TokenLiteral() string { return l.Token.Literal }
func (l *Line) Pos() lexer.Position  { return l.Token.Pos }
func (l *Line) String() string {
	var sb strings.Builder
	for i, s := range l.Statements {
		if i > 0 {
			sb.WriteString(" : ")
		}
		sb.WriteString(s.String())
	}
	return sb.String()
}

// DefTypeRange is one letter-range clause of a DEFINT/DEFSNG/DEFDBL/DEFSTR
// statement, e.g. the "A-Z" or "I" in "DEFINT I, A-Z".
type DefTypeRange struct {
	From, To byte // inclusive, upper-case letters; From == To for a single letter
}

// Program is the root AST node: the ordered line map plus the accumulated
// DEF-type letter map carried across DEFtype statements (§3).
type Program struct {
	Lines      []*Line       // ascending line-number order
	ByNumber   map[int]*Line // index into Lines, by line number
	DefTypeMap map[byte]TypeTag // letter -> default type, from DEFINT/DEFSNG/DEFDBL/DEFSTR
}

// NewProgram returns an empty Program with the dialect-default DEF-type map
// (every letter defaults to SINGLE).
func NewProgram() *Program {
	dt := make(map[byte]TypeTag, 26)
	for c := byte('A'); c <= 'Z'; c++ {
		dt[c] = TypeSingle
	}
	return &Program{ByNumber: make(map[int]*Line), DefTypeMap: dt}
}

func (p *Program) TokenLiteral() string {
	if len(p.Lines) > 0 {
		return p.Lines[0].TokenLiteral()
	}
	return ""
}

func (p *Program) Pos() lexer.Position {
	if len(p.Lines) > 0 {
		return p.Lines[0].Pos()
	}
	return lexer.Position{Line: 1, Column: 1}
}

func (p *Program) String() string {
	var sb strings.Builder
	for _, l := range p.Lines {
		sb.WriteString(l.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// AddOrReplaceLine inserts line, replacing any existing line with the same
// number (later wins, per §4.D), and keeps Lines in ascending order.
func (p *Program) AddOrReplaceLine(line *Line) {
	if _, exists := p.ByNumber[line.Number]; exists {
		for i, l := range p.Lines {
			if l.Number == line.Number {
				p.Lines[i] = line
				break
			}
		}
	} else {
		p.Lines = append(p.Lines, line)
		sortLines(p.Lines)
	}
	p.ByNumber[line.Number] = line
}

// DeleteLine removes the line with the given number, if present.
func (p *Program) DeleteLine(number int) bool {
	if _, ok := p.ByNumber[number]; !ok {
		return false
	}
	delete(p.ByNumber, number)
	out := p.Lines[:0]
	for _, l := range p.Lines {
		if l.Number != number {
			out = append(out, l)
		}
	}
	p.Lines = out
	return true
}

func sortLines(lines []*Line) {
	// Insertion sort: programs are edited incrementally and stay nearly
	// sorted, so this avoids pulling in sort for a handful of comparisons
	// on each edit while remaining obviously correct.
	for i := 1; i < len(lines); i++ {
		for j := i; j > 0 && lines[j-1].Number > lines[j].Number; j-- {
			lines[j-1], lines[j] = lines[j], lines[j-1]
		}
	}
}

// ResolveTypeTag determines an identifier's effective type from its suffix,
// falling back to the DEF-type letter map, then to SINGLE (§3).
func ResolveTypeTag(name string, suffix byte, defTypeMap map[byte]TypeTag) TypeTag {
	if tag := SuffixTypeTag(suffix); tag != TypeUnknown {
		return tag
	}
	if len(name) > 0 {
		letter := name[0]
		if letter >= 'a' && letter <= 'z' {
			letter -= 'a' - 'A'
		}
		if tag, ok := defTypeMap[letter]; ok {
			return tag
		}
	}
	return TypeSingle
}
