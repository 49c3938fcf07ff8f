package ast

import (
	"strconv"
	"strings"

	"github.com/cwbudde/go-mbasic/internal/lexer"
)

func base(tok lexer.Token) baseNode { return baseNode{tok} }

// baseNode centralizes TokenLiteral/Pos so each statement only implements
// statementNode() and String().
type baseNode struct{ Token lexer.Token }

func (b baseNode) TokenLiteral() string { return b.Token.Literal }
func (b baseNode) Pos() lexer.Position  { return b.Token.Pos }

// LetStatement is an assignment, with or without the LET keyword.
// Target is an *Identifier (scalar) or *IndexExpression (array element).
type LetStatement struct {
	baseNode
	Explicit bool // true if the LET keyword was written
	Target   Expression
	Value    Expression
}

func (*LetStatement) statementNode() {}
func (s *LetStatement) String() string {
	kw := ""
	if s.Explicit {
		kw = "LET "
	}
	return kw + s.Target.String() + " = " + s.Value.String()
}

// PrintItem is one element of a PRINT list: an expression plus the
// separator that followed it (",", ";", or "" if it was the last item).
type PrintItem struct {
	Expr Expression
	Sep  string
}

// PrintStatement covers PRINT, LPRINT, PRINT#, and PRINT USING.
type PrintStatement struct {
	baseNode
	IsLPrint         bool
	File             Expression // non-nil for PRINT#n
	UsingFormat      Expression // non-nil for PRINT USING
	Items            []PrintItem
	SuppressNewline  bool // true if the list ended with ";" or ","
}

func (*PrintStatement) statementNode() {}
func (s *PrintStatement) String() string {
	var sb strings.Builder
	if s.IsLPrint {
		sb.WriteString("LPRINT ")
	} else {
		sb.WriteString("PRINT ")
	}
	if s.File != nil {
		sb.WriteString("#" + s.File.String() + ", ")
	}
	for _, it := range s.Items {
		sb.WriteString(it.Expr.String())
		sb.WriteString(it.Sep)
	}
	return sb.String()
}

// InputStatement covers INPUT, LINE INPUT, INPUT#, and LINE INPUT#.
type InputStatement struct {
	baseNode
	IsLineInput  bool
	File         Expression // non-nil for INPUT#/LINE INPUT#
	Prompt       *StringLiteral
	PromptNoMark bool // true if prompt was followed by ';' suppressing the "? "
	Targets      []Expression
}

func (*InputStatement) statementNode() {}
func (s *InputStatement) String() string {
	kw := "INPUT"
	if s.IsLineInput {
		kw = "LINE INPUT"
	}
	return kw + " " + exprList(s.Targets)
}

func exprList(exprs []Expression) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

// IfStatement covers IF/THEN/ELSE in both its jump form (THEN <line>) and
// its inline-statement-list form (THEN <stmts>).
type IfStatement struct {
	baseNode
	Cond      Expression
	ThenLine  int // > 0 if THEN names a line number
	ThenStmts []Statement
	ElseLine  int
	ElseStmts []Statement
	HasElse   bool
}

func (*IfStatement) statementNode() {}
func (s *IfStatement) String() string {
	return "IF " + s.Cond.String() + " THEN ..."
}

// ForStatement opens a FOR/NEXT loop.
type ForStatement struct {
	baseNode
	Var   *Identifier
	Start Expression
	End   Expression
	Step  Expression // nil means implicit step of 1
}

func (*ForStatement) statementNode() {}
func (s *ForStatement) String() string {
	return "FOR " + s.Var.String() + " = " + s.Start.String() + " TO " + s.End.String()
}

// NextStatement closes one or more FOR loops; an empty Vars list matches
// the innermost FOR regardless of control variable.
type NextStatement struct {
	baseNode
	Vars []*Identifier
}

func (*NextStatement) statementNode() {}
func (s *NextStatement) String() string { return "NEXT" }

// WhileStatement opens a WHILE/WEND loop.
type WhileStatement struct {
	baseNode
	Cond Expression
}

func (*WhileStatement) statementNode() {}
func (s *WhileStatement) String() string { return "WHILE " + s.Cond.String() }

// WendStatement closes the innermost WHILE loop.
type WendStatement struct{ baseNode }

func (*WendStatement) statementNode() {}
func (s *WendStatement) String() string { return "WEND" }

// GotoStatement is an unconditional jump.
type GotoStatement struct {
	baseNode
	Line int
}

func (*GotoStatement) statementNode() {}
func (s *GotoStatement) String() string { return "GOTO " + strconv.Itoa(s.Line) }

// GosubStatement pushes a return address and jumps.
type GosubStatement struct {
	baseNode
	Line int
}

func (*GosubStatement) statementNode() {}
func (s *GosubStatement) String() string { return "GOSUB " + strconv.Itoa(s.Line) }

// ReturnStatement pops the GOSUB stack and jumps back.
type ReturnStatement struct{ baseNode }

func (*ReturnStatement) statementNode() {}
func (s *ReturnStatement) String() string { return "RETURN" }

// OnGotoStatement is ON <expr> GOTO/GOSUB l1, l2, ....
type OnGotoStatement struct {
	baseNode
	Selector Expression
	Lines    []int
	IsGosub  bool
}

func (*OnGotoStatement) statementNode() {}
func (s *OnGotoStatement) String() string {
	kw := "GOTO"
	if s.IsGosub {
		kw = "GOSUB"
	}
	return "ON " + s.Selector.String() + " " + kw + " ..."
}

// ArrayDecl is one name(bounds) clause of a DIM statement.
type ArrayDecl struct {
	Name   string
	Suffix byte
	Bounds []Expression // one expression per dimension (the declared upper bound)
}

// DimStatement declares one or more arrays.
type DimStatement struct {
	baseNode
	Decls []ArrayDecl
}

func (*DimStatement) statementNode() {}
func (s *DimStatement) String() string { return "DIM ..." }

// EraseStatement removes one or more arrays, permitting a later re-DIM.
type EraseStatement struct {
	baseNode
	Names []string
}

func (*EraseStatement) statementNode() {}
func (s *EraseStatement) String() string { return "ERASE " + strings.Join(s.Names, ", ") }

// ReadStatement consumes values from the DATA pool into Targets.
type ReadStatement struct {
	baseNode
	Targets []Expression
}

func (*ReadStatement) statementNode() {}
func (s *ReadStatement) String() string { return "READ " + exprList(s.Targets) }

// DataItem is one literal in a DATA statement. IsQuoted distinguishes an
// explicitly-quoted string (which READ never attempts numeric coercion on)
// from a bare token.
type DataItem struct {
	Text     string
	IsQuoted bool
}

// DataStatement contributes literal items to the program's DATA pool at
// parse time, in source order (§3).
type DataStatement struct {
	baseNode
	Items []DataItem
}

func (*DataStatement) statementNode() {}
func (s *DataStatement) String() string { return "DATA ..." }

// RestoreStatement resets the DATA cursor, optionally to a named line.
type RestoreStatement struct {
	baseNode
	Line   int
	HasLine bool
}

func (*RestoreStatement) statementNode() {}
func (s *RestoreStatement) String() string { return "RESTORE" }

// DefFnStatement defines a single-expression user function.
type DefFnStatement struct {
	baseNode
	Name   string
	Suffix byte
	Params []*Identifier
	Body   Expression
}

func (*DefFnStatement) statementNode() {}
func (s *DefFnStatement) String() string { return "DEF FN" + s.Name + " = " + s.Body.String() }

// DefTypeStatement is DEFINT/DEFSNG/DEFDBL/DEFSTR, updating the program's
// DEF-type letter map.
type DefTypeStatement struct {
	baseNode
	Type   TypeTag
	Ranges []DefTypeRange
}

func (*DefTypeStatement) statementNode() {}
func (s *DefTypeStatement) String() string { return s.Type.String() + " range statement" }

// OpenStatement opens a file by name for INPUT/OUTPUT/APPEND/RANDOM access.
type OpenStatement struct {
	baseNode
	FileName   Expression
	Mode       string // "INPUT", "OUTPUT", "APPEND", "RANDOM"
	FileNumber Expression
	RecordLen  Expression // non-nil only for RANDOM
}

func (*OpenStatement) statementNode() {}
func (s *OpenStatement) String() string { return "OPEN " + s.FileName.String() }

// CloseStatement closes the named file numbers, or every open file if
// FileNumbers is empty.
type CloseStatement struct {
	baseNode
	FileNumbers []Expression
}

func (*CloseStatement) statementNode() {}
func (s *CloseStatement) String() string { return "CLOSE" }

// FieldItem maps a byte-width slice of a random-access record to a string
// variable.
type FieldItem struct {
	Width Expression
	Var   *Identifier
}

// FieldStatement lays out a random-access record buffer.
type FieldStatement struct {
	baseNode
	FileNumber Expression
	Fields     []FieldItem
}

func (*FieldStatement) statementNode() {}
func (s *FieldStatement) String() string { return "FIELD ..." }

// GetStatement reads one random-access record into its FIELD buffer.
type GetStatement struct {
	baseNode
	FileNumber Expression
	RecordNum  Expression // nil means "next record"
}

func (*GetStatement) statementNode() {}
func (s *GetStatement) String() string { return "GET ..." }

// PutStatement writes the FIELD buffer as one random-access record.
type PutStatement struct {
	baseNode
	FileNumber Expression
	RecordNum  Expression
}

func (*PutStatement) statementNode() {}
func (s *PutStatement) String() string { return "PUT ..." }

// LSetStatement / RSetStatement left/right-justify Value into a FIELD
// string variable, padding with spaces.
type LSetStatement struct {
	baseNode
	Target *Identifier
	Value  Expression
}

func (*LSetStatement) statementNode() {}
func (s *LSetStatement) String() string { return "LSET " + s.Target.String() }

type RSetStatement struct {
	baseNode
	Target *Identifier
	Value  Expression
}

func (*RSetStatement) statementNode() {}
func (s *RSetStatement) String() string { return "RSET " + s.Target.String() }

// WriteStatement is WRITE / WRITE#: like PRINT but values are
// comma-separated and strings are quoted.
type WriteStatement struct {
	baseNode
	File  Expression
	Items []Expression
}

func (*WriteStatement) statementNode() {}
func (s *WriteStatement) String() string { return "WRITE " + exprList(s.Items) }

// RemStatement is a no-op comment statement (REM, REMARK, or ').
type RemStatement struct {
	baseNode
	Text string
}

func (*RemStatement) statementNode() {}
func (s *RemStatement) String() string { return "REM " + s.Text }

// EndStatement terminates the program normally.
type EndStatement struct{ baseNode }

func (*EndStatement) statementNode() {}
func (s *EndStatement) String() string { return "END" }

// StopStatement terminates the program, leaving resumable state for CONT.
type StopStatement struct{ baseNode }

func (*StopStatement) statementNode() {}
func (s *StopStatement) String() string { return "STOP" }

// ClearStatement resets all variables, closes all files, and empties the
// stacks. Size is the advisory string-space size argument, if given.
type ClearStatement struct {
	baseNode
	Size Expression
}

func (*ClearStatement) statementNode() {}
func (s *ClearStatement) String() string { return "CLEAR" }

// ChainStatement loads and runs a new program, keeping COMMON variables in
// both forms; Merge (CHAIN MERGE) merges the new lines into the current
// program instead of replacing it, and Line optionally sets the start line.
type ChainStatement struct {
	baseNode
	FileName Expression
	Merge    bool
	Line     Expression // nil means start at the new program's first line
	Delete   *[2]int    // optional DELETE a-b range on the chained program
}

func (*ChainStatement) statementNode() {}
func (s *ChainStatement) String() string { return "CHAIN " + s.FileName.String() }

// RunStatement restarts the current (or named) program from scratch.
type RunStatement struct {
	baseNode
	FileName Expression // non-nil means RUN "name"
	Line     Expression
}

func (*RunStatement) statementNode() {}
func (s *RunStatement) String() string { return "RUN" }

// NewStatement clears the program and runtime (REPL only).
type NewStatement struct{ baseNode }

func (*NewStatement) statementNode() {}
func (s *NewStatement) String() string { return "NEW" }

// ListStatement / LListStatement list a line range to the console/printer.
type ListStatement struct {
	baseNode
	From, To int
	HasFrom, HasTo bool
}

func (*ListStatement) statementNode() {}
func (s *ListStatement) String() string { return "LIST" }

type LListStatement struct {
	baseNode
	From, To       int
	HasFrom, HasTo bool
}

func (*LListStatement) statementNode() {}
func (s *LListStatement) String() string { return "LLIST" }

// LoadStatement / SaveStatement / MergeStatement / KillStatement operate on
// program files through the file-IO handler.
type LoadStatement struct {
	baseNode
	FileName Expression
}

func (*LoadStatement) statementNode() {}
func (s *LoadStatement) String() string { return "LOAD " + s.FileName.String() }

type SaveStatement struct {
	baseNode
	FileName Expression
}

func (*SaveStatement) statementNode() {}
func (s *SaveStatement) String() string { return "SAVE " + s.FileName.String() }

type MergeStatement struct {
	baseNode
	FileName Expression
}

func (*MergeStatement) statementNode() {}
func (s *MergeStatement) String() string { return "MERGE " + s.FileName.String() }

type KillStatement struct {
	baseNode
	FileName Expression
}

func (*KillStatement) statementNode() {}
func (s *KillStatement) String() string { return "KILL " + s.FileName.String() }

// NameStatement renames a file.
type NameStatement struct {
	baseNode
	OldName Expression
	NewName Expression
}

func (*NameStatement) statementNode() {}
func (s *NameStatement) String() string { return "NAME" }

// FilesStatement lists files matching an optional pattern.
type FilesStatement struct {
	baseNode
	Pattern Expression
}

func (*FilesStatement) statementNode() {}
func (s *FilesStatement) String() string { return "FILES" }

// OnErrorGotoStatement installs (or, with Line == 0, disables) an error
// handler.
type OnErrorGotoStatement struct {
	baseNode
	Line int
}

func (*OnErrorGotoStatement) statementNode() {}
func (s *OnErrorGotoStatement) String() string { return "ON ERROR GOTO " + strconv.Itoa(s.Line) }

// ResumeMode selects RESUME's three forms.
type ResumeMode int

const (
	ResumeSame ResumeMode = iota
	ResumeNext
	ResumeLine
)

// ResumeStatement returns control from an error handler.
type ResumeStatement struct {
	baseNode
	Mode ResumeMode
	Line int
}

func (*ResumeStatement) statementNode() {}
func (s *ResumeStatement) String() string { return "RESUME" }

// ErrorStatement simulates the given error code.
type ErrorStatement struct {
	baseNode
	Code Expression
}

func (*ErrorStatement) statementNode() {}
func (s *ErrorStatement) String() string { return "ERROR " + s.Code.String() }

// OptionBaseStatement fixes the default array lower bound for the rest of
// the program; must appear before any array is used (§4.H).
type OptionBaseStatement struct {
	baseNode
	Base int
}

func (*OptionBaseStatement) statementNode() {}
func (s *OptionBaseStatement) String() string { return "OPTION BASE " + strconv.Itoa(s.Base) }

// RandomizeStatement reseeds RND, from an explicit seed or (if Seed is nil)
// a time-derived one.
type RandomizeStatement struct {
	baseNode
	Seed Expression
}

func (*RandomizeStatement) statementNode() {}
func (s *RandomizeStatement) String() string { return "RANDOMIZE" }

// SwapStatement exchanges the values of two same-type variables.
type SwapStatement struct {
	baseNode
	A, B Expression
}

func (*SwapStatement) statementNode() {}
func (s *SwapStatement) String() string { return "SWAP " + s.A.String() + ", " + s.B.String() }

// PokeStatement / OutStatement / WaitStatement / CallStatement are host
// hooks; the default implementation raises ILLEGAL_FUNCTION_CALL (§4.H).
type PokeStatement struct {
	baseNode
	Address Expression
	Value   Expression
}

func (*PokeStatement) statementNode() {}
func (s *PokeStatement) String() string { return "POKE" }

type OutStatement struct {
	baseNode
	Port  Expression
	Value Expression
}

func (*OutStatement) statementNode() {}
func (s *OutStatement) String() string { return "OUT" }

type WaitStatement struct {
	baseNode
	Address Expression
	Mask    Expression
	Invert  Expression
}

func (*WaitStatement) statementNode() {}
func (s *WaitStatement) String() string { return "WAIT" }

type CallStatement struct {
	baseNode
	Address Expression
	Args    []Expression
}

func (*CallStatement) statementNode() {}
func (s *CallStatement) String() string { return "CALL" }

// TronStatement / TroffStatement toggle line-number execution tracing.
type TronStatement struct{ baseNode }

func (*TronStatement) statementNode() {}
func (s *TronStatement) String() string { return "TRON" }

type TroffStatement struct{ baseNode }

func (*TroffStatement) statementNode() {}
func (s *TroffStatement) String() string { return "TROFF" }

// WidthStatement sets the console or a file's output line width.
type WidthStatement struct {
	baseNode
	File  Expression
	Value Expression
}

func (*WidthStatement) statementNode() {}
func (s *WidthStatement) String() string { return "WIDTH" }

// NullStatement sets the number of null padding characters after each
// output line (a CP/M-terminal artifact; a no-op here beyond bookkeeping).
type NullStatement struct {
	baseNode
	Value Expression
}

func (*NullStatement) statementNode() {}
func (s *NullStatement) String() string { return "NULL" }

// CommonStatement declares variables to be preserved across CHAIN.
type CommonStatement struct {
	baseNode
	Vars []*Identifier
}

func (*CommonStatement) statementNode() {}
func (s *CommonStatement) String() string { return "COMMON ..." }

// ContStatement resumes execution after STOP (REPL only).
type ContStatement struct{ baseNode }

func (*ContStatement) statementNode() {}
func (s *ContStatement) String() string { return "CONT" }
