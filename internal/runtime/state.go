package runtime

import (
	"github.com/cwbudde/go-mbasic/internal/ast"
	mberrors "github.com/cwbudde/go-mbasic/internal/errors"
)

// State bundles everything the interpreter's tick() touches between
// statements: the variable/array store, the three control stacks, the
// DATA pool, the open-file table, DEF FN definitions, RND state, the
// program counter, and the CommonVars list CHAIN carries forward (§3).
type State struct {
	Program   *ast.Program
	Store     *Store
	Stacks    *Stacks
	Data      *DataPool
	Files     *OpenFiles
	Random    *RandomState
	PC        ProgramCounter

	DefFns map[string]*ast.DefFnStatement

	// CommonVars is the name list from the most recent COMMON statement,
	// consulted by CHAIN to decide what survives a program swap (§9).
	CommonVars []string

	// StringSpaceLimit records CLEAR <n>'s advisory size; it is never
	// pre-allocated and nothing compares string usage against it (§9).
	StringSpaceLimit int

	TraceOn bool // TRON/TROFF

	// Column is the console's current output column, tracked by PRINT so
	// POS() and the comma-zone formatter can consult it (§4.G, §4.H).
	Column int
}

// NewState builds a fresh runtime for prog, with stack depth caps taken
// from the resource limiter's configuration (0 means unlimited here; the
// caller wires real caps in from internal/limiter).
func NewState(prog *ast.Program, maxGosub, maxFor, maxWhile int) *State {
	s := &State{
		Program: prog,
		Store:   NewStore(prog.DefTypeMap),
		Stacks:  NewStacks(maxGosub, maxFor, maxWhile),
		Data:    BuildDataPool(prog),
		Files:   NewOpenFiles(),
		Random:  NewRandomState(),
		DefFns:  make(map[string]*ast.DefFnStatement),
	}
	if len(prog.Lines) > 0 {
		s.PC.Current = PC{Line: prog.Lines[0].Number, Stmt: 0}
	} else {
		s.PC.State = Halted
	}
	collectDefFns(prog, s.DefFns)
	return s
}

func collectDefFns(prog *ast.Program, into map[string]*ast.DefFnStatement) {
	for _, line := range prog.Lines {
		for _, stmt := range line.Statements {
			if d, ok := stmt.(*ast.DefFnStatement); ok {
				into[d.Name] = d
			}
		}
	}
}

// RecordError saves the failing (line, stmt) as ERL/resumable-at and marks
// the handler active, per §4.H's ON ERROR GOTO contract. It returns the
// unhandled error itself if no handler is installed, or if a handler is
// already active (nested errors are fatal).
func (s *State) RecordError(err *mberrors.RuntimeError, failingLine int, nextPC PC) *mberrors.RuntimeError {
	if s.PC.HandlerLine == 0 || s.PC.HandlerActive {
		return err
	}
	s.PC.ERL = failingLine
	s.PC.ResumePC = s.PC.Current
	s.PC.ResumeNextPC = nextPC
	s.PC.HandlerActive = true
	return nil
}

// EnterHandler installs the handler line into the PC as a jump target.
func (s *State) EnterHandler() {
	s.PC.Jump(s.PC.HandlerLine)
}

// Clear implements the CLEAR statement: resets variables/arrays, closes
// files, empties the control stacks, and records the advisory string-space
// size (§4.H).
func (s *State) Clear(stringSpace int) {
	s.Store.Clear()
	s.Stacks.Clear()
	s.Files.CloseAll()
	s.StringSpaceLimit = stringSpace
	s.PC.HandlerLine = 0
	s.PC.HandlerActive = false
}
