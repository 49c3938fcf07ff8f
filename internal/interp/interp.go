// Package interp implements the step-wise tree-walking interpreter from
// §4.H: a Tick() method that executes exactly one statement and reports
// what happened through an explicit TickStatus, instead of raising and
// catching exceptions for control flow. Deliberately not grounded on the
// teacher's internal/interp/statements.go, which dispatches through
// Eval(stmt) Value and sentinel error Values — that is exactly the
// "exceptions as control flow" pattern this package replaces.
package interp

import (
	"github.com/cwbudde/go-mbasic/internal/ast"
	mberrors "github.com/cwbudde/go-mbasic/internal/errors"
	"github.com/cwbudde/go-mbasic/internal/builtins"
	"github.com/cwbudde/go-mbasic/internal/ioiface"
	"github.com/cwbudde/go-mbasic/internal/limiter"
	"github.com/cwbudde/go-mbasic/internal/runtime"
)

// Kind classifies what a Tick() call just did.
type Kind int

const (
	// Running means the interpreter is ready for the next Tick.
	Running Kind = iota
	// AwaitingInput means the tick just satisfied an INPUT-family
	// statement through Console.Input; Prompt is what was shown.
	AwaitingInput
	// Output means the tick produced console text; Text is what was sent
	// to Console.Output (already delivered, not pending).
	Output
	// Halted means the program has stopped; Reason names why.
	Halted
)

// HaltReason enumerates why a program stopped.
type HaltReason string

const (
	HaltEnd      HaltReason = "END"
	HaltStop     HaltReason = "STOP"
	HaltComplete HaltReason = "COMPLETE" // ran off the last line
	HaltError    HaltReason = "ERROR"
	HaltNew      HaltReason = "NEW"
)

// TickStatus is the explicit result of one Tick() call (§4.H, §9's
// redesign of the teacher's exception-based control flow).
type TickStatus struct {
	Kind   Kind
	Prompt string
	Text   string
	Reason HaltReason
	Err    *mberrors.RuntimeError // non-nil only when Reason == HaltError
}

// Host is the set of program-management operations an interpreter
// delegates rather than implements itself: CHAIN/RUN swap in a different
// *ast.Program, the rest are REPL/file conveniences a bare interpreter
// has no business knowing how to do. internal/program's Manager is the
// concrete implementation; nil is valid and makes these statements raise
// ILLEGAL_FUNCTION_CALL.
type Host interface {
	// LoadProgram loads name from the filesystem and returns its parsed
	// Program, for CHAIN/RUN "file".
	LoadProgram(name string) (*ast.Program, error)
}

// Interpreter walks one *ast.Program's statements against a *runtime.State,
// one statement per Tick().
type Interpreter struct {
	State    *runtime.State
	Console  ioiface.Console
	Files    ioiface.FileSystem
	Builtins *builtins.Registry
	Limiter  *limiter.Limiter
	Host     Host
}

// New builds an Interpreter. reg may be nil to use builtins.Default.
func New(state *runtime.State, console ioiface.Console, fs ioiface.FileSystem, lim *limiter.Limiter, reg *builtins.Registry) *Interpreter {
	if reg == nil {
		reg = builtins.Default
	}
	return &Interpreter{State: state, Console: console, Files: fs, Builtins: reg, Limiter: lim}
}

func running() TickStatus                       { return TickStatus{Kind: Running} }
func output(text string) TickStatus             { return TickStatus{Kind: Output, Text: text} }
func awaitingInput(prompt string) TickStatus     { return TickStatus{Kind: AwaitingInput, Prompt: prompt} }
func halted(reason HaltReason) TickStatus        { return TickStatus{Kind: Halted, Reason: reason} }
func haltedErr(err *mberrors.RuntimeError) TickStatus {
	return TickStatus{Kind: Halted, Reason: HaltError, Err: err}
}

// Run drives Tick() to completion, ignoring the intermediate
// Running/Output/AwaitingInput statuses (those already did their work
// synchronously through Console/FileSystem); it stops at the first
// Halted status and returns it. Used by the CLI driver and the REPL.
func (in *Interpreter) Run() TickStatus {
	for {
		st := in.Tick()
		if st.Kind == Halted {
			return st
		}
	}
}

// Tick executes exactly one statement and reports what happened (§4.H).
// The PC state machine (Sequential/LineBoundary/Jumping/AwaitingResume/
// Halted) decides what "the next statement" means before any statement
// code runs.
func (in *Interpreter) Tick() TickStatus {
	pc := &in.State.PC

	if in.Limiter != nil {
		if rerr := in.Limiter.CheckTime(); rerr != nil {
			return in.fail(rerr, pc.Current.Line)
		}
	}

	switch pc.State {
	case runtime.Halted:
		return halted(HaltComplete)
	case runtime.Jumping:
		line, ok := in.State.Program.ByNumber[pc.Target]
		if !ok {
			return in.fail(mberrors.Err(mberrors.CodeUndefinedLine, pc.Current.Line, ""), pc.Current.Line)
		}
		pc.Current = runtime.PC{Line: line.Number, Stmt: 0}
		pc.State = runtime.Sequential
	case runtime.AwaitingResume:
		// Execution is pinned until a RESUME statement runs; the driver
		// must not call Tick again in this state, but if it does, treat
		// it as a no-op Running tick rather than re-raising.
		return running()
	}

	line, ok := in.State.Program.ByNumber[pc.Current.Line]
	if !ok {
		return in.fail(mberrors.Err(mberrors.CodeUndefinedLine, pc.Current.Line, ""), pc.Current.Line)
	}
	if pc.Current.Stmt >= len(line.Statements) {
		return in.advanceLine(line)
	}

	stmt := line.Statements[pc.Current.Stmt]
	next := in.nextPC(line, pc.Current.Stmt)

	st, jumped, rerr := in.execute(stmt, next)
	if rerr != nil {
		return in.fail(rerr, line.Number)
	}
	if st.Kind == Halted {
		return st
	}
	// A statement that didn't jump, halt, or install an error handler
	// advances to whatever nextPC computed for it.
	if !jumped && pc.State == runtime.Sequential {
		pc.Current = next
	}
	return st
}

// nextPC computes where control goes after stmt (at index idx on line)
// absent any jump: the next statement on the same line, or the
// LineBoundary sentinel handled by advanceLine.
func (in *Interpreter) nextPC(line *ast.Line, idx int) runtime.PC {
	if idx+1 < len(line.Statements) {
		return runtime.PC{Line: line.Number, Stmt: idx + 1}
	}
	return runtime.PC{Line: line.Number, Stmt: len(line.Statements)}
}

// advanceLine moves the PC to the first statement of the next-higher
// line, or halts if line was the program's last.
func (in *Interpreter) advanceLine(line *ast.Line) TickStatus {
	pc := &in.State.PC
	idx := indexOfLine(in.State.Program, line.Number)
	if idx < 0 || idx+1 >= len(in.State.Program.Lines) {
		pc.State = runtime.Halted
		return halted(HaltComplete)
	}
	next := in.State.Program.Lines[idx+1]
	pc.Current = runtime.PC{Line: next.Number, Stmt: 0}
	return running()
}

func indexOfLine(prog *ast.Program, number int) int {
	for i, l := range prog.Lines {
		if l.Number == number {
			return i
		}
	}
	return -1
}

// fail routes a runtime error through ON ERROR GOTO if one is installed,
// otherwise halts the program (§4.H).
func (in *Interpreter) fail(rerr *mberrors.RuntimeError, line int) TickStatus {
	if rerr.Line == 0 {
		rerr.Line = line
	}
	pc := &in.State.PC
	next := runtime.PC{Line: line, Stmt: pc.Current.Stmt + 1}
	if unhandled := in.State.RecordError(rerr, line, next); unhandled != nil {
		pc.State = runtime.Halted
		return haltedErr(unhandled)
	}
	in.State.EnterHandler()
	return running()
}
