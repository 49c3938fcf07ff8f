// Package repl implements the immediate executor from §4.J: the loop that
// decides, for one line of typed input, whether it belongs in the program
// map, is a REPL-only meta-command the parser has no notion of (RENUM,
// DELETE, AUTO, EDIT, HELP), or is an immediate statement to run right now
// against the shared runtime. No direct teacher analogue exists (DWScript
// has no line-numbered immediate mode); the dispatch style follows the
// teacher's cmd/dwscript/cmd/run.go lexer->parser->interpreter pipeline,
// reusing internal/program and internal/interp rather than re-implementing
// either.
package repl

import (
	"fmt"
	"strconv"
	"strings"

	mberrors "github.com/cwbudde/go-mbasic/internal/errors"
	"github.com/cwbudde/go-mbasic/internal/interp"
	"github.com/cwbudde/go-mbasic/internal/ioiface"
	"github.com/cwbudde/go-mbasic/internal/lexer"
	"github.com/cwbudde/go-mbasic/internal/program"
)

// Executor drives one REPL session: a program.Manager holding the line
// dictionary, an interp.Interpreter sharing that same *ast.Program through
// its *runtime.State, and the Console the user is typing at.
type Executor struct {
	Manager *program.Manager
	Interp  *interp.Interpreter
	Console ioiface.Console

	auto     bool
	autoNext int
	autoIncr int
}

// NewExecutor wires an Executor around an already-built Manager/Interpreter
// pair. The caller is responsible for constructing in.State.Program ==
// mgr.Program (cmd/mbasic's entry point does this once at startup).
func NewExecutor(mgr *program.Manager, in *interp.Interpreter, console ioiface.Console) *Executor {
	return &Executor{Manager: mgr, Interp: in, Console: console}
}

// AutoActive reports whether AUTO line numbering is in effect.
func (e *Executor) AutoActive() bool { return e.auto }

// AutoPrompt is the next "<n>" line-number prefix AUTO mode will use,
// shown by the driving loop instead of the ordinary "Ok" prompt.
func (e *Executor) AutoPrompt() string { return strconv.Itoa(e.autoNext) }

// StopAuto cancels AUTO mode (Ctrl-C or a blank line ends it).
func (e *Executor) StopAuto() { e.auto = false }

// ExecuteLine dispatches one line of REPL input: a typed-ahead program
// line, a meta-command, or an immediate statement list.
func (e *Executor) ExecuteLine(text string) error {
	if e.auto {
		numbered, stop := e.autoLine(text)
		if stop {
			return nil
		}
		text = numbered
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	if isProgramLine(trimmed) {
		return e.Manager.AddOrReplaceLine(trimmed)
	}

	keyword, rest := splitKeyword(trimmed)
	switch strings.ToUpper(keyword) {
	case "RENUM", "RENUMBER":
		return e.execRenum(rest)
	case "DELETE":
		return e.execDelete(rest)
	case "AUTO":
		return e.execAuto(rest)
	case "EDIT":
		return e.execEdit(rest)
	case "HELP", "?":
		e.Console.Output(helpText, "\n")
		return nil
	}

	return e.execImmediate(trimmed)
}

// autoLine folds AUTO's implicit line number onto text. A blank line at
// the AUTO prompt stores nothing and ends AUTO mode.
func (e *Executor) autoLine(text string) (numbered string, stop bool) {
	if strings.TrimSpace(text) == "" {
		e.StopAuto()
		return "", true
	}
	numbered = fmt.Sprintf("%d %s", e.autoNext, text)
	e.autoNext += e.autoIncr
	return numbered, false
}

// isProgramLine reports whether trimmed starts with a line number, i.e.
// belongs in the program map rather than being run immediately.
func isProgramLine(trimmed string) bool {
	l := lexer.New(trimmed)
	return l.NextToken().Type == lexer.LINENUM
}

// splitKeyword splits trimmed's leading word from the rest of the line.
func splitKeyword(trimmed string) (keyword, rest string) {
	fields := strings.SplitN(trimmed, " ", 2)
	keyword = fields[0]
	if len(fields) > 1 {
		rest = strings.TrimSpace(fields[1])
	}
	return keyword, rest
}

// execImmediate parses text as an immediate statement list and runs it
// against the shared runtime (§4.J).
func (e *Executor) execImmediate(text string) error {
	stmts, err := e.Manager.ParseImmediate(text)
	if err != nil {
		e.Console.Error(err.Error())
		return nil
	}
	if len(stmts) == 0 {
		return nil
	}
	st, jumped, rerr := e.Interp.ExecImmediate(stmts)
	if rerr != nil {
		e.reportError(rerr)
		return nil
	}
	if jumped {
		e.reportHalt(e.Interp.Run())
		return nil
	}
	if st.Kind == interp.Halted {
		e.reportHalt(st)
	}
	return nil
}

// reportHalt prints the REPL's halt-reason line for a Halted TickStatus
// (§7): "?<message> in <line>" for an error, "Break in <line>" for STOP,
// nothing extra for a clean END/run-off-the-end.
func (e *Executor) reportHalt(st interp.TickStatus) {
	switch st.Reason {
	case interp.HaltError:
		e.reportError(st.Err)
	case interp.HaltStop:
		e.Console.Output(fmt.Sprintf("Break in %d", e.Interp.State.PC.StopPC.Line), "\n")
	}
}

func (e *Executor) reportError(rerr *mberrors.RuntimeError) {
	e.Console.Error(fmt.Sprintf("?%s in %d", rerr.Error(), rerr.Line))
}
