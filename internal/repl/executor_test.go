package repl

import (
	"strings"
	"testing"

	"github.com/cwbudde/go-mbasic/internal/ast"
	"github.com/cwbudde/go-mbasic/internal/interp"
	"github.com/cwbudde/go-mbasic/internal/program"
	"github.com/cwbudde/go-mbasic/internal/runtime"
)

type fakeConsole struct {
	out  strings.Builder
	errs strings.Builder
}

func (c *fakeConsole) Output(text, end string) { c.out.WriteString(text); c.out.WriteString(end) }
func (c *fakeConsole) Input(prompt string) (string, error) { return "", nil }
func (c *fakeConsole) InputChar() string                   { return "" }
func (c *fakeConsole) Error(text string)                   { c.errs.WriteString(text) }
func (c *fakeConsole) Debug(text string)                   {}
func (c *fakeConsole) ClearScreen()                        {}

func newExecutor(t *testing.T) (*Executor, *fakeConsole) {
	t.Helper()
	mgr := program.NewManager(nil, nil)
	state := runtime.NewState(mgr.Program, 0, 0, 0)
	console := &fakeConsole{}
	in := interp.New(state, console, nil, nil, nil)
	in.State.Program = mgr.Program
	return NewExecutor(mgr, in, console), console
}

func TestExecuteLineStoresNumberedLineInProgram(t *testing.T) {
	e, _ := newExecutor(t)
	if err := e.ExecuteLine("10 PRINT 1"); err != nil {
		t.Fatalf("ExecuteLine: %v", err)
	}
	if len(e.Manager.Program.Lines) != 1 {
		t.Fatalf("expected a stored program line, got %d", len(e.Manager.Program.Lines))
	}
}

func TestExecuteLineRunsImmediateStatement(t *testing.T) {
	e, console := newExecutor(t)
	if err := e.ExecuteLine(`PRINT "HELLO"`); err != nil {
		t.Fatalf("ExecuteLine: %v", err)
	}
	if !strings.Contains(console.out.String(), "HELLO") {
		t.Fatalf("expected immediate PRINT to reach the console, got %q", console.out.String())
	}
	if len(e.Manager.Program.Lines) != 0 {
		t.Fatalf("an immediate statement must not be stored as a program line, got %d lines", len(e.Manager.Program.Lines))
	}
}

func TestExecuteLineImmediateErrorGoesToConsoleError(t *testing.T) {
	e, console := newExecutor(t)
	if err := e.ExecuteLine("X = 1 / 0"); err != nil {
		t.Fatalf("ExecuteLine: %v", err)
	}
	if console.errs.Len() == 0 {
		t.Fatal("expected a runtime error surfaced through Console.Error")
	}
}

func TestExecuteLineRenumRewritesProgram(t *testing.T) {
	e, _ := newExecutor(t)
	for _, src := range []string{"10 PRINT 1", "20 PRINT 2"} {
		if err := e.ExecuteLine(src); err != nil {
			t.Fatal(err)
		}
	}
	if err := e.ExecuteLine("RENUM 100,100"); err != nil {
		t.Fatalf("RENUM: %v", err)
	}
	if e.Manager.Program.Lines[0].Number != 100 || e.Manager.Program.Lines[1].Number != 200 {
		t.Fatalf("line numbers after RENUM 100,100 = %v, want [100 200]",
			[]int{e.Manager.Program.Lines[0].Number, e.Manager.Program.Lines[1].Number})
	}
}

func TestExecuteLineDeleteRemovesRange(t *testing.T) {
	e, _ := newExecutor(t)
	for _, src := range []string{"10 PRINT 1", "20 PRINT 2", "30 PRINT 3"} {
		if err := e.ExecuteLine(src); err != nil {
			t.Fatal(err)
		}
	}
	if err := e.ExecuteLine("DELETE 20"); err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	if len(e.Manager.Program.Lines) != 2 {
		t.Fatalf("expected 2 lines after DELETE 20, got %d", len(e.Manager.Program.Lines))
	}
}

func TestExecuteLineAutoNumbersSubsequentLines(t *testing.T) {
	e, _ := newExecutor(t)
	if err := e.ExecuteLine("AUTO 100,5"); err != nil {
		t.Fatalf("AUTO: %v", err)
	}
	if !e.AutoActive() {
		t.Fatal("expected AUTO mode to be active")
	}
	if e.AutoPrompt() != "100" {
		t.Fatalf("AutoPrompt() = %q, want 100", e.AutoPrompt())
	}
	if err := e.ExecuteLine("PRINT 1"); err != nil {
		t.Fatalf("ExecuteLine in AUTO mode: %v", err)
	}
	if e.AutoPrompt() != "105" {
		t.Fatalf("AutoPrompt() after one line = %q, want 105", e.AutoPrompt())
	}
	if _, ok := e.Manager.Program.ByNumber[100]; !ok {
		t.Fatal("expected the AUTO-numbered line to land at 100")
	}
	if err := e.ExecuteLine(""); err != nil {
		t.Fatal(err)
	}
	if e.AutoActive() {
		t.Fatal("expected a blank line to end AUTO mode")
	}
}

func TestExecuteLineGotoTransfersControlAndRuns(t *testing.T) {
	e, console := newExecutor(t)
	for _, src := range []string{"10 PRINT \"one\"", "20 PRINT \"two\"", "30 END"} {
		if err := e.ExecuteLine(src); err != nil {
			t.Fatal(err)
		}
	}
	if err := e.ExecuteLine("GOTO 20"); err != nil {
		t.Fatalf("GOTO: %v", err)
	}
	out := console.out.String()
	if strings.Contains(out, "one") || !strings.Contains(out, "two") {
		t.Fatalf("expected GOTO 20 to run from line 20 onward only, got %q", out)
	}
}
