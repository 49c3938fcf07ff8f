package interp

import (
	"strings"
	"testing"

	"github.com/cwbudde/go-mbasic/internal/ast"
	mberrors "github.com/cwbudde/go-mbasic/internal/errors"
	"github.com/cwbudde/go-mbasic/internal/lexer"
	"github.com/cwbudde/go-mbasic/internal/parser"
	"github.com/cwbudde/go-mbasic/internal/runtime"
)

// fakeConsole is an in-memory ioiface.Console for driving the interpreter
// without a real terminal: Output appends to a buffer, Input replays
// canned lines.
type fakeConsole struct {
	out     strings.Builder
	errs    strings.Builder
	inputs  []string
	nextIn  int
	cleared int
}

func (c *fakeConsole) Output(text, end string) { c.out.WriteString(text); c.out.WriteString(end) }
func (c *fakeConsole) Input(prompt string) (string, error) {
	if c.nextIn >= len(c.inputs) {
		return "", mberrors.Err(mberrors.CodeInputPastEnd, 0, "")
	}
	line := c.inputs[c.nextIn]
	c.nextIn++
	return line, nil
}
func (c *fakeConsole) InputChar() string  { return "" }
func (c *fakeConsole) Error(text string)  { c.errs.WriteString(text) }
func (c *fakeConsole) Debug(text string)  {}
func (c *fakeConsole) ClearScreen()       { c.cleared++ }

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	l := lexer.New(src)
	p := parser.New(l)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parser errors: %v", errs)
	}
	return prog
}

func newInterp(t *testing.T, src string) (*Interpreter, *fakeConsole) {
	t.Helper()
	prog := parseProgram(t, src)
	state := runtime.NewState(prog, 0, 0, 0)
	console := &fakeConsole{}
	return New(state, console, nil, nil, nil), console
}

func runToHalt(t *testing.T, in *Interpreter) TickStatus {
	t.Helper()
	st := in.Run()
	if st.Kind != Halted {
		t.Fatalf("expected Run() to halt, got %+v", st)
	}
	return st
}

func TestPrintArithmeticAndHalt(t *testing.T) {
	in, console := newInterp(t, "10 PRINT 2 + 3 * 4\n20 END")
	st := runToHalt(t, in)
	if st.Reason != HaltEnd {
		t.Fatalf("Reason = %v, want HaltEnd", st.Reason)
	}
	if got := console.out.String(); got != " 14 \n" {
		t.Errorf("console output = %q, want %q", got, " 14 \n")
	}
}

func TestRunFallsOffLastLineHaltsComplete(t *testing.T) {
	in, _ := newInterp(t, "10 X = 1")
	st := runToHalt(t, in)
	if st.Reason != HaltComplete {
		t.Errorf("Reason = %v, want HaltComplete", st.Reason)
	}
}

func TestForNextAccumulatesSum(t *testing.T) {
	in, _ := newInterp(t, "10 S = 0\n20 FOR I = 1 TO 5\n30 S = S + I\n40 NEXT I\n50 PRINT S\n60 END")
	runToHalt(t, in)
	v := in.State.Store.GetVariable("S", 0)
	f, ok := runtime.NumericOf(v)
	if !ok || f != 15 {
		t.Fatalf("S = %+v, want 15 (1+2+3+4+5)", v)
	}
}

func TestForLoopNeverEntersWhenAlreadyPastLimit(t *testing.T) {
	in, console := newInterp(t, "10 FOR I = 5 TO 1\n20 PRINT \"body\"\n30 NEXT I\n40 PRINT \"after\"\n50 END")
	runToHalt(t, in)
	if strings.Contains(console.out.String(), "body") {
		t.Errorf("loop body should never run when start already past limit, got %q", console.out.String())
	}
	if !strings.Contains(console.out.String(), "after") {
		t.Errorf("expected statement after NEXT to run, got %q", console.out.String())
	}
}

func TestGosubReturnRoundTrip(t *testing.T) {
	in, console := newInterp(t, "10 GOSUB 100\n20 PRINT \"back\"\n30 END\n100 PRINT \"sub\"\n110 RETURN")
	runToHalt(t, in)
	out := console.out.String()
	if !strings.Contains(out, "sub") || !strings.Contains(out, "back") {
		t.Fatalf("expected both subroutine and caller output, got %q", out)
	}
	if strings.Index(out, "sub") > strings.Index(out, "back") {
		t.Errorf("expected subroutine output before caller resumes, got %q", out)
	}
}

func TestReturnWithoutGosubIsRuntimeError(t *testing.T) {
	in, _ := newInterp(t, "10 RETURN")
	st := runToHalt(t, in)
	if st.Reason != HaltError || st.Err == nil || st.Err.Code != mberrors.CodeReturnWithoutGosub {
		t.Fatalf("status = %+v, want HaltError/RETURN_WITHOUT_GOSUB", st)
	}
}

func TestIfThenLineJumpsAndSkipsElse(t *testing.T) {
	in, console := newInterp(t, "10 X = 1\n20 IF X = 1 THEN 100 ELSE 200\n30 END\n100 PRINT \"then\"\n110 END\n200 PRINT \"else\"\n210 END")
	runToHalt(t, in)
	out := console.out.String()
	if !strings.Contains(out, "then") || strings.Contains(out, "else") {
		t.Fatalf("expected the THEN branch only, got %q", out)
	}
}

func TestIfInlineStatementListRunsAsOneTick(t *testing.T) {
	in, console := newInterp(t, "10 X = 1\n20 IF X = 1 THEN PRINT \"a\": PRINT \"b\"\n30 END")
	runToHalt(t, in)
	out := console.out.String()
	if !strings.Contains(out, "a") || !strings.Contains(out, "b") {
		t.Fatalf("expected both inline statements to run, got %q", out)
	}
}

func TestOnGotoSelectsLineByIndex(t *testing.T) {
	in, console := newInterp(t, "10 X = 2\n20 ON X GOTO 100, 200, 300\n30 END\n100 PRINT \"one\"\n110 END\n200 PRINT \"two\"\n210 END\n300 PRINT \"three\"\n310 END")
	runToHalt(t, in)
	if !strings.Contains(console.out.String(), "two") {
		t.Fatalf("ON X=2 GOTO ... should select the second target, got %q", console.out.String())
	}
}

func TestOnGotoOutOfRangeFallsThrough(t *testing.T) {
	in, console := newInterp(t, "10 X = 9\n20 ON X GOTO 100\n30 PRINT \"fallthrough\"\n40 END\n100 PRINT \"never\"\n110 END")
	runToHalt(t, in)
	if !strings.Contains(console.out.String(), "fallthrough") {
		t.Fatalf("expected fallthrough when selector exceeds list length, got %q", console.out.String())
	}
}

func TestDivisionByZeroRaisesRuntimeError(t *testing.T) {
	in, _ := newInterp(t, "10 X = 1 / 0\n20 END")
	st := runToHalt(t, in)
	if st.Err == nil || st.Err.Code != mberrors.CodeDivisionByZero {
		t.Fatalf("status = %+v, want DIVISION_BY_ZERO", st)
	}
}

func TestOnErrorGotoHandlesAndResumeNext(t *testing.T) {
	in, console := newInterp(t, "10 ON ERROR GOTO 100\n20 X = 1 / 0\n30 PRINT \"resumed\"\n40 END\n100 PRINT \"handled\"\n110 RESUME NEXT")
	runToHalt(t, in)
	out := console.out.String()
	if !strings.Contains(out, "handled") || !strings.Contains(out, "resumed") {
		t.Fatalf("expected handler then resumed continuation, got %q", out)
	}
}

func TestSwapExchangesValues(t *testing.T) {
	in, _ := newInterp(t, "10 A = 1\n20 B = 2\n30 SWAP A, B\n40 END")
	runToHalt(t, in)
	av, _ := runtime.NumericOf(in.State.Store.GetVariable("A", 0))
	bv, _ := runtime.NumericOf(in.State.Store.GetVariable("B", 0))
	if av != 2 || bv != 1 {
		t.Fatalf("after SWAP A=%v B=%v, want A=2 B=1", av, bv)
	}
}

func TestDataReadRestore(t *testing.T) {
	in, _ := newInterp(t, "10 READ A, B\n20 RESTORE\n30 READ C\n40 DATA 11, 22\n50 END")
	runToHalt(t, in)
	a, _ := runtime.NumericOf(in.State.Store.GetVariable("A", 0))
	b, _ := runtime.NumericOf(in.State.Store.GetVariable("B", 0))
	c, _ := runtime.NumericOf(in.State.Store.GetVariable("C", 0))
	if a != 11 || b != 22 || c != 11 {
		t.Fatalf("A=%v B=%v C=%v, want 11 22 11 (RESTORE rewinds to the start of DATA)", a, b, c)
	}
}

func TestInputReadsFromConsole(t *testing.T) {
	in, console := newInterp(t, "10 INPUT X\n20 END")
	console.inputs = []string{"42"}
	runToHalt(t, in)
	v := in.State.Store.GetVariable("X", 0)
	f, ok := runtime.NumericOf(v)
	if !ok || f != 42 {
		t.Fatalf("X = %+v, want 42 from the canned input line", v)
	}
}

func TestDimAndArrayAssignment(t *testing.T) {
	in, _ := newInterp(t, "10 DIM A(5)\n20 A(3) = 99\n30 END")
	runToHalt(t, in)
	v, err := in.State.Store.ArrayGet("A", 0, []int{3})
	if err != nil {
		t.Fatalf("ArrayGet: %v", err)
	}
	f, _ := runtime.NumericOf(v)
	if f != 99 {
		t.Fatalf("A(3) = %+v, want 99", v)
	}
}

func TestRedimWithoutEraseIsDuplicateDefinition(t *testing.T) {
	in, _ := newInterp(t, "10 DIM A(5)\n20 DIM A(5)\n30 END")
	st := runToHalt(t, in)
	if st.Err == nil || st.Err.Code != mberrors.CodeDuplicateDefinition {
		t.Fatalf("status = %+v, want DUPLICATE_DEFINITION", st)
	}
}

func TestMidAssignmentSplicesInPlace(t *testing.T) {
	in, _ := newInterp(t, `10 A$ = "HELLO WORLD"` + "\n20 MID$(A$, 7, 5) = \"THERE\"\n30 END")
	runToHalt(t, in)
	v := in.State.Store.GetVariable("A", '$')
	sv, ok := v.(runtime.StringValue)
	if !ok || sv.Value != "HELLO THERE" {
		t.Fatalf("A$ = %+v, want \"HELLO THERE\"", v)
	}
}

func TestStopThenContResumesAfterStop(t *testing.T) {
	in, console := newInterp(t, "10 PRINT \"before\"\n20 STOP\n30 PRINT \"after\"\n40 END")
	st := runToHalt(t, in)
	if st.Reason != HaltStop {
		t.Fatalf("Reason = %v, want HaltStop", st.Reason)
	}

	_, jumped, rerr := in.execCont(nil)
	if rerr != nil {
		t.Fatalf("execCont: %v", rerr)
	}
	if !jumped {
		t.Fatalf("expected execCont to report jumped=true")
	}
	in.State.PC.State = runtime.Sequential

	st2 := runToHalt(t, in)
	if st2.Reason != HaltEnd {
		t.Fatalf("Reason after CONT = %v, want HaltEnd", st2.Reason)
	}
	if !strings.Contains(console.out.String(), "after") {
		t.Fatalf("expected CONT to resume at the statement after STOP, got %q", console.out.String())
	}
}

func TestTronTroffTogglesTraceState(t *testing.T) {
	in, _ := newInterp(t, "10 TRON\n20 TROFF\n30 END")
	runToHalt(t, in)
	if in.State.TraceOn {
		t.Errorf("expected TraceOn false after TROFF")
	}
}

func TestNewStatementResetsProgramAndHalts(t *testing.T) {
	in, _ := newInterp(t, "10 X = 1\n20 NEW\n30 X = 2")
	st := runToHalt(t, in)
	if st.Reason != HaltNew {
		t.Fatalf("Reason = %v, want HaltNew", st.Reason)
	}
	if len(in.State.Program.Lines) != 0 {
		t.Errorf("expected NEW to empty the program, got %d lines", len(in.State.Program.Lines))
	}
}

func TestUndefinedLineGotoIsRuntimeError(t *testing.T) {
	in, _ := newInterp(t, "10 GOTO 999")
	st := runToHalt(t, in)
	if st.Err == nil || st.Err.Code != mberrors.CodeUndefinedLine {
		t.Fatalf("status = %+v, want UNDEFINED_LINE", st)
	}
}
