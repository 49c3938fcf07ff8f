package semantic

import (
	"testing"

	"github.com/cwbudde/go-mbasic/internal/ast"
	"github.com/cwbudde/go-mbasic/internal/lexer"
	"github.com/cwbudde/go-mbasic/internal/parser"
)

func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	l := lexer.New(input)
	p := parser.New(l)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parser errors: %v", errs)
	}
	return prog
}

func TestConstantFoldPassFoldsArithmetic(t *testing.T) {
	prog := parseProgram(t, "10 X = 2 + 3 * 4")
	rep := NewManager(0, false, false).Run(prog)
	found := false
	for _, cf := range rep.ConstantFolds {
		if cf.Line == 10 && cf.Value == "14" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a fold of 2+3*4 to 14 on line 10, got %+v", rep.ConstantFolds)
	}
}

// A variable set by a plain LET must feed BranchOptimizationPass's
// constant-folding environment the same way it feeds ConstantFoldPass's, so
// an IF that tests it can be recognized as always-false, and a line reached
// only through that folded-away branch drops out of reachability once the
// fixed point settles.
func TestBranchOptimizationFoldsAssignedConstantAndDropsUnreachableTarget(t *testing.T) {
	prog := parseProgram(t, "10 DEBUG = 0\n20 IF DEBUG THEN 100\n30 END\n100 PRINT \"never\"")
	rep := NewManager(0, false, false).Run(prog)

	var branch *BranchFinding
	for i := range rep.Branches {
		if rep.Branches[i].Line == 20 {
			branch = &rep.Branches[i]
		}
	}
	if branch == nil || !branch.AlwaysFalse {
		t.Fatalf("expected line 20's IF to fold to always-false, got %+v", rep.Branches)
	}

	unreachable := false
	for _, l := range rep.Unreachable {
		if l == 100 {
			unreachable = true
		}
	}
	if !unreachable {
		t.Fatalf("expected line 100 to be unreachable once the branch folds false, got %v", rep.Unreachable)
	}
	if !rep.Converged {
		t.Fatalf("expected the fixed point to converge, got %d iterations unconverged", rep.Iterations)
	}
}

// A GOSUB whose callee mutates one of a recurring subexpression's operands
// must invalidate that subexpression for CSE purposes, even though the
// GOSUB statement itself is not a direct assignment to B.
func TestCSEPassInvalidatesAcrossGosubSideEffect(t *testing.T) {
	prog := parseProgram(t, "10 A = 1\n20 B = 2\n30 X = A + B\n40 GOSUB 200\n50 Y = A + B\n60 END\n200 B = B + 1\n210 RETURN")
	rep := NewManager(0, false, false).Run(prog)

	for _, f := range rep.CSE {
		if f.Canonical == "(A + B)" {
			t.Fatalf("A+B should not be reported as a recurring subexpression across a GOSUB that mutates B, got occurrences %v", f.Occurrences)
		}
	}
}

// Without an intervening GOSUB or assignment, the same recurring
// subexpression is still reported, confirming the invalidation above is
// about the GOSUB's side effect and not a blanket suppression.
func TestCSEPassReportsRecurrenceWithoutIntervention(t *testing.T) {
	prog := parseProgram(t, "10 A = 1\n20 B = 2\n30 X = A + B\n40 Y = A + B\n50 END")
	rep := NewManager(0, false, false).Run(prog)

	var found *CSEFinding
	for i := range rep.CSE {
		if rep.CSE[i].Canonical == "(A + B)" {
			found = &rep.CSE[i]
		}
	}
	if found == nil {
		t.Fatalf("expected A+B to be reported as recurring across lines 30 and 40, got %+v", rep.CSE)
	}
	if len(found.Occurrences) != 2 || found.Occurrences[0] != 30 || found.Occurrences[1] != 40 {
		t.Errorf("occurrences = %v, want [30 40]", found.Occurrences)
	}
}

func TestSubroutineSummaryCollectsModifiedVars(t *testing.T) {
	prog := parseProgram(t, "10 GOSUB 100\n20 END\n100 B = 5\n110 C = 6\n120 RETURN")
	rep := NewManager(0, false, false).Run(prog)

	summary, ok := rep.Subroutines[100]
	if !ok {
		t.Fatalf("expected a subroutine summary for entry line 100, got %+v", rep.Subroutines)
	}
	if !summary.Modifies["B"] || !summary.Modifies["C"] {
		t.Errorf("Modifies = %v, want B and C", summary.Modifies)
	}
	if !summary.Lines[100] || !summary.Lines[110] || !summary.Lines[120] {
		t.Errorf("Lines = %v, want 100, 110, 120", summary.Lines)
	}
}

func TestReachabilityMarksUnreferencedLineUnreachable(t *testing.T) {
	prog := parseProgram(t, "10 PRINT 1\n20 END\n30 PRINT 2")
	rep := NewManager(0, false, false).Run(prog)

	found := false
	for _, l := range rep.Unreachable {
		if l == 30 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected line 30 (no predecessor, no fall-through past END) to be unreachable, got %v", rep.Unreachable)
	}
	if rep.Reachable[30] {
		t.Errorf("Reachable[30] = true, want false")
	}
	if !rep.Reachable[10] || !rep.Reachable[20] {
		t.Errorf("expected lines 10 and 20 reachable, got %v", rep.Reachable)
	}
}

func TestDeadWritePassFindsOverwrittenValue(t *testing.T) {
	prog := parseProgram(t, "10 X = 1\n20 X = 2\n30 PRINT X")
	rep := NewManager(0, false, false).Run(prog)

	found := false
	for _, f := range rep.DeadWrites {
		if f.Line == 10 && f.Var == "X" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the write to X on line 10 to be flagged dead (overwritten before any read), got %+v", rep.DeadWrites)
	}
}

func TestReportToJSONAndQueryRoundTrip(t *testing.T) {
	prog := parseProgram(t, "10 X = 2 + 3")
	rep := NewManager(0, false, false).Run(prog)

	doc, err := rep.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	if doc == "" || doc == "{}" {
		t.Fatalf("expected a populated report document, got %q", doc)
	}

	converged, err := rep.Query("converged")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if converged != "true" {
		t.Errorf("Query(converged) = %q, want true", converged)
	}
}

func TestManagerConverges(t *testing.T) {
	prog := parseProgram(t, "10 FOR I = 1 TO 10\n20 PRINT I\n30 NEXT I\n40 END")
	rep := NewManager(0, false, false).Run(prog)
	if !rep.Converged {
		t.Errorf("expected convergence within the default iteration budget, stopped after %d", rep.Iterations)
	}
	if rep.HasErrors() {
		t.Errorf("unexpected issues: %+v", rep.Issues)
	}
}
