package program

import (
	"strings"
	"testing"

	"github.com/cwbudde/go-mbasic/internal/ast"
)

func TestAddOrReplaceLineInsertsInOrder(t *testing.T) {
	m := NewManager(nil, nil)
	for _, src := range []string{"20 PRINT 2", "10 PRINT 1", "30 PRINT 3"} {
		if err := m.AddOrReplaceLine(src); err != nil {
			t.Fatalf("AddOrReplaceLine(%q): %v", src, err)
		}
	}
	if len(m.Program.Lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(m.Program.Lines))
	}
	for i, want := range []int{10, 20, 30} {
		if m.Program.Lines[i].Number != want {
			t.Errorf("Lines[%d].Number = %d, want %d", i, m.Program.Lines[i].Number, want)
		}
	}
}

func TestAddOrReplaceLineLaterWins(t *testing.T) {
	m := NewManager(nil, nil)
	if err := m.AddOrReplaceLine("10 PRINT 1"); err != nil {
		t.Fatal(err)
	}
	if err := m.AddOrReplaceLine("10 PRINT 2"); err != nil {
		t.Fatal(err)
	}
	if len(m.Program.Lines) != 1 {
		t.Fatalf("expected the second line 10 to replace the first, got %d lines", len(m.Program.Lines))
	}
	got := m.Program.Lines[0].Statements[0].String()
	if !strings.Contains(got, "2") {
		t.Errorf("expected the surviving line to print 2, got %q", got)
	}
}

func TestAddOrReplaceLineWithNoStatementsDeletesIt(t *testing.T) {
	m := NewManager(nil, nil)
	if err := m.AddOrReplaceLine("10 PRINT 1"); err != nil {
		t.Fatal(err)
	}
	if err := m.AddOrReplaceLine("10"); err != nil {
		t.Fatal(err)
	}
	if len(m.Program.Lines) != 0 {
		t.Fatalf("expected line 10 to be deleted by a bare line-number entry, got %d lines", len(m.Program.Lines))
	}
}

func TestAddOrReplaceLineParseErrorLeavesProgramUnchanged(t *testing.T) {
	m := NewManager(nil, nil)
	if err := m.AddOrReplaceLine("10 PRINT 1"); err != nil {
		t.Fatal(err)
	}
	err := m.AddOrReplaceLine("20 IF 1 PRINT 2") // missing THEN
	if err == nil {
		t.Fatal("expected a parse error for a malformed IF")
	}
	if len(m.Program.Lines) != 1 {
		t.Fatalf("expected the program to be left untouched after a parse error, got %d lines", len(m.Program.Lines))
	}
}

func TestDeleteRangeRemovesInclusiveBounds(t *testing.T) {
	m := NewManager(nil, nil)
	for _, src := range []string{"10 PRINT 1", "20 PRINT 2", "30 PRINT 3", "40 PRINT 4"} {
		if err := m.AddOrReplaceLine(src); err != nil {
			t.Fatal(err)
		}
	}
	m.DeleteRange(20, 30)
	if len(m.Program.Lines) != 2 {
		t.Fatalf("expected lines 10 and 40 to survive, got %d lines", len(m.Program.Lines))
	}
	if m.Program.Lines[0].Number != 10 || m.Program.Lines[1].Number != 40 {
		t.Errorf("remaining lines = %v, want [10 40]", []int{m.Program.Lines[0].Number, m.Program.Lines[1].Number})
	}
}

func TestClearResetsProgram(t *testing.T) {
	m := NewManager(nil, nil)
	if err := m.AddOrReplaceLine("10 PRINT 1"); err != nil {
		t.Fatal(err)
	}
	m.Clear()
	if len(m.Program.Lines) != 0 {
		t.Fatalf("expected an empty program after Clear, got %d lines", len(m.Program.Lines))
	}
}

func TestApplyDefTypeUpdatesProgramMap(t *testing.T) {
	m := NewManager(nil, nil)
	if err := m.AddOrReplaceLine("10 DEFINT I-N"); err != nil {
		t.Fatal(err)
	}
	if tag := m.Program.DefTypeMap['I']; tag != ast.TypeInteger {
		t.Errorf("DefTypeMap['I'] = %v, want INTEGER", tag)
	}
	if tag := m.Program.DefTypeMap['N']; tag != ast.TypeInteger {
		t.Errorf("DefTypeMap['N'] = %v, want INTEGER", tag)
	}
	if tag := m.Program.DefTypeMap['X']; tag != ast.TypeSingle {
		t.Errorf("DefTypeMap['X'] = %v, want the untouched SINGLE default (DEFINT I-N does not cover X)", tag)
	}
}

func TestParseImmediateDoesNotTouchStoredProgram(t *testing.T) {
	m := NewManager(nil, nil)
	if err := m.AddOrReplaceLine("10 PRINT 1"); err != nil {
		t.Fatal(err)
	}
	stmts, err := m.ParseImmediate("PRINT 2")
	if err != nil {
		t.Fatalf("ParseImmediate: %v", err)
	}
	if len(stmts) != 1 {
		t.Fatalf("expected 1 immediate statement, got %d", len(stmts))
	}
	if len(m.Program.Lines) != 1 {
		t.Fatalf("expected the stored program untouched by ParseImmediate, got %d lines", len(m.Program.Lines))
	}
}

func TestSaveLoadNewRoundTrip(t *testing.T) {
	dir := t.TempDir()
	fs := NewOSFileSystem(dir)
	m := NewManager(nil, fs)
	for _, src := range []string{"10 PRINT \"HELLO\"", "20 X = 1 + 2", "30 END"} {
		if err := m.AddOrReplaceLine(src); err != nil {
			t.Fatal(err)
		}
	}
	if err := m.SaveToFile("PROG.BAS"); err != nil {
		t.Fatalf("SaveToFile: %v", err)
	}

	m.Clear()
	if len(m.Program.Lines) != 0 {
		t.Fatal("Clear should empty the program before reloading")
	}

	if err := m.LoadFromFile("PROG.BAS"); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if len(m.Program.Lines) != 3 {
		t.Fatalf("expected 3 lines reloaded, got %d", len(m.Program.Lines))
	}
	for i, want := range []int{10, 20, 30} {
		if m.Program.Lines[i].Number != want {
			t.Errorf("Lines[%d].Number = %d, want %d", i, m.Program.Lines[i].Number, want)
		}
	}
}

func TestMergeFromFileAddsAndReplacesLines(t *testing.T) {
	dir := t.TempDir()
	fs := NewOSFileSystem(dir)
	m := NewManager(nil, fs)
	if err := m.AddOrReplaceLine("10 PRINT 1"); err != nil {
		t.Fatal(err)
	}
	if err := m.AddOrReplaceLine("20 PRINT 2"); err != nil {
		t.Fatal(err)
	}

	patch := NewManager(nil, fs)
	if err := patch.AddOrReplaceLine("20 PRINT 99"); err != nil {
		t.Fatal(err)
	}
	if err := patch.AddOrReplaceLine("30 PRINT 3"); err != nil {
		t.Fatal(err)
	}
	if err := patch.SaveToFile("PATCH.BAS"); err != nil {
		t.Fatal(err)
	}

	if err := m.MergeFromFile("PATCH.BAS"); err != nil {
		t.Fatalf("MergeFromFile: %v", err)
	}
	if len(m.Program.Lines) != 3 {
		t.Fatalf("expected lines 10, 20 (replaced), 30, got %d lines", len(m.Program.Lines))
	}
	got := m.Program.Lines[1].Statements[0].String()
	if !strings.Contains(got, "99") {
		t.Errorf("expected line 20 replaced by the merged PRINT 99, got %q", got)
	}
}

func TestRenumberRewritesJumpTargets(t *testing.T) {
	m := NewManager(nil, nil)
	for _, src := range []string{"10 GOTO 30", "20 PRINT 1", "30 GOSUB 20"} {
		if err := m.AddOrReplaceLine(src); err != nil {
			t.Fatal(err)
		}
	}
	if err := m.Renumber(100, 10); err != nil {
		t.Fatalf("Renumber: %v", err)
	}
	if len(m.Program.Lines) != 3 {
		t.Fatalf("expected 3 lines after renumber, got %d", len(m.Program.Lines))
	}
	for i, want := range []int{100, 110, 120} {
		if m.Program.Lines[i].Number != want {
			t.Errorf("Lines[%d].Number = %d, want %d", i, m.Program.Lines[i].Number, want)
		}
	}
	gotoStmt, ok := m.Program.Lines[0].Statements[0].(*ast.GotoStatement)
	if !ok || gotoStmt.Line != 120 {
		t.Errorf("GOTO target = %+v, want 120 (old line 30)", gotoStmt)
	}
	gosubStmt, ok := m.Program.Lines[2].Statements[0].(*ast.GosubStatement)
	if !ok || gosubStmt.Line != 110 {
		t.Errorf("GOSUB target = %+v, want 110 (old line 20)", gosubStmt)
	}
}

func TestRenumberRejectsNonPositiveIncrement(t *testing.T) {
	m := NewManager(nil, nil)
	for _, src := range []string{"10 PRINT 1", "20 PRINT 2"} {
		if err := m.AddOrReplaceLine(src); err != nil {
			t.Fatal(err)
		}
	}
	if err := m.Renumber(20, 0); err == nil {
		t.Fatal("expected an error for a non-positive increment")
	}
	if m.Program.Lines[0].Number != 10 || m.Program.Lines[1].Number != 20 {
		t.Fatalf("program should be untouched after a rejected renumber, got %v", m.Program.Lines)
	}
}
