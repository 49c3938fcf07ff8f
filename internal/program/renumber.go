package program

import (
	"fmt"

	"github.com/cwbudde/go-mbasic/internal/ast"
)

// Renumber reassigns every present line a new number starting at start and
// increasing by increment, rewriting every line-number reference (GOTO,
// GOSUB, THEN/ELSE line targets, ON...GOTO/GOSUB, RESTORE line) to match
// (§4.K). ERL comparisons are deliberately left untouched: ERL holds a
// historical line number captured at error time, not a jump target (§9).
// The operation is atomic: if any new number would collide with another
// line already present and not itself being renumbered, the whole
// operation fails and Program is untouched.
func (m *Manager) Renumber(start, increment int) error {
	if increment <= 0 {
		return fmt.Errorf("renumber increment must be positive")
	}
	lines := m.Program.Lines
	mapping := make(map[int]int, len(lines))
	next := start
	for _, l := range lines {
		mapping[l.Number] = next
		next += increment
	}

	seen := make(map[int]bool, len(mapping))
	for _, newNum := range mapping {
		if seen[newNum] {
			return fmt.Errorf("renumber collision at line %d", newNum)
		}
		seen[newNum] = true
	}

	newLines := make([]*ast.Line, len(lines))
	newByNumber := make(map[int]*ast.Line, len(lines))
	for i, l := range lines {
		nl := &ast.Line{Token: l.Token, Number: mapping[l.Number], Statements: l.Statements}
		for _, stmt := range nl.Statements {
			rewriteLineRefs(stmt, mapping)
		}
		newLines[i] = nl
		newByNumber[nl.Number] = nl
	}

	m.Program.Lines = newLines
	m.Program.ByNumber = newByNumber
	return nil
}

// rewriteLineRefs mutates stmt's line-number-valued fields in place,
// following mapping (missing entries, e.g. a target that was deleted
// before renumbering, are left as-is; that is a separate UNDEFINED_LINE
// failure the interpreter already reports at run time).
func rewriteLineRefs(stmt ast.Statement, mapping map[int]int) {
	remap := func(n int) int {
		if nn, ok := mapping[n]; ok {
			return nn
		}
		return n
	}
	switch s := stmt.(type) {
	case *ast.GotoStatement:
		s.Line = remap(s.Line)
	case *ast.GosubStatement:
		s.Line = remap(s.Line)
	case *ast.OnGotoStatement:
		for i, l := range s.Lines {
			s.Lines[i] = remap(l)
		}
	case *ast.IfStatement:
		if s.ThenLine > 0 {
			s.ThenLine = remap(s.ThenLine)
		}
		for _, inner := range s.ThenStmts {
			rewriteLineRefs(inner, mapping)
		}
		if s.ElseLine > 0 {
			s.ElseLine = remap(s.ElseLine)
		}
		for _, inner := range s.ElseStmts {
			rewriteLineRefs(inner, mapping)
		}
	case *ast.RestoreStatement:
		if s.HasLine {
			s.Line = remap(s.Line)
		}
	case *ast.ResumeStatement:
		if s.Mode == ast.ResumeLine {
			s.Line = remap(s.Line)
		}
	case *ast.OnErrorGotoStatement:
		if s.Line != 0 {
			s.Line = remap(s.Line)
		}
	}
}
