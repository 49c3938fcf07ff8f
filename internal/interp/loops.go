package interp

import (
	"strings"

	"github.com/cwbudde/go-mbasic/internal/ast"
	mberrors "github.com/cwbudde/go-mbasic/internal/errors"
	"github.com/cwbudde/go-mbasic/internal/runtime"
)

// execFor evaluates the loop bounds, stores the initial value, and either
// enters the body (pushing a ForFrame) or, if the bound is already past
// the limit, skips straight to the statement after the matching NEXT
// without ever running the body (§4.H).
func (in *Interpreter) execFor(s *ast.ForStatement, next runtime.PC) (TickStatus, bool, *mberrors.RuntimeError) {
	startV, err := in.Eval(s.Start)
	if err != nil {
		return TickStatus{}, false, asRuntimeError(err)
	}
	endV, err := in.Eval(s.End)
	if err != nil {
		return TickStatus{}, false, asRuntimeError(err)
	}
	step := 1.0
	if s.Step != nil {
		stepV, err := in.Eval(s.Step)
		if err != nil {
			return TickStatus{}, false, asRuntimeError(err)
		}
		f, ok := runtime.NumericOf(stepV)
		if !ok {
			return TickStatus{}, false, mberrors.Err(mberrors.CodeTypeMismatch, 0, "")
		}
		step = f
	}
	startF, ok1 := runtime.NumericOf(startV)
	endF, ok2 := runtime.NumericOf(endV)
	if !ok1 || !ok2 {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeTypeMismatch, 0, "")
	}
	if err := in.State.Store.SetVariable(s.Var.Name, s.Var.Suffix, startV); err != nil {
		return TickStatus{}, false, asRuntimeError(err)
	}

	frame := runtime.ForFrame{VarName: s.Var.Name, VarSuffix: s.Var.Suffix, Limit: endF, Step: step, BodyPC: next}

	if loopDone(startF, endF, step) {
		after, err := in.scanForward(next, isForOpen, isForClose(s.Var.Name, s.Var.Suffix))
		if err != nil {
			return TickStatus{}, false, err
		}
		in.State.PC.Current = after
		in.State.PC.State = runtime.Sequential
		return running(), true, nil
	}

	if err := in.State.Stacks.PushFor(frame); err != nil {
		return TickStatus{}, false, err.(*mberrors.RuntimeError)
	}
	return running(), false, nil
}

func loopDone(start, end, step float64) bool {
	if step >= 0 {
		return start > end
	}
	return start < end
}

// execNext advances the control variable(s), re-entering the loop body
// (a jump to BodyPC) if still in range, or falling through past the
// closed frame(s) otherwise. Multiple control variables (NEXT I, J) close
// loops left to right, stopping at the first one that re-enters (§4.H).
func (in *Interpreter) execNext(s *ast.NextStatement, next runtime.PC) (TickStatus, bool, *mberrors.RuntimeError) {
	vars := s.Vars
	if len(vars) == 0 {
		vars = []*ast.Identifier{nil}
	}
	for _, v := range vars {
		var frame runtime.ForFrame
		var err error
		if v == nil {
			frame, err = in.State.Stacks.PopFor()
		} else {
			f, ok := in.State.Stacks.FindForByVar(v.Name, v.Suffix)
			if !ok {
				return TickStatus{}, false, mberrors.Err(mberrors.CodeNextWithoutFor, 0, "")
			}
			frame, err = f, nil
		}
		if err != nil {
			return TickStatus{}, false, err.(*mberrors.RuntimeError)
		}
		current := in.State.Store.GetVariable(frame.VarName, frame.VarSuffix)
		f, ok := runtime.NumericOf(current)
		if !ok {
			return TickStatus{}, false, mberrors.Err(mberrors.CodeTypeMismatch, 0, "")
		}
		f += frame.Step
		if err := in.State.Store.SetVariable(frame.VarName, frame.VarSuffix, runtime.DoubleValue{Value: f}); err != nil {
			return TickStatus{}, false, asRuntimeError(err)
		}
		if !loopDone(f, frame.Limit, frame.Step) {
			if err := in.State.Stacks.PushFor(frame); err != nil {
				return TickStatus{}, false, err.(*mberrors.RuntimeError)
			}
			in.State.PC.Current = frame.BodyPC
			in.State.PC.State = runtime.Sequential
			return running(), true, nil
		}
	}
	return running(), false, nil
}

// execWhile pushes a WhileFrame pointing back at the WHILE statement
// itself when Cond holds, or skips to past the matching WEND otherwise.
func (in *Interpreter) execWhile(s *ast.WhileStatement, next runtime.PC) (TickStatus, bool, *mberrors.RuntimeError) {
	v, err := in.Eval(s.Cond)
	if err != nil {
		return TickStatus{}, false, asRuntimeError(err)
	}
	f, ok := runtime.NumericOf(v)
	if !ok {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeTypeMismatch, 0, "")
	}
	if f == 0 {
		after, err := in.scanForward(next, isWhileOpen, isWendClose)
		if err != nil {
			return TickStatus{}, false, err
		}
		in.State.PC.Current = after
		in.State.PC.State = runtime.Sequential
		return running(), true, nil
	}
	if err := in.State.Stacks.PushWhile(runtime.WhileFrame{HeadPC: in.State.PC.Current}); err != nil {
		return TickStatus{}, false, err.(*mberrors.RuntimeError)
	}
	return running(), false, nil
}

func (in *Interpreter) execWend(s *ast.WendStatement) (TickStatus, bool, *mberrors.RuntimeError) {
	frame, err := in.State.Stacks.PopWhile()
	if err != nil {
		return TickStatus{}, false, err.(*mberrors.RuntimeError)
	}
	in.State.PC.Current = frame.HeadPC
	in.State.PC.State = runtime.Sequential
	return running(), true, nil
}

func isForOpen(stmt ast.Statement) bool  { _, ok := stmt.(*ast.ForStatement); return ok }
func isWhileOpen(stmt ast.Statement) bool { _, ok := stmt.(*ast.WhileStatement); return ok }
func isWendClose(stmt ast.Statement) bool { _, ok := stmt.(*ast.WendStatement); return ok }

// isForClose matches a NEXT that would close the FOR for (name, suffix):
// an empty-var NEXT (closes innermost, whatever it is) or one whose var
// list names it.
func isForClose(name string, suffix byte) func(ast.Statement) bool {
	return func(stmt ast.Statement) bool {
		n, ok := stmt.(*ast.NextStatement)
		if !ok {
			return false
		}
		if len(n.Vars) == 0 {
			return true
		}
		for _, v := range n.Vars {
			if strings.EqualFold(v.Name, name) && v.Suffix == suffix {
				return true
			}
		}
		return false
	}
}

// scanForward walks the program starting at from, tracking nesting depth
// of the same construct kind (so a nested FOR/WHILE inside the skipped
// body doesn't fool the scan), and returns the PC just after the first
// matching close statement at depth 0.
func (in *Interpreter) scanForward(from runtime.PC, isOpen, isClose func(ast.Statement) bool) (runtime.PC, *mberrors.RuntimeError) {
	prog := in.State.Program
	lineIdx := indexOfLine(prog, from.Line)
	if lineIdx < 0 {
		return runtime.PC{}, mberrors.Err(mberrors.CodeUndefinedLine, from.Line, "")
	}
	stmtIdx := from.Stmt
	depth := 1
	for lineIdx < len(prog.Lines) {
		line := prog.Lines[lineIdx]
		for stmtIdx < len(line.Statements) {
			stmt := line.Statements[stmtIdx]
			if isClose(stmt) {
				depth--
				if depth == 0 {
					if stmtIdx+1 < len(line.Statements) {
						return runtime.PC{Line: line.Number, Stmt: stmtIdx + 1}, nil
					}
					return runtime.PC{Line: line.Number, Stmt: len(line.Statements)}, nil
				}
			} else if isOpen(stmt) {
				depth++
			}
			stmtIdx++
		}
		lineIdx++
		stmtIdx = 0
	}
	return runtime.PC{}, mberrors.Err(mberrors.CodeSyntaxError, from.Line, "unmatched block")
}
