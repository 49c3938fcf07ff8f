package interp

import (
	"github.com/cwbudde/go-mbasic/internal/ast"
	mberrors "github.com/cwbudde/go-mbasic/internal/errors"
	"github.com/cwbudde/go-mbasic/internal/runtime"
)

// jumpToLine resolves a GOTO/GOSUB/THEN/ELSE line target, installing a
// Jumping PC the next Tick will resolve, per §4.H's state machine.
func (in *Interpreter) jumpToLine(line int) (TickStatus, bool, *mberrors.RuntimeError) {
	if _, ok := in.State.Program.ByNumber[line]; !ok {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeUndefinedLine, 0, "")
	}
	in.State.PC.Jump(line)
	return running(), true, nil
}

func (in *Interpreter) execGoto(s *ast.GotoStatement) (TickStatus, bool, *mberrors.RuntimeError) {
	return in.jumpToLine(s.Line)
}

func (in *Interpreter) execGosub(s *ast.GosubStatement, next runtime.PC) (TickStatus, bool, *mberrors.RuntimeError) {
	if err := in.State.Stacks.PushGosub(next); err != nil {
		return TickStatus{}, false, err.(*mberrors.RuntimeError)
	}
	return in.jumpToLine(s.Line)
}

func (in *Interpreter) execReturn(s *ast.ReturnStatement) (TickStatus, bool, *mberrors.RuntimeError) {
	frame, err := in.State.Stacks.PopGosub()
	if err != nil {
		return TickStatus{}, false, err.(*mberrors.RuntimeError)
	}
	in.State.PC.Current = frame.ReturnPC
	in.State.PC.State = runtime.Sequential
	return running(), true, nil
}

// execOnGoto implements ON <expr> GOTO/GOSUB l1, l2, .... Selector values
// outside 1..len(Lines) fall through to the next statement without error,
// per classic MBASIC (a negative selector is ILLEGAL_FUNCTION_CALL).
func (in *Interpreter) execOnGoto(s *ast.OnGotoStatement, next runtime.PC) (TickStatus, bool, *mberrors.RuntimeError) {
	v, err := in.Eval(s.Selector)
	if err != nil {
		return TickStatus{}, false, asRuntimeError(err)
	}
	f, ok := runtime.NumericOf(v)
	if !ok {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeTypeMismatch, 0, "")
	}
	n := int(f)
	if n < 0 {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeIllegalFunctionCall, 0, "")
	}
	if n < 1 || n > len(s.Lines) {
		return running(), false, nil
	}
	line := s.Lines[n-1]
	if s.IsGosub {
		if err := in.State.Stacks.PushGosub(next); err != nil {
			return TickStatus{}, false, err.(*mberrors.RuntimeError)
		}
	}
	return in.jumpToLine(line)
}

// execIf evaluates Cond and runs the matching branch. A THEN/ELSE line
// number is a jump; an inline statement list runs in full within this
// same tick (classic MBASIC treats "IF...THEN s1:s2" as a single
// executable unit, not one tick per inline statement).
func (in *Interpreter) execIf(s *ast.IfStatement, next runtime.PC) (TickStatus, bool, *mberrors.RuntimeError) {
	v, err := in.Eval(s.Cond)
	if err != nil {
		return TickStatus{}, false, asRuntimeError(err)
	}
	f, ok := runtime.NumericOf(v)
	if !ok {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeTypeMismatch, 0, "")
	}
	if f != 0 {
		if s.ThenLine > 0 {
			return in.jumpToLine(s.ThenLine)
		}
		return in.execInlineList(s.ThenStmts, next)
	}
	if s.HasElse {
		if s.ElseLine > 0 {
			return in.jumpToLine(s.ElseLine)
		}
		return in.execInlineList(s.ElseStmts, next)
	}
	return running(), false, nil
}

// execInlineList runs stmts in sequence as part of the enclosing IF's
// tick, stopping early (and reporting jumped=true) the moment one of them
// transfers control or halts.
func (in *Interpreter) execInlineList(stmts []ast.Statement, next runtime.PC) (TickStatus, bool, *mberrors.RuntimeError) {
	for _, inner := range stmts {
		st, jumped, rerr := in.execute(inner, next)
		if rerr != nil {
			return TickStatus{}, false, rerr
		}
		if st.Kind == Halted || jumped {
			return st, true, nil
		}
	}
	return running(), false, nil
}
