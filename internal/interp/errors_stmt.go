package interp

import (
	"github.com/cwbudde/go-mbasic/internal/ast"
	mberrors "github.com/cwbudde/go-mbasic/internal/errors"
	"github.com/cwbudde/go-mbasic/internal/runtime"
)

// execResume implements RESUME / RESUME NEXT / RESUME <line> (§4.H): all
// three clear the active handler and hand control back into the main
// program, either at the failing statement, the one after it, or an
// explicit line.
func (in *Interpreter) execResume(s *ast.ResumeStatement) (TickStatus, bool, *mberrors.RuntimeError) {
	pc := &in.State.PC
	if !pc.HandlerActive {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeResumeWithoutError, 0, "")
	}
	pc.HandlerActive = false
	switch s.Mode {
	case ast.ResumeSame:
		pc.Current = pc.ResumePC
		pc.State = runtime.Sequential
	case ast.ResumeNext:
		pc.Current = pc.ResumeNextPC
		pc.State = runtime.Sequential
	case ast.ResumeLine:
		pc.Jump(s.Line)
	}
	return running(), true, nil
}

// execError implements ERROR <n>, simulating the given numeric error code
// as if it had been raised by the runtime, so ON ERROR GOTO and RESUME see
// an ordinary trappable error (§4.H).
func (in *Interpreter) execError(s *ast.ErrorStatement) (TickStatus, bool, *mberrors.RuntimeError) {
	v, err := in.Eval(s.Code)
	if err != nil {
		return TickStatus{}, false, asRuntimeError(err)
	}
	n, ok := runtime.NumericOf(v)
	if !ok {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeTypeMismatch, 0, "")
	}
	code, known := mberrors.CodeForNumber(int(n))
	if !known {
		code = mberrors.CodeUndefinedError
	}
	return TickStatus{}, false, mberrors.Err(code, 0, "")
}

// execCont implements CONT, resuming where a STOP statement left off.
func (in *Interpreter) execCont(s *ast.ContStatement) (TickStatus, bool, *mberrors.RuntimeError) {
	if !in.State.PC.CanCont {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeCantContinue, 0, "")
	}
	in.State.PC.Current = in.State.PC.StopPC
	in.State.PC.State = runtime.Sequential
	in.State.PC.CanCont = false
	return running(), true, nil
}

// execClear implements CLEAR [stringspace] (§4.H).
func (in *Interpreter) execClear(s *ast.ClearStatement) (TickStatus, bool, *mberrors.RuntimeError) {
	size := 0
	if s.Size != nil {
		v, err := in.Eval(s.Size)
		if err != nil {
			return TickStatus{}, false, asRuntimeError(err)
		}
		n, ok := runtime.NumericOf(v)
		if !ok {
			return TickStatus{}, false, mberrors.Err(mberrors.CodeTypeMismatch, 0, "")
		}
		size = int(n)
	}
	in.State.Clear(size)
	return running(), false, nil
}
