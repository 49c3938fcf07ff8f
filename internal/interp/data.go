package interp

import (
	"github.com/cwbudde/go-mbasic/internal/ast"
	mberrors "github.com/cwbudde/go-mbasic/internal/errors"
	"github.com/cwbudde/go-mbasic/internal/runtime"
)

// execDim declares one or more arrays (§4.H); bounds are evaluated
// left to right and the configured array-size budget is consulted before
// the backing slice is allocated.
func (in *Interpreter) execDim(s *ast.DimStatement) (TickStatus, bool, *mberrors.RuntimeError) {
	for _, decl := range s.Decls {
		dims := make([]int, len(decl.Bounds))
		for i, b := range decl.Bounds {
			v, err := in.Eval(b)
			if err != nil {
				return TickStatus{}, false, asRuntimeError(err)
			}
			f, ok := runtime.NumericOf(v)
			if !ok {
				return TickStatus{}, false, mberrors.Err(mberrors.CodeTypeMismatch, 0, "")
			}
			dims[i] = int(f)
		}
		if in.Limiter != nil {
			elemBytes := 8
			count := 1
			for _, d := range dims {
				count *= d + 1
			}
			if rerr := in.Limiter.CheckArraySize(count, elemBytes); rerr != nil {
				return TickStatus{}, false, rerr
			}
		}
		if err := in.State.Store.DimArray(decl.Name, decl.Suffix, dims); err != nil {
			return TickStatus{}, false, err.(*mberrors.RuntimeError)
		}
	}
	return running(), false, nil
}

func (in *Interpreter) execErase(s *ast.EraseStatement) (TickStatus, bool, *mberrors.RuntimeError) {
	for _, name := range s.Names {
		suffix := byte(0)
		if n := len(name); n > 0 {
			switch name[n-1] {
			case '%', '!', '#', '$':
				suffix = name[n-1]
				name = name[:n-1]
			}
		}
		in.State.Store.EraseArray(name, suffix)
	}
	return running(), false, nil
}

// execRead pulls the next value from the DATA pool for each target,
// coercing to the target's effective type (§4.H).
func (in *Interpreter) execRead(s *ast.ReadStatement) (TickStatus, bool, *mberrors.RuntimeError) {
	for _, t := range s.Targets {
		tag := targetTag(t, in)
		v, err := in.State.Data.ReadNext(tag)
		if err != nil {
			return TickStatus{}, false, err.(*mberrors.RuntimeError)
		}
		if err := in.assign(t, v); err != nil {
			return TickStatus{}, false, asRuntimeError(err)
		}
	}
	return running(), false, nil
}

func (in *Interpreter) execRestore(s *ast.RestoreStatement) (TickStatus, bool, *mberrors.RuntimeError) {
	if !s.HasLine {
		in.State.Data.Restore()
		return running(), false, nil
	}
	if err := in.State.Data.RestoreToLine(s.Line); err != nil {
		return TickStatus{}, false, err.(*mberrors.RuntimeError)
	}
	return running(), false, nil
}
