package interp

import (
	"github.com/cwbudde/go-mbasic/internal/ast"
	mberrors "github.com/cwbudde/go-mbasic/internal/errors"
	"github.com/cwbudde/go-mbasic/internal/runtime"
)

// execRandomize implements RANDOMIZE [seed] (§4.G): a bare RANDOMIZE
// prompts for a seed on the console, matching classic MBASIC's
// "Random number seed" interaction.
func (in *Interpreter) execRandomize(s *ast.RandomizeStatement) (TickStatus, bool, *mberrors.RuntimeError) {
	var seed int64
	if s.Seed != nil {
		v, err := in.Eval(s.Seed)
		if err != nil {
			return TickStatus{}, false, asRuntimeError(err)
		}
		f, ok := runtime.NumericOf(v)
		if !ok {
			return TickStatus{}, false, mberrors.Err(mberrors.CodeTypeMismatch, 0, "")
		}
		seed = int64(f)
	} else {
		line, err := in.Console.Input("Random number seed (-32768 to 32767)? ")
		if err != nil {
			return TickStatus{}, false, mberrors.Err(mberrors.CodeInputPastEnd, 0, err.Error())
		}
		v, ok := coerceInputField(line, ast.TypeInteger)
		if !ok {
			return TickStatus{}, false, mberrors.Err(mberrors.CodeTypeMismatch, 0, "")
		}
		f, _ := runtime.NumericOf(v)
		seed = int64(f)
	}
	in.State.Random.Seed(seed)
	return running(), false, nil
}

// execSwap implements SWAP a, b: exchanges two variables' values in
// place, requiring both to resolve to the same effective type (§4.G).
func (in *Interpreter) execSwap(s *ast.SwapStatement) (TickStatus, bool, *mberrors.RuntimeError) {
	av, err := in.Eval(s.A)
	if err != nil {
		return TickStatus{}, false, asRuntimeError(err)
	}
	bv, err := in.Eval(s.B)
	if err != nil {
		return TickStatus{}, false, asRuntimeError(err)
	}
	if targetTag(s.A, in) != targetTag(s.B, in) {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeTypeMismatch, 0, "SWAP")
	}
	if err := in.assign(s.A, bv); err != nil {
		return TickStatus{}, false, asRuntimeError(err)
	}
	if err := in.assign(s.B, av); err != nil {
		return TickStatus{}, false, asRuntimeError(err)
	}
	return running(), false, nil
}
