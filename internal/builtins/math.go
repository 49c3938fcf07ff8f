package builtins

import (
	"math"

	"github.com/cwbudde/go-mbasic/internal/runtime"
)

// RegisterMath registers ABS, ATN, COS, SIN, TAN, EXP, FIX, INT, LOG, RND,
// SGN, SQR (§4.G). All are pure except RND, which draws from mutable
// runtime RNG state.
func RegisterMath(r *Registry) {
	r.Register("ABS", biAbs, CategoryMath, true)
	r.Register("ATN", biAtn, CategoryMath, true)
	r.Register("COS", biCos, CategoryMath, true)
	r.Register("SIN", biSin, CategoryMath, true)
	r.Register("TAN", biTan, CategoryMath, true)
	r.Register("EXP", biExp, CategoryMath, true)
	r.Register("FIX", biFix, CategoryMath, true)
	r.Register("INT", biInt, CategoryMath, true)
	r.Register("LOG", biLog, CategoryMath, true)
	r.Register("RND", biRnd, CategoryMath, false)
	r.Register("SGN", biSgn, CategoryMath, true)
	r.Register("SQR", biSqr, CategoryMath, true)
}

func wrapLike(f float64, args []runtime.Value) runtime.Value {
	if _, ok := args[0].(runtime.DoubleValue); ok {
		return double(f)
	}
	return single(f)
}

func biAbs(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	f, err := numArg(args, 0)
	if err != nil {
		return nil, err
	}
	if _, ok := args[0].(runtime.IntegerValue); ok {
		return integer(int(math.Abs(f))), nil
	}
	return wrapLike(math.Abs(f), args), nil
}

func biAtn(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	f, err := numArg(args, 0)
	if err != nil {
		return nil, err
	}
	return single(math.Atan(f)), nil
}

func biCos(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	f, err := numArg(args, 0)
	if err != nil {
		return nil, err
	}
	return single(math.Cos(f)), nil
}

func biSin(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	f, err := numArg(args, 0)
	if err != nil {
		return nil, err
	}
	return single(math.Sin(f)), nil
}

func biTan(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	f, err := numArg(args, 0)
	if err != nil {
		return nil, err
	}
	return single(math.Tan(f)), nil
}

func biExp(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	f, err := numArg(args, 0)
	if err != nil {
		return nil, err
	}
	return single(math.Exp(f)), nil
}

// biFix truncates toward zero (§4.G, §8 boundary: FIX(-0.5) = 0).
func biFix(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	f, err := numArg(args, 0)
	if err != nil {
		return nil, err
	}
	return integer(int(math.Trunc(f))), nil
}

// biInt floors (§4.G, §8 boundary: INT(-0.5) = -1).
func biInt(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	f, err := numArg(args, 0)
	if err != nil {
		return nil, err
	}
	return integer(int(math.Floor(f))), nil
}

func biLog(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	f, err := numArg(args, 0)
	if err != nil {
		return nil, err
	}
	if f <= 0 {
		return nil, illegal("LOG of non-positive argument")
	}
	return single(math.Log(f)), nil
}

// biRnd implements x<0 seeds, x=0 repeats, x>0 advances (§4.G).
func biRnd(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	x := 1.0
	if len(args) > 0 {
		f, err := numArg(args, 0)
		if err != nil {
			return nil, err
		}
		x = f
	}
	return single(ctx.State.Random.Next(x)), nil
}

// biSgn returns -1/0/1 (§4.G).
func biSgn(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	f, err := numArg(args, 0)
	if err != nil {
		return nil, err
	}
	switch {
	case f < 0:
		return integer(-1), nil
	case f > 0:
		return integer(1), nil
	default:
		return integer(0), nil
	}
}

func biSqr(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	f, err := numArg(args, 0)
	if err != nil {
		return nil, err
	}
	if f < 0 {
		return nil, illegal("SQR of negative argument")
	}
	return single(math.Sqrt(f)), nil
}
