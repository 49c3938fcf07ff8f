package builtins

import (
	mberrors "github.com/cwbudde/go-mbasic/internal/errors"
	"github.com/cwbudde/go-mbasic/internal/runtime"
)

func illegal(detail string) error {
	return mberrors.Err(mberrors.CodeIllegalFunctionCall, 0, detail)
}

func typeMismatch(detail string) error {
	return mberrors.Err(mberrors.CodeTypeMismatch, 0, detail)
}

func numArg(args []runtime.Value, i int) (float64, error) {
	if i >= len(args) {
		return 0, illegal("missing argument")
	}
	f, ok := runtime.NumericOf(args[i])
	if !ok {
		return 0, typeMismatch("expected numeric argument")
	}
	return f, nil
}

func intArg(args []runtime.Value, i int) (int, error) {
	f, err := numArg(args, i)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func strArg(args []runtime.Value, i int) (string, error) {
	if i >= len(args) {
		return "", illegal("missing argument")
	}
	s, ok := args[i].(runtime.StringValue)
	if !ok {
		return "", typeMismatch("expected string argument")
	}
	return s.Value, nil
}

func single(f float64) runtime.Value  { return runtime.SingleValue{Value: f} }
func double(f float64) runtime.Value  { return runtime.DoubleValue{Value: f} }
func integer(i int) runtime.Value     { return runtime.IntegerValue{Value: int64(i)} }
func str(s string) runtime.Value      { return runtime.StringValue{Value: s} }
