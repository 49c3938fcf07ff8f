package interp

import (
	"math"
	"strings"

	"github.com/cwbudde/go-mbasic/internal/ast"
	mberrors "github.com/cwbudde/go-mbasic/internal/errors"
	"github.com/cwbudde/go-mbasic/internal/builtins"
	"github.com/cwbudde/go-mbasic/internal/runtime"
)

var mathPow = math.Pow

// Eval evaluates expr to a runtime.Value (§4.D, §4.F).
func (in *Interpreter) Eval(expr ast.Expression) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return runtime.IntegerValue{Value: e.Value}, nil
	case *ast.FloatLiteral:
		if e.IsDouble {
			return runtime.DoubleValue{Value: e.Value}, nil
		}
		return runtime.SingleValue{Value: e.Value}, nil
	case *ast.StringLiteral:
		if in.Limiter != nil {
			if rerr := in.Limiter.CheckStringLength(len(e.Value)); rerr != nil {
				return nil, rerr
			}
		}
		return runtime.StringValue{Value: e.Value}, nil
	case *ast.Identifier:
		return in.State.Store.GetVariable(e.Name, e.Suffix), nil
	case *ast.IndexExpression:
		return in.evalIndexExpression(e)
	case *ast.UnaryExpression:
		return in.evalUnary(e)
	case *ast.BinaryExpression:
		return in.evalBinary(e)
	default:
		return nil, mberrors.Err(mberrors.CodeSyntaxError, 0, "unsupported expression")
	}
}

// evalIndexExpression resolves an IndexExpression to either a built-in
// call, a DEF FN call, or an array element read (§4.D: the parser cannot
// tell these apart without a symbol table; IsCall records the resolution,
// and array access is the fallback for any name IsCall left false).
func (in *Interpreter) evalIndexExpression(e *ast.IndexExpression) (runtime.Value, error) {
	if e.IsCall {
		if d, ok := in.State.DefFns[strings.ToUpper(e.Name)]; ok {
			return in.callDefFn(d, e.Args)
		}
		return in.callBuiltin(e.Name, e.Args)
	}
	indices, err := in.evalIndices(e.Args)
	if err != nil {
		return nil, err
	}
	return in.State.Store.ArrayGet(e.Name, e.Suffix, indices)
}

func (in *Interpreter) evalIndices(args []ast.Expression) ([]int, error) {
	indices := make([]int, len(args))
	for i, a := range args {
		v, err := in.Eval(a)
		if err != nil {
			return nil, err
		}
		f, ok := runtime.NumericOf(v)
		if !ok {
			return nil, mberrors.Err(mberrors.CodeTypeMismatch, 0, "subscript")
		}
		indices[i] = int(f + 0.5)
	}
	return indices, nil
}

func (in *Interpreter) callBuiltin(name string, argExprs []ast.Expression) (runtime.Value, error) {
	info, ok := in.Builtins.Lookup(name)
	if !ok {
		return nil, mberrors.Err(mberrors.CodeSyntaxError, 0, "undefined function "+name)
	}
	args := make([]runtime.Value, len(argExprs))
	for i, a := range argExprs {
		v, err := in.Eval(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	ctx := &builtins.Context{State: in.State, Console: in.Console, Limiter: in.Limiter}
	return info.Func(ctx, args)
}

// callDefFn evaluates a DEF FN call: bind params to argument values in a
// scratch scope layered over the global store, evaluate Body, restore the
// prior bindings. DEF FN has no closures or recursion (§3): params simply
// shadow same-named globals for the duration of the call.
func (in *Interpreter) callDefFn(d *ast.DefFnStatement, argExprs []ast.Expression) (runtime.Value, error) {
	if len(argExprs) != len(d.Params) {
		return nil, mberrors.Err(mberrors.CodeIllegalFunctionCall, 0, "DEF FN argument count")
	}
	saved := make([]runtime.Value, len(d.Params))
	for i, p := range d.Params {
		saved[i] = in.State.Store.GetVariable(p.Name, p.Suffix)
	}
	defer func() {
		for i, p := range d.Params {
			in.State.Store.SetVariable(p.Name, p.Suffix, saved[i])
		}
	}()
	for i, p := range d.Params {
		v, err := in.Eval(argExprs[i])
		if err != nil {
			return nil, err
		}
		if err := in.State.Store.SetVariable(p.Name, p.Suffix, v); err != nil {
			return nil, err
		}
	}
	result, err := in.Eval(d.Body)
	if err != nil {
		return nil, err
	}
	return runtime.Coerce(result, in.State.Store.EffectiveTag(d.Name, d.Suffix))
}

func (in *Interpreter) evalUnary(e *ast.UnaryExpression) (runtime.Value, error) {
	v, err := in.Eval(e.Operand)
	if err != nil {
		return nil, err
	}
	switch e.Operator {
	case "-":
		f, ok := runtime.NumericOf(v)
		if !ok {
			return nil, mberrors.Err(mberrors.CodeTypeMismatch, 0, "")
		}
		return fromFloatLike(v, -f)
	case "+":
		return v, nil
	case "NOT":
		f, ok := runtime.NumericOf(v)
		if !ok {
			return nil, mberrors.Err(mberrors.CodeTypeMismatch, 0, "")
		}
		return runtime.IntegerValue{Value: ^int64(f)}, nil
	default:
		return nil, mberrors.Err(mberrors.CodeSyntaxError, 0, "unary "+e.Operator)
	}
}

// fromFloatLike rebuilds a value of v's own numeric type from f, keeping
// unary minus from widening an INTEGER to SINGLE.
func fromFloatLike(v runtime.Value, f float64) (runtime.Value, error) {
	switch v.(type) {
	case runtime.IntegerValue:
		return runtime.Coerce(runtime.DoubleValue{Value: f}, ast.TypeInteger)
	case runtime.DoubleValue:
		return runtime.DoubleValue{Value: f}, nil
	default:
		return runtime.SingleValue{Value: f}, nil
	}
}

// evalBinary implements the §4.D operator semantics: string "+" is
// concatenation; "/" always promotes to SINGLE (or DOUBLE if an operand
// is DOUBLE); "\" is integer division with truncation; "^" promotes to
// DOUBLE whenever either operand is DOUBLE; AND/OR/XOR/EQV/IMP/relational
// operators work on INTEGER bit patterns per the classic dialect.
func (in *Interpreter) evalBinary(e *ast.BinaryExpression) (runtime.Value, error) {
	l, err := in.Eval(e.Left)
	if err != nil {
		return nil, err
	}
	r, err := in.Eval(e.Right)
	if err != nil {
		return nil, err
	}

	if ls, lok := l.(runtime.StringValue); lok {
		rs, rok := r.(runtime.StringValue)
		if !rok {
			return nil, mberrors.Err(mberrors.CodeTypeMismatch, 0, "")
		}
		return in.evalStringBinary(e.Operator, ls, rs)
	}

	lf, lok := runtime.NumericOf(l)
	rf, rok := runtime.NumericOf(r)
	if !lok || !rok {
		return nil, mberrors.Err(mberrors.CodeTypeMismatch, 0, "")
	}
	isDouble := l.Type() == ast.TypeDouble || r.Type() == ast.TypeDouble
	isInt := l.Type() == ast.TypeInteger && r.Type() == ast.TypeInteger

	switch e.Operator {
	case "+":
		return numericResult(lf+rf, isInt, isDouble)
	case "-":
		return numericResult(lf-rf, isInt, isDouble)
	case "*":
		return numericResult(lf*rf, isInt, isDouble)
	case "/":
		if rf == 0 {
			return nil, mberrors.Err(mberrors.CodeDivisionByZero, 0, "")
		}
		if isDouble {
			return runtime.DoubleValue{Value: lf / rf}, nil
		}
		return runtime.SingleValue{Value: lf / rf}, nil
	case "\\":
		li, ri := int64(lf), int64(rf)
		if ri == 0 {
			return nil, mberrors.Err(mberrors.CodeDivisionByZero, 0, "")
		}
		return runtime.Coerce(runtime.DoubleValue{Value: float64(li / ri)}, ast.TypeInteger)
	case "MOD":
		li, ri := int64(lf+0.5), int64(rf+0.5)
		if ri == 0 {
			return nil, mberrors.Err(mberrors.CodeDivisionByZero, 0, "")
		}
		return runtime.Coerce(runtime.DoubleValue{Value: float64(li % ri)}, ast.TypeInteger)
	case "^":
		v := powFloat(lf, rf)
		if isDouble {
			return runtime.DoubleValue{Value: v}, nil
		}
		return runtime.SingleValue{Value: v}, nil
	case "=":
		return boolResult(lf == rf)
	case "<>":
		return boolResult(lf != rf)
	case "<":
		return boolResult(lf < rf)
	case ">":
		return boolResult(lf > rf)
	case "<=":
		return boolResult(lf <= rf)
	case ">=":
		return boolResult(lf >= rf)
	case "AND":
		return runtime.IntegerValue{Value: int64(lf) & int64(rf)}, nil
	case "OR":
		return runtime.IntegerValue{Value: int64(lf) | int64(rf)}, nil
	case "XOR":
		return runtime.IntegerValue{Value: int64(lf) ^ int64(rf)}, nil
	case "EQV":
		return runtime.IntegerValue{Value: ^(int64(lf) ^ int64(rf))}, nil
	case "IMP":
		return runtime.IntegerValue{Value: ^int64(lf) | int64(rf)}, nil
	default:
		return nil, mberrors.Err(mberrors.CodeSyntaxError, 0, "operator "+e.Operator)
	}
}

func (in *Interpreter) evalStringBinary(op string, l, r runtime.StringValue) (runtime.Value, error) {
	switch op {
	case "+":
		result := l.Value + r.Value
		if in.Limiter != nil {
			if rerr := in.Limiter.CheckStringLength(len(result)); rerr != nil {
				return nil, rerr
			}
		}
		return runtime.StringValue{Value: result}, nil
	case "=":
		return boolResult(l.Value == r.Value)
	case "<>":
		return boolResult(l.Value != r.Value)
	case "<":
		return boolResult(l.Value < r.Value)
	case ">":
		return boolResult(l.Value > r.Value)
	case "<=":
		return boolResult(l.Value <= r.Value)
	case ">=":
		return boolResult(l.Value >= r.Value)
	default:
		return nil, mberrors.Err(mberrors.CodeTypeMismatch, 0, "string operand to "+op)
	}
}

func boolResult(b bool) (runtime.Value, error) {
	if b {
		return runtime.IntegerValue{Value: -1}, nil
	}
	return runtime.IntegerValue{Value: 0}, nil
}

func numericResult(f float64, isInt, isDouble bool) (runtime.Value, error) {
	switch {
	case isDouble:
		return runtime.DoubleValue{Value: f}, nil
	case isInt:
		return runtime.Coerce(runtime.DoubleValue{Value: f}, ast.TypeInteger)
	default:
		return runtime.SingleValue{Value: f}, nil
	}
}

func powFloat(base, exp float64) float64 {
	return mathPow(base, exp)
}
