package semantic

import (
	"strings"

	"github.com/cwbudde/go-mbasic/internal/ast"
	"github.com/cwbudde/go-mbasic/internal/builtins"
	"github.com/cwbudde/go-mbasic/internal/runtime"
)

// constEnv maps a canonical variable key to its known compile-time-constant
// value, the running state ConstantFoldPass threads through a line.
type constEnv map[string]runtime.Value

// foldExpr attempts to evaluate expr at compile time using env for any
// identifier references and rep.isPureCall to decide whether a call may
// participate (§4.E constant folding's contract: literals, dominating
// runtime constants, and pure built-in calls only).
func foldExpr(expr ast.Expression, env constEnv, rep *Report) (runtime.Value, bool) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return runtime.IntegerValue{Value: e.Value}, true
	case *ast.FloatLiteral:
		if e.IsDouble {
			return runtime.DoubleValue{Value: e.Value}, true
		}
		return runtime.SingleValue{Value: e.Value}, true
	case *ast.StringLiteral:
		return runtime.StringValue{Value: e.Value}, true
	case *ast.Identifier:
		v, ok := env[varKey(e.Name, e.Suffix)]
		return v, ok
	case *ast.UnaryExpression:
		v, ok := foldExpr(e.Operand, env, rep)
		if !ok {
			return nil, false
		}
		return foldUnary(e.Operator, v)
	case *ast.BinaryExpression:
		l, ok := foldExpr(e.Left, env, rep)
		if !ok {
			return nil, false
		}
		r, ok := foldExpr(e.Right, env, rep)
		if !ok {
			return nil, false
		}
		return foldBinary(e.Operator, l, r)
	case *ast.IndexExpression:
		if !e.IsCall {
			return nil, false // array reads are never compile-time constant
		}
		name := e.Name + suffixStr(e.Suffix)
		if !rep.isPureCall(name) {
			return nil, false
		}
		info, ok := builtins.Default.Lookup(name)
		if !ok {
			return nil, false
		}
		args := make([]runtime.Value, 0, len(e.Args))
		for _, a := range e.Args {
			v, ok := foldExpr(a, env, rep)
			if !ok {
				return nil, false
			}
			args = append(args, v)
		}
		v, err := info.Func(&builtins.Context{}, args)
		if err != nil {
			return nil, false
		}
		return v, true
	default:
		return nil, false
	}
}

func foldUnary(op string, v runtime.Value) (runtime.Value, bool) {
	f, isNum := runtime.NumericOf(v)
	switch op {
	case "-":
		if !isNum {
			return nil, false
		}
		return wrapNumericLike(v, -f), true
	case "+":
		if !isNum {
			return nil, false
		}
		return v, true
	case "NOT":
		if !isNum {
			return nil, false
		}
		return runtime.IntegerValue{Value: ^int64(f)}, true
	}
	return nil, false
}

func wrapNumericLike(like runtime.Value, f float64) runtime.Value {
	switch like.(type) {
	case runtime.IntegerValue:
		return runtime.IntegerValue{Value: int64(f)}
	case runtime.DoubleValue:
		return runtime.DoubleValue{Value: f}
	default:
		return runtime.SingleValue{Value: f}
	}
}

func widestNumeric(a, b runtime.Value) func(float64) runtime.Value {
	_, aIsDouble := a.(runtime.DoubleValue)
	_, bIsDouble := b.(runtime.DoubleValue)
	if aIsDouble || bIsDouble {
		return func(f float64) runtime.Value { return runtime.DoubleValue{Value: f} }
	}
	_, aIsInt := a.(runtime.IntegerValue)
	_, bIsInt := b.(runtime.IntegerValue)
	if aIsInt && bIsInt {
		return func(f float64) runtime.Value { return runtime.IntegerValue{Value: int64(f)} }
	}
	return func(f float64) runtime.Value { return runtime.SingleValue{Value: f} }
}

func boolToValue(b bool) runtime.Value {
	if b {
		return runtime.IntegerValue{Value: -1}
	}
	return runtime.IntegerValue{Value: 0}
}

// foldBinary evaluates a binary operator over two already-folded values,
// per §4.D/§4.G's operator semantics (widest-operand-type arithmetic,
// MBASIC's -1/0 boolean convention, "+"-as-concatenation for strings).
func foldBinary(op string, l, r runtime.Value) (runtime.Value, bool) {
	ls, lIsStr := l.(runtime.StringValue)
	rs, rIsStr := r.(runtime.StringValue)
	if lIsStr || rIsStr {
		if !lIsStr || !rIsStr {
			return nil, false
		}
		switch op {
		case "+":
			return runtime.StringValue{Value: ls.Value + rs.Value}, true
		case "=":
			return boolToValue(ls.Value == rs.Value), true
		case "<>":
			return boolToValue(ls.Value != rs.Value), true
		case "<":
			return boolToValue(ls.Value < rs.Value), true
		case ">":
			return boolToValue(ls.Value > rs.Value), true
		case "<=":
			return boolToValue(ls.Value <= rs.Value), true
		case ">=":
			return boolToValue(ls.Value >= rs.Value), true
		}
		return nil, false
	}

	lf, ok1 := runtime.NumericOf(l)
	rf, ok2 := runtime.NumericOf(r)
	if !ok1 || !ok2 {
		return nil, false
	}
	wrap := widestNumeric(l, r)
	switch strings.ToUpper(op) {
	case "+":
		return wrap(lf + rf), true
	case "-":
		return wrap(lf - rf), true
	case "*":
		return wrap(lf * rf), true
	case "/":
		if rf == 0 {
			return nil, false
		}
		return runtime.SingleValue{Value: lf / rf}, true
	case "\\":
		if int64(rf) == 0 {
			return nil, false
		}
		return runtime.IntegerValue{Value: int64(lf) / int64(rf)}, true
	case "MOD":
		if int64(rf) == 0 {
			return nil, false
		}
		return runtime.IntegerValue{Value: int64(lf) % int64(rf)}, true
	case "^":
		return runtime.DoubleValue{Value: pow(lf, rf)}, true
	case "=":
		return boolToValue(lf == rf), true
	case "<>":
		return boolToValue(lf != rf), true
	case "<":
		return boolToValue(lf < rf), true
	case ">":
		return boolToValue(lf > rf), true
	case "<=":
		return boolToValue(lf <= rf), true
	case ">=":
		return boolToValue(lf >= rf), true
	case "AND":
		return runtime.IntegerValue{Value: int64(lf) & int64(rf)}, true
	case "OR":
		return runtime.IntegerValue{Value: int64(lf) | int64(rf)}, true
	case "XOR":
		return runtime.IntegerValue{Value: int64(lf) ^ int64(rf)}, true
	case "EQV":
		return runtime.IntegerValue{Value: ^(int64(lf) ^ int64(rf))}, true
	case "IMP":
		return runtime.IntegerValue{Value: (^int64(lf)) | int64(rf)}, true
	}
	return nil, false
}

func pow(a, b float64) float64 {
	r := 1.0
	if b == 0 {
		return 1
	}
	neg := b < 0
	n := b
	if neg {
		n = -n
	}
	for i := 0; i < int(n); i++ {
		r *= a
	}
	if neg {
		return 1 / r
	}
	return r
}
