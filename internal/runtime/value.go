// Package runtime holds the MBASIC interpreter's mutable state: values,
// variable and array stores, the program counter, the GOSUB/FOR/WHILE
// stacks, the DATA pool, and the open-file table (§3, §4.F).
package runtime

import (
	"strconv"

	"github.com/cwbudde/go-mbasic/internal/ast"
)

// Value is a runtime value. All four MBASIC value types implement it.
// This interface does not use interface{} anywhere in the runtime; every
// consumer switches over the concrete Value type.
type Value interface {
	Type() ast.TypeTag
	String() string
}

// IntegerValue is a 16-bit-range MBASIC INTEGER.
type IntegerValue struct{ Value int64 }

func (v IntegerValue) Type() ast.TypeTag { return ast.TypeInteger }
func (v IntegerValue) String() string    { return strconv.FormatInt(v.Value, 10) }

// SingleValue is a MBASIC single-precision (7 significant digit) float.
type SingleValue struct{ Value float64 }

func (v SingleValue) Type() ast.TypeTag { return ast.TypeSingle }
func (v SingleValue) String() string    { return FormatSingle(v.Value) }

// DoubleValue is a MBASIC double-precision (16 significant digit) float.
type DoubleValue struct{ Value float64 }

func (v DoubleValue) Type() ast.TypeTag { return ast.TypeDouble }
func (v DoubleValue) String() string    { return FormatDouble(v.Value) }

// StringValue is a MBASIC string, capped at 255 bytes absent a configured
// override (§4.H STRING_TOO_LONG).
type StringValue struct{ Value string }

func (v StringValue) Type() ast.TypeTag { return ast.TypeString }
func (v StringValue) String() string    { return v.Value }

// ZeroValue returns the default value of tag: 0 for numerics, "" for STRING.
func ZeroValue(tag ast.TypeTag) Value {
	switch tag {
	case ast.TypeInteger:
		return IntegerValue{}
	case ast.TypeDouble:
		return DoubleValue{}
	case ast.TypeString:
		return StringValue{}
	default:
		return SingleValue{}
	}
}

// NumericOf returns v's float64 value and true if v is numeric.
func NumericOf(v Value) (float64, bool) {
	switch n := v.(type) {
	case IntegerValue:
		return float64(n.Value), true
	case SingleValue:
		return n.Value, true
	case DoubleValue:
		return n.Value, true
	default:
		return 0, false
	}
}
