package runtime

import (
	"github.com/cwbudde/go-mbasic/internal/ast"
	mberrors "github.com/cwbudde/go-mbasic/internal/errors"
)

const (
	intMin = -32768
	intMax = 32767
)

// Coerce converts v to tag, the way an MBASIC assignment does: numeric
// values convert freely between INTEGER/SINGLE/DOUBLE (rounding toward the
// nearest integer for INTEGER, raising OVERFLOW outside -32768..32767), but
// STRING and numeric never mix (TYPE_MISMATCH).
func Coerce(v Value, tag ast.TypeTag) (Value, error) {
	if v.Type() == tag {
		return v, nil
	}
	if tag == ast.TypeString {
		if _, ok := v.(StringValue); !ok {
			return nil, mberrors.Err(mberrors.CodeTypeMismatch, 0, "")
		}
		return v, nil
	}
	if _, ok := v.(StringValue); ok {
		return nil, mberrors.Err(mberrors.CodeTypeMismatch, 0, "")
	}
	f, _ := NumericOf(v)
	return fromFloat(f, tag)
}

// fromFloat builds a Value of the requested numeric tag from f, rounding
// and range-checking for INTEGER.
func fromFloat(f float64, tag ast.TypeTag) (Value, error) {
	switch tag {
	case ast.TypeInteger:
		r := roundHalfAwayFromZero(f)
		if r < intMin || r > intMax {
			return nil, mberrors.Err(mberrors.CodeOverflow, 0, "")
		}
		return IntegerValue{Value: int64(r)}, nil
	case ast.TypeDouble:
		return DoubleValue{Value: f}, nil
	default:
		return SingleValue{Value: f}, nil
	}
}

func roundHalfAwayFromZero(f float64) float64 {
	if f >= 0 {
		return float64(int64(f + 0.5))
	}
	return float64(int64(f - 0.5))
}
