package interp

import (
	"strconv"
	"strings"

	"github.com/cwbudde/go-mbasic/internal/ast"
	mberrors "github.com/cwbudde/go-mbasic/internal/errors"
	"github.com/cwbudde/go-mbasic/internal/runtime"
)

// formatUsing implements PRINT USING (§4.G): the format expression is
// evaluated once to a string, then scanned left to right for fields,
// consuming one PrintItem value per numeric/string field. Supported
// fields: "#" digit runs (with an optional "." and leading "," digit
// grouping), "$$" floating dollar sign, "**" asterisk fill, a trailing
// "+"/"-" sign, "!" (first character of a string), "\...\" (a
// fixed-width string field, width = backslash span + 2), and "&" (the
// whole string). Anything else in the format string is literal.
func (in *Interpreter) formatUsing(s *ast.PrintStatement) (string, *mberrors.RuntimeError) {
	fv, err := in.Eval(s.UsingFormat)
	if err != nil {
		return "", asRuntimeError(err)
	}
	fs, ok := fv.(runtime.StringValue)
	if !ok {
		return "", mberrors.Err(mberrors.CodeTypeMismatch, 0, "PRINT USING format")
	}
	format := fs.Value

	values := make([]runtime.Value, len(s.Items))
	for i, item := range s.Items {
		v, err := in.Eval(item.Expr)
		if err != nil {
			return "", asRuntimeError(err)
		}
		values[i] = v
	}

	var out strings.Builder
	vi := 0
	i := 0
	for i < len(format) {
		c := format[i]
		switch {
		case c == '#' || c == '.':
			field, n := scanNumericField(format[i:])
			i += n
			if vi >= len(values) {
				return "", mberrors.Err(mberrors.CodeIllegalFunctionCall, 0, "too few PRINT USING arguments")
			}
			out.WriteString(formatNumericField(field, values[vi]))
			vi++
		case c == '$' && i+1 < len(format) && format[i+1] == '$':
			field, n := scanNumericField(format[i:])
			i += n
			if vi >= len(values) {
				return "", mberrors.Err(mberrors.CodeIllegalFunctionCall, 0, "too few PRINT USING arguments")
			}
			out.WriteString(formatNumericField(field, values[vi]))
			vi++
		case c == '*' && i+1 < len(format) && format[i+1] == '*':
			field, n := scanNumericField(format[i:])
			i += n
			if vi >= len(values) {
				return "", mberrors.Err(mberrors.CodeIllegalFunctionCall, 0, "too few PRINT USING arguments")
			}
			out.WriteString(formatNumericField(field, values[vi]))
			vi++
		case c == '!':
			if vi >= len(values) {
				return "", mberrors.Err(mberrors.CodeIllegalFunctionCall, 0, "too few PRINT USING arguments")
			}
			sv, _ := values[vi].(runtime.StringValue)
			if len(sv.Value) > 0 {
				out.WriteByte(sv.Value[0])
			}
			vi++
			i++
		case c == '\\':
			end := strings.IndexByte(format[i+1:], '\\')
			if end < 0 {
				out.WriteByte(c)
				i++
				continue
			}
			width := end + 2 // backslash pair plus the characters between
			if vi >= len(values) {
				return "", mberrors.Err(mberrors.CodeIllegalFunctionCall, 0, "too few PRINT USING arguments")
			}
			sv, _ := values[vi].(runtime.StringValue)
			out.WriteString(padOrTrunc(sv.Value, width))
			vi++
			i += end + 2
		case c == '&':
			if vi >= len(values) {
				return "", mberrors.Err(mberrors.CodeIllegalFunctionCall, 0, "too few PRINT USING arguments")
			}
			sv, _ := values[vi].(runtime.StringValue)
			out.WriteString(sv.Value)
			vi++
			i++
		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String(), nil
}

// numericField describes one scanned "#"-family format field.
type numericField struct {
	digitsBefore int
	digitsAfter  int
	hasDot       bool
	comma        bool
	dollarSign   bool
	starFill     bool
	sign         byte // 0, '+', or '-'
}

func scanNumericField(s string) (numericField, int) {
	var f numericField
	i := 0
	if strings.HasPrefix(s, "$$") {
		f.dollarSign = true
		i += 2
	} else if strings.HasPrefix(s, "**") {
		f.starFill = true
		i += 2
	}
	for i < len(s) {
		switch s[i] {
		case '#':
			if f.hasDot {
				f.digitsAfter++
			} else {
				f.digitsBefore++
			}
			i++
		case ',':
			f.comma = true
			i++
		case '.':
			f.hasDot = true
			i++
		default:
			goto done
		}
	}
done:
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		f.sign = s[i]
		i++
	}
	return f, i
}

func formatNumericField(f numericField, v runtime.Value) string {
	num, ok := runtime.NumericOf(v)
	if !ok {
		return "?TYPE"
	}
	neg := num < 0
	if neg {
		num = -num
	}
	body := strconv.FormatFloat(num, 'f', f.digitsAfter, 64)
	if f.comma {
		body = insertThousands(body)
	}
	width := f.digitsBefore + f.digitsAfter
	if f.hasDot {
		width++
	}
	if f.dollarSign {
		width++
	}
	pad := width - len(body)
	fillChar := byte(' ')
	if f.starFill {
		fillChar = '*'
	}
	var sb strings.Builder
	if pad > 0 {
		sb.WriteString(strings.Repeat(string(fillChar), pad))
	}
	if f.dollarSign {
		sb.WriteByte('$')
	}
	sb.WriteString(body)
	switch {
	case f.sign == '+':
		if neg {
			sb.WriteByte('-')
		} else {
			sb.WriteByte('+')
		}
	case f.sign == '-':
		if neg {
			sb.WriteByte('-')
		} else {
			sb.WriteByte(' ')
		}
	case neg:
		// no sign slot requested but the value is negative: MBASIC still
		// shows it, prefixed rather than silently dropped.
		return "-" + sb.String()
	}
	return sb.String()
}

func insertThousands(s string) string {
	dot := strings.IndexByte(s, '.')
	intPart := s
	frac := ""
	if dot >= 0 {
		intPart, frac = s[:dot], s[dot:]
	}
	for i := len(intPart) - 3; i > 0; i -= 3 {
		intPart = intPart[:i] + "," + intPart[i:]
	}
	return intPart + frac
}

func padOrTrunc(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}
