package builtins

import (
	"strconv"
	"strings"

	"github.com/cwbudde/go-mbasic/internal/runtime"
)

// RegisterString registers ASC, CHR$, HEX$, OCT$, INSTR, LEFT$, LEN, MID$,
// RIGHT$, SPACE$, SPC, STR$, STRING$, TAB, VAL (§4.G). All are pure.
func RegisterString(r *Registry) {
	r.Register("ASC", biAsc, CategoryString, true)
	r.Register("CHR$", biChr, CategoryString, true)
	r.Register("HEX$", biHex, CategoryString, true)
	r.Register("OCT$", biOct, CategoryString, true)
	r.Register("INSTR", biInstr, CategoryString, true)
	r.Register("LEFT$", biLeft, CategoryString, true)
	r.Register("LEN", biLen, CategoryString, true)
	r.Register("MID$", biMid, CategoryString, true)
	r.Register("RIGHT$", biRight, CategoryString, true)
	r.Register("SPACE$", biSpace, CategoryString, true)
	r.Register("SPC", biSpace, CategoryString, true)
	r.Register("STR$", biStr, CategoryString, true)
	r.Register("STRING$", biStringDollar, CategoryString, true)
	r.Register("TAB", biSpace, CategoryString, true)
	r.Register("VAL", biVal, CategoryString, true)
}

func biAsc(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	s, err := strArg(args, 0)
	if err != nil {
		return nil, err
	}
	if len(s) == 0 {
		return nil, illegal("ASC of empty string")
	}
	return integer(int(s[0])), nil
}

// biChr returns a one-byte string for x in [0,255]; §8 requires CHR$(0) to
// produce a one-byte zero string, not an empty one.
func biChr(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	x, err := intArg(args, 0)
	if err != nil {
		return nil, err
	}
	if x < 0 || x > 255 {
		return nil, illegal("CHR$ argument out of range")
	}
	return str(string([]byte{byte(x)})), nil
}

func biHex(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	x, err := intArg(args, 0)
	if err != nil {
		return nil, err
	}
	return str(strconv.FormatInt(int64(uint16(x)), 16)), nil
}

func biOct(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	x, err := intArg(args, 0)
	if err != nil {
		return nil, err
	}
	return str(strconv.FormatInt(int64(uint16(x)), 8)), nil
}

// biInstr is INSTR([start,] hay, needle); start defaults to 1, the
// classic one-based MBASIC offset. Returns 0 if not found.
func biInstr(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	start := 1
	hayIdx, needleIdx := 0, 1
	if len(args) == 3 {
		s, err := intArg(args, 0)
		if err != nil {
			return nil, err
		}
		start = s
		hayIdx, needleIdx = 1, 2
	}
	hay, err := strArg(args, hayIdx)
	if err != nil {
		return nil, err
	}
	needle, err := strArg(args, needleIdx)
	if err != nil {
		return nil, err
	}
	if start < 1 || start > len(hay)+1 {
		return nil, illegal("INSTR start out of range")
	}
	idx := strings.Index(hay[start-1:], needle)
	if idx < 0 {
		return integer(0), nil
	}
	return integer(start + idx), nil
}

// biLeft returns the leftmost n bytes, clamped to len(s) (§8: LEFT$("abc",5)="abc").
func biLeft(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	s, err := strArg(args, 0)
	if err != nil {
		return nil, err
	}
	n, err := intArg(args, 1)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, illegal("LEFT$ negative length")
	}
	if n > len(s) {
		n = len(s)
	}
	return str(s[:n]), nil
}

func biRight(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	s, err := strArg(args, 0)
	if err != nil {
		return nil, err
	}
	n, err := intArg(args, 1)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, illegal("RIGHT$ negative length")
	}
	if n > len(s) {
		n = len(s)
	}
	return str(s[len(s)-n:]), nil
}

func biLen(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	s, err := strArg(args, 0)
	if err != nil {
		return nil, err
	}
	return integer(len(s)), nil
}

// biMid is the function form of MID$; the LHS-of-= assignment form is
// handled separately in internal/interp (§4.G).
func biMid(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	s, err := strArg(args, 0)
	if err != nil {
		return nil, err
	}
	start, err := intArg(args, 1)
	if err != nil {
		return nil, err
	}
	if start < 1 {
		return nil, illegal("MID$ start out of range")
	}
	if start > len(s) {
		return str(""), nil
	}
	length := len(s) - start + 1
	if len(args) == 3 {
		n, err := intArg(args, 2)
		if err != nil {
			return nil, err
		}
		if n < length {
			length = n
		}
	}
	if length < 0 {
		length = 0
	}
	return str(s[start-1 : start-1+length]), nil
}

func biSpace(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	n, err := intArg(args, 0)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, illegal("negative repeat count")
	}
	return str(strings.Repeat(" ", n)), nil
}

func biStr(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	if len(args) == 0 {
		return nil, illegal("missing argument")
	}
	text := args[0].String()
	if f, ok := runtime.NumericOf(args[0]); ok && f >= 0 {
		text = " " + text
	}
	return str(text), nil
}

// biStringDollar is STRING$(n, x): n copies of the character x names, where
// x is either a character code (numeric) or the first byte of a string.
func biStringDollar(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	n, err := intArg(args, 0)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, illegal("negative repeat count")
	}
	var ch byte
	if s, ok := args[1].(runtime.StringValue); ok {
		if len(s.Value) == 0 {
			return nil, illegal("STRING$ of empty string")
		}
		ch = s.Value[0]
	} else {
		code, err := intArg(args, 1)
		if err != nil {
			return nil, err
		}
		if code < 0 || code > 255 {
			return nil, illegal("STRING$ code out of range")
		}
		ch = byte(code)
	}
	return str(strings.Repeat(string(ch), n)), nil
}

func biVal(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	s, err := strArg(args, 0)
	if err != nil {
		return nil, err
	}
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+' || c == 'e' || c == 'E' || c == 'd' || c == 'D' {
			end++
			continue
		}
		break
	}
	if end == 0 {
		return single(0), nil
	}
	text := strings.ReplaceAll(strings.ReplaceAll(s[:end], "d", "e"), "D", "E")
	f, perr := strconv.ParseFloat(text, 64)
	if perr != nil {
		return single(0), nil
	}
	return single(f), nil
}
