package builtins

import (
	"math"
	"testing"

	mberrors "github.com/cwbudde/go-mbasic/internal/errors"
	"github.com/cwbudde/go-mbasic/internal/runtime"
)

func call(t *testing.T, name string, args ...runtime.Value) runtime.Value {
	t.Helper()
	info, ok := Default.Lookup(name)
	if !ok {
		t.Fatalf("builtin %q not registered", name)
	}
	v, err := info.Func(&Context{}, args)
	if err != nil {
		t.Fatalf("%s(%v): %v", name, args, err)
	}
	return v
}

func callErr(t *testing.T, name string, args ...runtime.Value) error {
	t.Helper()
	info, ok := Default.Lookup(name)
	if !ok {
		t.Fatalf("builtin %q not registered", name)
	}
	_, err := info.Func(&Context{}, args)
	return err
}

func numOf(t *testing.T, v runtime.Value) float64 {
	t.Helper()
	f, ok := runtime.NumericOf(v)
	if !ok {
		t.Fatalf("%+v is not numeric", v)
	}
	return f
}

func strOf(t *testing.T, v runtime.Value) string {
	t.Helper()
	sv, ok := v.(runtime.StringValue)
	if !ok {
		t.Fatalf("%+v is not a string", v)
	}
	return sv.Value
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	if _, ok := Default.Lookup("left$"); !ok {
		t.Fatal("expected lowercase lookup of LEFT$ to succeed")
	}
	if _, ok := Default.Lookup("LEFT$"); !ok {
		t.Fatal("expected uppercase lookup of LEFT$ to succeed")
	}
}

func TestRndIsRegisteredImpure(t *testing.T) {
	if Default.IsPure("RND") {
		t.Error("RND must be impure: it draws from mutable RNG state")
	}
	if !Default.IsPure("ABS") {
		t.Error("ABS is a pure function of its argument")
	}
	if Default.IsPure("NOSUCHFUNC") {
		t.Error("an unregistered name must default to impure")
	}
}

func TestAbsPreservesIntegerType(t *testing.T) {
	v := call(t, "ABS", runtime.IntegerValue{Value: -7})
	iv, ok := v.(runtime.IntegerValue)
	if !ok || iv.Value != 7 {
		t.Fatalf("ABS(-7%%) = %+v, want INTEGER 7", v)
	}
}

func TestFixTruncatesTowardZero(t *testing.T) {
	v := call(t, "FIX", runtime.SingleValue{Value: -0.5})
	if numOf(t, v) != 0 {
		t.Fatalf("FIX(-0.5) = %v, want 0", numOf(t, v))
	}
}

func TestIntFloors(t *testing.T) {
	v := call(t, "INT", runtime.SingleValue{Value: -0.5})
	if numOf(t, v) != -1 {
		t.Fatalf("INT(-0.5) = %v, want -1", numOf(t, v))
	}
}

func TestSgnSignsOfZeroPositiveNegative(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{{-5, -1}, {0, 0}, {5, 1}}
	for _, c := range cases {
		v := call(t, "SGN", runtime.SingleValue{Value: c.in})
		if numOf(t, v) != c.want {
			t.Errorf("SGN(%v) = %v, want %v", c.in, numOf(t, v), c.want)
		}
	}
}

func TestSqrOfNegativeIsIllegalFunctionCall(t *testing.T) {
	assertIllegalFunctionCall(t, callErr(t, "SQR", runtime.SingleValue{Value: -1}))
}

func TestLogOfNonPositiveIsIllegalFunctionCall(t *testing.T) {
	assertIllegalFunctionCall(t, callErr(t, "LOG", runtime.SingleValue{Value: 0}))
}

func TestSqrMatchesMathSqrt(t *testing.T) {
	v := call(t, "SQR", runtime.SingleValue{Value: 9})
	if numOf(t, v) != 3 {
		t.Fatalf("SQR(9) = %v, want 3", numOf(t, v))
	}
}

func TestLeftRightClampToStringLength(t *testing.T) {
	v := call(t, "LEFT$", runtime.StringValue{Value: "abc"}, runtime.IntegerValue{Value: 5})
	if strOf(t, v) != "abc" {
		t.Fatalf("LEFT$(\"abc\",5) = %q, want \"abc\"", strOf(t, v))
	}
	v = call(t, "RIGHT$", runtime.StringValue{Value: "abc"}, runtime.IntegerValue{Value: 5})
	if strOf(t, v) != "abc" {
		t.Fatalf("RIGHT$(\"abc\",5) = %q, want \"abc\"", strOf(t, v))
	}
}

func TestMidFunctionFormThreeAndTwoArg(t *testing.T) {
	v := call(t, "MID$", runtime.StringValue{Value: "HELLO WORLD"}, runtime.IntegerValue{Value: 7}, runtime.IntegerValue{Value: 5})
	if strOf(t, v) != "WORLD" {
		t.Fatalf("MID$(...,7,5) = %q, want WORLD", strOf(t, v))
	}
	v = call(t, "MID$", runtime.StringValue{Value: "HELLO WORLD"}, runtime.IntegerValue{Value: 7})
	if strOf(t, v) != "WORLD" {
		t.Fatalf("MID$(...,7) = %q, want WORLD", strOf(t, v))
	}
}

func TestMidStartPastEndReturnsEmptyString(t *testing.T) {
	v := call(t, "MID$", runtime.StringValue{Value: "abc"}, runtime.IntegerValue{Value: 99})
	if strOf(t, v) != "" {
		t.Fatalf("MID$ past end = %q, want empty", strOf(t, v))
	}
}

func TestInstrFindsSubstringOneBased(t *testing.T) {
	v := call(t, "INSTR", runtime.StringValue{Value: "HELLO WORLD"}, runtime.StringValue{Value: "WORLD"})
	if numOf(t, v) != 7 {
		t.Fatalf("INSTR = %v, want 7", numOf(t, v))
	}
}

func TestInstrNotFoundReturnsZero(t *testing.T) {
	v := call(t, "INSTR", runtime.StringValue{Value: "HELLO"}, runtime.StringValue{Value: "X"})
	if numOf(t, v) != 0 {
		t.Fatalf("INSTR = %v, want 0", numOf(t, v))
	}
}

func TestInstrWithStartArgument(t *testing.T) {
	v := call(t, "INSTR", runtime.IntegerValue{Value: 5}, runtime.StringValue{Value: "AAAAA"}, runtime.StringValue{Value: "A"})
	if numOf(t, v) != 5 {
		t.Fatalf("INSTR(5,\"AAAAA\",\"A\") = %v, want 5", numOf(t, v))
	}
}

func TestChrZeroProducesOneByteString(t *testing.T) {
	v := call(t, "CHR$", runtime.IntegerValue{Value: 0})
	s := strOf(t, v)
	if len(s) != 1 || s[0] != 0 {
		t.Fatalf("CHR$(0) = %q (len %d), want a one-byte zero string", s, len(s))
	}
}

func TestChrOutOfRangeIsIllegalFunctionCall(t *testing.T) {
	assertIllegalFunctionCall(t, callErr(t, "CHR$", runtime.IntegerValue{Value: 256}))
}

func TestAscOfEmptyStringIsIllegalFunctionCall(t *testing.T) {
	assertIllegalFunctionCall(t, callErr(t, "ASC", runtime.StringValue{Value: ""}))
}

func TestHexAndOctFormatUnsignedSixteenBit(t *testing.T) {
	v := call(t, "HEX$", runtime.IntegerValue{Value: -1})
	if strOf(t, v) != "ffff" {
		t.Fatalf("HEX$(-1) = %q, want ffff (16-bit two's complement)", strOf(t, v))
	}
	v = call(t, "OCT$", runtime.IntegerValue{Value: 8})
	if strOf(t, v) != "10" {
		t.Fatalf("OCT$(8) = %q, want \"10\"", strOf(t, v))
	}
}

func TestValParsesLeadingNumericPrefix(t *testing.T) {
	v := call(t, "VAL", runtime.StringValue{Value: "  12.5abc"})
	if numOf(t, v) != 12.5 {
		t.Fatalf("VAL(\"  12.5abc\") = %v, want 12.5", numOf(t, v))
	}
	v = call(t, "VAL", runtime.StringValue{Value: "notanumber"})
	if numOf(t, v) != 0 {
		t.Fatalf("VAL of a non-numeric string = %v, want 0", numOf(t, v))
	}
}

func TestStrDollarPrefixesNonNegativeWithSpace(t *testing.T) {
	v := call(t, "STR$", runtime.IntegerValue{Value: 5})
	if strOf(t, v) != " 5" {
		t.Fatalf("STR$(5) = %q, want \" 5\"", strOf(t, v))
	}
	v = call(t, "STR$", runtime.IntegerValue{Value: -5})
	if strOf(t, v) != "-5" {
		t.Fatalf("STR$(-5) = %q, want \"-5\"", strOf(t, v))
	}
}

func TestStringDollarRepeatsCharacter(t *testing.T) {
	v := call(t, "STRING$", runtime.IntegerValue{Value: 3}, runtime.StringValue{Value: "xy"})
	if strOf(t, v) != "xxx" {
		t.Fatalf("STRING$(3,\"xy\") = %q, want xxx (uses only the first byte)", strOf(t, v))
	}
	v = call(t, "STRING$", runtime.IntegerValue{Value: 3}, runtime.IntegerValue{Value: 65})
	if strOf(t, v) != "AAA" {
		t.Fatalf("STRING$(3,65) = %q, want AAA", strOf(t, v))
	}
}

func TestSpaceDollarRepeatsSpaces(t *testing.T) {
	v := call(t, "SPACE$", runtime.IntegerValue{Value: 3})
	if strOf(t, v) != "   " {
		t.Fatalf("SPACE$(3) = %q, want 3 spaces", strOf(t, v))
	}
}

func TestMKIAndCVIRoundTrip(t *testing.T) {
	packed := call(t, "MKI$", runtime.IntegerValue{Value: -1234})
	v := call(t, "CVI", packed)
	if numOf(t, v) != -1234 {
		t.Fatalf("CVI(MKI$(-1234)) = %v, want -1234", numOf(t, v))
	}
}

func TestMKSAndCVSRoundTrip(t *testing.T) {
	packed := call(t, "MKS$", runtime.SingleValue{Value: 3.5})
	v := call(t, "CVS", packed)
	if numOf(t, v) != 3.5 {
		t.Fatalf("CVS(MKS$(3.5)) = %v, want 3.5", numOf(t, v))
	}
}

func TestMKDAndCVDRoundTrip(t *testing.T) {
	packed := call(t, "MKD$", runtime.DoubleValue{Value: math.Pi})
	v := call(t, "CVD", packed)
	if numOf(t, v) != math.Pi {
		t.Fatalf("CVD(MKD$(pi)) = %v, want %v", numOf(t, v), math.Pi)
	}
}

func TestHardwareHooksWithoutHostAreIllegalFunctionCall(t *testing.T) {
	for _, name := range []string{"INP", "PEEK", "USR"} {
		assertIllegalFunctionCall(t, callErr(t, name, runtime.IntegerValue{Value: 0}))
	}
}

func TestFreAndVarptrReturnSyntheticValues(t *testing.T) {
	if v := call(t, "FRE", runtime.IntegerValue{Value: 0}); numOf(t, v) != 0 {
		t.Errorf("FRE(0) = %v, want 0 (no real memory model)", numOf(t, v))
	}
	if v := call(t, "VARPTR"); numOf(t, v) != 0 {
		t.Errorf("VARPTR() = %v, want a stable synthetic 0", numOf(t, v))
	}
}

func TestCIntRoundsAndOverflows(t *testing.T) {
	v := call(t, "CINT", runtime.SingleValue{Value: 3.5})
	if numOf(t, v) != 4 {
		t.Fatalf("CINT(3.5) = %v, want 4", numOf(t, v))
	}
	assertOverflow(t, callErr(t, "CINT", runtime.SingleValue{Value: 99999}))
}

func assertIllegalFunctionCall(t *testing.T, err error) {
	t.Helper()
	assertCode(t, err, mberrors.CodeIllegalFunctionCall)
}

func assertOverflow(t *testing.T, err error) {
	t.Helper()
	assertCode(t, err, mberrors.CodeOverflow)
}

func assertCode(t *testing.T, err error, want mberrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected an error with code %s, got nil", want)
	}
	rerr, ok := err.(*mberrors.RuntimeError)
	if !ok || rerr.Code != want {
		t.Fatalf("err = %v, want code %s", err, want)
	}
}
