package runtime

import "testing"

func TestValueTypeAndString(t *testing.T) {
	tests := []struct {
		name    string
		val     Value
		wantTag string
		wantStr string
	}{
		{"integer", IntegerValue{Value: 42}, "INTEGER", "42"},
		{"negative integer", IntegerValue{Value: -7}, "INTEGER", "-7"},
		{"single", SingleValue{Value: 3.5}, "SINGLE", "3.5"},
		{"double", DoubleValue{Value: 3.5}, "DOUBLE", "3.5"},
		{"string", StringValue{Value: "HELLO"}, "STRING", "HELLO"},
		{"empty string", StringValue{Value: ""}, "STRING", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.val.Type().String(); got != tt.wantTag {
				t.Errorf("Type() = %v, want %v", got, tt.wantTag)
			}
			if got := tt.val.String(); got != tt.wantStr {
				t.Errorf("String() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestNumericOf(t *testing.T) {
	if f, ok := NumericOf(IntegerValue{Value: 5}); !ok || f != 5 {
		t.Errorf("NumericOf(IntegerValue{5}) = %v, %v", f, ok)
	}
	if _, ok := NumericOf(StringValue{Value: "x"}); ok {
		t.Errorf("NumericOf(StringValue) should not be numeric")
	}
}

func TestFormatSingleAndDouble(t *testing.T) {
	tests := []struct {
		f    float64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{3.14, "3.14"},
		{-2.5, "-2.5"},
	}
	for _, tt := range tests {
		if got := FormatSingle(tt.f); got != tt.want {
			t.Errorf("FormatSingle(%v) = %q, want %q", tt.f, got, tt.want)
		}
		if got := FormatDouble(tt.f); got != tt.want {
			t.Errorf("FormatDouble(%v) = %q, want %q", tt.f, got, tt.want)
		}
	}

	if got := FormatSingle(123456789); got == "" {
		t.Error("FormatSingle of a large number should not be empty")
	}
}
