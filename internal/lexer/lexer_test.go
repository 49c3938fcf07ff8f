package lexer

import "testing"

func TestLineNumberToken(t *testing.T) {
	l := New("10 PRINT 1\n20 END")

	tok := l.NextToken()
	if tok.Type != LINENUM || tok.IntValue != 10 {
		t.Fatalf("first token = %+v, want LINENUM 10", tok)
	}
	if tok := l.NextToken(); tok.Type != PRINT {
		t.Fatalf("second token = %+v, want PRINT", tok)
	}
}

func TestLineNumberOverMaximumIsLexError(t *testing.T) {
	l := New("65530 PRINT 1")
	l.NextToken()
	if len(l.Errors()) == 0 {
		t.Fatal("expected a lex error for line number 65530")
	}
}

func TestLineNumberAtMaximumIsValid(t *testing.T) {
	l := New("65529 PRINT 1")
	l.NextToken()
	if len(l.Errors()) != 0 {
		t.Fatalf("line number 65529 should be valid, got errors: %v", l.Errors())
	}
}

func TestIntegerLiterals(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		literal string
		intVal  int64
		suffix  byte
	}{
		{"decimal", "123", "123", 123, 0},
		{"decimal with percent suffix", "123%", "123%", 0, '%'},
		{"hex", "&HFF", "&HFF", 255, 0},
		{"hex lowercase prefix", "&hff", "&hff", 255, 0},
		{"octal with O", "&O17", "&O17", 15, 0},
		{"octal bare", "&17", "&17", 15, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// A line number first, so the literal is read mid-line rather
			// than as a line number.
			l := New("10 " + tt.input)
			l.NextToken() // LINENUM 10
			tok := l.NextToken()
			if tok.Type != INT {
				t.Fatalf("type = %v, want INT (literal=%q, errs=%v)", tok.Type, tok.Literal, l.Errors())
			}
			if tok.Literal != tt.literal {
				t.Errorf("literal = %q, want %q", tok.Literal, tt.literal)
			}
			if tt.suffix == 0 && tok.IntValue != tt.intVal {
				t.Errorf("IntValue = %d, want %d", tok.IntValue, tt.intVal)
			}
			if tok.Suffix != tt.suffix {
				t.Errorf("Suffix = %q, want %q", tok.Suffix, tt.suffix)
			}
		})
	}
}

func TestFloatLiterals(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		fval   float64
		suffix byte
	}{
		{"plain decimal", "3.14", 3.14, 0},
		{"leading dot", ".5", 0.5, 0},
		{"E exponent", "1.5E10", 1.5e10, 0},
		{"D exponent", "1.5D10", 1.5e10, 0},
		{"negative exponent", "2.5E-3", 2.5e-3, 0},
		{"hash suffix", "3.14#", 3.14, '#'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New("10 " + tt.input)
			l.NextToken() // LINENUM 10
			tok := l.NextToken()
			if tok.Type != FLOAT {
				t.Fatalf("type = %v, want FLOAT (errs=%v)", tok.Type, l.Errors())
			}
			if tok.FloatValue != tt.fval {
				t.Errorf("FloatValue = %v, want %v", tok.FloatValue, tt.fval)
			}
			if tok.Suffix != tt.suffix {
				t.Errorf("Suffix = %q, want %q", tok.Suffix, tt.suffix)
			}
		})
	}
}

func TestExponentWithoutDigitsIsNotConsumed(t *testing.T) {
	// "1E" with no following digit: E should not be swallowed into the
	// number, it should come back as the start of a separate identifier.
	l := New("10 1E")
	l.NextToken() // LINENUM 10
	tok := l.NextToken()
	if tok.Type != INT || tok.Literal != "1" {
		t.Fatalf("first token = %+v, want INT 1", tok)
	}
	tok = l.NextToken()
	if tok.Type != IDENT || tok.Literal != "E" {
		t.Fatalf("second token = %+v, want IDENT E", tok)
	}
}

func TestStringLiteral(t *testing.T) {
	l := New(`"HELLO, WORLD"`)
	tok := l.NextToken()
	if tok.Type != STRING {
		t.Fatalf("type = %v, want STRING", tok.Type)
	}
	if tok.StringValue != "HELLO, WORLD" {
		t.Errorf("StringValue = %q", tok.StringValue)
	}
	if len(l.Errors()) != 0 {
		t.Errorf("unexpected errors: %v", l.Errors())
	}
}

func TestUnterminatedStringIsLexError(t *testing.T) {
	l := New("\"ABC\nPRINT")
	l.NextToken()
	if len(l.Errors()) == 0 {
		t.Fatal("expected unterminated-string error")
	}
}

func TestIdentifierWithSuffix(t *testing.T) {
	tests := []struct {
		input  string
		name   string
		suffix byte
	}{
		{"A$", "A", '$'},
		{"COUNT%", "COUNT", '%'},
		{"X!", "X", '!'},
		{"D#", "D", '#'},
		{"PLAIN", "PLAIN", 0},
		{"A.B", "A.B", 0},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != IDENT {
			t.Fatalf("%q: type = %v, want IDENT", tt.input, tok.Type)
		}
		if tok.StringValue != tt.name {
			t.Errorf("%q: StringValue = %q, want %q", tt.input, tok.StringValue, tt.name)
		}
		if tok.Suffix != tt.suffix {
			t.Errorf("%q: Suffix = %q, want %q", tt.input, tok.Suffix, tt.suffix)
		}
	}
}

func TestKeywordsAreCaseInsensitive(t *testing.T) {
	for _, src := range []string{"PRINT", "print", "Print"} {
		l := New(src)
		tok := l.NextToken()
		if tok.Type != PRINT {
			t.Fatalf("%q: type = %v, want PRINT", src, tok.Type)
		}
	}
}

func TestQuestionMarkAliasesPrint(t *testing.T) {
	l := New("? 1")
	tok := l.NextToken()
	if tok.Type != PRINT {
		t.Fatalf("type = %v, want PRINT", tok.Type)
	}
}

func TestRemCommentsSkippedOrPreserved(t *testing.T) {
	l := New("10 REM this is ignored\n20 PRINT 1", WithPreserveComments(false))
	tok := l.NextToken()
	if tok.Type != LINENUM {
		t.Fatalf("expected LINENUM, got %v", tok.Type)
	}
	tok = l.NextToken()
	if tok.Type != LINENUM || tok.IntValue != 20 {
		t.Fatalf("REM line should be skipped entirely, got %+v", tok)
	}

	l2 := New("10 REM keep me", WithPreserveComments(true))
	l2.NextToken() // LINENUM
	tok = l2.NextToken()
	if tok.Type != COMMENT {
		t.Fatalf("type = %v, want COMMENT when preserving comments", tok.Type)
	}
}

func TestMultiCharOperators(t *testing.T) {
	tests := []struct {
		input string
		want  TokenType
	}{
		{"<=", LT_EQ},
		{">=", GT_EQ},
		{"<>", NOT_EQ},
		{"><", NOT_EQ},
		{"<", LT},
		{">", GT},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != tt.want {
			t.Errorf("%q: type = %v, want %v", tt.input, tok.Type, tt.want)
		}
	}
}

func TestKeywordCasePolicyForceUpper(t *testing.T) {
	l := New("print", WithKeywordCase(ForceUpper))
	tok := l.NextToken()
	if tok.Literal != "PRINT" {
		t.Errorf("Literal = %q, want PRINT", tok.Literal)
	}
}

func TestKeywordCasePolicyForceLower(t *testing.T) {
	l := New("PRINT", WithKeywordCase(ForceLower))
	tok := l.NextToken()
	if tok.Literal != "print" {
		t.Errorf("Literal = %q, want print", tok.Literal)
	}
}

func TestKeywordCasePolicyFirstWins(t *testing.T) {
	l := New("PRINT 1 : print 2", WithKeywordCase(FirstWins))
	first := l.NextToken()
	if first.Literal != "PRINT" {
		t.Fatalf("first Literal = %q, want PRINT", first.Literal)
	}
	// skip "1", ":"
	l.NextToken()
	l.NextToken()
	second := l.NextToken()
	if second.Literal != "PRINT" {
		t.Errorf("second occurrence should fold to first-seen spelling, got %q", second.Literal)
	}
}

func TestKeywordCasePolicyErrorOnMixedCase(t *testing.T) {
	l := New("PRINT 1 : print 2", WithKeywordCase(ErrorOnMixedCase))
	l.NextToken() // PRINT
	l.NextToken() // 1
	l.NextToken() // :
	l.NextToken() // print (mismatched case)
	if len(l.Errors()) == 0 {
		t.Fatal("expected a lex error for mismatched keyword casing")
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	l := New("10 PRINT 1")
	first := l.Peek(0)
	second := l.NextToken()
	if first.Type != second.Type || first.Literal != second.Literal {
		t.Fatalf("Peek(0) = %+v, NextToken() = %+v, want equal", first, second)
	}
	next := l.Peek(1)
	if next.Type != INT {
		t.Fatalf("Peek(1) = %+v, want INT (the token after PRINT)", next)
	}
}

func TestUnexpectedCharacterIsLexError(t *testing.T) {
	l := New("10 PRINT @")
	for {
		tok := l.NextToken()
		if tok.Type == EOF {
			break
		}
	}
	if len(l.Errors()) == 0 {
		t.Fatal("expected a lex error for '@'")
	}
}

func TestEOFAtEnd(t *testing.T) {
	l := New("")
	tok := l.NextToken()
	if tok.Type != EOF {
		t.Fatalf("type = %v, want EOF", tok.Type)
	}
}
