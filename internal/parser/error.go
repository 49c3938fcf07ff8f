package parser

import (
	"fmt"

	"github.com/cwbudde/go-mbasic/internal/lexer"
)

// Error codes for machine-readable handling by callers (the analyzer's
// JSON report, REPL diagnostics).
const (
	ErrUnexpectedToken  = "unexpected_token"
	ErrNoPrefixParse    = "no_prefix_parse"
	ErrBadLineNumber    = "bad_line_number"
	ErrInvalidStatement = "invalid_statement"
	ErrUnterminated     = "unterminated_construct"
)

// ParserError is a single parse failure with position and a machine code.
type ParserError struct {
	Pos     lexer.Position
	Message string
	Code    string
}

func NewParserError(pos lexer.Position, message, code string) *ParserError {
	return &ParserError{Pos: pos, Message: message, Code: code}
}

func (e *ParserError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}
