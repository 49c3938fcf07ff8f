package runtime

import (
	"strconv"
	"strings"

	"github.com/cwbudde/go-mbasic/internal/ast"
	mberrors "github.com/cwbudde/go-mbasic/internal/errors"
)

// dataEntry is one item in the flattened DATA pool, tagged with the line it
// came from so RESTORE <line> can find its starting offset.
type dataEntry struct {
	text    string
	quoted  bool
	line    int
}

// DataPool is the flattened sequence of DATA literals in source order,
// with a cursor that READ advances and RESTORE rewinds (§3, §4.F, §4.H).
type DataPool struct {
	entries []dataEntry
	cursor  int
}

// BuildDataPool walks prog's lines in ascending order and flattens every
// DataStatement's items into one pool, the way the lexer's source order
// determines READ sequencing regardless of control flow.
func BuildDataPool(prog *ast.Program) *DataPool {
	pool := &DataPool{}
	for _, line := range prog.Lines {
		for _, stmt := range line.Statements {
			ds, ok := stmt.(*ast.DataStatement)
			if !ok {
				continue
			}
			for _, item := range ds.Items {
				pool.entries = append(pool.entries, dataEntry{
					text:   item.Text,
					quoted: item.IsQuoted,
					line:   line.Number,
				})
			}
		}
	}
	return pool
}

// ReadNext consumes the next pool item, coercing it to tag. Numeric targets
// parse the raw text; string targets take it verbatim (trimmed of
// surrounding whitespace only when unquoted, matching classic MBASIC).
func (d *DataPool) ReadNext(tag ast.TypeTag) (Value, error) {
	if d.cursor >= len(d.entries) {
		return nil, mberrors.Err(mberrors.CodeOutOfData, 0, "")
	}
	e := d.entries[d.cursor]
	d.cursor++

	text := e.text
	if !e.quoted {
		text = strings.TrimSpace(text)
	}
	if tag == ast.TypeString {
		return StringValue{Value: text}, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, mberrors.Err(mberrors.CodeTypeMismatch, e.line, text)
	}
	return fromFloat(f, tag)
}

// Restore rewinds the cursor to the start of the pool.
func (d *DataPool) Restore() {
	d.cursor = 0
}

// RestoreToLine rewinds the cursor to the first DATA item contributed by
// line, or returns UNDEFINED_LINE if line contributed nothing.
func (d *DataPool) RestoreToLine(line int) error {
	for i, e := range d.entries {
		if e.line == line {
			d.cursor = i
			return nil
		}
	}
	return mberrors.Err(mberrors.CodeUndefinedLine, line, "")
}
