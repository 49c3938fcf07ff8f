package interp

import (
	"strconv"
	"strings"

	"github.com/cwbudde/go-mbasic/internal/ast"
	mberrors "github.com/cwbudde/go-mbasic/internal/errors"
	"github.com/cwbudde/go-mbasic/internal/runtime"
)

const printZoneWidth = 14

// execPrint implements PRINT/LPRINT/PRINT#/PRINT USING (§4.G): comma
// advances to the next 14-column print zone, semicolon leaves the column
// where it is, and a trailing separator suppresses the newline. LPRINT
// shares this logic and, like PRINT, writes to the console; PRINT# shares
// it too, differing only in writing to a file.
func (in *Interpreter) execPrint(s *ast.PrintStatement) (TickStatus, bool, *mberrors.RuntimeError) {
	var sb strings.Builder
	if s.UsingFormat != nil {
		text, err := in.formatUsing(s)
		if err != nil {
			return TickStatus{}, false, err
		}
		sb.WriteString(text)
	} else {
		for _, item := range s.Items {
			v, err := in.Eval(item.Expr)
			if err != nil {
				return TickStatus{}, false, asRuntimeError(err)
			}
			sb.WriteString(printRepr(v))
			switch item.Sep {
			case ",":
				sb.WriteString(in.zonePadding(sb.String()))
			case ";":
				// no padding
			}
		}
	}

	suppress := s.SuppressNewline
	end := "\n"
	if suppress {
		end = ""
	}

	if s.File != nil {
		return in.writeToFile(s.File, sb.String()+end)
	}
	in.printConsole(sb.String(), end)
	return running(), false, nil
}

// printRepr renders v the way PRINT does: numerics get a leading space
// for a non-negative sign slot and a trailing space, strings print bare.
func printRepr(v runtime.Value) string {
	if sv, ok := v.(runtime.StringValue); ok {
		return sv.Value
	}
	s := v.String()
	if !strings.HasPrefix(s, "-") {
		s = " " + s
	}
	return s + " "
}

// zonePadding returns the spaces needed to reach the next print-zone
// boundary given the text accumulated so far on this PRINT statement.
func (in *Interpreter) zonePadding(soFar string) string {
	col := in.State.Column + visibleLen(soFar)
	next := ((col / printZoneWidth) + 1) * printZoneWidth
	return strings.Repeat(" ", next-col)
}

func visibleLen(s string) int {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return len(s) - i - 1
	}
	return len(s)
}

func (in *Interpreter) printConsole(text, end string) {
	in.Console.Output(text, end)
	if i := strings.LastIndexByte(text+end, '\n'); i >= 0 {
		in.State.Column = len(text+end) - i - 1
	} else {
		in.State.Column += len(text) + len(end)
	}
}

// execWrite implements WRITE/WRITE#: comma-separated values, strings
// quoted, numerics bare (§4.G).
func (in *Interpreter) execWrite(s *ast.WriteStatement) (TickStatus, bool, *mberrors.RuntimeError) {
	parts := make([]string, len(s.Items))
	for i, item := range s.Items {
		v, err := in.Eval(item)
		if err != nil {
			return TickStatus{}, false, asRuntimeError(err)
		}
		if sv, ok := v.(runtime.StringValue); ok {
			parts[i] = strconv.Quote(sv.Value)
		} else {
			parts[i] = v.String()
		}
	}
	line := strings.Join(parts, ",") + "\n"
	if s.File != nil {
		return in.writeToFile(s.File, line)
	}
	in.printConsole(line, "")
	return running(), false, nil
}

func (in *Interpreter) writeToFile(fileExpr ast.Expression, text string) (TickStatus, bool, *mberrors.RuntimeError) {
	fnum, err := in.evalFileNumber(fileExpr)
	if err != nil {
		return TickStatus{}, false, err
	}
	entry, gerr := in.State.Files.Get(fnum)
	if gerr != nil {
		return TickStatus{}, false, gerr.(*mberrors.RuntimeError)
	}
	handle, ok := entry.Handle.(interface {
		WriteRecord(n int, data []byte) error
	})
	if !ok {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeBadFileNumber, 0, "")
	}
	if werr := handle.WriteRecord(0, []byte(text)); werr != nil {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeDiskFull, 0, werr.Error())
	}
	return running(), false, nil
}

func (in *Interpreter) evalFileNumber(e ast.Expression) (int, *mberrors.RuntimeError) {
	v, err := in.Eval(e)
	if err != nil {
		return 0, asRuntimeError(err)
	}
	f, ok := runtime.NumericOf(v)
	if !ok {
		return 0, mberrors.Err(mberrors.CodeTypeMismatch, 0, "")
	}
	return int(f), nil
}
