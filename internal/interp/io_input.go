package interp

import (
	"strconv"
	"strings"

	"github.com/cwbudde/go-mbasic/internal/ast"
	mberrors "github.com/cwbudde/go-mbasic/internal/errors"
	"github.com/cwbudde/go-mbasic/internal/runtime"
)

// execInput implements INPUT, LINE INPUT, INPUT#, and LINE INPUT# (§4.G,
// §4.H). Console INPUT re-prompts with "?Redo from start" when a value
// can't be coerced to its target's type, matching classic MBASIC; file
// INPUT has no such retry since there's no user to correct.
func (in *Interpreter) execInput(s *ast.InputStatement) (TickStatus, bool, *mberrors.RuntimeError) {
	if s.File != nil {
		return in.execInputFile(s)
	}
	if s.IsLineInput {
		return in.execLineInputConsole(s)
	}

	prompt := "? "
	if s.Prompt != nil {
		prompt = s.Prompt.Value
		if !s.PromptNoMark {
			prompt += "? "
		} else {
			prompt += " "
		}
	}

	for {
		line, err := in.Console.Input(prompt)
		if err != nil {
			return TickStatus{}, false, mberrors.Err(mberrors.CodeInputPastEnd, 0, err.Error())
		}
		fields := splitInputFields(line)
		if len(fields) != len(s.Targets) {
			in.Console.Error("?Redo from start")
			continue
		}
		if in.assignInputFields(s.Targets, fields) {
			return awaitingInput(prompt), false, nil
		}
		in.Console.Error("?Redo from start")
	}
}

// assignInputFields tries to coerce fields into targets; returns false
// (leaving no partial state changed beyond what already succeeded) on
// the first type mismatch, the signal to retry the whole INPUT.
func (in *Interpreter) assignInputFields(targets []ast.Expression, fields []string) bool {
	for i, t := range targets {
		val, ok := coerceInputField(fields[i], targetTag(t, in))
		if !ok {
			return false
		}
		if err := in.assign(t, val); err != nil {
			return false
		}
	}
	return true
}

func targetTag(t ast.Expression, in *Interpreter) ast.TypeTag {
	switch e := t.(type) {
	case *ast.Identifier:
		return in.State.Store.EffectiveTag(e.Name, e.Suffix)
	case *ast.IndexExpression:
		return in.State.Store.EffectiveTag(e.Name, e.Suffix)
	default:
		return ast.TypeSingle
	}
}

func coerceInputField(field string, tag ast.TypeTag) (runtime.Value, bool) {
	field = strings.TrimSpace(field)
	if tag == ast.TypeString {
		return runtime.StringValue{Value: trimQuotes(field)}, true
	}
	f, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return nil, false
	}
	v, cerr := runtime.Coerce(runtime.DoubleValue{Value: f}, tag)
	if cerr != nil {
		return nil, false
	}
	return v, true
}

func trimQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// splitInputFields splits one INPUT line on commas, respecting a quoted
// leading string per field (classic MBASIC's comma-separated INPUT).
func splitInputFields(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
			cur.WriteByte(c)
		case c == ',' && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	fields = append(fields, cur.String())
	return fields
}

func (in *Interpreter) execLineInputConsole(s *ast.InputStatement) (TickStatus, bool, *mberrors.RuntimeError) {
	prompt := ""
	if s.Prompt != nil {
		prompt = s.Prompt.Value
	}
	line, err := in.Console.Input(prompt)
	if err != nil {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeInputPastEnd, 0, err.Error())
	}
	if len(s.Targets) != 1 {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeSyntaxError, 0, "LINE INPUT takes one target")
	}
	if err := in.assign(s.Targets[0], runtime.StringValue{Value: line}); err != nil {
		return TickStatus{}, false, asRuntimeError(err)
	}
	return awaitingInput(prompt), false, nil
}

func (in *Interpreter) execInputFile(s *ast.InputStatement) (TickStatus, bool, *mberrors.RuntimeError) {
	fnum, ferr := in.evalFileNumber(s.File)
	if ferr != nil {
		return TickStatus{}, false, ferr
	}
	entry, gerr := in.State.Files.Get(fnum)
	if gerr != nil {
		return TickStatus{}, false, gerr.(*mberrors.RuntimeError)
	}
	handle, ok := entry.Handle.(interface {
		ReadRecord(n int) ([]byte, error)
		Eof() bool
	})
	if !ok {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeBadFileNumber, 0, "")
	}
	if handle.Eof() {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeInputPastEnd, 0, "")
	}
	data, rerr := handle.ReadRecord(0)
	if rerr != nil {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeInputPastEnd, 0, rerr.Error())
	}
	line := string(data)

	if s.IsLineInput {
		if err := in.assign(s.Targets[0], runtime.StringValue{Value: line}); err != nil {
			return TickStatus{}, false, asRuntimeError(err)
		}
		return running(), false, nil
	}

	fields := splitInputFields(line)
	if len(fields) != len(s.Targets) {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeTypeMismatch, 0, "field count")
	}
	if !in.assignInputFields(s.Targets, fields) {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeTypeMismatch, 0, "INPUT# field")
	}
	return running(), false, nil
}
