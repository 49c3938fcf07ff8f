package interp

import (
	"github.com/cwbudde/go-mbasic/internal/ast"
	mberrors "github.com/cwbudde/go-mbasic/internal/errors"
	"github.com/cwbudde/go-mbasic/internal/runtime"
)

// evalStringArg evaluates expr and requires it to be a string, the shape
// every filename/pattern argument in this file takes.
func (in *Interpreter) evalStringArg(expr ast.Expression) (string, *mberrors.RuntimeError) {
	v, err := in.Eval(expr)
	if err != nil {
		return "", asRuntimeError(err)
	}
	sv, ok := v.(runtime.StringValue)
	if !ok {
		return "", mberrors.Err(mberrors.CodeTypeMismatch, 0, "")
	}
	return sv.Value, nil
}

// commonSnapshot captures the current values of every COMMON-declared
// variable, for CHAIN to carry across the program swap (§4.H, the
// preserved-COMMON decision recorded in the design ledger).
type commonSnapshot struct {
	name   string
	suffix byte
	value  runtime.Value
}

func splitSuffix(name string) (string, byte) {
	if n := len(name); n > 0 {
		switch name[n-1] {
		case '%', '!', '#', '$':
			return name[:n-1], name[n-1]
		}
	}
	return name, 0
}

func (in *Interpreter) snapshotCommon() []commonSnapshot {
	out := make([]commonSnapshot, 0, len(in.State.CommonVars))
	for _, n := range in.State.CommonVars {
		base, suffix := splitSuffix(n)
		out = append(out, commonSnapshot{name: base, suffix: suffix, value: in.State.Store.GetVariable(base, suffix)})
	}
	return out
}

func (in *Interpreter) restoreCommon(snap []commonSnapshot) {
	for _, c := range snap {
		in.State.Store.SetVariable(c.name, c.suffix, c.value)
	}
}

// execChain implements CHAIN/CHAIN MERGE (§4.H): loads a new program,
// keeping COMMON variables and (for MERGE) the rest of the current
// program's line table, then starts execution at Line or the new
// program's first line.
func (in *Interpreter) execChain(s *ast.ChainStatement) (TickStatus, bool, *mberrors.RuntimeError) {
	if in.Host == nil {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeIllegalFunctionCall, 0, "no host configured")
	}
	name, nerr := in.evalStringArg(s.FileName)
	if nerr != nil {
		return TickStatus{}, false, nerr
	}
	loaded, lerr := in.Host.LoadProgram(name)
	if lerr != nil {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeFileNotFound, 0, lerr.Error())
	}

	snap := in.snapshotCommon()
	newProgram := loaded
	if s.Merge {
		newProgram = in.State.Program
		for _, l := range loaded.Lines {
			newProgram.AddOrReplaceLine(l)
		}
	}
	if s.Delete != nil {
		for n := s.Delete[0]; n <= s.Delete[1]; n++ {
			newProgram.DeleteLine(n)
		}
	}

	in.State.Clear(in.State.StringSpaceLimit)
	in.State.Program = newProgram
	in.State.Data = runtime.BuildDataPool(newProgram)
	in.restoreCommon(snap)

	startLine := firstLineNumber(newProgram)
	if s.Line != nil {
		v, err := in.Eval(s.Line)
		if err != nil {
			return TickStatus{}, false, asRuntimeError(err)
		}
		if f, ok := runtime.NumericOf(v); ok {
			startLine = int(f)
		}
	}
	in.State.PC.Current = runtime.PC{Line: startLine, Stmt: 0}
	in.State.PC.State = runtime.Sequential
	return running(), true, nil
}

func firstLineNumber(p *ast.Program) int {
	if len(p.Lines) == 0 {
		return 0
	}
	return p.Lines[0].Number
}

// execRun implements RUN, RUN line and RUN "file" (§4.H): a full reset, no
// COMMON preservation (that is CHAIN's job), optionally loading a
// different program first.
func (in *Interpreter) execRun(s *ast.RunStatement) (TickStatus, bool, *mberrors.RuntimeError) {
	if s.FileName != nil {
		if in.Host == nil {
			return TickStatus{}, false, mberrors.Err(mberrors.CodeIllegalFunctionCall, 0, "no host configured")
		}
		name, nerr := in.evalStringArg(s.FileName)
		if nerr != nil {
			return TickStatus{}, false, nerr
		}
		loaded, lerr := in.Host.LoadProgram(name)
		if lerr != nil {
			return TickStatus{}, false, mberrors.Err(mberrors.CodeFileNotFound, 0, lerr.Error())
		}
		in.State.Clear(0)
		in.State.Program = loaded
		in.State.Data = runtime.BuildDataPool(loaded)
	} else {
		in.State.Clear(in.State.StringSpaceLimit)
		// The program may have been edited since Data was last built
		// (a line added/replaced/deleted between RUNs), so rebuild it
		// from the current line table rather than reusing a stale pool.
		in.State.Data = runtime.BuildDataPool(in.State.Program)
	}

	startLine := firstLineNumber(in.State.Program)
	if s.Line != nil {
		v, err := in.Eval(s.Line)
		if err != nil {
			return TickStatus{}, false, asRuntimeError(err)
		}
		if f, ok := runtime.NumericOf(v); ok {
			startLine = int(f)
		}
	}
	in.State.PC.Current = runtime.PC{Line: startLine, Stmt: 0}
	in.State.PC.State = runtime.Sequential
	return running(), true, nil
}

// execList implements LIST/LLIST [from][-to] by writing each line's
// reconstructed source through Console (§4.J). LLIST differs only in
// targeting the printer on a real host; here both just write to Console.
func (in *Interpreter) execList(from, to int, hasFrom, hasTo bool, _ bool) (TickStatus, bool, *mberrors.RuntimeError) {
	for _, l := range in.State.Program.Lines {
		if hasFrom && l.Number < from {
			continue
		}
		if hasTo && l.Number > to {
			continue
		}
		in.Console.Output(l.String(), "\n")
	}
	return running(), false, nil
}

func (in *Interpreter) execLoad(s *ast.LoadStatement) (TickStatus, bool, *mberrors.RuntimeError) {
	if in.Host == nil {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeIllegalFunctionCall, 0, "no host configured")
	}
	name, nerr := in.evalStringArg(s.FileName)
	if nerr != nil {
		return TickStatus{}, false, nerr
	}
	loaded, lerr := in.Host.LoadProgram(name)
	if lerr != nil {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeFileNotFound, 0, lerr.Error())
	}
	in.State.Clear(0)
	in.State.Program = loaded
	in.State.PC.Current = runtime.PC{Line: firstLineNumber(loaded), Stmt: 0}
	in.State.PC.State = runtime.Sequential
	in.State.PC.Halt()
	return halted(HaltNew), true, nil
}

func (in *Interpreter) execSave(s *ast.SaveStatement) (TickStatus, bool, *mberrors.RuntimeError) {
	if in.Files == nil {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeFileNotFound, 0, "no filesystem configured")
	}
	name, nerr := in.evalStringArg(s.FileName)
	if nerr != nil {
		return TickStatus{}, false, nerr
	}
	if werr := in.Files.SaveFile(name, in.State.Program.String()); werr != nil {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeDiskFull, 0, werr.Error())
	}
	return running(), false, nil
}

func (in *Interpreter) execMerge(s *ast.MergeStatement) (TickStatus, bool, *mberrors.RuntimeError) {
	if in.Host == nil {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeIllegalFunctionCall, 0, "no host configured")
	}
	name, nerr := in.evalStringArg(s.FileName)
	if nerr != nil {
		return TickStatus{}, false, nerr
	}
	loaded, lerr := in.Host.LoadProgram(name)
	if lerr != nil {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeFileNotFound, 0, lerr.Error())
	}
	for _, l := range loaded.Lines {
		in.State.Program.AddOrReplaceLine(l)
	}
	return running(), false, nil
}

func (in *Interpreter) execKill(s *ast.KillStatement) (TickStatus, bool, *mberrors.RuntimeError) {
	if in.Files == nil {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeFileNotFound, 0, "no filesystem configured")
	}
	name, nerr := in.evalStringArg(s.FileName)
	if nerr != nil {
		return TickStatus{}, false, nerr
	}
	if derr := in.Files.DeleteFile(name); derr != nil {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeFileNotFound, 0, derr.Error())
	}
	return running(), false, nil
}

func (in *Interpreter) execName(s *ast.NameStatement) (TickStatus, bool, *mberrors.RuntimeError) {
	if in.Files == nil {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeFileNotFound, 0, "no filesystem configured")
	}
	oldName, oerr := in.evalStringArg(s.OldName)
	if oerr != nil {
		return TickStatus{}, false, oerr
	}
	newName, nerr := in.evalStringArg(s.NewName)
	if nerr != nil {
		return TickStatus{}, false, nerr
	}
	if rerr := in.Files.RenameFile(oldName, newName); rerr != nil {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeFileNotFound, 0, rerr.Error())
	}
	return running(), false, nil
}

func (in *Interpreter) execFiles(s *ast.FilesStatement) (TickStatus, bool, *mberrors.RuntimeError) {
	if in.Files == nil {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeFileNotFound, 0, "no filesystem configured")
	}
	pattern := "*.*"
	if s.Pattern != nil {
		p, perr := in.evalStringArg(s.Pattern)
		if perr != nil {
			return TickStatus{}, false, perr
		}
		pattern = p
	}
	entries, lerr := in.Files.ListFiles(pattern)
	if lerr != nil {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeFileNotFound, 0, lerr.Error())
	}
	for _, e := range entries {
		in.Console.Output(e.Name, "\n")
	}
	return running(), false, nil
}
