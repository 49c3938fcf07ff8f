package interp

import (
	"strings"

	"github.com/cwbudde/go-mbasic/internal/ast"
	mberrors "github.com/cwbudde/go-mbasic/internal/errors"
	"github.com/cwbudde/go-mbasic/internal/runtime"
)

// execOpen implements OPEN "name" FOR <mode> AS #n [LEN=n] (§4.H), routing
// to the driver-supplied FileSystem for the actual stream.
func (in *Interpreter) execOpen(s *ast.OpenStatement) (TickStatus, bool, *mberrors.RuntimeError) {
	if in.Files == nil {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeFileNotFound, 0, "no filesystem configured")
	}
	nameV, err := in.Eval(s.FileName)
	if err != nil {
		return TickStatus{}, false, asRuntimeError(err)
	}
	name, ok := nameV.(runtime.StringValue)
	if !ok {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeTypeMismatch, 0, "")
	}
	fnum, ferr := in.evalFileNumber(s.FileNumber)
	if ferr != nil {
		return TickStatus{}, false, ferr
	}
	recLen := 0
	if s.RecordLen != nil {
		n, rerr := in.evalFileNumber(s.RecordLen)
		if rerr != nil {
			return TickStatus{}, false, rerr
		}
		recLen = n
	}
	handle, oerr := in.Files.OpenFor(name.Value, s.Mode, recLen)
	if oerr != nil {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeFileNotFound, 0, oerr.Error())
	}
	entry := &runtime.FileEntry{Number: fnum, Name: name.Value, Mode: s.Mode, RecordLen: recLen, Handle: handle}
	if aerr := in.State.Files.Open(entry); aerr != nil {
		handle.Close()
		return TickStatus{}, false, aerr.(*mberrors.RuntimeError)
	}
	return running(), false, nil
}

func (in *Interpreter) execClose(s *ast.CloseStatement) (TickStatus, bool, *mberrors.RuntimeError) {
	if len(s.FileNumbers) == 0 {
		in.State.Files.CloseAll()
		return running(), false, nil
	}
	for _, e := range s.FileNumbers {
		n, err := in.evalFileNumber(e)
		if err != nil {
			return TickStatus{}, false, err
		}
		if cerr := in.State.Files.Close(n); cerr != nil {
			return TickStatus{}, false, cerr.(*mberrors.RuntimeError)
		}
	}
	return running(), false, nil
}

// execField lays out a RANDOM file's record buffer: each FieldItem claims
// the next Width bytes, recorded on the FileEntry for LSET/RSET/GET/PUT.
func (in *Interpreter) execField(s *ast.FieldStatement) (TickStatus, bool, *mberrors.RuntimeError) {
	fnum, ferr := in.evalFileNumber(s.FileNumber)
	if ferr != nil {
		return TickStatus{}, false, ferr
	}
	entry, gerr := in.State.Files.Get(fnum)
	if gerr != nil {
		return TickStatus{}, false, gerr.(*mberrors.RuntimeError)
	}
	entry.Fields = entry.Fields[:0]
	total := 0
	for _, item := range s.Fields {
		wv, err := in.Eval(item.Width)
		if err != nil {
			return TickStatus{}, false, asRuntimeError(err)
		}
		w, ok := runtime.NumericOf(wv)
		if !ok {
			return TickStatus{}, false, mberrors.Err(mberrors.CodeTypeMismatch, 0, "")
		}
		entry.Fields = append(entry.Fields, runtime.FieldMapping{Width: int(w), VarName: item.Var.Name, VarSuffix: item.Var.Suffix})
		total += int(w)
	}
	if total > entry.RecordLen {
		entry.RecordLen = total
	}
	entry.Buffer = make([]byte, entry.RecordLen)
	return running(), false, nil
}

func (in *Interpreter) execGet(s *ast.GetStatement) (TickStatus, bool, *mberrors.RuntimeError) {
	entry, recNum, err := in.resolveRecordFile(s.FileNumber, s.RecordNum)
	if err != nil {
		return TickStatus{}, false, err
	}
	handle, ok := entry.Handle.(interface {
		ReadRecord(n int) ([]byte, error)
	})
	if !ok {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeBadFileNumber, 0, "")
	}
	data, rerr := handle.ReadRecord(recNum)
	if rerr != nil {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeInputPastEnd, 0, rerr.Error())
	}
	copy(entry.Buffer, data)
	in.spreadFields(entry)
	return running(), false, nil
}

func (in *Interpreter) execPut(s *ast.PutStatement) (TickStatus, bool, *mberrors.RuntimeError) {
	entry, recNum, err := in.resolveRecordFile(s.FileNumber, s.RecordNum)
	if err != nil {
		return TickStatus{}, false, err
	}
	handle, ok := entry.Handle.(interface {
		WriteRecord(n int, data []byte) error
	})
	if !ok {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeBadFileNumber, 0, "")
	}
	if werr := handle.WriteRecord(recNum, entry.Buffer); werr != nil {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeDiskFull, 0, werr.Error())
	}
	return running(), false, nil
}

func (in *Interpreter) resolveRecordFile(fileExpr, recExpr ast.Expression) (*runtime.FileEntry, int, *mberrors.RuntimeError) {
	fnum, ferr := in.evalFileNumber(fileExpr)
	if ferr != nil {
		return nil, 0, ferr
	}
	entry, gerr := in.State.Files.Get(fnum)
	if gerr != nil {
		return nil, 0, gerr.(*mberrors.RuntimeError)
	}
	recNum := -1 // negative selects "next record", left to the handle's own cursor
	if recExpr != nil {
		n, rerr := in.evalFileNumber(recExpr)
		if rerr != nil {
			return nil, 0, rerr
		}
		recNum = n
	}
	return entry, recNum, nil
}

// spreadFields copies entry.Buffer's bytes out into each FIELD-bound
// string variable after a GET (§4.H).
func (in *Interpreter) spreadFields(entry *runtime.FileEntry) {
	off := 0
	for _, f := range entry.Fields {
		end := off + f.Width
		if end > len(entry.Buffer) {
			end = len(entry.Buffer)
		}
		in.State.Store.SetVariable(f.VarName, f.VarSuffix, runtime.StringValue{Value: string(entry.Buffer[off:end])})
		off = end
	}
}

func (in *Interpreter) execLSet(s *ast.LSetStatement) (TickStatus, bool, *mberrors.RuntimeError) {
	return in.execJustify(s.Target, s.Value, true)
}

func (in *Interpreter) execRSet(s *ast.RSetStatement) (TickStatus, bool, *mberrors.RuntimeError) {
	return in.execJustify(s.Target, s.Value, false)
}

// execJustify implements LSET/RSET: pad or truncate Value to the current
// length of Target (a plain string variable, or one bound by FIELD — in
// which case the written bytes also land in the record buffer the next
// PUT will write out).
func (in *Interpreter) execJustify(target *ast.Identifier, valueExpr ast.Expression, left bool) (TickStatus, bool, *mberrors.RuntimeError) {
	v, err := in.Eval(valueExpr)
	if err != nil {
		return TickStatus{}, false, asRuntimeError(err)
	}
	sv, ok := v.(runtime.StringValue)
	if !ok {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeTypeMismatch, 0, "")
	}
	current := in.State.Store.GetVariable(target.Name, target.Suffix)
	cur, ok := current.(runtime.StringValue)
	width := len(cur.Value)
	if !ok || width == 0 {
		width = len(sv.Value)
	}
	var justified string
	if left {
		justified = padOrTrunc(sv.Value, width)
	} else {
		if len(sv.Value) >= width {
			justified = sv.Value[len(sv.Value)-width:]
		} else {
			justified = strings.Repeat(" ", width-len(sv.Value)) + sv.Value
		}
	}
	if err := in.State.Store.SetVariable(target.Name, target.Suffix, runtime.StringValue{Value: justified}); err != nil {
		return TickStatus{}, false, asRuntimeError(err)
	}
	in.writeBackToFieldBuffer(target.Name, target.Suffix, justified)
	return running(), false, nil
}

// writeBackToFieldBuffer finds any open file whose FIELD layout binds
// (name, suffix) and copies value's bytes into that file's record buffer.
func (in *Interpreter) writeBackToFieldBuffer(name string, suffix byte, value string) {
	for _, fnum := range in.State.Files.Numbers() {
		entry, err := in.State.Files.Get(fnum)
		if err != nil {
			continue
		}
		off := 0
		for _, f := range entry.Fields {
			if f.VarName == name && f.VarSuffix == suffix {
				end := off + f.Width
				if end > len(entry.Buffer) {
					end = len(entry.Buffer)
				}
				copy(entry.Buffer[off:end], padOrTrunc(value, f.Width))
			}
			off += f.Width
		}
	}
}
