package interp

import (
	"github.com/cwbudde/go-mbasic/internal/ast"
	mberrors "github.com/cwbudde/go-mbasic/internal/errors"
	"github.com/cwbudde/go-mbasic/internal/runtime"
)

// execute runs one statement. next is the PC the Tick loop will move to
// if the statement returns jumped==false; statements that change control
// flow (GOTO, GOSUB, RETURN, ON...GOTO/GOSUB, IF THEN <line>, FOR/NEXT,
// WHILE/WEND) set in.State.PC.Current (or PC.Jump) themselves and return
// jumped==true so Tick doesn't clobber it.
func (in *Interpreter) execute(stmt ast.Statement, next runtime.PC) (status TickStatus, jumped bool, rerr *mberrors.RuntimeError) {
	switch s := stmt.(type) {
	case *ast.RemStatement:
		return running(), false, nil
	case *ast.LetStatement:
		return in.execLet(s)
	case *ast.PrintStatement:
		return in.execPrint(s)
	case *ast.WriteStatement:
		return in.execWrite(s)
	case *ast.InputStatement:
		return in.execInput(s)
	case *ast.IfStatement:
		return in.execIf(s, next)
	case *ast.ForStatement:
		return in.execFor(s, next)
	case *ast.NextStatement:
		return in.execNext(s, next)
	case *ast.WhileStatement:
		return in.execWhile(s, next)
	case *ast.WendStatement:
		return in.execWend(s)
	case *ast.GotoStatement:
		return in.execGoto(s)
	case *ast.GosubStatement:
		return in.execGosub(s, next)
	case *ast.ReturnStatement:
		return in.execReturn(s)
	case *ast.OnGotoStatement:
		return in.execOnGoto(s, next)
	case *ast.DimStatement:
		return in.execDim(s)
	case *ast.EraseStatement:
		return in.execErase(s)
	case *ast.ReadStatement:
		return in.execRead(s)
	case *ast.DataStatement:
		return running(), false, nil // consumed at program-load time (§3)
	case *ast.RestoreStatement:
		return in.execRestore(s)
	case *ast.DefFnStatement:
		return running(), false, nil // collected at NewState time
	case *ast.DefTypeStatement:
		return running(), false, nil // applied by the parser/program loader to DefTypeMap
	case *ast.OpenStatement:
		return in.execOpen(s)
	case *ast.CloseStatement:
		return in.execClose(s)
	case *ast.FieldStatement:
		return in.execField(s)
	case *ast.GetStatement:
		return in.execGet(s)
	case *ast.PutStatement:
		return in.execPut(s)
	case *ast.LSetStatement:
		return in.execLSet(s)
	case *ast.RSetStatement:
		return in.execRSet(s)
	case *ast.EndStatement:
		in.State.Files.CloseAll()
		in.State.PC.Halt()
		return halted(HaltEnd), true, nil
	case *ast.StopStatement:
		in.State.PC.StopPC = next
		in.State.PC.CanCont = true
		in.State.PC.Halt()
		return halted(HaltStop), true, nil
	case *ast.ContStatement:
		return in.execCont(s)
	case *ast.ClearStatement:
		return in.execClear(s)
	case *ast.ChainStatement:
		return in.execChain(s)
	case *ast.RunStatement:
		return in.execRun(s)
	case *ast.NewStatement:
		in.State.Clear(0)
		in.State.Program = ast.NewProgram()
		in.State.PC.Halt()
		return halted(HaltNew), true, nil
	case *ast.ListStatement:
		return in.execList(s.From, s.To, s.HasFrom, s.HasTo, false)
	case *ast.LListStatement:
		return in.execList(s.From, s.To, s.HasFrom, s.HasTo, true)
	case *ast.LoadStatement:
		return in.execLoad(s)
	case *ast.SaveStatement:
		return in.execSave(s)
	case *ast.MergeStatement:
		return in.execMerge(s)
	case *ast.KillStatement:
		return in.execKill(s)
	case *ast.NameStatement:
		return in.execName(s)
	case *ast.FilesStatement:
		return in.execFiles(s)
	case *ast.OnErrorGotoStatement:
		in.State.PC.HandlerLine = s.Line
		if s.Line == 0 {
			in.State.PC.HandlerActive = false
		}
		return running(), false, nil
	case *ast.ResumeStatement:
		return in.execResume(s)
	case *ast.ErrorStatement:
		return in.execError(s)
	case *ast.OptionBaseStatement:
		if err := in.State.Store.SetOptionBase(s.Base); err != nil {
			return TickStatus{}, false, err.(*mberrors.RuntimeError)
		}
		return running(), false, nil
	case *ast.RandomizeStatement:
		return in.execRandomize(s)
	case *ast.SwapStatement:
		return in.execSwap(s)
	case *ast.PokeStatement, *ast.OutStatement, *ast.WaitStatement, *ast.CallStatement:
		return TickStatus{}, false, mberrors.Err(mberrors.CodeIllegalFunctionCall, 0, "unsupported on this host")
	case *ast.TronStatement:
		in.State.TraceOn = true
		return running(), false, nil
	case *ast.TroffStatement:
		in.State.TraceOn = false
		return running(), false, nil
	case *ast.WidthStatement:
		return running(), false, nil // console width is a driver concern; accepted and ignored
	case *ast.NullStatement:
		return running(), false, nil
	case *ast.CommonStatement:
		names := make([]string, len(s.Vars))
		for i, v := range s.Vars {
			names[i] = v.Name
		}
		in.State.CommonVars = append(in.State.CommonVars, names...)
		return running(), false, nil
	default:
		return TickStatus{}, false, mberrors.Err(mberrors.CodeSyntaxError, 0, "unrecognized statement")
	}
}

// execLet implements LET, including the MID$(var$, start[, len]) = expr
// special case: MID$ as an assignment target isn't a real array/function,
// it's a splice-in-place write to an existing string variable (§4.G).
func (in *Interpreter) execLet(s *ast.LetStatement) (TickStatus, bool, *mberrors.RuntimeError) {
	if idx, ok := s.Target.(*ast.IndexExpression); ok && idx.Name == "MID" && idx.Suffix == '$' {
		return in.execMidAssign(idx, s.Value)
	}
	value, err := in.Eval(s.Value)
	if err != nil {
		return TickStatus{}, false, asRuntimeError(err)
	}
	if err := in.assign(s.Target, value); err != nil {
		return TickStatus{}, false, asRuntimeError(err)
	}
	return running(), false, nil
}

// assign stores value into target, an *ast.Identifier (scalar) or
// *ast.IndexExpression (array element).
func (in *Interpreter) assign(target ast.Expression, value runtime.Value) error {
	switch t := target.(type) {
	case *ast.Identifier:
		return in.State.Store.SetVariable(t.Name, t.Suffix, value)
	case *ast.IndexExpression:
		indices, err := in.evalIndices(t.Args)
		if err != nil {
			return err
		}
		return in.State.Store.ArraySet(t.Name, t.Suffix, indices, value)
	default:
		return mberrors.Err(mberrors.CodeSyntaxError, 0, "invalid assignment target")
	}
}

// execMidAssign overwrites len(replacement) characters of the target
// string variable starting at start (1-based), never lengthening it.
func (in *Interpreter) execMidAssign(idx *ast.IndexExpression, valueExpr ast.Expression) (TickStatus, bool, *mberrors.RuntimeError) {
	if len(idx.Args) < 2 || len(idx.Args) > 3 {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeSyntaxError, 0, "MID$ assignment")
	}
	target, ok := idx.Args[0].(*ast.Identifier)
	if !ok {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeTypeMismatch, 0, "MID$ target must be a string variable")
	}
	startV, err := in.Eval(idx.Args[1])
	if err != nil {
		return TickStatus{}, false, asRuntimeError(err)
	}
	startF, ok := runtime.NumericOf(startV)
	if !ok {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeTypeMismatch, 0, "")
	}
	start := int(startF)

	replV, err := in.Eval(valueExpr)
	if err != nil {
		return TickStatus{}, false, asRuntimeError(err)
	}
	repl, ok := replV.(runtime.StringValue)
	if !ok {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeTypeMismatch, 0, "")
	}

	length := len(repl.Value)
	if len(idx.Args) == 3 {
		lenV, err := in.Eval(idx.Args[2])
		if err != nil {
			return TickStatus{}, false, asRuntimeError(err)
		}
		lenF, ok := runtime.NumericOf(lenV)
		if !ok {
			return TickStatus{}, false, mberrors.Err(mberrors.CodeTypeMismatch, 0, "")
		}
		if int(lenF) < length {
			length = int(lenF)
		}
	}

	current := in.State.Store.GetVariable(target.Name, target.Suffix)
	cur, ok := current.(runtime.StringValue)
	if !ok {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeTypeMismatch, 0, "")
	}
	if start < 1 || start > len(cur.Value) {
		return TickStatus{}, false, mberrors.Err(mberrors.CodeIllegalFunctionCall, 0, "")
	}
	buf := []byte(cur.Value)
	end := start - 1 + length
	if end > len(buf) {
		end = len(buf)
	}
	copy(buf[start-1:end], repl.Value)
	if err := in.State.Store.SetVariable(target.Name, target.Suffix, runtime.StringValue{Value: string(buf)}); err != nil {
		return TickStatus{}, false, asRuntimeError(err)
	}
	return running(), false, nil
}

// asRuntimeError normalizes an error into *mberrors.RuntimeError; every
// error that reaches this boundary in practice already is one (built-ins,
// coercion, and store ops all construct them), this just satisfies the
// compiler for the plain `error` return type some of those APIs use.
func asRuntimeError(err error) *mberrors.RuntimeError {
	if err == nil {
		return nil
	}
	if re, ok := err.(*mberrors.RuntimeError); ok {
		return re
	}
	return mberrors.Err(mberrors.CodeSyntaxError, 0, err.Error())
}
