package interp

import (
	"github.com/cwbudde/go-mbasic/internal/ast"
	mberrors "github.com/cwbudde/go-mbasic/internal/errors"
)

// ExecImmediate runs stmts — a colon-separated statement list typed at the
// REPL prompt, never part of the program map — against the shared runtime
// (§4.J). Ordinary statements (LET, PRINT, DIM, ...) execute in full and
// leave the running program's PC exactly where it was, so immediate-mode
// commands never disturb a program paused by STOP (CONT still works
// afterward). A statement that transfers control to a line number (GOTO,
// GOSUB, ON...GOTO/GOSUB, IF...THEN <line>) instead leaves that jump
// installed on State.PC and reports jumped=true, telling the REPL driver
// to call Run()/Tick() next — matching classic MBASIC's behavior for
// typing a control-transfer statement at the command level.
func (in *Interpreter) ExecImmediate(stmts []ast.Statement) (status TickStatus, jumped bool, rerr *mberrors.RuntimeError) {
	saved := in.State.PC
	for _, stmt := range stmts {
		st, j, err := in.execute(stmt, saved.Current)
		if err != nil {
			in.State.PC = saved
			return TickStatus{}, false, err
		}
		if j {
			return st, true, nil
		}
		if st.Kind == Halted {
			return st, false, nil
		}
	}
	in.State.PC = saved
	return running(), false, nil
}
