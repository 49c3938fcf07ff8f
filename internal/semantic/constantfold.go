package semantic

import (
	"github.com/cwbudde/go-mbasic/internal/ast"
)

// ConstantFoldPass finds every expression whose value can be determined at
// compile time (§4.E constant folding): literal-only expressions, and
// expressions referencing a variable whose value is a dominating runtime
// constant at that point in the program.
//
// Per-variable constancy is tracked with a conservative, line-order
// approximation: any line that is the target of a GOTO/GOSUB/ON.../FOR
// elsewhere resets the known-constants set, since such a line may be
// reached with state this pass cannot see sequentially.
type ConstantFoldPass struct{}

func (p *ConstantFoldPass) Name() string { return "constant_fold" }

func (p *ConstantFoldPass) Run(prog *ast.Program, rep *Report) {
	jumpTargets := collectJumpTargets(prog)

	env := make(constEnv)
	forEachStatement(prog, func(line int, stmt ast.Statement) {
		if jumpTargets[line] {
			env = make(constEnv)
		}

		forEachExprIn(stmt, func(e ast.Expression) {
			walkExpr(e, func(n ast.Expression) {
				if _, isLeaf := n.(*ast.Identifier); isLeaf {
					return // reported only when part of a larger fold below
				}
				if v, ok := foldExpr(n, env, rep); ok {
					if _, isLit := n.(*ast.IntegerLiteral); isLit {
						return
					}
					if _, isLit := n.(*ast.FloatLiteral); isLit {
						return
					}
					if _, isLit := n.(*ast.StringLiteral); isLit {
						return
					}
					rep.ConstantFolds = append(rep.ConstantFolds, ConstantFinding{
						Line: line, Expr: canonical(n), Value: v.String(),
					})
				}
			})
		})

		// Track scalar LET assignments whose RHS is itself foldable so later
		// lines can treat the target as a runtime constant.
		if let, ok := stmt.(*ast.LetStatement); ok {
			if id, ok := let.Target.(*ast.Identifier); ok {
				if v, ok := foldExpr(let.Value, env, rep); ok {
					env[varKey(id.Name, id.Suffix)] = v
				} else {
					delete(env, varKey(id.Name, id.Suffix))
				}
			}
		}
		for _, key := range assignTargets(stmt) {
			if _, isLet := stmt.(*ast.LetStatement); isLet {
				continue // handled above with its folded value
			}
			delete(env, key)
		}
	})
}

// collectJumpTargets returns every line number referenced as a GOTO/GOSUB/
// ON...GOTO/ON...GOSUB/RESTORE/RESUME target anywhere in prog, plus each
// FOR line and the line after it (where NEXT sends control back).
func collectJumpTargets(prog *ast.Program) map[int]bool {
	out := make(map[int]bool)
	mark := func(lines ...int) {
		for _, l := range lines {
			if l > 0 {
				out[l] = true
			}
		}
	}
	for i, ln := range prog.Lines {
		for _, s := range ln.Statements {
			if _, ok := s.(*ast.ForStatement); ok && i+1 < len(prog.Lines) {
				mark(ln.Number, prog.Lines[i+1].Number)
			}
		}
	}
	forEachStatement(prog, func(_ int, stmt ast.Statement) {
		switch s := stmt.(type) {
		case *ast.GotoStatement:
			mark(s.Line)
		case *ast.GosubStatement:
			mark(s.Line)
		case *ast.OnGotoStatement:
			mark(s.Lines...)
		case *ast.IfStatement:
			if s.ThenLine > 0 {
				mark(s.ThenLine)
			}
			if s.ElseLine > 0 {
				mark(s.ElseLine)
			}
		case *ast.ResumeStatement:
			mark(s.Line)
		case *ast.RestoreStatement:
			mark(s.Line)
		}
	})
	return out
}
