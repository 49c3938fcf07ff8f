package semantic

import (
	"github.com/cwbudde/go-mbasic/internal/ast"
	"github.com/cwbudde/go-mbasic/internal/builtins"
)

// PurityPass classifies every built-in function call actually used in the
// program as pure or impure (§4.E built-in function purity), consulted by
// ConstantFoldPass and CSEPass through Report.isPureCall.
type PurityPass struct{}

func (p *PurityPass) Name() string { return "purity" }

func (p *PurityPass) Run(prog *ast.Program, rep *Report) {
	forEachStatement(prog, func(line int, stmt ast.Statement) {
		forEachExprIn(stmt, func(e ast.Expression) {
			walkExpr(e, func(n ast.Expression) {
				idx, ok := n.(*ast.IndexExpression)
				if !ok || !idx.IsCall {
					return
				}
				name := idx.Name + suffixStr(idx.Suffix)
				rep.pureCallCache[name] = isBuiltinPure(name)
			})
		})
	})
}

// isBuiltinPure consults the global built-in registry (internal/builtins),
// treating DEF FN calls and unknown names as impure by default; the
// interpreter's DEF FN handling never participates in constant folding.
func isBuiltinPure(name string) bool {
	return builtins.Default.IsPure(name)
}

func (r *Report) isPureCall(name string) bool {
	if pure, ok := r.pureCallCache[name]; ok {
		return pure
	}
	return isBuiltinPure(name)
}
