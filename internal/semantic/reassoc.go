package semantic

import (
	"github.com/cwbudde/go-mbasic/internal/ast"
)

// ReassociationPass finds binary expressions where two constant leaves
// separated by a variable operand could be combined ahead of time, e.g.
// `(2 * X) * 3` simplifying to `6 * X` (§4.E expression reassociation). It
// only fires for associative/commutative operator pairs (+, * ) on the same
// operator to stay safe with MBASIC's untyped-parenthesization evaluation
// order.
type ReassociationPass struct{}

func (p *ReassociationPass) Name() string { return "reassociation" }

func (p *ReassociationPass) Run(prog *ast.Program, rep *Report) {
	env := make(constEnv)
	forEachStatement(prog, func(line int, stmt ast.Statement) {
		forEachExprIn(stmt, func(e ast.Expression) {
			walkExpr(e, func(n ast.Expression) {
				bin, ok := n.(*ast.BinaryExpression)
				if !ok || (bin.Operator != "+" && bin.Operator != "*") {
					return
				}
				outer, ok := bin.Left.(*ast.BinaryExpression)
				if !ok || outer.Operator != bin.Operator {
					return
				}
				// Shape: (c1 OP x) OP c2, both c1 and c2 foldable, x not.
				c1, ok1 := foldExpr(outer.Left, env, rep)
				_, xFoldable := foldExpr(outer.Right, env, rep)
				c2, ok2 := foldExpr(bin.Right, env, rep)
				if !ok1 || !ok2 || xFoldable {
					return
				}
				combined, ok := foldBinary(bin.Operator, c1, c2)
				if !ok {
					return
				}
				rep.Reassocs = append(rep.Reassocs, ReassocFinding{
					Line:       line,
					Simplified: combined.String() + " " + bin.Operator + " " + canonical(outer.Right),
				})
			})
		})
	})
}
