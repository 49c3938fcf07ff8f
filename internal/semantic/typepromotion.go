package semantic

import (
	"github.com/cwbudde/go-mbasic/internal/ast"
)

// TypePromotionPass records every binary arithmetic expression whose two
// operands have statically-determinable, different numeric types (§4.E
// type promotion), the sites where MBASIC's widest-operand-wins coercion
// rule actually applies rather than being a no-op.
type TypePromotionPass struct{}

func (p *TypePromotionPass) Name() string { return "type_promotion" }

func (p *TypePromotionPass) Run(prog *ast.Program, rep *Report) {
	forEachStatement(prog, func(line int, stmt ast.Statement) {
		forEachExprIn(stmt, func(e ast.Expression) {
			walkExpr(e, func(n ast.Expression) {
				bin, ok := n.(*ast.BinaryExpression)
				if !ok {
					return
				}
				if !isArithmeticOp(bin.Operator) {
					return
				}
				lt := staticNumericType(bin.Left)
				rt := staticNumericType(bin.Right)
				if lt == ast.TypeUnknown || rt == ast.TypeUnknown {
					return
				}
				if lt != rt {
					rep.TypePromos = append(rep.TypePromos, TypePromotionFinding{Line: line, Expr: canonical(bin)})
				}
			})
		})
	})
}

func isArithmeticOp(op string) bool {
	switch op {
	case "+", "-", "*", "/", "\\", "MOD", "^":
		return true
	}
	return false
}

func staticNumericType(e ast.Expression) ast.TypeTag {
	switch n := e.(type) {
	case *ast.IntegerLiteral:
		return ast.TypeInteger
	case *ast.FloatLiteral:
		if n.IsDouble {
			return ast.TypeDouble
		}
		return ast.TypeSingle
	case *ast.Identifier:
		if n.Suffix != 0 {
			t := ast.SuffixTypeTag(n.Suffix)
			if t.IsNumeric() {
				return t
			}
		}
	}
	return ast.TypeUnknown
}
