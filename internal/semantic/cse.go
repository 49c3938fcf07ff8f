package semantic

import (
	"github.com/cwbudde/go-mbasic/internal/ast"
)

// CSEPass finds syntactically-equal, side-effect-free subexpressions that
// recur with no intervening write to any variable they reference (§4.E
// common subexpression elimination). Recurrence is tracked per canonical
// string; a write to any variable in an expression's varset invalidates
// every pending occurrence of expressions referencing it. A GOSUB whose
// summarized closure (Report.Subroutines, populated earlier in the same
// iteration) modifies one of those variables invalidates it too, since the
// call may have mutated it before control returns.
type CSEPass struct{}

func (p *CSEPass) Name() string { return "cse" }

func (p *CSEPass) Run(prog *ast.Program, rep *Report) {
	pending := make(map[string][]int) // canonical -> lines seen since last invalidation
	vars := make(map[string]map[string]bool)

	invalidate := func(key string) {
		for canon, varSet := range vars {
			if varSet[key] {
				delete(pending, canon)
				delete(vars, canon)
			}
		}
	}

	forEachStatement(prog, func(line int, stmt ast.Statement) {
		forEachExprIn(stmt, func(e ast.Expression) {
			walkExpr(e, func(n ast.Expression) {
				if !isCandidateExpr(n) {
					return
				}
				if !isPureExpr(n, rep.isPureCall) {
					return
				}
				c := canonical(n)
				vs := exprVars(n)
				if len(vs) == 0 {
					return // constant-only; ConstantFoldPass already covers it
				}
				pending[c] = append(pending[c], line)
				vars[c] = vs
			})
		})

		if gosub, ok := stmt.(*ast.GosubStatement); ok {
			if summary, ok := rep.Subroutines[gosub.Line]; ok {
				for key := range summary.Modifies {
					invalidate(key)
				}
			}
		}

		for _, key := range assignTargets(stmt) {
			invalidate(key)
		}
	})

	for canon, lines := range pending {
		if len(lines) > 1 {
			rep.CSE = append(rep.CSE, CSEFinding{Canonical: canon, Occurrences: lines})
		}
	}
}

// isCandidateExpr excludes bare literals/identifiers (too small to be worth
// eliminating) and call nodes that are not index/array reads, leaving
// binary/unary arithmetic expressions and pure function calls.
func isCandidateExpr(e ast.Expression) bool {
	switch n := e.(type) {
	case *ast.BinaryExpression:
		return true
	case *ast.UnaryExpression:
		return true
	case *ast.IndexExpression:
		return n.IsCall
	default:
		return false
	}
}
