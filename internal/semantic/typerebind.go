package semantic

import (
	"github.com/cwbudde/go-mbasic/internal/ast"
)

// TypeRebindingPass tracks each bare (no type-suffix) variable's effective
// type across successive LET assignments and records every line where it
// changes (§4.E type rebinding); DEFtype declarations are not consulted. In
// Strict mode a rebind after the variable has been read is also reported
// as a SemanticIssue error, matching stricter DEFtype discipline some
// programs rely on.
type TypeRebindingPass struct {
	Strict bool
}

func (p *TypeRebindingPass) Name() string { return "type_rebinding" }

func (p *TypeRebindingPass) Run(prog *ast.Program, rep *Report) {
	current := make(map[string]ast.TypeTag)
	read := make(map[string]bool)

	forEachStatement(prog, func(line int, stmt ast.Statement) {
		forEachExprIn(stmt, func(e ast.Expression) {
			walkExpr(e, func(n ast.Expression) {
				if id, ok := n.(*ast.Identifier); ok && id.Suffix == 0 {
					read[varKey(id.Name, id.Suffix)] = true
				}
			})
		})

		let, ok := stmt.(*ast.LetStatement)
		if !ok {
			return
		}
		id, ok := let.Target.(*ast.Identifier)
		if !ok || id.Suffix != 0 {
			return
		}
		key := varKey(id.Name, id.Suffix)
		t := inferredType(let.Value)
		if t == ast.TypeUnknown {
			return
		}
		if prev, ok := current[key]; ok && prev != t {
			rep.TypeRebinds = append(rep.TypeRebinds, TypeRebindFinding{Line: line, Var: key, Type: t.String()})
			if p.Strict && read[key] {
				rep.AddIssue(line, key+" changes type after being read", true)
			}
		}
		current[key] = t
	})
}

// inferredType gives the static result type of a simple RHS expression
// where determinable (a literal, or an identifier with an explicit
// suffix); TypeUnknown means "don't track".
func inferredType(e ast.Expression) ast.TypeTag {
	switch n := e.(type) {
	case *ast.IntegerLiteral:
		return ast.TypeInteger
	case *ast.FloatLiteral:
		if n.IsDouble {
			return ast.TypeDouble
		}
		return ast.TypeSingle
	case *ast.StringLiteral:
		return ast.TypeString
	case *ast.Identifier:
		if n.Suffix != 0 {
			return ast.SuffixTypeTag(n.Suffix)
		}
	}
	return ast.TypeUnknown
}
