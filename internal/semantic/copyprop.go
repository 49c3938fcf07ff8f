package semantic

import (
	"github.com/cwbudde/go-mbasic/internal/ast"
)

// CopyPropagationPass finds `Y = X` assignments (X a scalar) and records
// every later use of Y, up to the next write to either X or Y, as a site
// where X may be substituted for Y directly (§4.E copy propagation /
// forward substitution).
type CopyPropagationPass struct{}

func (p *CopyPropagationPass) Name() string { return "copy_propagation" }

func (p *CopyPropagationPass) Run(prog *ast.Program, rep *Report) {
	// active maps the copy target's key to the source key and the line the
	// copy was made at.
	type copyInfo struct {
		from    string
		defLine int
	}
	active := make(map[string]copyInfo)

	forEachStatement(prog, func(line int, stmt ast.Statement) {
		// Uses: record propagation opportunities before processing this
		// statement's own writes so a statement that both reads and writes
		// the same variable (Y = Y + 1) doesn't propagate into itself.
		forEachExprIn(stmt, func(e ast.Expression) {
			walkExpr(e, func(n ast.Expression) {
				id, ok := n.(*ast.Identifier)
				if !ok {
					return
				}
				key := varKey(id.Name, id.Suffix)
				if info, ok := active[key]; ok {
					rep.CopyProps = append(rep.CopyProps, CopyPropFinding{
						DefLine: info.defLine, UseLine: line, From: info.from, To: key,
					})
				}
			})
		})

		if let, ok := stmt.(*ast.LetStatement); ok {
			if target, ok := let.Target.(*ast.Identifier); ok {
				targetKey := varKey(target.Name, target.Suffix)
				delete(active, targetKey)
				for k, info := range active {
					if info.from == targetKey {
						delete(active, k)
					}
				}
				if src, ok := let.Value.(*ast.Identifier); ok {
					srcKey := varKey(src.Name, src.Suffix)
					if srcKey != targetKey {
						active[targetKey] = copyInfo{from: srcKey, defLine: line}
					}
				}
				return
			}
		}
		for _, key := range assignTargets(stmt) {
			delete(active, key)
			for k, info := range active {
				if info.from == key {
					delete(active, k)
				}
			}
		}
	})
}
