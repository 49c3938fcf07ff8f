package semantic

import (
	"github.com/cwbudde/go-mbasic/internal/ast"
	"github.com/cwbudde/go-mbasic/internal/runtime"
)

// ArrayBoundsPass finds array references with every subscript a compile-
// time constant, and reports those proven out of the declared bounds
// (§4.E array bounds). Declared bounds come from the nearest preceding DIM;
// an array never DIM'd uses MBASIC's implicit bound of 10 per dimension.
type ArrayBoundsPass struct{}

func (p *ArrayBoundsPass) Name() string { return "array_bounds" }

func (p *ArrayBoundsPass) Run(prog *ast.Program, rep *Report) {
	bounds := make(map[string][]int64)
	env := make(constEnv)

	forEachStatement(prog, func(line int, stmt ast.Statement) {
		if dim, ok := stmt.(*ast.DimStatement); ok {
			for _, decl := range dim.Decls {
				key := varKey(decl.Name, decl.Suffix)
				dims := make([]int64, 0, len(decl.Bounds))
				ok := true
				for _, b := range decl.Bounds {
					v, foldOK := foldExpr(b, env, rep)
					if !foldOK {
						ok = false
						break
					}
					f, _ := runtime.NumericOf(v)
					dims = append(dims, int64(f))
				}
				if ok {
					bounds[key] = dims
				}
			}
		}

		forEachExprIn(stmt, func(e ast.Expression) {
			walkExpr(e, func(n ast.Expression) {
				idx, ok := n.(*ast.IndexExpression)
				if !ok || idx.IsCall {
					return
				}
				key := varKey(idx.Name, idx.Suffix)
				decl, known := bounds[key]
				upper := int64(10)
				if known && len(decl) > 0 {
					upper = decl[0]
				}
				for i, arg := range idx.Args {
					if known && i >= len(decl) {
						continue
					}
					if known {
						upper = decl[i]
					}
					v, foldOK := foldExpr(arg, env, rep)
					if !foldOK {
						continue
					}
					f, isNum := runtime.NumericOf(v)
					if !isNum {
						continue
					}
					sub := int64(f)
					if sub < 0 || sub > upper {
						rep.ArrayBounds = append(rep.ArrayBounds, ArrayBoundsFinding{Line: line, Array: key})
					}
				}
			})
		})
	})
}
