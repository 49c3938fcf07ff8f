package semantic

import (
	"github.com/cwbudde/go-mbasic/internal/ast"
)

// DeadWritePass finds scalar assignments whose value is provably never read
// before the variable is written again or the program ends (§4.E dead-write
// elimination). A variable referenced inside any GOSUB's summarized closure
// (Report.Subroutines, populated earlier in the same iteration) counts as a
// read at the GOSUB call site, since control may return through any path.
type DeadWritePass struct{}

func (p *DeadWritePass) Name() string { return "dead_write" }

func (p *DeadWritePass) Run(prog *ast.Program, rep *Report) {
	type pendingWrite struct {
		line int
		key  string
	}
	var pending []pendingWrite
	lastWriteIdx := make(map[string]int) // key -> index into pending, -1 if read since

	markRead := func(key string) {
		if idx, ok := lastWriteIdx[key]; ok && idx >= 0 {
			lastWriteIdx[key] = -1
		}
	}

	finalize := func(key string) {
		if idx, ok := lastWriteIdx[key]; ok && idx >= 0 {
			rep.DeadWrites = append(rep.DeadWrites, DeadWriteFinding{Line: pending[idx].line, Var: key})
		}
	}

	readsIn := func(stmt ast.Statement) {
		deadWriteReadExprs(stmt, func(e ast.Expression) {
			walkExpr(e, func(n ast.Expression) {
				switch id := n.(type) {
				case *ast.Identifier:
					markRead(varKey(id.Name, id.Suffix))
				case *ast.IndexExpression:
					if !id.IsCall {
						markRead(varKey(id.Name, id.Suffix))
					}
				}
			})
		})
	}

	forEachStatement(prog, func(line int, stmt ast.Statement) {
		readsIn(stmt)

		if gosub, ok := stmt.(*ast.GosubStatement); ok {
			if summary, ok := rep.Subroutines[gosub.Line]; ok {
				for key := range summary.Modifies {
					markRead(key) // conservative: a call may read anything it also writes
				}
				forEachStatement(prog, func(l int, s ast.Statement) {
					if summary.Lines[l] {
						readsIn(s)
					}
				})
			}
		}

		for _, key := range assignTargets(stmt) {
			finalize(key)
			pending = append(pending, pendingWrite{line: line, key: key})
			lastWriteIdx[key] = len(pending) - 1
		}
	})

	for key := range lastWriteIdx {
		finalize(key)
	}
}

// deadWriteReadExprs visits only the sub-expressions of stmt that are
// genuinely reads of a prior value, not the bare variable/array name a
// statement writes to. forEachExprIn treats an assignment's target as just
// another expression to walk (the right behavior for CSE, which needs to
// see subscript expressions like the I in A(I) = X), but a write's own
// target identifier is never a read of that variable for dead-write
// purposes — walking it the same way as forEachExprIn would mark the
// previous write "read" by the very statement that overwrites it.
func deadWriteReadExprs(stmt ast.Statement, visit func(ast.Expression)) {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		if idx, ok := s.Target.(*ast.IndexExpression); ok {
			for _, a := range idx.Args {
				visit(a)
			}
		}
		visit(s.Value)
	case *ast.InputStatement:
		for _, t := range s.Targets {
			if idx, ok := t.(*ast.IndexExpression); ok {
				for _, a := range idx.Args {
					visit(a)
				}
			}
		}
	case *ast.ReadStatement:
		for _, t := range s.Targets {
			if idx, ok := t.(*ast.IndexExpression); ok {
				for _, a := range idx.Args {
					visit(a)
				}
			}
		}
	case *ast.ForStatement:
		visit(s.Start)
		visit(s.End)
		if s.Step != nil {
			visit(s.Step)
		}
	default:
		forEachExprIn(stmt, visit)
	}
}
