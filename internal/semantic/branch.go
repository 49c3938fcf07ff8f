package semantic

import (
	"github.com/cwbudde/go-mbasic/internal/ast"
	"github.com/cwbudde/go-mbasic/internal/runtime"
)

// BranchOptimizationPass constant-folds every IF condition it can and
// records whether the branch is always taken or never taken (§4.E branch
// optimization). Its findings feed back into Report's alwaysTrueLines /
// alwaysFalseLines maps, which ReachabilityPass consults on the next
// iteration — the mechanism that lets reachability "see through" a folded
// condition one fixed-point iteration later. Tracks the same kind of
// dominating-runtime-constant environment ConstantFoldPass does, so a
// variable set by a plain LET earlier in the program folds into IF
// conditions that test it.
type BranchOptimizationPass struct{}

func (p *BranchOptimizationPass) Name() string { return "branch_optimization" }

func (p *BranchOptimizationPass) Run(prog *ast.Program, rep *Report) {
	jumpTargets := collectJumpTargets(prog)
	env := make(constEnv)
	forEachStatement(prog, func(line int, stmt ast.Statement) {
		if jumpTargets[line] {
			env = make(constEnv)
		}

		if ifs, ok := stmt.(*ast.IfStatement); ok {
			if v, ok := foldExpr(ifs.Cond, env, rep); ok {
				if f, ok := runtime.NumericOf(v); ok {
					finding := BranchFinding{Line: line}
					if f != 0 {
						finding.AlwaysTrue = true
						rep.alwaysTrueLines[line] = true
					} else {
						finding.AlwaysFalse = true
						rep.alwaysFalseLines[line] = true
					}
					rep.Branches = append(rep.Branches, finding)
				}
			}
		}

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
				continue
			}
			delete(env, key)
		}
	})
}
