package semantic

import (
	"github.com/cwbudde/go-mbasic/internal/ast"
	"github.com/cwbudde/go-mbasic/internal/runtime"
)

// AliasAnalysisPass classifies pairs of accesses to the same array as
// definitely-same-element, possibly-same-element, or never-same-element
// (§4.E array alias analysis). No other pass calls Classify: CSEPass and
// DeadWritePass treat any element write as a write of the whole array, and
// the Report carries no alias findings.
type AliasAnalysisPass struct{}

func (p *AliasAnalysisPass) Name() string { return "alias_analysis" }

// Classify compares two same-array index expressions under env (this pass
// has no standalone Report field; its output is the classification
// function itself).
func (p *AliasAnalysisPass) Classify(a, b *ast.IndexExpression, env constEnv, rep *Report) AliasKind {
	if a.Name != b.Name || a.Suffix != b.Suffix || len(a.Args) != len(b.Args) {
		return AliasNone
	}
	allConst := true
	same := true
	for i := range a.Args {
		av, aok := foldExpr(a.Args[i], env, rep)
		bv, bok := foldExpr(b.Args[i], env, rep)
		if !aok || !bok {
			allConst = false
			continue
		}
		af, _ := runtime.NumericOf(av)
		bf, _ := runtime.NumericOf(bv)
		if af != bf {
			same = false
		}
	}
	if !allConst {
		return AliasPossible
	}
	if same {
		return AliasDefinite
	}
	return AliasNone
}

func (p *AliasAnalysisPass) Run(prog *ast.Program, rep *Report) {
	// This pass performs no whole-program accumulation of its own.
	_ = prog
	_ = rep
}
