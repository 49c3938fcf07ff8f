// Package semantic implements the multi-pass, fixed-point analyzer from
// §4.E: constant folding, common-subexpression elimination, reachability,
// subroutine summaries, loop analysis, branch optimization, dead-write
// detection, copy propagation, type rebinding/promotion, integer-range
// inference, expression reassociation, built-in purity, array alias
// analysis, and constant-subscript bounds checking.
//
// The analyzer is a pure function of the AST: it never mutates it, only
// annotates a shared Report.
package semantic

import (
	"github.com/cwbudde/go-mbasic/internal/ast"
)

// Pass is one analysis in the fixed-point loop. Grounded on the teacher's
// semantic.Pass/PassManager shape (internal/semantic/pass.go).
type Pass interface {
	Name() string
	Run(prog *ast.Program, rep *Report)
}

// Manager runs every pass in a fixed order, repeatedly, until the Report's
// finding signature stops changing or MaxIterations is hit (§4.E).
type Manager struct {
	passes        []Pass
	MaxIterations int
}

// NewManager builds a Manager with the standard pass order. maxIterations
// <= 0 is treated as the §4.E default of 10.
func NewManager(maxIterations int, enableIntSizeInference bool, strictTypeRebinding bool) *Manager {
	if maxIterations <= 0 {
		maxIterations = 10
	}
	m := &Manager{MaxIterations: maxIterations}
	m.passes = []Pass{
		&PurityPass{},
		&ConstantFoldPass{},
		&ReachabilityPass{},
		&SubroutineSummaryPass{},
		&LoopAnalysisPass{},
		&BranchOptimizationPass{},
		&AliasAnalysisPass{},
		&CSEPass{},
		&CopyPropagationPass{},
		&DeadWritePass{},
		&TypeRebindingPass{Strict: strictTypeRebinding},
		&TypePromotionPass{},
		&ReassociationPass{},
		&ArrayBoundsPass{},
	}
	if enableIntSizeInference {
		m.passes = append(m.passes, &IntegerRangePass{})
	}
	return m
}

// Run iterates every pass until two consecutive passes over the whole
// program produce the same finding signature, or MaxIterations is reached.
// The Report it returns records whether convergence was reached and in how
// many iterations.
func (m *Manager) Run(prog *ast.Program) *Report {
	rep := NewReport()
	prevSig := ""
	for i := 0; i < m.MaxIterations; i++ {
		rep.beginIteration()
		for _, p := range m.passes {
			p.Run(prog, rep)
		}
		sig := rep.signature()
		rep.Iterations = i + 1
		if sig == prevSig {
			rep.Converged = true
			break
		}
		prevSig = sig
	}
	return rep
}
