package semantic

import (
	"github.com/cwbudde/go-mbasic/internal/ast"
	"github.com/cwbudde/go-mbasic/internal/runtime"
)

// LoopAnalysisPass detects FOR/NEXT, WHILE/WEND, and IF-GOTO-to-earlier-line
// loops, computing their modified-variable set and (when bounds are
// compile-time constants) a static iteration count (§4.E loop analysis).
// Loop-invariant subexpressions are not computed: LoopInfo.Invariants is
// always empty.
type LoopAnalysisPass struct{}

func (p *LoopAnalysisPass) Name() string { return "loop_analysis" }

func (p *LoopAnalysisPass) Run(prog *ast.Program, rep *Report) {
	index := lineIndex(prog)
	env := make(constEnv)

	for i, ln := range prog.Lines {
		for _, s := range ln.Statements {
			switch st := s.(type) {
			case *ast.ForStatement:
				end := matchingNext(prog, i, st.Var)
				if end < 0 {
					continue
				}
				info := LoopInfo{Kind: "FOR", HeaderLine: ln.Number, Modifies: make(map[string]bool)}
				collectLoopBody(prog, i+1, end, &info)
				startV, okS := foldExpr(st.Start, env, rep)
				endV, okE := foldExpr(st.End, env, rep)
				var stepV float64 = 1
				okStep := true
				if st.Step != nil {
					if v, ok := foldExpr(st.Step, env, rep); ok {
						stepV, _ = runtime.NumericOf(v)
					} else {
						okStep = false
					}
				}
				if okS && okE && okStep {
					sf, _ := runtime.NumericOf(startV)
					ef, _ := runtime.NumericOf(endV)
					if stepV != 0 {
						count := int((ef-sf)/stepV) + 1
						if count > 0 {
							info.StaticBounds = true
							info.IterationCount = count
							info.HasIterationCount = true
							info.UnrollSuitable = count <= 16
						}
					}
				}
				rep.Loops = append(rep.Loops, info)
			case *ast.WhileStatement:
				end := matchingWend(prog, i)
				if end < 0 {
					continue
				}
				info := LoopInfo{Kind: "WHILE", HeaderLine: ln.Number, Modifies: make(map[string]bool)}
				collectLoopBody(prog, i+1, end, &info)
				rep.Loops = append(rep.Loops, info)
			case *ast.IfStatement:
				if st.ThenLine > 0 {
					if target, ok := index[st.ThenLine]; ok && target <= i {
						info := LoopInfo{Kind: "IF-GOTO", HeaderLine: ln.Number, Modifies: make(map[string]bool)}
						collectLoopBody(prog, target, i+1, &info)
						rep.Loops = append(rep.Loops, info)
					}
				}
			}
		}
	}
}

func matchingNext(prog *ast.Program, forIdx int, forVar *ast.Identifier) int {
	depth := 0
	for i := forIdx + 1; i < len(prog.Lines); i++ {
		for _, s := range prog.Lines[i].Statements {
			switch st := s.(type) {
			case *ast.ForStatement:
				depth++
			case *ast.NextStatement:
				if depth > 0 {
					depth--
					continue
				}
				if len(st.Vars) == 0 {
					return i
				}
				for _, v := range st.Vars {
					if v.Name == forVar.Name && v.Suffix == forVar.Suffix {
						return i
					}
				}
				return i
			}
		}
	}
	return -1
}

func matchingWend(prog *ast.Program, whileIdx int) int {
	depth := 0
	for i := whileIdx + 1; i < len(prog.Lines); i++ {
		for _, s := range prog.Lines[i].Statements {
			switch s.(type) {
			case *ast.WhileStatement:
				depth++
			case *ast.WendStatement:
				if depth > 0 {
					depth--
					continue
				}
				return i
			}
		}
	}
	return -1
}

func collectLoopBody(prog *ast.Program, from, to int, info *LoopInfo) {
	if from < 0 || to < 0 {
		return
	}
	for i := from; i < to && i < len(prog.Lines); i++ {
		for _, s := range prog.Lines[i].Statements {
			for _, key := range assignTargets(s) {
				info.Modifies[key] = true
			}
			info.ExitLines = append(info.ExitLines, prog.Lines[i].Number)
		}
	}
}
