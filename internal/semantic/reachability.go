package semantic

import (
	"github.com/cwbudde/go-mbasic/internal/ast"
)

// ReachabilityPass computes, for every line, whether it can be reached from
// the program's first line by any sequence of fall-through and explicit
// jumps (§4.E reachability). A line folded always-false by an earlier
// iteration's BranchOptimizationPass findings has its THEN/ELSE jump target
// treated as unreachable through that edge; an always-true condition drops
// the fall-through/ELSE edge instead.
type ReachabilityPass struct{}

func (p *ReachabilityPass) Name() string { return "reachability" }

func (p *ReachabilityPass) Run(prog *ast.Program, rep *Report) {
	if len(prog.Lines) == 0 {
		return
	}
	succ := successors(prog, rep)
	order := make([]int, len(prog.Lines))
	index := make(map[int]int, len(prog.Lines))
	for i, ln := range prog.Lines {
		order[i] = ln.Number
		index[ln.Number] = i
	}

	visited := make(map[int]bool)
	var stack []int
	stack = append(stack, order[0])
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[n] {
			continue
		}
		visited[n] = true
		for _, s := range succ[n] {
			if !visited[s] {
				stack = append(stack, s)
			}
		}
	}

	rep.Reachable = visited
	for _, ln := range order {
		if !visited[ln] {
			rep.Unreachable = append(rep.Unreachable, ln)
		}
	}
}

// successors builds the control-flow successor set for every line: the
// next line in source order (fall-through) plus every explicit jump target
// a statement on that line names.
func successors(prog *ast.Program, rep *Report) map[int][]int {
	out := make(map[int][]int)
	for i, ln := range prog.Lines {
		var next int
		if i+1 < len(prog.Lines) {
			next = prog.Lines[i+1].Number
		}
		fallsThrough := true
		for _, s := range ln.Statements {
			switch st := s.(type) {
			case *ast.GotoStatement:
				out[ln.Number] = append(out[ln.Number], st.Line)
				fallsThrough = false
			case *ast.GosubStatement:
				out[ln.Number] = append(out[ln.Number], st.Line)
			case *ast.ReturnStatement:
				fallsThrough = false
			case *ast.StopStatement:
				fallsThrough = false
			case *ast.EndStatement:
				fallsThrough = false
			case *ast.OnGotoStatement:
				out[ln.Number] = append(out[ln.Number], st.Lines...)
				if st.IsGosub {
					// falls through after the subroutine returns
				} else if len(st.Lines) > 0 {
					fallsThrough = false
				}
			case *ast.IfStatement:
				alwaysTrue := rep.alwaysTrueLines[ln.Number]
				alwaysFalse := rep.alwaysFalseLines[ln.Number]
				if !alwaysFalse {
					if st.ThenLine > 0 {
						out[ln.Number] = append(out[ln.Number], st.ThenLine)
					}
				}
				if !alwaysFalse && !alwaysTrue && len(st.ThenStmts) == 0 && st.ThenLine == 0 {
					fallsThrough = true
				}
				if st.HasElse && !alwaysTrue {
					if st.ElseLine > 0 {
						out[ln.Number] = append(out[ln.Number], st.ElseLine)
					}
				}
				if alwaysTrue && st.ThenLine > 0 {
					fallsThrough = false
				}
			}
		}
		if fallsThrough && next > 0 {
			out[ln.Number] = append(out[ln.Number], next)
		}
	}
	return out
}
