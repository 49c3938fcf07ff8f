package semantic

import (
	"github.com/cwbudde/go-mbasic/internal/ast"
)

// SubroutineSummaryPass computes, for every GOSUB entry point, the set of
// lines reachable before the first unmatched RETURN and every variable
// assigned anywhere in that closure (§4.E subroutine summary), used by
// CSEPass and DeadWritePass to reason about a call's side effects
// without re-walking it.
type SubroutineSummaryPass struct{}

func (p *SubroutineSummaryPass) Name() string { return "subroutine_summary" }

func (p *SubroutineSummaryPass) Run(prog *ast.Program, rep *Report) {
	entries := gosubTargets(prog)
	if len(entries) == 0 {
		return
	}
	index := lineIndex(prog)
	for entry := range entries {
		start, ok := index[entry]
		if !ok {
			continue
		}
		summary := &SubroutineSummary{EntryLine: entry, Lines: make(map[int]bool), Modifies: make(map[string]bool)}
		visited := make(map[int]bool)
		var walk func(i int)
		walk = func(i int) {
			for i < len(prog.Lines) {
				ln := prog.Lines[i]
				if visited[ln.Number] {
					return
				}
				visited[ln.Number] = true
				summary.Lines[ln.Number] = true

				returned := false
				jumped := false
				for _, s := range ln.Statements {
					for _, key := range assignTargets(s) {
						summary.Modifies[key] = true
					}
					switch st := s.(type) {
					case *ast.ReturnStatement:
						returned = true
					case *ast.GotoStatement:
						if j, ok := index[st.Line]; ok {
							walk(j)
						}
						jumped = true
					case *ast.GosubStatement:
						// a nested call returns control here; keep falling
						// through after recording its own closure separately.
					case *ast.OnGotoStatement:
						if !st.IsGosub {
							for _, l := range st.Lines {
								if j, ok := index[l]; ok {
									walk(j)
								}
							}
							jumped = true
						}
					case *ast.IfStatement:
						if st.ThenLine > 0 {
							if j, ok := index[st.ThenLine]; ok {
								walk(j)
							}
						}
						if st.ElseLine > 0 {
							if j, ok := index[st.ElseLine]; ok {
								walk(j)
							}
						}
					}
				}
				if returned || jumped {
					return
				}
				i++
			}
		}
		walk(start)
		rep.Subroutines[entry] = summary
	}
}

func gosubTargets(prog *ast.Program) map[int]bool {
	out := make(map[int]bool)
	forEachStatement(prog, func(_ int, stmt ast.Statement) {
		switch s := stmt.(type) {
		case *ast.GosubStatement:
			out[s.Line] = true
		case *ast.OnGotoStatement:
			if s.IsGosub {
				for _, l := range s.Lines {
					out[l] = true
				}
			}
		}
	})
	return out
}

func lineIndex(prog *ast.Program) map[int]int {
	out := make(map[int]int, len(prog.Lines))
	for i, ln := range prog.Lines {
		out[ln.Number] = i
	}
	return out
}
