package semantic

import (
	"github.com/cwbudde/go-mbasic/internal/ast"
	"github.com/cwbudde/go-mbasic/internal/runtime"
)

// IntegerRangePass infers a narrower-than-16-bit storage width for integer-
// suffixed variables whose every assignment is a compile-time-bounded
// literal or FOR-loop induction variable within a small range (§4.E integer
// range inference). This is purely advisory: MBASIC INTEGER storage is
// always 16-bit; the finding exists for a host embedding this analyzer that
// wants to pack values more tightly (SPEC_FULL.md's integer-size-inference
// Open Question).
type IntegerRangePass struct{}

func (p *IntegerRangePass) Name() string { return "integer_range" }

func (p *IntegerRangePass) Run(prog *ast.Program, rep *Report) {
	env := make(constEnv)
	lo := make(map[string]int64)
	hi := make(map[string]int64)
	seen := make(map[string]bool)
	tainted := make(map[string]bool)

	observe := func(key string, v int64) {
		if tainted[key] {
			return
		}
		if !seen[key] {
			lo[key], hi[key] = v, v
			seen[key] = true
			return
		}
		if v < lo[key] {
			lo[key] = v
		}
		if v > hi[key] {
			hi[key] = v
		}
	}

	forEachStatement(prog, func(_ int, stmt ast.Statement) {
		switch s := stmt.(type) {
		case *ast.LetStatement:
			id, ok := s.Target.(*ast.Identifier)
			if !ok || id.Suffix != '%' {
				return
			}
			key := varKey(id.Name, id.Suffix)
			v, ok := foldExpr(s.Value, env, rep)
			if !ok {
				tainted[key] = true
				return
			}
			f, numeric := runtime.NumericOf(v)
			if !numeric {
				tainted[key] = true
				return
			}
			observe(key, int64(f))
		case *ast.ForStatement:
			if s.Var.Suffix != '%' {
				return
			}
			startV, ok1 := foldExpr(s.Start, env, rep)
			endV, ok2 := foldExpr(s.End, env, rep)
			if !ok1 || !ok2 {
				tainted[varKey(s.Var.Name, s.Var.Suffix)] = true
				return
			}
			sf, ok1 := runtime.NumericOf(startV)
			ef, ok2 := runtime.NumericOf(endV)
			if !ok1 || !ok2 {
				return
			}
			key := varKey(s.Var.Name, s.Var.Suffix)
			observe(key, int64(sf))
			observe(key, int64(ef))
		}
	})

	for key := range seen {
		if tainted[key] {
			continue
		}
		bits := bitsNeeded(lo[key], hi[key])
		if bits < 16 {
			rep.IntRanges = append(rep.IntRanges, IntRangeFinding{Var: key, Bits: bits})
		}
	}
}

func bitsNeeded(lo, hi int64) int {
	if lo >= 0 {
		if hi < 256 {
			return 8
		}
		return 16
	}
	if lo >= -128 && hi <= 127 {
		return 8
	}
	return 16
}
