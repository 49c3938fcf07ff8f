package semantic

import (
	"sort"
	"strings"

	"github.com/cwbudde/go-mbasic/internal/ast"
)

// walkExpr calls visit on expr and every sub-expression, depth-first.
func walkExpr(expr ast.Expression, visit func(ast.Expression)) {
	if expr == nil {
		return
	}
	visit(expr)
	switch e := expr.(type) {
	case *ast.UnaryExpression:
		walkExpr(e.Operand, visit)
	case *ast.BinaryExpression:
		walkExpr(e.Left, visit)
		walkExpr(e.Right, visit)
	case *ast.IndexExpression:
		for _, a := range e.Args {
			walkExpr(a, visit)
		}
	}
}

// exprVars collects the canonical variable names (scalar identifiers, and
// array-reference base names) referenced anywhere inside expr.
func exprVars(expr ast.Expression) map[string]bool {
	out := make(map[string]bool)
	walkExpr(expr, func(e ast.Expression) {
		switch n := e.(type) {
		case *ast.Identifier:
			out[varKey(n.Name, n.Suffix)] = true
		case *ast.IndexExpression:
			if !n.IsCall {
				out[varKey(n.Name, n.Suffix)] = true
			}
		}
	})
	return out
}

func varKey(name string, suffix byte) string {
	if suffix == 0 {
		return strings.ToUpper(name)
	}
	return strings.ToUpper(name) + string(suffix)
}

// canonical renders expr in a normalized form: upper-cased names, spelled
// operators, so that two syntactically-equal-after-normalization expressions
// produce identical strings (§4.E CSE's definition of "syntactically equal").
func canonical(expr ast.Expression) string {
	if expr == nil {
		return ""
	}
	switch e := expr.(type) {
	case *ast.Identifier:
		return strings.ToUpper(e.Name) + suffixStr(e.Suffix)
	case *ast.IntegerLiteral:
		return e.String()
	case *ast.FloatLiteral:
		return e.String()
	case *ast.StringLiteral:
		return `"` + e.Value + `"`
	case *ast.UnaryExpression:
		return strings.ToUpper(e.Operator) + "(" + canonical(e.Operand) + ")"
	case *ast.BinaryExpression:
		return "(" + canonical(e.Left) + " " + strings.ToUpper(e.Operator) + " " + canonical(e.Right) + ")"
	case *ast.IndexExpression:
		parts := make([]string, len(e.Args))
		for i, a := range e.Args {
			parts[i] = canonical(a)
		}
		return strings.ToUpper(e.Name) + suffixStr(e.Suffix) + "(" + strings.Join(parts, ",") + ")"
	default:
		return expr.String()
	}
}

func suffixStr(b byte) string {
	if b == 0 {
		return ""
	}
	return string(b)
}

// isPureExpr reports whether expr is safe to constant-fold/CSE: every leaf
// is a literal, and every call is to a built-in the registry marks pure
// (§4.E constant folding / purity).
func isPureExpr(expr ast.Expression, isPureCall func(name string) bool) bool {
	pure := true
	walkExpr(expr, func(e ast.Expression) {
		if idx, ok := e.(*ast.IndexExpression); ok {
			if idx.IsCall {
				if !isPureCall(idx.Name + suffixStr(idx.Suffix)) {
					pure = false
				}
			} else {
				// array read: not a compile-time constant.
				pure = false
			}
		}
	})
	return pure
}

// forEachStatement walks every statement in every line of prog, including
// nested statement lists inside an IF's inline THEN/ELSE clauses, calling
// visit(lineNumber, stmt) for each.
func forEachStatement(prog *ast.Program, visit func(line int, stmt ast.Statement)) {
	for _, ln := range prog.Lines {
		for _, s := range ln.Statements {
			visit(ln.Number, s)
			if ifs, ok := s.(*ast.IfStatement); ok {
				for _, inner := range ifs.ThenStmts {
					visit(ln.Number, inner)
				}
				for _, inner := range ifs.ElseStmts {
					visit(ln.Number, inner)
				}
			}
		}
	}
}

// assignTargets returns the variable keys a statement writes directly
// (scalar LET targets, READ/INPUT targets, SWAP, array-element writes via
// their base name).
func assignTargets(stmt ast.Statement) []string {
	var out []string
	add := func(expr ast.Expression) {
		switch t := expr.(type) {
		case *ast.Identifier:
			out = append(out, varKey(t.Name, t.Suffix))
		case *ast.IndexExpression:
			out = append(out, varKey(t.Name, t.Suffix))
		}
	}
	switch s := stmt.(type) {
	case *ast.LetStatement:
		add(s.Target)
	case *ast.InputStatement:
		for _, t := range s.Targets {
			add(t)
		}
	case *ast.ReadStatement:
		for _, t := range s.Targets {
			add(t)
		}
	case *ast.SwapStatement:
		add(s.A)
		add(s.B)
	case *ast.ForStatement:
		add(s.Var)
	}
	return out
}

// forEachExprIn calls visit on every top-level expression a statement
// directly holds (not recursing into sub-expressions; use walkExpr for
// that). Only the statement kinds listed below are visited; others that
// hold expressions (for example CHAIN, RUN, KILL and NAME) are skipped.
func forEachExprIn(stmt ast.Statement, visit func(ast.Expression)) {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		visit(s.Target)
		visit(s.Value)
	case *ast.PrintStatement:
		for _, it := range s.Items {
			visit(it.Expr)
		}
		if s.UsingFormat != nil {
			visit(s.UsingFormat)
		}
		if s.File != nil {
			visit(s.File)
		}
	case *ast.InputStatement:
		for _, t := range s.Targets {
			visit(t)
		}
	case *ast.IfStatement:
		visit(s.Cond)
	case *ast.ForStatement:
		visit(s.Var)
		visit(s.Start)
		visit(s.End)
		if s.Step != nil {
			visit(s.Step)
		}
	case *ast.WhileStatement:
		visit(s.Cond)
	case *ast.OnGotoStatement:
		visit(s.Selector)
	case *ast.DimStatement:
		for _, d := range s.Decls {
			for _, b := range d.Bounds {
				visit(b)
			}
		}
	case *ast.ReadStatement:
		for _, t := range s.Targets {
			visit(t)
		}
	case *ast.DefFnStatement:
		visit(s.Body)
	case *ast.OpenStatement:
		visit(s.FileName)
		visit(s.FileNumber)
		if s.RecordLen != nil {
			visit(s.RecordLen)
		}
	case *ast.WriteStatement:
		if s.File != nil {
			visit(s.File)
		}
		for _, e := range s.Items {
			visit(e)
		}
	case *ast.LSetStatement:
		visit(s.Target)
		visit(s.Value)
	case *ast.RSetStatement:
		visit(s.Target)
		visit(s.Value)
	case *ast.SwapStatement:
		visit(s.A)
		visit(s.B)
	case *ast.ClearStatement:
		if s.Size != nil {
			visit(s.Size)
		}
	case *ast.RandomizeStatement:
		if s.Seed != nil {
			visit(s.Seed)
		}
	case *ast.ErrorStatement:
		visit(s.Code)
	}
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
