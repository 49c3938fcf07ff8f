// Package program implements the program manager from §4.K: the line
// dictionary plus add/replace/delete/renumber/save/load/merge operations
// that back the REPL and the RUN/CHAIN/LOAD/SAVE/MERGE family of
// statements. Modeled on the teacher's map-holder style (no direct
// teacher analogue; DWScript has no line-numbered program), consuming
// internal/lexer, internal/parser, internal/sanitize, and internal/config
// the way the teacher's cmd/dwscript/cmd/run.go chains lexer -> parser.
package program

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-mbasic/internal/ast"
	"github.com/cwbudde/go-mbasic/internal/config"
	"github.com/cwbudde/go-mbasic/internal/ioiface"
	"github.com/cwbudde/go-mbasic/internal/lexer"
	"github.com/cwbudde/go-mbasic/internal/parser"
	"github.com/cwbudde/go-mbasic/internal/sanitize"
)

// Manager owns the Program's line map plus the filesystem collaborator
// used by LOAD/SAVE/MERGE/KILL/NAME/FILES and CHAIN/RUN "file" (§4.K,
// §4.L). It implements internal/interp's Host interface.
type Manager struct {
	Program *ast.Program
	Config  *config.Config
	FS      ioiface.FileSystem
}

// NewManager builds a Manager with an empty Program. cfg may be nil to use
// config.New()'s dialect defaults; fs may be nil (LOAD/SAVE/CHAIN "file"
// then fail with FILE_NOT_FOUND, per §4.H).
func NewManager(cfg *config.Config, fs ioiface.FileSystem) *Manager {
	if cfg == nil {
		cfg = config.New()
	}
	return &Manager{Program: ast.NewProgram(), Config: cfg, FS: fs}
}

// parseOne lexes and parses a standalone chunk of source (one line, or a
// whole file) under the Manager's keyword-case policy, after running it
// through the input sanitizer (§4.M).
func (m *Manager) parseOne(text string) (*ast.Program, []*parser.ParserError) {
	clean := sanitize.Source(text).Text
	l := lexer.New(clean, lexer.WithKeywordCase(m.Config.KeywordCase))
	p := parser.New(l)
	prog := p.ParseProgram()
	return prog, p.Errors()
}

// combineErrors renders parser errors as a single error value.
func combineErrors(errs []*parser.ParserError) error {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Error()
	}
	return fmt.Errorf("parse error: %s", strings.Join(parts, "; "))
}

// AddOrReplaceLine re-lexes and re-parses one line of source text and
// inserts it into Program, replacing any existing line with the same
// number (§4.K). A line consisting of just a number (blank statement
// list) deletes that line instead. On a parse error, Program is left
// unchanged.
func (m *Manager) AddOrReplaceLine(text string) error {
	prog, errs := m.parseOne(text)
	if len(errs) > 0 {
		return combineErrors(errs)
	}
	if len(prog.Lines) == 0 {
		return fmt.Errorf("missing line number")
	}
	line := prog.Lines[0]
	if len(line.Statements) == 0 {
		m.Program.DeleteLine(line.Number)
		return nil
	}
	m.Program.AddOrReplaceLine(line)
	applyDefType(m.Program, line)
	return nil
}

// applyDefType folds any DEFINT/DEFSNG/DEFDBL/DEFSTR statement on line
// into into's DEF-type map, the same effect ParseProgram has when parsing
// a whole file in one pass (§4.D).
func applyDefType(into *ast.Program, line *ast.Line) {
	for _, stmt := range line.Statements {
		dt, ok := stmt.(*ast.DefTypeStatement)
		if !ok {
			continue
		}
		for _, r := range dt.Ranges {
			for c := r.From; c <= r.To; c++ {
				into.DefTypeMap[c] = dt.Type
			}
		}
	}
}

// ParseImmediate parses text as a colon-separated statement list typed at
// the REPL prompt rather than stored into the program (§4.J). It prefixes a
// synthetic line number (0, which can never collide with a real program
// line since those are strictly positive per §3) so the ordinary line
// parser can be reused unchanged, then returns just the statement list.
func (m *Manager) ParseImmediate(text string) ([]ast.Statement, error) {
	prog, errs := m.parseOne("0 " + text)
	if len(errs) > 0 {
		return nil, combineErrors(errs)
	}
	if len(prog.Lines) == 0 {
		return nil, nil
	}
	return prog.Lines[0].Statements, nil
}

// DeleteLine removes the line numbered n, reporting whether it existed.
func (m *Manager) DeleteLine(n int) bool {
	return m.Program.DeleteLine(n)
}

// DeleteRange removes every line numbered in [from, to] inclusive.
func (m *Manager) DeleteRange(from, to int) {
	for _, l := range append([]*ast.Line(nil), m.Program.Lines...) {
		if l.Number >= from && l.Number <= to {
			m.Program.DeleteLine(l.Number)
		}
	}
}

// Clear discards the program entirely (NEW, §4.K).
func (m *Manager) Clear() {
	m.Program = ast.NewProgram()
}

// LoadProgram implements internal/interp.Host: it loads name through FS,
// parses it, and returns the *ast.Program without touching m.Program (the
// caller, typically execChain/execRun, decides what replaces the running
// program).
func (m *Manager) LoadProgram(name string) (*ast.Program, error) {
	if m.FS == nil {
		return nil, fmt.Errorf("no filesystem configured")
	}
	text, err := m.FS.LoadFile(name)
	if err != nil {
		return nil, err
	}
	prog, errs := m.parseOne(text)
	if len(errs) > 0 {
		return nil, combineErrors(errs)
	}
	return prog, nil
}

// LoadFromFile replaces m.Program with the parsed contents of name (LOAD,
// §4.K); on a parse error the current program is left untouched.
func (m *Manager) LoadFromFile(name string) error {
	prog, err := m.LoadProgram(name)
	if err != nil {
		return err
	}
	m.Program = prog
	return nil
}

// MergeFromFile adds every line of name's parsed contents into m.Program,
// replacing same-numbered lines in place (MERGE, §4.K).
func (m *Manager) MergeFromFile(name string) error {
	prog, err := m.LoadProgram(name)
	if err != nil {
		return err
	}
	for _, l := range prog.Lines {
		m.Program.AddOrReplaceLine(l)
		applyDefType(m.Program, l)
	}
	return nil
}

// SaveToFile writes m.Program's canonical text form to name (SAVE, §4.K).
func (m *Manager) SaveToFile(name string) error {
	if m.FS == nil {
		return fmt.Errorf("no filesystem configured")
	}
	return m.FS.SaveFile(name, m.Program.String())
}
