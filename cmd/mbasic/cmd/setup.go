package cmd

import (
	"os"
	"path/filepath"

	"github.com/cwbudde/go-mbasic/internal/builtins"
	"github.com/cwbudde/go-mbasic/internal/config"
	"github.com/cwbudde/go-mbasic/internal/interp"
	"github.com/cwbudde/go-mbasic/internal/ioiface"
	"github.com/cwbudde/go-mbasic/internal/lexer"
	"github.com/cwbudde/go-mbasic/internal/limiter"
	"github.com/cwbudde/go-mbasic/internal/program"
	"github.com/cwbudde/go-mbasic/internal/runtime"
)

var keywordCaseFlags = map[string]lexer.KeywordCase{
	"upper":      lexer.ForceUpper,
	"lower":      lexer.ForceLower,
	"first-wins": lexer.FirstWins,
	"preserve":   lexer.Preserve,
	"error":      lexer.ErrorOnMixedCase,
}

var presetFlags = map[string]config.LimitPreset{
	"web":       config.PresetWeb,
	"local":     config.PresetLocal,
	"unlimited": config.PresetUnlimited,
}

// buildConfig turns the root command's persistent flags into a
// *config.Config (§6).
func buildConfig() *config.Config {
	kc, ok := keywordCaseFlags[keywordCase]
	if !ok {
		kc = lexer.ForceUpper
	}
	preset, ok := presetFlags[limitPreset]
	if !ok {
		preset = config.PresetLocal
	}
	return config.New(config.WithKeywordCase(kc), config.WithPreset(preset))
}

// session bundles the pieces a `mbasic` run wires together: the program
// manager (line dictionary + filesystem), the shared runtime state, and
// the interpreter driving it.
type session struct {
	Config  *config.Config
	Console *ioiface.StdConsole
	Manager *program.Manager
	State   *runtime.State
	Interp  *interp.Interpreter
}

// newSession builds a session around an empty program, rooted at dir for
// LOAD/SAVE/FILES/CHAIN file resolution, talking to the process's own
// stdio.
func newSession(dir string) *session {
	cfg := buildConfig()
	console := ioiface.NewStdConsole(os.Stdout, os.Stdin, os.Stderr).WithCodepage(codepage)
	fs := program.NewOSFileSystem(dir)
	mgr := program.NewManager(cfg, fs)
	return newSessionWith(cfg, console, mgr)
}

func newSessionWith(cfg *config.Config, console *ioiface.StdConsole, mgr *program.Manager) *session {
	lim := limiter.New(cfg.Limits)
	lim.Start()
	state := runtime.NewState(mgr.Program, cfg.Limits.MaxGosubDepth, cfg.Limits.MaxForDepth, cfg.Limits.MaxWhileDepth)
	in := interp.New(state, console, mgr.FS, lim, builtins.Default)
	in.Host = mgr
	if traceFlag {
		state.TraceOn = true
	}
	return &session{Config: cfg, Console: console, Manager: mgr, State: state, Interp: in}
}

// reload rebuilds s.State/s.Interp around s.Manager.Program as it stands
// right now, the way RUN/NEW/LOAD do internally but for the top-level
// session object the REPL and the root command's file run share.
func (s *session) reload() {
	lim := limiter.New(s.Config.Limits)
	lim.Start()
	s.State = runtime.NewState(s.Manager.Program, s.Config.Limits.MaxGosubDepth, s.Config.Limits.MaxForDepth, s.Config.Limits.MaxWhileDepth)
	s.Interp = interp.New(s.State, s.Console, s.Manager.FS, lim, builtins.Default)
	s.Interp.Host = s.Manager
	if traceFlag {
		s.State.TraceOn = true
	}
}

func dirOf(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Dir(path)
}
