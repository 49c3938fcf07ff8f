package cmd

import (
	"fmt"

	"github.com/cwbudde/go-mbasic/internal/interp"
	"github.com/spf13/cobra"
)

// runMain is the root command's entry point (§6): load and run a file if
// one was given, report its halt reason, then drop into the immediate
// prompt — unless -e was used, in which case it runs one immediate
// statement and exits without ever opening the prompt. There are no
// separate `run` or `repl` subcommands; this root command covers both.
func runMain(_ *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	}

	s := newSession(dirOf(path))

	if evalExpr != "" {
		return runEval(s, evalExpr)
	}

	if path != "" {
		if err := s.Manager.LoadFromFile(path); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		s.reload()
		if verbose {
			s.Console.Debug(fmt.Sprintf("loaded %s (%d lines)", path, len(s.Manager.Program.Lines)))
		}
		st := s.Interp.Run()
		reportRunHalt(s, st)
	}

	return runREPL(s)
}

// runEval runs one immediate-mode statement list and exits, used by -e.
func runEval(s *session, text string) error {
	stmts, err := s.Manager.ParseImmediate(text)
	if err != nil {
		return err
	}
	st, jumped, rerr := s.Interp.ExecImmediate(stmts)
	if rerr != nil {
		return rerr
	}
	if jumped {
		st = s.Interp.Run()
	}
	if st.Kind == interp.Halted && st.Reason == interp.HaltError {
		return st.Err
	}
	return nil
}

// reportRunHalt prints the halt reason from a file RUN the way the
// immediate executor would for a typed RUN (§7), but never exits the
// process — the REPL keeps running at the Ok prompt afterward.
func reportRunHalt(s *session, st interp.TickStatus) {
	switch st.Reason {
	case interp.HaltError:
		s.Console.Error(fmt.Sprintf("?%s in %d", st.Err.Error(), st.Err.Line))
	case interp.HaltStop:
		s.Console.Output(fmt.Sprintf("Break in %d", s.State.PC.StopPC.Line), "\n")
	}
}
