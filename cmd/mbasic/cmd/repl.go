package cmd

import (
	"errors"
	"io"

	"github.com/ergochat/readline"

	"github.com/cwbudde/go-mbasic/internal/repl"
)

// runREPL drives the immediate-mode prompt (§4.J) over s until the user
// exits with Ctrl-D. Ctrl-C stops AUTO line numbering when it is active and
// otherwise just discards the line being typed; it never exits.
func runREPL(s *session) error {
	rl, err := readline.New("")
	if err != nil {
		return err
	}
	defer rl.Close()

	exec := repl.NewExecutor(s.Manager, s.Interp, s.Console)

	for {
		prompt := "Ok\n"
		if exec.AutoActive() {
			prompt = exec.AutoPrompt() + " "
		}
		rl.SetPrompt(prompt)

		line, rerr := rl.Readline()
		switch {
		case errors.Is(rerr, readline.ErrInterrupt):
			if exec.AutoActive() {
				exec.StopAuto()
				continue
			}
			continue
		case errors.Is(rerr, io.EOF):
			return nil
		case rerr != nil:
			return rerr
		}

		if err := exec.ExecuteLine(line); err != nil {
			s.Console.Error(err.Error())
		}
	}
}
