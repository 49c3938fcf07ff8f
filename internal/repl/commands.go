package repl

import (
	"fmt"
	"strconv"
	"strings"
)

// execRenum implements RENUM/RENUMBER [start[,increment]] (§4.K), defaulting
// to 10,10 the way MBASIC does when no arguments are given.
func (e *Executor) execRenum(args string) error {
	start, incr := 10, 10
	if args != "" {
		parts := strings.SplitN(args, ",", 2)
		var err error
		if start, err = parseIntArg(parts[0]); err != nil {
			return err
		}
		if len(parts) == 2 {
			if incr, err = parseIntArg(parts[1]); err != nil {
				return err
			}
		}
	}
	return e.Manager.Renumber(start, incr)
}

// execDelete implements DELETE <range> (§4.K): a single line number, a
// closed range "n-m", an open-ended "-m" (from the first line through m),
// or "n-" (from n through the last line).
func (e *Executor) execDelete(args string) error {
	if args == "" {
		return fmt.Errorf("DELETE requires a line number or range")
	}
	from, to, err := parseLineRange(args)
	if err != nil {
		return err
	}
	e.Manager.DeleteRange(from, to)
	return nil
}

// execAuto implements AUTO [start[,increment]] (§4.J), switching the
// executor into auto-numbering mode. Defaults match RENUM's: 10,10.
func (e *Executor) execAuto(args string) error {
	start, incr := 10, 10
	if args != "" {
		parts := strings.SplitN(args, ",", 2)
		var err error
		if start, err = parseIntArg(parts[0]); err != nil {
			return err
		}
		if len(parts) == 2 {
			if incr, err = parseIntArg(parts[1]); err != nil {
				return err
			}
		}
	}
	e.auto = true
	e.autoNext = start
	e.autoIncr = incr
	return nil
}

// execEdit implements EDIT <line> (§4.K). The reference CLI has no
// full-screen line editor, so EDIT prints the numbered line's current text
// for the user to retype and resubmit — a minimal but faithful stand-in
// for a front-end that does offer in-place editing.
func (e *Executor) execEdit(args string) error {
	n, err := parseIntArg(args)
	if err != nil {
		return err
	}
	line, ok := e.Manager.Program.ByNumber[n]
	if !ok {
		return fmt.Errorf("undefined line number %d", n)
	}
	e.Console.Output(line.String(), "\n")
	return nil
}

func parseIntArg(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("expected a line number, got %q", s)
	}
	return n, nil
}

// parseLineRange parses a DELETE-style range argument: "n", "n-m", "-m",
// or "n-".
func parseLineRange(args string) (from, to int, err error) {
	args = strings.TrimSpace(args)
	if !strings.Contains(args, "-") {
		n, err := parseIntArg(args)
		return n, n, err
	}
	parts := strings.SplitN(args, "-", 2)
	from, to = 0, maxLineNumber
	if parts[0] != "" {
		if from, err = parseIntArg(parts[0]); err != nil {
			return 0, 0, err
		}
	}
	if parts[1] != "" {
		if to, err = parseIntArg(parts[1]); err != nil {
			return 0, 0, err
		}
	}
	return from, to, nil
}

// maxLineNumber bounds an open-ended "n-" DELETE range; MBASIC line
// numbers never exceed this.
const maxLineNumber = 65529
