package ioiface

import (
	"bufio"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// StdConsole is the reference Console implementation (§6): it talks to
// plain io.Writer/io.Reader streams, optionally transcoding through a
// legacy 8-bit codepage (CP437, the common CP/M-era terminal encoding) so
// a host that still speaks that codepage round-trips correctly with the
// input sanitizer's parity-bit handling (§4.M).
type StdConsole struct {
	Out     io.Writer
	in      *bufio.Reader
	Err     io.Writer
	codepage *charmap.Charmap
}

// NewStdConsole builds a StdConsole over out/in/errOut with no codepage
// transcoding (plain UTF-8/ASCII passthrough).
func NewStdConsole(out io.Writer, in io.Reader, errOut io.Writer) *StdConsole {
	return &StdConsole{Out: out, in: bufio.NewReader(in), Err: errOut}
}

// WithCodepage enables CP437 transcoding on this console: Output encodes
// text through CP437 before writing, and Input decodes bytes read back
// through it, matching a CP/M-era 8-bit terminal (SPEC_FULL.md's
// golang.org/x/text wiring).
func (c *StdConsole) WithCodepage(enabled bool) *StdConsole {
	if enabled {
		c.codepage = charmap.CodePage437
	} else {
		c.codepage = nil
	}
	return c
}

func (c *StdConsole) encode(s string) string {
	if c.codepage == nil {
		return s
	}
	out, err := c.codepage.NewEncoder().String(s)
	if err != nil {
		return s
	}
	return out
}

func (c *StdConsole) decode(s string) string {
	if c.codepage == nil {
		return s
	}
	out, err := c.codepage.NewDecoder().String(s)
	if err != nil {
		return s
	}
	return out
}

func (c *StdConsole) Output(text, end string) {
	io.WriteString(c.Out, c.encode(text+end))
}

func (c *StdConsole) Input(prompt string) (string, error) {
	if prompt != "" {
		io.WriteString(c.Out, c.encode(prompt))
	}
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	return c.decode(line), nil
}

// InputChar implements INKEY$'s non-blocking single-character read. The
// reference console driver has no raw-mode terminal access (that is a
// UI front-end's job, out of scope per §1), so it always reports no
// character available; a TUI/GUI front-end supplies its own Console with
// a real implementation.
func (c *StdConsole) InputChar() string { return "" }

func (c *StdConsole) Error(text string) {
	if c.Err != nil {
		io.WriteString(c.Err, text+"\n")
	}
}

func (c *StdConsole) Debug(text string) {
	if c.Err != nil {
		io.WriteString(c.Err, "[TRACE] "+text+"\n")
	}
}

func (c *StdConsole) ClearScreen() {
	io.WriteString(c.Out, "\x1b[2J\x1b[H")
}
