package builtins

import "github.com/cwbudde/go-mbasic/internal/runtime"

// RegisterIOStatus registers EOF, LOC, LOF, LPOS, POS, INPUT$, INKEY$
// (§4.G). All are impure: every one either reads open-file state or
// console state that changes independently of the expression's operands.
func RegisterIOStatus(r *Registry) {
	r.Register("EOF", biEOF, CategoryIOStatus, false)
	r.Register("LOC", biLOC, CategoryIOStatus, false)
	r.Register("LOF", biLOF, CategoryIOStatus, false)
	r.Register("LPOS", biLPOS, CategoryIOStatus, false)
	r.Register("POS", biPOS, CategoryIOStatus, false)
	r.Register("INPUT$", biInputDollar, CategoryIOStatus, false)
	r.Register("INKEY$", biInkey, CategoryIOStatus, false)
}

func biEOF(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	n, err := intArg(args, 0)
	if err != nil {
		return nil, err
	}
	entry, ferr := ctx.State.Files.Get(n)
	if ferr != nil {
		return nil, ferr
	}
	if entry.Handle == nil {
		return integer(-1), nil
	}
	if h, ok := entry.Handle.(interface{ Eof() bool }); ok && h.Eof() {
		return integer(-1), nil
	}
	return integer(0), nil
}

func biLOC(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	n, err := intArg(args, 0)
	if err != nil {
		return nil, err
	}
	entry, ferr := ctx.State.Files.Get(n)
	if ferr != nil {
		return nil, ferr
	}
	if h, ok := entry.Handle.(interface{ Loc() int }); ok {
		return integer(h.Loc()), nil
	}
	return integer(0), nil
}

func biLOF(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	n, err := intArg(args, 0)
	if err != nil {
		return nil, err
	}
	entry, ferr := ctx.State.Files.Get(n)
	if ferr != nil {
		return nil, ferr
	}
	if h, ok := entry.Handle.(interface{ Lof() int }); ok {
		return integer(h.Lof()), nil
	}
	return integer(0), nil
}

// biLPOS reports the printer's current column; the core has no printer
// device, so this always returns 1 (no output has been buffered).
func biLPOS(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	return integer(1), nil
}

// biPOS reports the console's current output column.
func biPOS(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	return integer(ctx.State.Column + 1), nil
}

// biInputDollar reads n raw characters from the console, stopping early
// when the console has no more input. It has no file-number form and never
// reads from a file.
func biInputDollar(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	n, err := intArg(args, 0)
	if err != nil {
		return nil, err
	}
	var out []byte
	for i := 0; i < n; i++ {
		c := ctx.Console.InputChar()
		if c == "" {
			break
		}
		out = append(out, c[0])
	}
	return str(string(out)), nil
}

func biInkey(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	return str(ctx.Console.InputChar()), nil
}
