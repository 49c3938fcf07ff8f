package builtins

import "github.com/cwbudde/go-mbasic/internal/runtime"

// RegisterSystem registers FRE, INP, PEEK, USR, VARPTR (§4.G). These are
// CP/M hardware-adjacent hooks; absent a host hook they either return a
// synthetic but stable value (FRE, VARPTR) or raise ILLEGAL_FUNCTION_CALL
// (INP, PEEK, USR), per §4.H's POKE/OUT/WAIT/CALL/PEEK/INP contract.
func RegisterSystem(r *Registry) {
	r.Register("FRE", biFre, CategorySystem, false)
	r.Register("INP", biInp, CategorySystem, false)
	r.Register("PEEK", biPeek, CategorySystem, false)
	r.Register("USR", biUsr, CategorySystem, false)
	r.Register("VARPTR", biVarptr, CategorySystem, false)
}

// biFre always returns 0; no free-memory figure is computed, with or
// without a limiter.
func biFre(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	if ctx.Limiter == nil {
		return integer(0), nil
	}
	return integer(0), nil
}

func biInp(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	return nil, illegal("INP has no host hook")
}

func biPeek(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	return nil, illegal("PEEK has no host hook")
}

func biUsr(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	return nil, illegal("USR has no host hook")
}

// biVarptr returns 0 for every argument; the core has no memory layout, so
// variables have no addresses and VARPTR does not tell them apart.
func biVarptr(ctx *Context, args []runtime.Value) (runtime.Value, error) {
	return integer(0), nil
}
