// Package builtins implements the MBASIC 5.21 built-in function catalogue
// (§4.G): math, string, type/binary-conversion, I/O-status, and system
// functions, each tagged pure or impure for the semantic analyzer's
// constant-folding and CSE passes (§4.E).
package builtins

import (
	"sort"
	"strings"
	"sync"

	"github.com/cwbudde/go-mbasic/internal/ioiface"
	"github.com/cwbudde/go-mbasic/internal/limiter"
	"github.com/cwbudde/go-mbasic/internal/runtime"
)

// Category groups built-ins for documentation/introspection purposes only;
// it has no bearing on dispatch.
type Category string

const (
	CategoryMath       Category = "math"
	CategoryString     Category = "string"
	CategoryConversion Category = "conversion"
	CategoryIOStatus   Category = "io_status"
	CategorySystem     Category = "system"
)

// Context bundles the collaborators a built-in may need beyond its
// arguments: the running program's state (for RND, DATA, etc.), the console
// handler (INKEY$, INPUT$), and the resource limiter (string-length checks
// on result construction).
type Context struct {
	State   *runtime.State
	Console ioiface.Console
	Limiter *limiter.Limiter
}

// Func is a built-in function's implementation.
type Func func(ctx *Context, args []runtime.Value) (runtime.Value, error)

// Info is the registry entry for one built-in.
type Info struct {
	Name     string // canonical spelling, including any $ suffix
	Func     Func
	Category Category
	Pure     bool // feeds §4.E constant-folding/CSE purity analysis
}

// Registry is a case-insensitive catalogue of built-in functions.
type Registry struct {
	mu        sync.RWMutex
	functions map[string]*Info
}

// NewRegistry builds an empty Registry.
func NewRegistry() *Registry {
	return &Registry{functions: make(map[string]*Info)}
}

// Register adds fn under name (case-insensitive lookup key).
func (r *Registry) Register(name string, fn Func, category Category, pure bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.functions[strings.ToUpper(name)] = &Info{Name: name, Func: fn, Category: category, Pure: pure}
}

// Lookup finds a built-in by name (case-insensitive, suffix included).
func (r *Registry) Lookup(name string) (*Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.functions[strings.ToUpper(name)]
	return info, ok
}

// IsPure reports whether name is a registered pure built-in; unknown names
// are treated as impure (conservative default for the analyzer).
func (r *Registry) IsPure(name string) bool {
	info, ok := r.Lookup(name)
	return ok && info.Pure
}

// All returns every registered built-in, sorted by name.
func (r *Registry) All() []*Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Info, 0, len(r.functions))
	for _, info := range r.functions {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Default is the package-level registry populated with every §4.G built-in.
var Default *Registry

func init() {
	Default = NewRegistry()
	RegisterMath(Default)
	RegisterString(Default)
	RegisterConversion(Default)
	RegisterIOStatus(Default)
	RegisterSystem(Default)
}
