package semantic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ConstantFinding records that expr at line folds to value at compile time
// (§4.E constant folding).
type ConstantFinding struct {
	Line  int
	Expr  string
	Value string
}

// CSEFinding records one canonical expression and every line it recurs at
// with no intervening invalidation (§4.E CSE).
type CSEFinding struct {
	Canonical   string
	Occurrences []int
}

// SubroutineSummary is the closure computed for one GOSUB target: every
// line reached before the matching RETURN, and every variable assigned
// along the way (§4.E subroutine summary).
type SubroutineSummary struct {
	EntryLine int
	Lines     map[int]bool
	Modifies  map[string]bool
}

// LoopInfo describes one detected loop (§4.E loop analysis).
type LoopInfo struct {
	Kind             string // "FOR", "WHILE", "IF-GOTO"
	HeaderLine       int
	ExitLines        []int
	Modifies         map[string]bool
	Invariants       []string
	StaticBounds     bool
	IterationCount   int
	HasIterationCount bool
	UnrollSuitable   bool
}

// BranchFinding records a constant-folded IF condition (§4.E branch
// optimization).
type BranchFinding struct {
	Line        int
	AlwaysTrue  bool
	AlwaysFalse bool
}

// DeadWriteFinding records an assignment whose value is never read before
// the next write or program end (§4.E dead writes).
type DeadWriteFinding struct {
	Line int
	Var  string
}

// CopyPropFinding records a `Y = X` site whose subsequent uses of Y may be
// replaced by X (§4.E forward substitution).
type CopyPropFinding struct {
	DefLine int
	UseLine int
	From    string
	To      string
}

// TypeRebindFinding records a variable whose assignment sequence changes
// its effective type (§4.E type rebinding).
type TypeRebindFinding struct {
	Line int
	Var  string
	Type string
}

// TypePromotionFinding records a mixed-type binary operation site (§4.E
// type promotion).
type TypePromotionFinding struct {
	Line int
	Expr string
}

// IntRangeFinding records the inferred bit width for a variable used only
// as an integer over a bounded range (§4.E integer range inference).
type IntRangeFinding struct {
	Var  string
	Bits int
}

// ReassocFinding records a constant-combining simplification (§4.E
// expression reassociation).
type ReassocFinding struct {
	Line       int
	Simplified string
}

// AliasKind classifies a pair of array accesses (§4.E alias analysis).
type AliasKind int

const (
	AliasDefinite AliasKind = iota
	AliasPossible
	AliasNone
)

// ArrayBoundsFinding records a constant-subscript access proven out of
// range at analysis time (§4.E array bounds).
type ArrayBoundsFinding struct {
	Line  int
	Array string
}

// SemanticIssue is an analyzer-reported warning or error (§4.E failure
// semantics: findings are advisory unless IsError).
type SemanticIssue struct {
	Line    int
	Message string
	IsError bool
}

// Report accumulates every analysis's findings across the fixed-point
// iterations run by Manager (§4.E).
type Report struct {
	Converged  bool
	Iterations int

	ConstantFolds []ConstantFinding
	CSE           []CSEFinding
	Reachable     map[int]bool
	Unreachable   []int
	Subroutines   map[int]*SubroutineSummary
	Loops         []LoopInfo
	Branches      []BranchFinding
	DeadWrites    []DeadWriteFinding
	CopyProps     []CopyPropFinding
	TypeRebinds   []TypeRebindFinding
	TypePromos    []TypePromotionFinding
	IntRanges     []IntRangeFinding
	Reassocs      []ReassocFinding
	ArrayBounds   []ArrayBoundsFinding
	Issues        []SemanticIssue

	// pureCallCache maps each called built-in's name to whether it is pure
	// (populated by PurityPass, consulted through isPureCall).
	pureCallCache map[string]bool

	// AlwaysTrueLines / AlwaysFalseLines accumulate across iterations so
	// ReachabilityPass can fold branch-optimization findings from earlier
	// iterations into its graph, the mechanism that makes the outer loop a
	// genuine fixed point rather than a single deterministic pass (§4.E).
	alwaysTrueLines  map[int]bool
	alwaysFalseLines map[int]bool
}

// NewReport builds an empty Report.
func NewReport() *Report {
	return &Report{
		Reachable:        make(map[int]bool),
		Subroutines:      make(map[int]*SubroutineSummary),
		pureCallCache:    make(map[string]bool),
		alwaysTrueLines:  make(map[int]bool),
		alwaysFalseLines: make(map[int]bool),
	}
}

// beginIteration clears the per-iteration accumulation slices (everything
// re-derived each pass) but keeps the cross-iteration feedback maps
// (alwaysTrueLines/alwaysFalseLines) so later iterations see earlier ones'
// branch findings.
func (r *Report) beginIteration() {
	r.ConstantFolds = nil
	r.CSE = nil
	r.Reachable = make(map[int]bool)
	r.Unreachable = nil
	r.Subroutines = make(map[int]*SubroutineSummary)
	r.Loops = nil
	r.Branches = nil
	r.DeadWrites = nil
	r.CopyProps = nil
	r.TypeRebinds = nil
	r.TypePromos = nil
	r.IntRanges = nil
	r.Reassocs = nil
	r.ArrayBounds = nil
	r.Issues = nil
	r.pureCallCache = make(map[string]bool)
}

func (r *Report) AddIssue(line int, msg string, isErr bool) {
	r.Issues = append(r.Issues, SemanticIssue{Line: line, Message: msg, IsError: isErr})
}

func (r *Report) HasErrors() bool {
	for _, i := range r.Issues {
		if i.IsError {
			return true
		}
	}
	return false
}

// signature produces a stable string summarizing every finding set, used by
// Manager.Run to detect the fixed point (§4.E "compute a signature... after
// each pass").
func (r *Report) signature() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "cf=%d cse=%d reach=%d unreach=%v sub=%d loop=%d branch=%v dead=%d copy=%d rebind=%d promo=%d range=%d reassoc=%d bounds=%d issues=%d",
		len(r.ConstantFolds), len(r.CSE), len(r.Reachable), sortedInts(r.Unreachable),
		len(r.Subroutines), len(r.Loops), r.branchSignature(), len(r.DeadWrites),
		len(r.CopyProps), len(r.TypeRebinds), len(r.TypePromos), len(r.IntRanges),
		len(r.Reassocs), len(r.ArrayBounds), len(r.Issues))
	return sb.String()
}

func (r *Report) branchSignature() string {
	lines := make([]int, 0, len(r.Branches))
	for _, b := range r.Branches {
		lines = append(lines, b.Line)
	}
	sort.Ints(lines)
	return fmt.Sprint(lines)
}

func sortedInts(xs []int) []int {
	out := append([]int(nil), xs...)
	sort.Ints(out)
	return out
}

// ToJSON serializes the finding sets to a JSON document via repeated
// sjson.Set (§6 analyzer report; SPEC_FULL.md's domain-stack wiring for
// tidwall/sjson). Reachable, Subroutines and Branches are not included.
func (r *Report) ToJSON() (string, error) {
	doc := "{}"
	var err error
	set := func(path string, value interface{}) {
		if err != nil {
			return
		}
		doc, err = sjson.Set(doc, path, value)
	}
	set("converged", r.Converged)
	set("iterations", r.Iterations)
	set("constantFolds", r.ConstantFolds)
	set("cse", r.CSE)
	set("unreachable", sortedInts(r.Unreachable))
	set("loops", r.Loops)
	set("deadWrites", r.DeadWrites)
	set("copyProps", r.CopyProps)
	set("typeRebinds", r.TypeRebinds)
	set("typePromotions", r.TypePromos)
	set("intRanges", r.IntRanges)
	set("reassociations", r.Reassocs)
	set("arrayBounds", r.ArrayBounds)
	set("issues", r.Issues)
	if err != nil {
		return "", err
	}
	return doc, nil
}

// Query extracts one field from the JSON report via gjson.Get, backing the
// `mbasic analyze --query` CLI flag (SPEC_FULL.md).
func (r *Report) Query(path string) (string, error) {
	doc, err := r.ToJSON()
	if err != nil {
		return "", err
	}
	return gjson.Get(doc, path).String(), nil
}
