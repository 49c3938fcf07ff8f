package runtime

import (
	"github.com/cwbudde/go-mbasic/internal/ast"
	mberrors "github.com/cwbudde/go-mbasic/internal/errors"
)

// Array is a dimensioned MBASIC array: a flat backing slice addressed by a
// row-major index computed from per-dimension bounds.
type Array struct {
	Tag     ast.TypeTag
	Lower   int // inclusive lower bound, shared across all dimensions (OPTION BASE)
	Dims    []int // declared upper bound per dimension
	Data    []Value
}

func newArray(tag ast.TypeTag, lower int, dims []int) *Array {
	size := 1
	for _, d := range dims {
		size *= (d - lower + 1)
	}
	data := make([]Value, size)
	zero := ZeroValue(tag)
	for i := range data {
		data[i] = zero
	}
	return &Array{Tag: tag, Lower: lower, Dims: dims, Data: data}
}

// index computes the flat offset for indices, or ok=false if out of range.
func (a *Array) index(indices []int) (int, bool) {
	if len(indices) != len(a.Dims) {
		return 0, false
	}
	offset := 0
	for i, idx := range indices {
		if idx < a.Lower || idx > a.Dims[i] {
			return 0, false
		}
		span := a.Dims[i] - a.Lower + 1
		offset = offset*span + (idx - a.Lower)
	}
	return offset, true
}

// Store holds every scalar and array variable for one runtime (the
// top-level program, or a CHAIN'd program that inherited COMMON variables).
type Store struct {
	scalars    map[string]Value
	arrays     map[string]*Array
	defTypeMap map[byte]ast.TypeTag
	optionBase int
	baseSet    bool
}

// NewStore creates an empty Store using defTypeMap for unsuffixed-identifier
// type resolution (§3, §4.F).
func NewStore(defTypeMap map[byte]ast.TypeTag) *Store {
	return &Store{
		scalars:    make(map[string]Value),
		arrays:     make(map[string]*Array),
		defTypeMap: defTypeMap,
	}
}

func key(name string, suffix byte) string {
	if suffix != 0 {
		return name + string(suffix)
	}
	return name
}

// EffectiveTag resolves a variable's type from its suffix, falling back to
// the DEF-type letter map, then SINGLE.
func (s *Store) EffectiveTag(name string, suffix byte) ast.TypeTag {
	return ast.ResolveTypeTag(name, suffix, s.defTypeMap)
}

// SetOptionBase fixes the default array lower bound; must be called before
// any array is dimensioned (§4.H).
func (s *Store) SetOptionBase(base int) error {
	if len(s.arrays) > 0 {
		return mberrors.Err(mberrors.CodeDuplicateDefinition, 0, "OPTION BASE after array use")
	}
	s.optionBase = base
	s.baseSet = true
	return nil
}

// GetVariable returns the current value of name, or the zero value of its
// effective type if never assigned.
func (s *Store) GetVariable(name string, suffix byte) Value {
	k := key(name, suffix)
	if v, ok := s.scalars[k]; ok {
		return v
	}
	return ZeroValue(s.EffectiveTag(name, suffix))
}

// SetVariable coerces value to name's effective type and stores it.
func (s *Store) SetVariable(name string, suffix byte, value Value) error {
	tag := s.EffectiveTag(name, suffix)
	coerced, err := Coerce(value, tag)
	if err != nil {
		return err
	}
	s.scalars[key(name, suffix)] = coerced
	return nil
}

// DimArray creates a new array, or returns DUPLICATE_DEFINITION if name is
// already dimensioned (re-DIM requires ERASE first, §4.H).
func (s *Store) DimArray(name string, suffix byte, dims []int) error {
	k := key(name, suffix)
	if _, ok := s.arrays[k]; ok {
		return mberrors.Err(mberrors.CodeDuplicateDefinition, 0, name)
	}
	s.arrays[k] = newArray(s.EffectiveTag(name, suffix), s.optionBase, dims)
	return nil
}

// EnsureArray auto-dimensions a default-bound-10 array on first use, per
// classic MBASIC behavior for arrays referenced without a prior DIM.
func (s *Store) EnsureArray(name string, suffix byte, dimCount int) *Array {
	k := key(name, suffix)
	if a, ok := s.arrays[k]; ok {
		return a
	}
	dims := make([]int, dimCount)
	for i := range dims {
		dims[i] = 10
	}
	a := newArray(s.EffectiveTag(name, suffix), s.optionBase, dims)
	s.arrays[k] = a
	return a
}

// EraseArray removes name so it may be re-DIM'd.
func (s *Store) EraseArray(name string, suffix byte) {
	delete(s.arrays, key(name, suffix))
}

// ArrayGet reads indices from array name, auto-dimensioning it on first use.
func (s *Store) ArrayGet(name string, suffix byte, indices []int) (Value, error) {
	a := s.EnsureArray(name, suffix, len(indices))
	off, ok := a.index(indices)
	if !ok {
		return nil, mberrors.Err(mberrors.CodeSubscriptOutOfRange, 0, name)
	}
	return a.Data[off], nil
}

// ArraySet writes value into array name at indices, coercing to the
// array's element type.
func (s *Store) ArraySet(name string, suffix byte, indices []int, value Value) error {
	a := s.EnsureArray(name, suffix, len(indices))
	off, ok := a.index(indices)
	if !ok {
		return mberrors.Err(mberrors.CodeSubscriptOutOfRange, 0, name)
	}
	coerced, err := Coerce(value, a.Tag)
	if err != nil {
		return err
	}
	a.Data[off] = coerced
	return nil
}

// Clear empties every scalar and array, as CLEAR/NEW require.
func (s *Store) Clear() {
	s.scalars = make(map[string]Value)
	s.arrays = make(map[string]*Array)
	s.baseSet = false
	s.optionBase = 0
}
