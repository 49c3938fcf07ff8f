package runtime

import (
	"testing"

	"github.com/cwbudde/go-mbasic/internal/ast"
	mberrors "github.com/cwbudde/go-mbasic/internal/errors"
)

func TestStoreGetVariableDefaultsToZeroOfEffectiveType(t *testing.T) {
	s := NewStore(nil)
	v := s.GetVariable("X", 0)
	if _, ok := v.(SingleValue); !ok {
		t.Fatalf("unset bare variable should default to SINGLE zero, got %T", v)
	}
	v = s.GetVariable("COUNT", '%')
	iv, ok := v.(IntegerValue)
	if !ok || iv.Value != 0 {
		t.Fatalf("unset %%-suffixed variable should default to INTEGER 0, got %+v", v)
	}
}

func TestStoreSetVariableCoercesToEffectiveType(t *testing.T) {
	s := NewStore(nil)
	if err := s.SetVariable("X", '%', SingleValue{Value: 3.7}); err != nil {
		t.Fatalf("SetVariable: %v", err)
	}
	got := s.GetVariable("X", '%')
	iv, ok := got.(IntegerValue)
	if !ok || iv.Value != 4 {
		t.Fatalf("expected 3.7 coerced and rounded to INTEGER 4, got %+v", got)
	}
}

func TestStoreSetVariableOverflowIsRuntimeError(t *testing.T) {
	s := NewStore(nil)
	err := s.SetVariable("X", '%', DoubleValue{Value: 99999})
	if err == nil {
		t.Fatal("expected OVERFLOW assigning 99999 to an INTEGER variable")
	}
	rerr, ok := err.(*mberrors.RuntimeError)
	if !ok || rerr.Code != mberrors.CodeOverflow {
		t.Fatalf("err = %v, want OVERFLOW RuntimeError", err)
	}
}

func TestStoreSetVariableStringNumericMismatch(t *testing.T) {
	s := NewStore(nil)
	err := s.SetVariable("A", '$', IntegerValue{Value: 1})
	if err == nil {
		t.Fatal("expected TYPE_MISMATCH assigning a numeric value to a string variable")
	}
	rerr, ok := err.(*mberrors.RuntimeError)
	if !ok || rerr.Code != mberrors.CodeTypeMismatch {
		t.Fatalf("err = %v, want TYPE_MISMATCH RuntimeError", err)
	}
}

func TestStoreDefTypeMapResolvesBareIdentifiers(t *testing.T) {
	defMap := map[byte]ast.TypeTag{'I': ast.TypeInteger}
	s := NewStore(defMap)
	tag := s.EffectiveTag("I", 0)
	if tag != ast.TypeInteger {
		t.Fatalf("EffectiveTag(I) = %v, want INTEGER under DEFINT I", tag)
	}
	tag = s.EffectiveTag("J", 0)
	if tag != ast.TypeSingle {
		t.Fatalf("EffectiveTag(J) = %v, want the SINGLE fallback", tag)
	}
}

func TestArrayDimAndBoundsChecking(t *testing.T) {
	s := NewStore(nil)
	if err := s.DimArray("A", 0, []int{10}); err != nil {
		t.Fatalf("DimArray: %v", err)
	}
	if err := s.ArraySet("A", 0, []int{5}, IntegerValue{Value: 42}); err != nil {
		t.Fatalf("ArraySet: %v", err)
	}
	v, err := s.ArrayGet("A", 0, []int{5})
	if err != nil {
		t.Fatalf("ArrayGet: %v", err)
	}
	sv, ok := v.(SingleValue)
	if !ok || sv.Value != 42 {
		t.Fatalf("got %+v, want SINGLE 42 (default array element type)", v)
	}

	_, err = s.ArrayGet("A", 0, []int{11})
	if err == nil {
		t.Fatal("expected SUBSCRIPT_OUT_OF_RANGE reading A(11) of a DIM A(10) array")
	}
	rerr, ok := err.(*mberrors.RuntimeError)
	if !ok || rerr.Code != mberrors.CodeSubscriptOutOfRange {
		t.Fatalf("err = %v, want SUBSCRIPT_OUT_OF_RANGE", err)
	}
}

func TestArrayRedimWithoutEraseIsDuplicateDefinition(t *testing.T) {
	s := NewStore(nil)
	if err := s.DimArray("B", 0, []int{5}); err != nil {
		t.Fatalf("DimArray: %v", err)
	}
	err := s.DimArray("B", 0, []int{5})
	if err == nil {
		t.Fatal("expected DUPLICATE_DEFINITION re-DIMing B without ERASE")
	}
	rerr, ok := err.(*mberrors.RuntimeError)
	if !ok || rerr.Code != mberrors.CodeDuplicateDefinition {
		t.Fatalf("err = %v, want DUPLICATE_DEFINITION", err)
	}
	s.EraseArray("B", 0)
	if err := s.DimArray("B", 0, []int{5}); err != nil {
		t.Fatalf("DimArray after ERASE: %v", err)
	}
}

func TestArrayAutoDimensionsOnFirstUse(t *testing.T) {
	s := NewStore(nil)
	v, err := s.ArrayGet("Z", 0, []int{3})
	if err != nil {
		t.Fatalf("ArrayGet on undeclared array: %v", err)
	}
	if sv, ok := v.(SingleValue); !ok || sv.Value != 0 {
		t.Fatalf("expected zero value from auto-dimensioned array, got %+v", v)
	}
	// Classic MBASIC default upper bound is 10; index 10 must be valid.
	if _, err := s.ArrayGet("Z", 0, []int{10}); err != nil {
		t.Fatalf("auto-dimensioned array should allow index 10, got %v", err)
	}
	if _, err := s.ArrayGet("Z", 0, []int{11}); err == nil {
		t.Fatal("expected SUBSCRIPT_OUT_OF_RANGE at index 11 of an auto-dimensioned array")
	}
}

func TestOptionBaseAffectsNewArrays(t *testing.T) {
	s := NewStore(nil)
	if err := s.SetOptionBase(1); err != nil {
		t.Fatalf("SetOptionBase: %v", err)
	}
	if err := s.DimArray("A", 0, []int{10}); err != nil {
		t.Fatalf("DimArray: %v", err)
	}
	if _, err := s.ArrayGet("A", 0, []int{0}); err == nil {
		t.Fatal("expected index 0 to be out of range once OPTION BASE 1 is set")
	}
	if _, err := s.ArrayGet("A", 0, []int{1}); err != nil {
		t.Fatalf("index 1 should be valid under OPTION BASE 1, got %v", err)
	}
}

func TestOptionBaseAfterArrayUseIsRejected(t *testing.T) {
	s := NewStore(nil)
	if err := s.DimArray("A", 0, []int{10}); err != nil {
		t.Fatalf("DimArray: %v", err)
	}
	if err := s.SetOptionBase(1); err == nil {
		t.Fatal("expected OPTION BASE after an array is already dimensioned to fail")
	}
}

func TestStoreClearEmptiesScalarsAndArrays(t *testing.T) {
	s := NewStore(nil)
	if err := s.SetVariable("X", 0, SingleValue{Value: 1}); err != nil {
		t.Fatalf("SetVariable: %v", err)
	}
	if err := s.DimArray("A", 0, []int{5}); err != nil {
		t.Fatalf("DimArray: %v", err)
	}
	s.Clear()
	if v := s.GetVariable("X", 0); v.(SingleValue).Value != 0 {
		t.Errorf("expected X reset to zero after Clear, got %+v", v)
	}
	// A re-dims cleanly since Clear wipes the arrays map too.
	if err := s.DimArray("A", 0, []int{5}); err != nil {
		t.Errorf("expected DimArray to succeed after Clear, got %v", err)
	}
}

func TestStacksGosubPushPop(t *testing.T) {
	st := NewStacks(0, 0, 0)
	if err := st.PushGosub(PC{Line: 10, Stmt: 1}); err != nil {
		t.Fatalf("PushGosub: %v", err)
	}
	if st.GosubDepth() != 1 {
		t.Fatalf("GosubDepth = %d, want 1", st.GosubDepth())
	}
	frame, err := st.PopGosub()
	if err != nil {
		t.Fatalf("PopGosub: %v", err)
	}
	if frame.ReturnPC != (PC{Line: 10, Stmt: 1}) {
		t.Errorf("ReturnPC = %+v, want {10 1}", frame.ReturnPC)
	}
	if _, err := st.PopGosub(); err == nil {
		t.Fatal("expected RETURN_WITHOUT_GOSUB popping an empty stack")
	}
}

func TestStacksGosubDepthLimit(t *testing.T) {
	st := NewStacks(2, 0, 0)
	if err := st.PushGosub(PC{Line: 10}); err != nil {
		t.Fatalf("push 1: %v", err)
	}
	if err := st.PushGosub(PC{Line: 20}); err != nil {
		t.Fatalf("push 2: %v", err)
	}
	err := st.PushGosub(PC{Line: 30})
	if err == nil {
		t.Fatal("expected GOSUB stack overflow at depth 3 with a cap of 2")
	}
	rerr, ok := err.(*mberrors.RuntimeError)
	if !ok || rerr.Code != mberrors.CodeOutOfMemory {
		t.Fatalf("err = %v, want OUT_OF_MEMORY", err)
	}
}

func TestStacksFindForByVarPopsInnerLoops(t *testing.T) {
	st := NewStacks(0, 0, 0)
	st.PushFor(ForFrame{VarName: "I", Limit: 10, Step: 1})
	st.PushFor(ForFrame{VarName: "J", Limit: 5, Step: 1})
	frame, ok := st.FindForByVar("I", 0)
	if !ok {
		t.Fatal("expected to find the I frame beneath J")
	}
	if frame.VarName != "I" {
		t.Errorf("VarName = %q, want I", frame.VarName)
	}
	if st.ForDepth() != 0 {
		t.Errorf("ForDepth = %d, want 0 (both I and the inner J frame should be popped)", st.ForDepth())
	}
}

func TestStacksNextWithoutForIsRuntimeError(t *testing.T) {
	st := NewStacks(0, 0, 0)
	_, err := st.PopFor()
	if err == nil {
		t.Fatal("expected NEXT_WITHOUT_FOR popping an empty FOR stack")
	}
	rerr, ok := err.(*mberrors.RuntimeError)
	if !ok || rerr.Code != mberrors.CodeNextWithoutFor {
		t.Fatalf("err = %v, want NEXT_WITHOUT_FOR", err)
	}
}

func TestStacksWendWithoutWhileIsRuntimeError(t *testing.T) {
	st := NewStacks(0, 0, 0)
	_, err := st.PopWhile()
	if err == nil {
		t.Fatal("expected WEND_WITHOUT_WHILE popping an empty WHILE stack")
	}
	rerr, ok := err.(*mberrors.RuntimeError)
	if !ok || rerr.Code != mberrors.CodeWendWithoutWhile {
		t.Fatalf("err = %v, want WEND_WITHOUT_WHILE", err)
	}
}

func TestProgramCounterJumpAndHalt(t *testing.T) {
	pc := &ProgramCounter{}
	pc.Jump(100)
	if pc.State != Jumping || pc.Target != 100 {
		t.Fatalf("after Jump(100): state=%v target=%d, want Jumping/100", pc.State, pc.Target)
	}
	pc.Halt()
	if pc.State != Halted {
		t.Fatalf("after Halt: state=%v, want Halted", pc.State)
	}
}
