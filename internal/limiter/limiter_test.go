package limiter

import (
	"testing"
	"time"

	"github.com/cwbudde/go-mbasic/internal/config"
	mberrors "github.com/cwbudde/go-mbasic/internal/errors"
)

func TestCheckArraySizeRejectsOverBudget(t *testing.T) {
	l := New(config.Limits{MaxArrayBytes: 100})
	if err := l.CheckArraySize(5, 8); err != nil {
		t.Fatalf("40 bytes should fit a 100-byte budget, got %v", err)
	}
	err := l.CheckArraySize(20, 8)
	if err == nil {
		t.Fatal("expected OUT_OF_MEMORY for 160 bytes against a 100-byte budget")
	}
	if err.Code != mberrors.CodeOutOfMemory {
		t.Errorf("Code = %v, want OUT_OF_MEMORY", err.Code)
	}
}

func TestCheckArraySizeUnboundedWhenZero(t *testing.T) {
	l := New(config.Limits{})
	if err := l.CheckArraySize(1_000_000, 8); err != nil {
		t.Fatalf("a zero MaxArrayBytes must mean unbounded, got %v", err)
	}
}

func TestAllocateTracksRunningTotalAndRejectsOverBudget(t *testing.T) {
	l := New(config.Limits{MaxTotalBytes: 100})
	if err := l.Allocate(60); err != nil {
		t.Fatalf("Allocate(60): %v", err)
	}
	if l.Allocated() != 60 {
		t.Fatalf("Allocated() = %d, want 60", l.Allocated())
	}
	if err := l.Allocate(60); err == nil {
		t.Fatal("expected OUT_OF_MEMORY allocating past the 100-byte total budget")
	}
	// The rejected allocation must not have been applied.
	if l.Allocated() != 60 {
		t.Fatalf("Allocated() = %d after a rejected allocation, want unchanged 60", l.Allocated())
	}
}

func TestAllocateNegativeDeltaNeverGoesBelowZero(t *testing.T) {
	l := New(config.Limits{})
	if err := l.Allocate(10); err != nil {
		t.Fatal(err)
	}
	if err := l.Allocate(-100); err != nil {
		t.Fatalf("Allocate(-100): %v", err)
	}
	if l.Allocated() != 0 {
		t.Fatalf("Allocated() = %d, want floored at 0", l.Allocated())
	}
}

func TestResetZeroesAllocatedTotal(t *testing.T) {
	l := New(config.Limits{})
	l.Allocate(42)
	l.Reset()
	if l.Allocated() != 0 {
		t.Fatalf("Allocated() after Reset = %d, want 0", l.Allocated())
	}
}

func TestCheckStringLengthRejectsOverCap(t *testing.T) {
	l := New(config.Limits{MaxStringLen: 10})
	if err := l.CheckStringLength(10); err != nil {
		t.Fatalf("exactly at the cap should pass, got %v", err)
	}
	err := l.CheckStringLength(11)
	if err == nil || err.Code != mberrors.CodeStringTooLong {
		t.Fatalf("err = %v, want STRING_TOO_LONG for length 11 against a 10-byte cap", err)
	}
}

func TestCheckTimeWithoutStartNeverTimesOut(t *testing.T) {
	l := New(config.Limits{MaxWallTimeMS: 1})
	// Start was never called, so no deadline is armed regardless of the
	// configured budget.
	if err := l.CheckTime(); err != nil {
		t.Fatalf("CheckTime before Start: %v, want nil (deadline not armed)", err)
	}
}

func TestCheckTimeAfterStartExpiresPastDeadline(t *testing.T) {
	l := New(config.Limits{MaxWallTimeMS: 1})
	l.Start()
	time.Sleep(5 * time.Millisecond)
	err := l.CheckTime()
	if err == nil || err.Code != mberrors.CodeTimeout {
		t.Fatalf("err = %v, want TIMEOUT once the 1ms budget has elapsed", err)
	}
}
