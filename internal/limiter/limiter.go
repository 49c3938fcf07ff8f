// Package limiter implements the resource meter from §4.I: depth caps for
// the three control stacks, byte caps for array/total allocation and
// string length, and a wall-time budget consulted between statements.
package limiter

import (
	"time"

	mberrors "github.com/cwbudde/go-mbasic/internal/errors"
	"github.com/cwbudde/go-mbasic/internal/config"
)

// Limiter tracks allocation totals and a deadline against the budgets in a
// config.Limits, raising the matching error kind when a ceiling is crossed
// (§4.I).
type Limiter struct {
	cfg       config.Limits
	allocated int64
	deadline  time.Time
	hasDeadline bool
}

// New builds a Limiter from cfg. The wall-time deadline starts counting
// from the call to Start, not from New, so construction can happen before
// a program is actually run.
func New(cfg config.Limits) *Limiter {
	return &Limiter{cfg: cfg}
}

// Start arms the wall-time deadline, if one is configured.
func (l *Limiter) Start() {
	if l.cfg.MaxWallTimeMS > 0 {
		l.deadline = time.Now().Add(time.Duration(l.cfg.MaxWallTimeMS) * time.Millisecond)
		l.hasDeadline = true
	}
}

// CheckTime raises a timeout error if the wall-time budget has elapsed.
// Called between statements per §5's cooperative cancellation model.
func (l *Limiter) CheckTime() *mberrors.RuntimeError {
	if l.hasDeadline && time.Now().After(l.deadline) {
		return mberrors.Err(mberrors.CodeTimeout, 0, "execution time limit exceeded")
	}
	return nil
}

// CheckArraySize raises OUT_OF_MEMORY if an array of elemBytes*count would
// exceed the per-array byte cap.
func (l *Limiter) CheckArraySize(count, elemBytes int) *mberrors.RuntimeError {
	if l.cfg.MaxArrayBytes > 0 && int64(count)*int64(elemBytes) > l.cfg.MaxArrayBytes {
		return mberrors.Err(mberrors.CodeOutOfMemory, 0, "array exceeds size limit")
	}
	return nil
}

// Allocate adds delta (positive or negative) to the running total allocated
// bytes, raising OUT_OF_MEMORY if the total budget would be exceeded; a
// total below zero is clamped to zero. The interpreter does not call it:
// DIM, CLEAR, NEW, ERASE and assignments leave the total unchanged.
func (l *Limiter) Allocate(delta int64) *mberrors.RuntimeError {
	next := l.allocated + delta
	if l.cfg.MaxTotalBytes > 0 && next > l.cfg.MaxTotalBytes {
		return mberrors.Err(mberrors.CodeOutOfMemory, 0, "total memory limit exceeded")
	}
	if next < 0 {
		next = 0
	}
	l.allocated = next
	return nil
}

// CheckStringLength raises STRING_TOO_LONG if n exceeds the configured cap.
func (l *Limiter) CheckStringLength(n int) *mberrors.RuntimeError {
	if l.cfg.MaxStringLen > 0 && n > l.cfg.MaxStringLen {
		return mberrors.Err(mberrors.CodeStringTooLong, 0, "")
	}
	return nil
}

// Allocated reports the current tracked allocation total, for diagnostics.
func (l *Limiter) Allocated() int64 { return l.allocated }

// Reset zeroes the allocation total. The interpreter does not call it;
// CLEAR and NEW leave the total as it is.
func (l *Limiter) Reset() { l.allocated = 0 }
