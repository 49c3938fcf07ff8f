package runtime

import mberrors "github.com/cwbudde/go-mbasic/internal/errors"

// ForFrame is one entry on the FOR stack: the control variable, its loop
// bounds, and the PC of the first statement inside the loop body so NEXT
// can find where to jump back to (§3, §4.H).
type ForFrame struct {
	VarName string
	VarSuffix byte
	Limit   float64
	Step    float64
	BodyPC  PC
}

// GosubFrame is one entry on the GOSUB stack: the PC to resume at on RETURN.
type GosubFrame struct {
	ReturnPC PC
}

// WhileFrame is one entry on the WHILE stack: the PC of the WHILE statement
// itself, so WEND can jump back to re-evaluate the condition.
type WhileFrame struct {
	HeadPC PC
}

// Stacks holds the three independent control stacks the interpreter
// maintains. GOSUB and FOR/WHILE are independent: a mismatched NEXT raises
// a runtime error without touching the GOSUB stack (§3).
type Stacks struct {
	gosub []GosubFrame
	forS  []ForFrame
	while []WhileFrame

	maxGosub, maxFor, maxWhile int
}

// NewStacks builds empty stacks with the given depth caps (0 means
// unlimited), consulted by the resource limiter (§4.I).
func NewStacks(maxGosub, maxFor, maxWhile int) *Stacks {
	return &Stacks{maxGosub: maxGosub, maxFor: maxFor, maxWhile: maxWhile}
}

func (s *Stacks) PushGosub(returnPC PC) error {
	if s.maxGosub > 0 && len(s.gosub) >= s.maxGosub {
		return mberrors.Err(mberrors.CodeOutOfMemory, 0, "GOSUB stack overflow")
	}
	s.gosub = append(s.gosub, GosubFrame{ReturnPC: returnPC})
	return nil
}

func (s *Stacks) PopGosub() (GosubFrame, error) {
	if len(s.gosub) == 0 {
		return GosubFrame{}, mberrors.Err(mberrors.CodeReturnWithoutGosub, 0, "")
	}
	top := s.gosub[len(s.gosub)-1]
	s.gosub = s.gosub[:len(s.gosub)-1]
	return top, nil
}

func (s *Stacks) GosubDepth() int { return len(s.gosub) }

func (s *Stacks) PushFor(f ForFrame) error {
	if s.maxFor > 0 && len(s.forS) >= s.maxFor {
		return mberrors.Err(mberrors.CodeOutOfMemory, 0, "FOR stack overflow")
	}
	s.forS = append(s.forS, f)
	return nil
}

func (s *Stacks) PopFor() (ForFrame, error) {
	if len(s.forS) == 0 {
		return ForFrame{}, mberrors.Err(mberrors.CodeNextWithoutFor, 0, "")
	}
	top := s.forS[len(s.forS)-1]
	s.forS = s.forS[:len(s.forS)-1]
	return top, nil
}

func (s *Stacks) TopFor() (ForFrame, bool) {
	if len(s.forS) == 0 {
		return ForFrame{}, false
	}
	return s.forS[len(s.forS)-1], true
}

// FindForByVar searches from the top of the FOR stack downward for a frame
// controlled by name and returns it, popping that frame together with (and
// discarding) any inner frames above it — the semantics NEXT I uses when I
// is not the innermost loop. The caller pushes the frame back if the loop
// continues.
func (s *Stacks) FindForByVar(name string, suffix byte) (ForFrame, bool) {
	for i := len(s.forS) - 1; i >= 0; i-- {
		if s.forS[i].VarName == name && s.forS[i].VarSuffix == suffix {
			frame := s.forS[i]
			s.forS = s.forS[:i]
			return frame, true
		}
	}
	return ForFrame{}, false
}

func (s *Stacks) ForDepth() int { return len(s.forS) }

func (s *Stacks) PushWhile(f WhileFrame) error {
	if s.maxWhile > 0 && len(s.while) >= s.maxWhile {
		return mberrors.Err(mberrors.CodeOutOfMemory, 0, "WHILE stack overflow")
	}
	s.while = append(s.while, f)
	return nil
}

func (s *Stacks) PopWhile() (WhileFrame, error) {
	if len(s.while) == 0 {
		return WhileFrame{}, mberrors.Err(mberrors.CodeWendWithoutWhile, 0, "")
	}
	top := s.while[len(s.while)-1]
	s.while = s.while[:len(s.while)-1]
	return top, nil
}

func (s *Stacks) TopWhile() (WhileFrame, bool) {
	if len(s.while) == 0 {
		return WhileFrame{}, false
	}
	return s.while[len(s.while)-1], true
}

func (s *Stacks) WhileDepth() int { return len(s.while) }

// Clear empties every stack, as CLEAR requires.
func (s *Stacks) Clear() {
	s.gosub = nil
	s.forS = nil
	s.while = nil
}
