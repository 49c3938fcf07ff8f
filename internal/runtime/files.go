package runtime

import (
	"io"

	mberrors "github.com/cwbudde/go-mbasic/internal/errors"
)

// FieldMapping is one FIELD clause: width bytes of the record buffer bound
// to a string variable, filled in by LSET/RSET and read back by PRINT/MID$
// on that variable (§4.H).
type FieldMapping struct {
	Width     int
	VarName   string
	VarSuffix byte
}

// FileEntry is one OPEN file number's bookkeeping. Handle is the opaque
// backing stream; internal/ioiface supplies the concrete implementation so
// this package never imports OS file APIs directly.
type FileEntry struct {
	Number    int
	Name      string
	Mode      string // INPUT, OUTPUT, APPEND, RANDOM
	RecordLen int
	Handle    io.Closer
	Fields    []FieldMapping
	Buffer    []byte // the FIELD record buffer for RANDOM files
}

// OpenFiles is the interpreter's file-number table (§3, §4.F).
type OpenFiles struct {
	byNumber map[int]*FileEntry
}

func NewOpenFiles() *OpenFiles {
	return &OpenFiles{byNumber: make(map[int]*FileEntry)}
}

// Open registers entry under its file number, failing if already in use.
func (o *OpenFiles) Open(entry *FileEntry) error {
	if _, exists := o.byNumber[entry.Number]; exists {
		return mberrors.Err(mberrors.CodeBadFileNumber, 0, "")
	}
	o.byNumber[entry.Number] = entry
	return nil
}

// Get returns the entry for number, or BAD_FILE_NUMBER if not open.
func (o *OpenFiles) Get(number int) (*FileEntry, error) {
	e, ok := o.byNumber[number]
	if !ok {
		return nil, mberrors.Err(mberrors.CodeBadFileNumber, 0, "")
	}
	return e, nil
}

// Close closes and forgets number.
func (o *OpenFiles) Close(number int) error {
	e, ok := o.byNumber[number]
	if !ok {
		return mberrors.Err(mberrors.CodeBadFileNumber, 0, "")
	}
	delete(o.byNumber, number)
	if e.Handle != nil {
		return e.Handle.Close()
	}
	return nil
}

// Numbers returns every currently open file number, in no particular
// order; used by LSET/RSET to find which open file's FIELD layout (if
// any) binds a given variable.
func (o *OpenFiles) Numbers() []int {
	out := make([]int, 0, len(o.byNumber))
	for n := range o.byNumber {
		out = append(out, n)
	}
	return out
}

// CloseAll closes every open file, as CLEAR and program end require.
func (o *OpenFiles) CloseAll() {
	for n, e := range o.byNumber {
		if e.Handle != nil {
			e.Handle.Close()
		}
		delete(o.byNumber, n)
	}
}
