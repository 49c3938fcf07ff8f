package interp

import (
	"github.com/cwbudde/go-mbasic/internal/ioiface"
	"github.com/cwbudde/go-mbasic/internal/runtime"
	"testing"
)

// fakeRecordHandle backs OPEN ... AS #n with an in-memory slice of
// fixed-width records, enough to exercise GET/PUT without touching disk.
type fakeRecordHandle struct {
	recLen  int
	records map[int][]byte
	closed  bool
}

func (h *fakeRecordHandle) Close() error { h.closed = true; return nil }
func (h *fakeRecordHandle) ReadRecord(n int) ([]byte, error) {
	data, ok := h.records[n]
	if !ok {
		return make([]byte, h.recLen), nil
	}
	out := make([]byte, h.recLen)
	copy(out, data)
	return out, nil
}
func (h *fakeRecordHandle) WriteRecord(n int, data []byte) error {
	buf := make([]byte, len(data))
	copy(buf, data)
	h.records[n] = buf
	return nil
}
func (h *fakeRecordHandle) Eof() bool { return false }
func (h *fakeRecordHandle) Loc() int  { return 0 }
func (h *fakeRecordHandle) Lof() int  { return len(h.records) * h.recLen }

type fakeFileSystem struct {
	opened map[string]*fakeRecordHandle
}

func newFakeFileSystem() *fakeFileSystem {
	return &fakeFileSystem{opened: map[string]*fakeRecordHandle{}}
}

func (fs *fakeFileSystem) ListFiles(pattern string) ([]ioiface.DirEntry, error) { return nil, nil }
func (fs *fakeFileSystem) LoadFile(name string) (string, error)                { return "", nil }
func (fs *fakeFileSystem) SaveFile(name, text string) error                    { return nil }
func (fs *fakeFileSystem) FileExists(name string) bool                         { return false }
func (fs *fakeFileSystem) DeleteFile(name string) error                        { return nil }
func (fs *fakeFileSystem) RenameFile(oldName, newName string) error            { return nil }

func (fs *fakeFileSystem) OpenFor(name, mode string, recordLen int) (ioiface.RecordHandle, error) {
	h, ok := fs.opened[name]
	if !ok {
		h = &fakeRecordHandle{recLen: recordLen, records: map[int][]byte{}}
		fs.opened[name] = h
	}
	return h, nil
}

func newInterpWithFS(t *testing.T, src string, fs ioiface.FileSystem) (*Interpreter, *fakeConsole) {
	t.Helper()
	prog := parseProgram(t, src)
	state := runtime.NewState(prog, 0, 0, 0)
	console := &fakeConsole{}
	return New(state, console, fs, nil, nil), console
}

func TestFieldGetPutRoundTripThroughRecordBuffer(t *testing.T) {
	fs := newFakeFileSystem()
	src := "10 OPEN \"R\" FOR RANDOM AS #1, 10\n" +
		"20 FIELD #1, 5 AS A$, 5 AS B$\n" +
		"30 LSET A$ = \"HI\"\n" +
		"40 RSET B$ = \"X\"\n" +
		"50 PUT #1, 1\n" +
		"60 FIELD #1, 5 AS A$, 5 AS B$\n" +
		"70 GET #1, 1\n" +
		"80 END"
	in, _ := newInterpWithFS(t, src, fs)
	st := runToHalt(t, in)
	if st.Reason != HaltEnd {
		t.Fatalf("Reason = %v, want HaltEnd", st.Reason)
	}
	a := in.State.Store.GetVariable("A", '$')
	av, ok := a.(runtime.StringValue)
	if !ok || av.Value != "HI   " {
		t.Fatalf("A$ after round trip = %#v, want %q", a, "HI   ")
	}
	b := in.State.Store.GetVariable("B", '$')
	bv, ok := b.(runtime.StringValue)
	if !ok || bv.Value != "    X" {
		t.Fatalf("B$ after round trip = %#v, want %q", b, "    X")
	}
}

// LSET/RSET pad or truncate to the *current* length of the target
// variable, not to the FIELD width directly; a variable only takes on
// the FIELD width once a GET has first populated it from the record
// buffer, so this exercises LSET through that path rather than against
// a never-assigned (zero-length) target.
func TestLSetPadsToCurrentVariableLengthAfterFieldEstablishesWidth(t *testing.T) {
	fs := newFakeFileSystem()
	src := "10 OPEN \"R\" FOR RANDOM AS #1, 8\n" +
		"20 FIELD #1, 8 AS NAME$\n" +
		"30 PUT #1, 1\n" +
		"40 FIELD #1, 8 AS NAME$\n" +
		"50 GET #1, 1\n" +
		"60 LSET NAME$ = \"AB\"\n" +
		"70 END"
	in, _ := newInterpWithFS(t, src, fs)
	runToHalt(t, in)
	v := in.State.Store.GetVariable("NAME", '$')
	sv, ok := v.(runtime.StringValue)
	if !ok || sv.Value != "AB      " {
		t.Fatalf("NAME$ = %#v, want %q", v, "AB      ")
	}
}

func TestCloseWithoutNumbersClosesEveryOpenFile(t *testing.T) {
	fs := newFakeFileSystem()
	src := "10 OPEN \"R\" FOR RANDOM AS #1, 4\n20 CLOSE\n30 END"
	in, _ := newInterpWithFS(t, src, fs)
	runToHalt(t, in)
	if len(in.State.Files.Numbers()) != 0 {
		t.Fatalf("expected CLOSE with no arguments to close every open file, got %v", in.State.Files.Numbers())
	}
}

func TestOpenWithoutFileSystemIsFileNotFound(t *testing.T) {
	in, _ := newInterp(t, "10 OPEN \"R\" FOR RANDOM AS #1, 4\n20 END")
	st := runToHalt(t, in)
	if st.Reason != HaltError {
		t.Fatalf("Reason = %v, want HaltError", st.Reason)
	}
}

func TestGetOnUnopenedFileNumberIsBadFileNumber(t *testing.T) {
	fs := newFakeFileSystem()
	in, _ := newInterpWithFS(t, "10 GET #1, 1\n20 END", fs)
	st := runToHalt(t, in)
	if st.Reason != HaltError {
		t.Fatalf("Reason = %v, want HaltError for GET on an unopened file", st.Reason)
	}
}
