package program

import (
	"io"
	"os"
	"path/filepath"

	"github.com/maruel/natural"

	mberrors "github.com/cwbudde/go-mbasic/internal/errors"
	"github.com/cwbudde/go-mbasic/internal/ioiface"
)

// OSFileSystem implements ioiface.FileSystem against the host filesystem,
// rooted at Dir (the working directory a FILES/LOAD/SAVE/OPEN statement's
// bare filename is resolved against). It is the reference driver
// implementation; a UI front-end may supply its own (§1, §6).
type OSFileSystem struct {
	Dir string
}

// NewOSFileSystem returns an OSFileSystem rooted at dir ("" means the
// process's current directory).
func NewOSFileSystem(dir string) *OSFileSystem {
	return &OSFileSystem{Dir: dir}
}

func (fs *OSFileSystem) resolve(name string) string {
	if fs.Dir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(fs.Dir, name)
}

// ListFiles matches pattern (a filepath.Match glob) against the directory
// and returns entries in natural (numeric-aware) order, the ordering a
// CP/M-era FILES/CATALOG listing and this codebase's LIST share (§4.K,
// SPEC_FULL.md's maruel/natural wiring).
func (fs *OSFileSystem) ListFiles(pattern string) ([]ioiface.DirEntry, error) {
	if pattern == "" {
		pattern = "*"
	}
	dir := fs.Dir
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	byName := make(map[string]os.DirEntry, len(entries))
	for _, e := range entries {
		if ok, _ := filepath.Match(pattern, e.Name()); !ok {
			continue
		}
		names = append(names, e.Name())
		byName[e.Name()] = e
	}
	natural.Sort(names)

	out := make([]ioiface.DirEntry, 0, len(names))
	for _, n := range names {
		e := byName[n]
		info, ierr := e.Info()
		var size int64
		if ierr == nil {
			size = info.Size()
		}
		out = append(out, ioiface.DirEntry{Name: n, Size: size, IsDir: e.IsDir()})
	}
	return out, nil
}

func (fs *OSFileSystem) LoadFile(name string) (string, error) {
	data, err := os.ReadFile(fs.resolve(name))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (fs *OSFileSystem) SaveFile(name, text string) error {
	return os.WriteFile(fs.resolve(name), []byte(text), 0o644)
}

func (fs *OSFileSystem) FileExists(name string) bool {
	_, err := os.Stat(fs.resolve(name))
	return err == nil
}

func (fs *OSFileSystem) DeleteFile(name string) error {
	return os.Remove(fs.resolve(name))
}

func (fs *OSFileSystem) RenameFile(oldName, newName string) error {
	return os.Rename(fs.resolve(oldName), fs.resolve(newName))
}

// OpenFor opens name under mode (INPUT/OUTPUT/APPEND/RANDOM), returning a
// RecordHandle (§6). Sequential modes never call ReadRecord/WriteRecord
// with n != 0; RANDOM files seek to (n-1)*recordLen per GET/PUT (§4.H).
func (fs *OSFileSystem) OpenFor(name, mode string, recordLen int) (ioiface.RecordHandle, error) {
	path := fs.resolve(name)
	var f *os.File
	var err error
	switch mode {
	case "INPUT":
		f, err = os.Open(path)
	case "OUTPUT":
		f, err = os.Create(path)
	case "APPEND":
		f, err = os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	case "RANDOM":
		f, err = os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
		if recordLen <= 0 {
			recordLen = 128 // MBASIC's default random-access record length
		}
	default:
		return nil, mberrors.Err(mberrors.CodeIllegalFunctionCall, 0, "unknown OPEN mode "+mode)
	}
	if err != nil {
		return nil, err
	}
	return &fileHandle{f: f, mode: mode, recordLen: recordLen}, nil
}

// fileHandle adapts *os.File to ioiface.RecordHandle.
type fileHandle struct {
	f         *os.File
	mode      string
	recordLen int
	atEOF     bool
}

func (h *fileHandle) Close() error { return h.f.Close() }

func (h *fileHandle) ReadRecord(n int) ([]byte, error) {
	buf := make([]byte, h.recordLen)
	if h.mode == "RANDOM" {
		if _, err := h.f.Seek(int64(n-1)*int64(h.recordLen), io.SeekStart); err != nil {
			return nil, err
		}
	}
	read, err := io.ReadFull(h.f, buf)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		h.atEOF = true
	} else if err != nil {
		return nil, err
	}
	return buf[:read], nil
}

func (h *fileHandle) WriteRecord(n int, data []byte) error {
	if h.mode == "RANDOM" {
		if _, err := h.f.Seek(int64(n-1)*int64(h.recordLen), io.SeekStart); err != nil {
			return err
		}
	}
	_, err := h.f.Write(data)
	return err
}

func (h *fileHandle) Eof() bool {
	if h.atEOF {
		return true
	}
	pos, err := h.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return true
	}
	info, err := h.f.Stat()
	if err != nil {
		return true
	}
	return pos >= info.Size()
}

func (h *fileHandle) Loc() int {
	pos, err := h.f.Seek(0, io.SeekCurrent)
	if err != nil || h.recordLen == 0 {
		return 0
	}
	return int(pos) / h.recordLen
}

func (h *fileHandle) Lof() int {
	info, err := h.f.Stat()
	if err != nil {
		return 0
	}
	return int(info.Size())
}
