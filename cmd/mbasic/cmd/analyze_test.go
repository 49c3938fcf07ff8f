package cmd

import (
	"io"
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// captureStdout redirects os.Stdout for the duration of fn and returns
// everything written to it, for commands (analyze, lex, parse) that print
// straight to fmt.Println rather than through an injectable writer.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	w.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reading captured stdout: %v", err)
	}
	return string(out)
}

// TestAnalyzeJSONReportSnapshot exercises the `analyze` subcommand's full
// CLI path (flag defaults -> lexer -> parser -> semantic.Manager ->
// Report.ToJSON) the way a user invoking `mbasic analyze -e ...` would,
// snapshotting the printed report.
func TestAnalyzeJSONReportSnapshot(t *testing.T) {
	analyzeEval = "10 A = 1 : B = 2\n20 X = A + B\n30 GOSUB 100\n40 Y = A + B\n50 END\n100 B = B + 10 : RETURN\n"
	analyzeQuery = ""
	defer func() { analyzeEval = ""; analyzeQuery = "" }()

	out := captureStdout(t, func() {
		if err := runAnalyze(analyzeCmd, nil); err != nil {
			t.Fatalf("runAnalyze: %v", err)
		}
	})
	snaps.MatchSnapshot(t, out)
}

// TestAnalyzeQueryExtractsOneField exercises the gjson-backed --query flag.
func TestAnalyzeQueryExtractsOneField(t *testing.T) {
	analyzeEval = "10 X = 2 + 3 * 4\n"
	analyzeQuery = "constantFolds.0.Value"
	defer func() { analyzeEval = ""; analyzeQuery = "" }()

	out := captureStdout(t, func() {
		if err := runAnalyze(analyzeCmd, nil); err != nil {
			t.Fatalf("runAnalyze: %v", err)
		}
	})
	snaps.MatchSnapshot(t, out)
}

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}
