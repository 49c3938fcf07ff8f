package interp

import (
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestConsoleOutputSnapshots runs every §8 end-to-end scenario to
// completion and snapshots the console's accumulated output, catching
// formatting regressions (PRINT column zones, numeric spacing, error
// messages) that an equality check on one hand-picked substring would miss.
func TestConsoleOutputSnapshots(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{
			name: "hello",
			src:  "10 PRINT \"HELLO\"\n20 END",
		},
		{
			name: "deterministic_loop",
			src:  "10 FOR I = 1 TO 3\n20 PRINT I\n30 NEXT I",
		},
		{
			name: "on_error_resume_next",
			src: "10 ON ERROR GOTO 100\n" +
				"20 A = 1/0\n" +
				"30 PRINT \"after\"\n" +
				"40 END\n" +
				"100 PRINT \"err\"; ERR : RESUME NEXT\n",
		},
		{
			name: "data_read",
			src: "10 DATA 1, \"hi\", 3\n" +
				"20 READ A, B$, C\n" +
				"30 PRINT A; B$; C\n",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in, console := newInterp(t, c.src)
			st := runToHalt(t, in)
			snaps.MatchSnapshot(t, st.Reason, console.out.String())
		})
	}
}

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}
