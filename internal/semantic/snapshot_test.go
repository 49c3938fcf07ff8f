package semantic

import (
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestReportJSONSnapshots runs the fixed-point analyzer over the §8
// end-to-end scenarios and snapshots the resulting JSON report, so a
// regression in any pass's findings (not just their count) shows up as a
// diff against the checked-in snapshot, per SPEC_FULL.md's domain-stack
// wiring for go-snaps/tidwall.
func TestReportJSONSnapshots(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{
			name: "gosub_invalidates_cse",
			src: "10 A = 1 : B = 2\n" +
				"20 X = A + B\n" +
				"30 GOSUB 100\n" +
				"40 Y = A + B\n" +
				"50 END\n" +
				"100 B = B + 10 : RETURN\n",
		},
		{
			name: "constant_fold_cascade",
			src: "10 DEBUG = 0\n" +
				"20 IF DEBUG THEN PRINT \"d\"\n" +
				"30 PRINT \"ok\"\n",
		},
		{
			name: "for_loop_invariant",
			src: "10 FOR I = 1 TO 10\n" +
				"20 X = 2 * 3\n" +
				"30 PRINT X + I\n" +
				"40 NEXT I\n",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			prog := parseProgram(t, c.src)
			rep := NewManager(0, true, false).Run(prog)
			doc, err := rep.ToJSON()
			if err != nil {
				t.Fatalf("ToJSON: %v", err)
			}
			snaps.MatchSnapshot(t, doc)
		})
	}
}

// TestMain lets go-snaps prune obsolete snapshot entries after the package's
// tests finish, the standard go-snaps harness wiring.
func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}
