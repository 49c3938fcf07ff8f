// Command mbasic is the MBASIC 5.21 interpreter's command-line front end:
// `mbasic program.bas` runs a stored program and drops into the immediate
// prompt; `mbasic` with no file starts the prompt directly (§6).
package main

import (
	"os"

	"github.com/cwbudde/go-mbasic/cmd/mbasic/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
