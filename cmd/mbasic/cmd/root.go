package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	verbose      bool
	keywordCase  string
	limitPreset  string
	codepage     bool
	traceFlag    bool
	evalExpr     string
)

var rootCmd = &cobra.Command{
	Use:   "mbasic [file]",
	Short: "MBASIC 5.21 interpreter",
	Long: `mbasic is a Go implementation of the MBASIC 5.21 interpreter.

Given a program file, it loads and runs it, then drops into the
immediate-mode prompt. With no file, it starts the prompt directly.

Examples:
  # Run a stored program, then stay at the Ok prompt
  mbasic program.bas

  # Start straight at the Ok prompt
  mbasic

  # Evaluate one immediate-mode statement and exit
  mbasic -e "PRINT 1+1"`,
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runMain,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&keywordCase, "keyword-case", "upper", "keyword spelling policy: upper, lower, first-wins, preserve, error")
	rootCmd.PersistentFlags().StringVar(&limitPreset, "preset", "local", "resource-limit preset: web, local, unlimited")
	rootCmd.PersistentFlags().BoolVar(&codepage, "codepage", false, "transcode console I/O through CP437 (legacy 8-bit terminals)")

	rootCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "run one immediate-mode statement and exit, skipping the file/REPL")
	rootCmd.Flags().BoolVar(&traceFlag, "trace", false, "enable TRON-style execution trace from startup")
}
