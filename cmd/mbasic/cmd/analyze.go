package cmd

import (
	"fmt"

	"github.com/cwbudde/go-mbasic/internal/errors"
	"github.com/cwbudde/go-mbasic/internal/lexer"
	"github.com/cwbudde/go-mbasic/internal/parser"
	"github.com/cwbudde/go-mbasic/internal/semantic"
	"github.com/spf13/cobra"
)

var (
	analyzeEval  string
	analyzeQuery string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Run the semantic analyzer and print its JSON report",
	Long: `Run the fixed-point semantic analyzer's passes (constant folding,
common-subexpression detection, reachability, loop/subroutine summaries,
type rebinding and promotion, integer-range inference, alias analysis,
array-bounds findings, and more) and print the resulting report as JSON.

Use --query with a gjson path to extract one field instead of the whole
report, e.g.:

  mbasic analyze --query constantFolds.0.Value program.bas`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&analyzeEval, "eval", "e", "", "analyze inline source instead of reading a file")
	analyzeCmd.Flags().StringVar(&analyzeQuery, "query", "", "gjson path to extract from the report instead of printing it whole")
}

func runAnalyze(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(analyzeEval, args)
	if err != nil {
		return err
	}

	cfg := buildConfig()
	l := lexer.New(input, lexer.WithKeywordCase(cfg.KeywordCase))
	p := parser.New(l)
	prog := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		strs := make([]string, len(errs))
		for i, e := range errs {
			strs[i] = e.Error()
		}
		compilerErrors := errors.FromStringErrors(strs, input, filename)
		fmt.Print(errors.FormatErrors(compilerErrors, true))
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	mgr := semantic.NewManager(cfg.Semantic.MaxIterations, cfg.Semantic.EnableIntegerSizeInference, cfg.Semantic.StrictTypeRebinding)
	report := mgr.Run(prog)

	if analyzeQuery != "" {
		val, qerr := report.Query(analyzeQuery)
		if qerr != nil {
			return qerr
		}
		fmt.Println(val)
		return nil
	}

	out, jerr := report.ToJSON()
	if jerr != nil {
		return jerr
	}
	fmt.Println(out)
	return nil
}
