package cmd

import (
	"fmt"

	"github.com/cwbudde/go-mbasic/internal/errors"
	"github.com/cwbudde/go-mbasic/internal/lexer"
	"github.com/cwbudde/go-mbasic/internal/parser"
	"github.com/spf13/cobra"
)

var parseEval string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a program and print its reconstructed source",
	Long: `Parse MBASIC source into the AST and print it back out in its
canonical form (useful for checking how the parser understood a program,
and as a smoke test for LIST's rendering).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse inline source instead of reading a file")
}

func runParse(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(parseEval, args)
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

	fmt.Print(prog.String())
	return nil
}
