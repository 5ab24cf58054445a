package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/bminor/bminorc/internal/diag"
	"github.com/bminor/bminorc/internal/lexer"
	"github.com/bminor/bminorc/internal/token"
	"github.com/spf13/cobra"
)

var scanEval string

var scanCmd = &cobra.Command{
	Use:   "scan [file]",
	Short: "Tokenize a B-Minor file and print the resulting tokens",
	Long: `Tokenize (scan) a B-Minor program and print every token as a row
of a table: type, literal, and source position.

Examples:
  bminorc scan program.bm
  bminorc scan -e "x: integer = 1;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringVarP(&scanEval, "eval", "e", "", "scan inline source instead of reading a file")
}

func runScan(cmd *cobra.Command, args []string) error {
	src, name, err := readSource(args, scanEval)
	if err != nil {
		return err
	}

	d := diag.New()
	toks := lexer.Tokenize(src, d)

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tLITERAL\tPOSITION")
	for _, tok := range toks {
		if tok.Type == token.EOF {
			continue
		}
		fmt.Fprintf(tw, "%s\t%q\t%s\n", tok.Type, tok.Literal, tok.Pos)
	}
	tw.Flush()

	if d.HasErrors() {
		d.Fprint(os.Stdout)
		return fmt.Errorf("%d lexical error(s) in %s", d.Count(), name)
	}
	return nil
}
