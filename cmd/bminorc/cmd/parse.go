package cmd

import (
	"fmt"
	"os"

	"github.com/bminor/bminorc/internal/ast"
	"github.com/bminor/bminorc/internal/diag"
	"github.com/bminor/bminorc/internal/dot"
	"github.com/bminor/bminorc/internal/parser"
	"github.com/spf13/cobra"
)

var (
	parseEval string
	parseDot  bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a B-Minor file and print (or render) its syntax tree",
	Long: `Parse a B-Minor program and print an indented dump of its AST.

With --dot, a Graphviz DOT rendering is written to stdout instead
(spec.md's "ast.dot" artifact); as with every artifact, it is
suppressed when any diagnostic was reported.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse inline source instead of reading a file")
	parseCmd.Flags().BoolVar(&parseDot, "dot", false, "render the AST as Graphviz DOT instead of a text dump")
}

func runParse(cmd *cobra.Command, args []string) error {
	src, name, err := readSource(args, parseEval)
	if err != nil {
		return err
	}

	d := diag.New()
	prog := parser.Parse(src, d)

	if d.HasErrors() {
		d.Fprint(os.Stdout)
		return fmt.Errorf("%d syntax error(s) in %s", d.Count(), name)
	}

	if parseDot {
		dot.Render(os.Stdout, prog)
		return nil
	}
	fmt.Print(ast.Dump(prog))
	return nil
}
