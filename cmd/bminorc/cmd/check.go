package cmd

import (
	"fmt"
	"os"

	"github.com/bminor/bminorc/internal/diag"
	"github.com/bminor/bminorc/internal/parser"
	"github.com/bminor/bminorc/internal/semantic"
	"github.com/spf13/cobra"
)

var (
	checkEval string
	checkSym  bool
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Run the semantic checker over a B-Minor file",
	Long: `Check a B-Minor program: parse it, then resolve names and verify
types across every declaration, statement, and expression.

With --sym, the resolved scope tree is printed afterward (spec.md's
"symbol dump" artifact); it is suppressed whenever any diagnostic was
reported, exactly like every other artifact.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVarP(&checkEval, "eval", "e", "", "check inline source instead of reading a file")
	checkCmd.Flags().BoolVar(&checkSym, "sym", false, "print the resolved scope tree after a clean check")
}

func runCheck(cmd *cobra.Command, args []string) error {
	src, name, err := readSource(args, checkEval)
	if err != nil {
		return err
	}

	d := diag.New()
	prog := parser.Parse(src, d)
	if d.HasErrors() {
		d.Fprint(os.Stdout)
		return fmt.Errorf("%d syntax error(s) in %s", d.Count(), name)
	}

	tab := semantic.Check(prog, d)
	if d.HasErrors() {
		d.Fprint(os.Stdout)
		return fmt.Errorf("%d semantic error(s) in %s", d.Count(), name)
	}

	fmt.Printf("%s: no errors\n", name)
	if checkSym {
		tab.Print(os.Stdout, 0)
	}
	return nil
}
