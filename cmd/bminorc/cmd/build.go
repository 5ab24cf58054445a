package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bminor/bminorc/internal/diag"
	"github.com/bminor/bminorc/internal/irgen"
	"github.com/bminor/bminorc/internal/parser"
	"github.com/bminor/bminorc/internal/runtime"
	"github.com/bminor/bminorc/internal/semantic"
	"github.com/spf13/cobra"
)

var (
	buildEval    string
	buildOut     string
	buildRuntime bool
)

var buildCmd = &cobra.Command{
	Use:   "build [file]",
	Short: "Compile a B-Minor file to LLVM IR",
	Long: `Run the full pipeline - lex, parse, check, emit - and write the
resulting LLVM IR text to a .ll file.

As with every artifact spec.md §2/§7 describe, emission is suppressed
when any stage reported a diagnostic; the command exits non-zero and
prints every "<Kind> Error at <line>: <message>" line instead.

With --runtime, the C source of the small _printi/_printf/_printb/_printc
support library (spec.md §6's runtime ABI) is written alongside the IR
so the pair can be compiled and linked with clang/llc.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVarP(&buildEval, "eval", "e", "", "build inline source instead of reading a file")
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "", "output .ll path (default: <input base>.ll, or out.ll for -e)")
	buildCmd.Flags().BoolVar(&buildRuntime, "runtime", false, "also write the _print? runtime support C source next to the output")
}

func runBuild(cmd *cobra.Command, args []string) error {
	src, name, err := readSource(args, buildEval)
	if err != nil {
		return err
	}

	d := diag.New()
	prog := parser.Parse(src, d)
	if d.HasErrors() {
		d.Fprint(os.Stderr)
		return fmt.Errorf("%d syntax error(s) in %s", d.Count(), name)
	}

	semantic.Check(prog, d)
	if d.HasErrors() {
		d.Fprint(os.Stderr)
		return fmt.Errorf("%d semantic error(s) in %s", d.Count(), name)
	}

	modName := moduleNameFor(name)
	ir, err := irgen.Generate(prog, modName)
	if err != nil {
		return fmt.Errorf("code generation failed: %w", err)
	}

	out := buildOut
	if out == "" {
		out = modName + ".ll"
	}
	if err := os.WriteFile(out, []byte(ir), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	fmt.Printf("%s: wrote %s\n", name, out)

	if buildRuntime {
		rtPath := filepath.Join(filepath.Dir(out), runtime.FileName)
		if err := os.WriteFile(rtPath, []byte(runtime.Source()), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", rtPath, err)
		}
		fmt.Printf("%s: wrote %s\n", name, rtPath)
	}
	return nil
}

func moduleNameFor(sourceName string) string {
	base := filepath.Base(sourceName)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "<eval>" {
		base = "module"
	}
	return base
}
