package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information, set by build flags.
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "bminorc",
	Short: "B-Minor compiler",
	Long: `bminorc compiles B-Minor, a small statically-typed C-like
language, down to LLVM IR.

The pipeline runs lexing, parsing, semantic checking, and IR emission
in sequence; any stage that reports a diagnostic suppresses every
downstream artifact (the DOT tree, the symbol dump, and the IR file).`,
	Version: Version,
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

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}

func readSource(args []string, inlineFlag string) (src, name string, err error) {
	if inlineFlag != "" {
		return inlineFlag, "<eval>", nil
	}
	if len(args) != 1 {
		return "", "", fmt.Errorf("provide a file path or use -e for inline source")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(data), args[0], nil
}
