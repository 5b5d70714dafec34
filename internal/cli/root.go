// Package cli wires the scanner, parser, resolver, and interpreter into
// the four cobra subcommands of the interpreter pipeline: tokenize, parse,
// evaluate, run.
package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lox-lang/golox/lang/diag"
)

var noColor bool

var rootCmd = &cobra.Command{
	Use:   "golox [command] <file>",
	Short: "A tree-walking interpreter for Lox",
	Long: `golox is a tree-walking interpreter for a small dynamically typed,
class-based scripting language.

It exposes the stages of the interpreter pipeline as separate
subcommands, each useful on its own for inspecting how a program is
scanned, parsed, and run:

  golox tokenize script.lox   print the token stream
  golox parse script.lox      print the AST of a single expression
  golox evaluate script.lox   evaluate a single expression and print it
  golox run script.lox        run a full program`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored diagnostics")
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		diag.Errorf(os.Stderr, colorEnabled(), "Error: %s", err)
		return diag.ExitUsage
	}
	return exitCode
}

// exitCode is set by a subcommand's RunE before it returns, since cobra
// itself only distinguishes success from failure and the CLI needs
// distinct failure exit statuses (65, 70) plus usage (1).
var exitCode int

func colorEnabled() bool {
	return !noColor && !color.NoColor
}

func readSource(args []string) (string, string, error) {
	if len(args) != 1 {
		return "", "", fmt.Errorf("expected exactly one file argument")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("could not read file %q: %w", args[0], err)
	}
	return string(data), args[0], nil
}
