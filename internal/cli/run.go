package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/lox-lang/golox/lang/diag"
	"github.com/lox-lang/golox/lang/interp"
	"github.com/lox-lang/golox/lang/parser"
	"github.com/lox-lang/golox/lang/resolver"
	"github.com/lox-lang/golox/lang/scanner"
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Scan, parse, resolve, and run a program",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(_ *cobra.Command, args []string) error {
	src, _, err := readSource(args)
	if err != nil {
		return err
	}

	sc := scanner.New(src, scanner.WithErrorWriter(os.Stderr))
	tokens := sc.Scan()
	if sc.HadError {
		exitCode = diag.ExitLexOrParse
		return nil
	}

	p := parser.New(tokens, parser.WithErrorWriter(os.Stderr))
	stmts, perr := p.Parse()
	if perr != nil {
		exitCode = diag.ExitLexOrParse
		return nil
	}

	r := resolver.New(resolver.WithErrorWriter(os.Stderr))
	locals := r.Resolve(stmts)
	if r.HadError {
		exitCode = diag.ExitLexOrParse
		return nil
	}

	it := interp.New(interp.WithStdout(os.Stdout), interp.WithLocals(locals))
	if rerr := it.Interpret(stmts); rerr != nil {
		diag.RuntimeErrorf(os.Stderr, colorEnabled(), rerr)
		exitCode = diag.ExitRuntime
		return nil
	}

	return nil
}
