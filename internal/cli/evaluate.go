package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lox-lang/golox/lang/diag"
	"github.com/lox-lang/golox/lang/interp"
	"github.com/lox-lang/golox/lang/parser"
	"github.com/lox-lang/golox/lang/scanner"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <file>",
	Short: "Evaluate a single expression and print its value",
	Args:  cobra.ExactArgs(1),
	RunE:  runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(_ *cobra.Command, args []string) error {
	src, _, err := readSource(args)
	if err != nil {
		return err
	}

	sc := scanner.New(src, scanner.WithErrorWriter(os.Stderr))
	tokens := sc.Scan()

	p := parser.New(tokens)
	expr, perr := p.ParseExpression()
	if perr != nil {
		diag.Errorf(os.Stderr, colorEnabled(), "%s", perr)
		exitCode = diag.ExitLexOrParse
		return nil
	}
	if sc.HadError {
		exitCode = diag.ExitLexOrParse
		return nil
	}

	it := interp.New(interp.WithStdout(os.Stdout))
	val, rerr := it.EvaluateExpression(expr)
	if rerr != nil {
		diag.RuntimeErrorf(os.Stderr, colorEnabled(), rerr)
		exitCode = diag.ExitRuntime
		return nil
	}

	fmt.Println(interp.Display(val))
	return nil
}
