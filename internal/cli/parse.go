package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lox-lang/golox/lang/ast"
	"github.com/lox-lang/golox/lang/diag"
	"github.com/lox-lang/golox/lang/parser"
	"github.com/lox-lang/golox/lang/scanner"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a single expression and print its AST",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) error {
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

	fmt.Println(ast.Sexpr(expr))
	return nil
}
