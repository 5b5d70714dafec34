package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lox-lang/golox/lang/diag"
	"github.com/lox-lang/golox/lang/scanner"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <file>",
	Short: "Print the token stream for a source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
}

func runTokenize(_ *cobra.Command, args []string) error {
	src, _, err := readSource(args)
	if err != nil {
		return err
	}

	sc := scanner.New(src, scanner.WithErrorWriter(os.Stderr))
	tokens := sc.Scan()
	for _, tok := range tokens {
		fmt.Println(tok.String())
	}

	if sc.HadError {
		exitCode = diag.ExitLexOrParse
	}
	return nil
}
