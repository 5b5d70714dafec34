// Package diag centralizes the exit-code and stderr rendering rules
// shared by every CLI subcommand: lexical errors print and continue,
// parse/resolve errors abort the pipeline, and runtime errors abort
// execution. Each taxon has its own exit status.
package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Exit codes mirror the three error taxa the language defines.
const (
	ExitOK         = 0
	ExitUsage      = 1
	ExitLexOrParse = 65
	ExitRuntime    = 70
)

// Errorf writes a diagnostic line to w in red when color is enabled. The
// CLI uses it for parse errors in the parse and evaluate commands, which
// are already fully formatted ("[line L] Error...") by the parser, and for
// usage errors. Lexical and resolver errors, and parse errors in the run
// command, are written uncolored by the scanner, resolver, and parser
// themselves and do not pass through here.
func Errorf(w io.Writer, colorEnabled bool, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if colorEnabled {
		fmt.Fprintln(w, color.RedString("%s", msg))
	} else {
		fmt.Fprintln(w, msg)
	}
}

// RuntimeErrorf renders a runtime error ("<message>\n[line L]") with the
// same red styling as Errorf.
func RuntimeErrorf(w io.Writer, colorEnabled bool, err error) {
	if colorEnabled {
		fmt.Fprintln(w, color.RedString("%s", err.Error()))
	} else {
		fmt.Fprintln(w, err.Error())
	}
}
