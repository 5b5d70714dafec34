package interp

import (
	"fmt"

	"github.com/lox-lang/golox/lang/token"
)

// RuntimeError is any failure raised while executing the program: bad
// operand types, undefined variables, wrong arity, non-callable callees,
// and so on. It carries the token whose line number it is reported
// against and never unwinds past the top level — the CLI driver renders
// it as "<message>\n[line L]" and maps it to exit code 70.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Token.Line)
}

func newRuntimeError(tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}
