package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Sexpr renders e in the canonical parenthesized form used by the `parse`
// CLI command. The output is for display only: the parser reads source
// syntax, not this parenthesized form, so it cannot be parsed back into an
// AST.
func Sexpr(e Expr) string {
	var b strings.Builder
	writeSexpr(&b, e)
	return b.String()
}

func writeSexpr(b *strings.Builder, e Expr) {
	switch n := e.(type) {
	case *Literal:
		b.WriteString(sexprLiteral(n.Value))
	case *Grouping:
		parenthesize(b, "group", n.Expression)
	case *Unary:
		parenthesize(b, n.Operator.Lexeme, n.Right)
	case *Binary:
		parenthesize(b, n.Operator.Lexeme, n.Left, n.Right)
	case *Logical:
		parenthesize(b, n.Operator.Lexeme, n.Left, n.Right)
	case *Variable:
		b.WriteString(n.Name.Lexeme)
	case *Assign:
		parenthesizeNamed(b, "= "+n.Name.Lexeme, n.Value)
	case *Call:
		parenthesize(b, "call", append([]Expr{n.Callee}, n.Args...)...)
	case *Get:
		parenthesizeNamed(b, "get "+n.Name.Lexeme, n.Object)
	case *Set:
		parenthesize(b, "set "+n.Name.Lexeme, n.Object, n.Value)
	case *This:
		b.WriteString("this")
	case *Super:
		b.WriteString("(super " + n.Method.Lexeme + ")")
	default:
		b.WriteString(fmt.Sprintf("<?%T>", e))
	}
}

// sexprLiteral formats a literal value the way the `parse` command's AST
// dump does: numbers always carry a decimal point (123 -> "123.0"), never
// trimmed to an integer like the runtime `print`/`evaluate` display does.
func sexprLiteral(v any) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		s := strconv.FormatFloat(val, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}

func parenthesize(b *strings.Builder, name string, exprs ...Expr) {
	b.WriteByte('(')
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteByte(' ')
		writeSexpr(b, e)
	}
	b.WriteByte(')')
}

func parenthesizeNamed(b *strings.Builder, name string, expr Expr) {
	b.WriteByte('(')
	b.WriteString(name)
	b.WriteByte(' ')
	writeSexpr(b, expr)
	b.WriteByte(')')
}
