package parser_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox-lang/golox/lang/ast"
	"github.com/lox-lang/golox/lang/parser"
	"github.com/lox-lang/golox/lang/scanner"
)

func parseExpr(t *testing.T, src string) (ast.Expr, error) {
	t.Helper()
	tokens := scanner.New(src).Scan()
	return parser.New(tokens).ParseExpression()
}

func parseProgram(t *testing.T, src string) ([]ast.Stmt, error) {
	t.Helper()
	tokens := scanner.New(src).Scan()
	return parser.New(tokens).Parse()
}

func TestParseExpressionPrecedence(t *testing.T) {
	expr, err := parseExpr(t, "1 + 2 * 3")
	require.NoError(t, err)
	assert.Equal(t, "(+ 1.0 (* 2.0 3.0))", ast.Sexpr(expr))
}

func TestParseExpressionComparisonChain(t *testing.T) {
	expr, err := parseExpr(t, "1 < 2 == true")
	require.NoError(t, err)
	assert.Equal(t, "(== (< 1.0 2.0) true)", ast.Sexpr(expr))
}

func TestParseExpressionGrouping(t *testing.T) {
	expr, err := parseExpr(t, "(1 + 2) * 3")
	require.NoError(t, err)
	assert.Equal(t, "(* (group (+ 1.0 2.0)) 3.0)", ast.Sexpr(expr))
}

func TestParseExpressionCallAndGet(t *testing.T) {
	expr, err := parseExpr(t, "a.b(1, 2)")
	require.NoError(t, err)
	assert.Equal(t, "(call (get b a) 1.0 2.0)", ast.Sexpr(expr))
}

func TestParseInvalidAssignmentTarget(t *testing.T) {
	_, err := parseExpr(t, "1 = 2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid assignment target.")
}

func TestParseTooManyArguments(t *testing.T) {
	var b bytes.Buffer
	for i := 0; i < 256; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString("1")
	}
	src := "f(" + b.String() + ")"
	_, err := parseExpr(t, src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't have more than 255 arguments.")
}

func TestParseForDesugarsToWhile(t *testing.T) {
	stmts, err := parseProgram(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	block, ok := stmts[0].(*ast.Block)
	require.True(t, ok, "for loop desugars to a block")
	require.Len(t, block.Statements, 2)

	_, isVar := block.Statements[0].(*ast.Var)
	assert.True(t, isVar, "first statement is the init clause")

	whileStmt, ok := block.Statements[1].(*ast.While)
	require.True(t, ok, "second statement is the desugared while loop")

	whileBody, ok := whileStmt.Body.(*ast.Block)
	require.True(t, ok, "while body wraps the original body plus the increment")
	assert.Len(t, whileBody.Statements, 2)
}

func TestParseClassWithSuperclass(t *testing.T) {
	stmts, err := parseProgram(t, "class B < A { init() {} }")
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	class, ok := stmts[0].(*ast.Class)
	require.True(t, ok)
	assert.Equal(t, "B", class.Name.Lexeme)
	require.NotNil(t, class.Superclass)
	assert.Equal(t, "A", class.Superclass.Name.Lexeme)
	require.Len(t, class.Methods, 1)
	assert.Equal(t, "init", class.Methods[0].Name.Lexeme)
}

func TestParseUnterminatedBlockReportsAtEnd(t *testing.T) {
	_, err := parseProgram(t, "{ var x = 1;")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Error at end")
}
