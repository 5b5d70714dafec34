package interp_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox-lang/golox/lang/ast"
	"github.com/lox-lang/golox/lang/interp"
	"github.com/lox-lang/golox/lang/parser"
	"github.com/lox-lang/golox/lang/resolver"
	"github.com/lox-lang/golox/lang/scanner"
)

func run(t *testing.T, src string) (string, error) {
	t.Helper()
	ast.ResetIDs()
	tokens := scanner.New(src).Scan()
	stmts, err := parser.New(tokens).Parse()
	require.NoError(t, err)

	locals := resolver.New().Resolve(stmts)

	var out bytes.Buffer
	it := interp.New(interp.WithStdout(&out), interp.WithLocals(locals))
	err = it.Interpret(stmts)
	return out.String(), err
}

func TestArithmeticPrecedence(t *testing.T) {
	out, err := run(t, `print 1 + 2 * 3;`)
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)
}

func TestBlockScopingShadowsOuterVariable(t *testing.T) {
	out, err := run(t, `var a = 1; { var a = 2; print a; } print a;`)
	require.NoError(t, err)
	assert.Equal(t, "2\n1\n", out)
}

func TestClosureCapturesParameterAcrossCalls(t *testing.T) {
	out, err := run(t, `
		fun make(n){ fun g(){ print n; } return g; }
		var c = make(42);
		c();
	`)
	require.NoError(t, err)
	assert.Equal(t, "42\n", out)
}

func TestMethodCallOnInstance(t *testing.T) {
	out, err := run(t, `class A { greet(){ print "hi"; } } A().greet();`)
	require.NoError(t, err)
	assert.Equal(t, "hi\n", out)
}

func TestInheritanceAndSuperInitializer(t *testing.T) {
	out, err := run(t, `
		class A { init(x){ this.x = x; } }
		class B < A { init(x){ super.init(x); this.y = x+1; } }
		var b = B(10);
		print b.x;
		print b.y;
	`)
	require.NoError(t, err)
	assert.Equal(t, "10\n11\n", out)
}

func TestWhileLoop(t *testing.T) {
	out, err := run(t, `var i = 0; while (i < 3) { print i; i = i + 1; }`)
	require.NoError(t, err)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestStringAndNumberOperandMismatchIsRuntimeError(t *testing.T) {
	_, err := run(t, `"x" + 1;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Operands must be two numbers or two strings.")
}

func TestCallingUndefinedVariableIsRuntimeError(t *testing.T) {
	_, err := run(t, `foo();`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Undefined variable 'foo'.")
}

func TestLogicalAndShortCircuits(t *testing.T) {
	out, err := run(t, `
		fun sideEffect() { print "called"; return true; }
		false and sideEffect();
	`)
	require.NoError(t, err)
	assert.Empty(t, out, "right operand of `and` must not run when left is falsey")
}

func TestLogicalOrShortCircuits(t *testing.T) {
	out, err := run(t, `
		fun sideEffect() { print "called"; return true; }
		true or sideEffect();
	`)
	require.NoError(t, err)
	assert.Empty(t, out, "right operand of `or` must not run when left is truthy")
}

func TestInitializerReturnYieldsBoundInstanceEvenWithBareReturn(t *testing.T) {
	out, err := run(t, `
		class Box { init(v) { this.v = v; return; } }
		var b = Box(7);
		print b.v;
	`)
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)
}

func TestDisplayFormatsIntegersWithoutDecimal(t *testing.T) {
	out, err := run(t, `print 3; print 3.5; print nil; print true;`)
	require.NoError(t, err)
	assert.Equal(t, "3\n3.5\nnil\ntrue\n", out)
}

func TestUnknownPropertyAccessIsRuntimeError(t *testing.T) {
	_, err := run(t, `class A {} A().missing;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Undefined property 'missing'.")
}

func TestCallArityMismatchIsRuntimeError(t *testing.T) {
	_, err := run(t, `fun f(a, b) { return a + b; } f(1);`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expected 2 arguments but got 1.")
}
