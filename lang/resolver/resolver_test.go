package resolver_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox-lang/golox/lang/ast"
	"github.com/lox-lang/golox/lang/parser"
	"github.com/lox-lang/golox/lang/resolver"
	"github.com/lox-lang/golox/lang/scanner"
)

func resolveSource(t *testing.T, src string) (map[int]int, *resolver.Resolver) {
	t.Helper()
	ast.ResetIDs()
	tokens := scanner.New(src).Scan()
	stmts, err := parser.New(tokens).Parse()
	require.NoError(t, err)

	var errOut bytes.Buffer
	r := resolver.New(resolver.WithErrorWriter(&errOut))
	locals := r.Resolve(stmts)
	return locals, r
}

func TestResolveGlobalReadInsideClosureRecordsNoDepth(t *testing.T) {
	locals, r := resolveSource(t, `
		var a = "global";
		{
			fun showA() {
				print a;
			}
			showA();
		}
	`)
	assert.False(t, r.HadError)
	// "a" inside showA is a global reference and gets no locals entry; the
	// only recorded depth is the reference to showA itself in "showA();".
	require.Len(t, locals, 1)
	for _, depth := range locals {
		assert.Equal(t, 0, depth)
	}
}

func TestResolveLocalVariableDepth(t *testing.T) {
	locals, r := resolveSource(t, `
		{
			var a = 1;
			print a;
		}
	`)
	assert.False(t, r.HadError)
	assert.Len(t, locals, 1)
	for _, depth := range locals {
		assert.Equal(t, 0, depth)
	}
}

func TestResolveSelfReadInInitializerIsError(t *testing.T) {
	_, r := resolveSource(t, `{ var a = a; }`)
	assert.True(t, r.HadError)
}

func TestResolveTopLevelReturnIsError(t *testing.T) {
	_, r := resolveSource(t, `return 1;`)
	assert.True(t, r.HadError)
}

func TestResolveSelfInheritingClassIsError(t *testing.T) {
	_, r := resolveSource(t, `class A < A {}`)
	assert.True(t, r.HadError)
}

func TestResolveThisOutsideClassIsError(t *testing.T) {
	_, r := resolveSource(t, `print this;`)
	assert.True(t, r.HadError)
}

func TestResolveSuperOutsideSubclassIsError(t *testing.T) {
	_, r := resolveSource(t, `class A { m() { super.m(); } }`)
	assert.True(t, r.HadError)
}

func TestResolveRedeclarationInLocalScopeIsError(t *testing.T) {
	_, r := resolveSource(t, `{ var a = 1; var a = 2; }`)
	assert.True(t, r.HadError)
}

func TestResolveRedeclarationAtGlobalScopeIsAllowed(t *testing.T) {
	_, r := resolveSource(t, `var a = 1; var a = 2;`)
	assert.False(t, r.HadError)
}

func TestResolveReturnValueFromInitializerIsError(t *testing.T) {
	_, r := resolveSource(t, `class A { init() { return 1; } }`)
	assert.True(t, r.HadError)
}

func TestResolveBareReturnFromInitializerIsAllowed(t *testing.T) {
	_, r := resolveSource(t, `class A { init() { return; } }`)
	assert.False(t, r.HadError)
}
