package cli

import (
	"io"
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox-lang/golox/lang/ast"
	"github.com/lox-lang/golox/lang/diag"
)

// captureStdout redirects os.Stdout for the duration of fn, since the
// subcommand handlers print straight to it the same way a real process
// would.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)

	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func resetForTest() {
	ast.ResetIDs()
	exitCode = 0
}

func TestTokenizeFixture(t *testing.T) {
	resetForTest()
	out := captureStdout(t, func() {
		err := runTokenize(nil, []string{"../../testdata/arithmetic.lox"})
		require.NoError(t, err)
	})
	assert.Equal(t, diag.ExitOK, exitCode)
	snaps.MatchSnapshot(t, "tokenize_arithmetic", out)
}

func TestParseFixture(t *testing.T) {
	resetForTest()
	out := captureStdout(t, func() {
		err := runParse(nil, []string{"../../testdata/arithmetic_expr.lox"})
		require.NoError(t, err)
	})
	assert.Equal(t, diag.ExitOK, exitCode)
	assert.Equal(t, "(+ 1.0 (* 2.0 3.0))\n", out)
}

func TestEvaluateFixture(t *testing.T) {
	resetForTest()
	out := captureStdout(t, func() {
		err := runEvaluate(nil, []string{"../../testdata/arithmetic_expr.lox"})
		require.NoError(t, err)
	})
	assert.Equal(t, diag.ExitOK, exitCode)
	snaps.MatchSnapshot(t, "evaluate_arithmetic_expr", out)
}

func TestRunClosuresFixture(t *testing.T) {
	resetForTest()
	out := captureStdout(t, func() {
		err := runRun(nil, []string{"../../testdata/closures.lox"})
		require.NoError(t, err)
	})
	assert.Equal(t, diag.ExitOK, exitCode)
	assert.Equal(t, "42\n", out)
}

func TestRunInheritanceFixture(t *testing.T) {
	resetForTest()
	out := captureStdout(t, func() {
		err := runRun(nil, []string{"../../testdata/inheritance.lox"})
		require.NoError(t, err)
	})
	assert.Equal(t, diag.ExitOK, exitCode)
	assert.Equal(t, "10\n11\n", out)
}

func TestRunTopLevelReturnSetsResolveExitCode(t *testing.T) {
	resetForTest()
	noColor = true
	_ = captureStdout(t, func() {
		err := runRun(nil, []string{"../../testdata/top_level_return.lox"})
		require.NoError(t, err)
	})
	assert.Equal(t, diag.ExitLexOrParse, exitCode)
}

func TestRunUndefinedVariableSetsRuntimeExitCode(t *testing.T) {
	resetForTest()
	noColor = true
	_ = captureStdout(t, func() {
		err := runRun(nil, []string{"../../testdata/undefined_variable.lox"})
		require.NoError(t, err)
	})
	assert.Equal(t, diag.ExitRuntime, exitCode)
}
