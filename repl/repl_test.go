package repl

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/luthersystems/roots/diagnostic"
	"github.com/luthersystems/roots/lisp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runReplWithString(t *testing.T, input string, opts ...Option) (string, error) {
	t.Helper()
	inR, inW := io.Pipe()
	outR, outW := io.Pipe()

	go func() {
		defer inW.Close() //nolint:errcheck // test cleanup
		_, _ = io.WriteString(inW, input)
	}()

	errc := make(chan error, 1)
	go func() {
		opts = append([]Option{
			WithStdin(inR),
			WithStderr(outW),
			WithHistoryFile(""),
			WithColor(diagnostic.ColorNever),
		}, opts...)
		errc <- RunRepl("roots> ", opts...)
		inR.Close()  //nolint:errcheck,gosec // test cleanup
		outW.Close() //nolint:errcheck,gosec // test cleanup
	}()

	var output bytes.Buffer
	_, _ = io.Copy(&output, outR)
	outR.Close() //nolint:errcheck,gosec // test cleanup

	return output.String(), <-errc
}

func TestEnsureHistoryFilePermissions_CreatesWithRestrictedMode(t *testing.T) {
	dir := t.TempDir()
	histFile := filepath.Join(dir, HistoryFileName)

	// File does not exist yet.
	ensureHistoryFilePermissions(logrus.StandardLogger(), histFile)

	info, err := os.Stat(histFile)
	require.NoError(t, err, "history file should be created")
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "new history file should have mode 0600")
}

func TestEnsureHistoryFilePermissions_RestrictsExistingFile(t *testing.T) {
	dir := t.TempDir()
	histFile := filepath.Join(dir, HistoryFileName)

	// Create the file with overly permissive mode.
	err := os.WriteFile(histFile, []byte("some history"), 0644)
	require.NoError(t, err)

	ensureHistoryFilePermissions(logrus.StandardLogger(), histFile)

	info, err := os.Stat(histFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "existing history file should be restricted to 0600")

	// Verify contents are preserved.
	data, err := os.ReadFile(histFile)
	require.NoError(t, err)
	assert.Equal(t, "some history", string(data))
}

func TestEnsureHistoryFilePermissions_Unwritable(t *testing.T) {
	logger, hook := test.NewNullLogger()
	ensureHistoryFilePermissions(logger, filepath.Join(t.TempDir(), "missing", HistoryFileName))
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "Unable to create history file", hook.LastEntry().Message)
}

func TestEnsureHistoryFilePermissions_EmptyPathNoOp(t *testing.T) {
	// Should not panic or error with empty path.
	ensureHistoryFilePermissions(logrus.StandardLogger(), "")
}

func TestRunRepl(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Cons",
			input:    "(cons 'a '(b))\n",
			expected: []string{"(a b)\n"},
		},
		{
			name:     "Nil is printed",
			input:    "(defun f (x) x)\n(f 'z)\n",
			expected: []string{"()\n", "z\n"},
		},
		{
			name:     "Multiple lines",
			input:    "(car\n  '(first second))\n",
			expected: []string{"first\n"},
		},
		{
			name:     "Several expressions on a line",
			input:    "'one 'two\n",
			expected: []string{"one\n", "two\n"},
		},
		{
			name:     "Error",
			input:    "fnord\n",
			expected: []string{"error[eval-error]: fnord does not exist", "stdin#1:1:1", "1 |  fnord"},
		},
		{
			name:     "Continues after error",
			input:    "(car 'a)\n'after\n",
			expected: []string{"passed non list to car: a", "= note: in car at stdin#1:1:1", "after\n"},
		},
		{
			name:     "Read error",
			input:    ")\n'after\n",
			expected: []string{"error[read-error]: unexpected )", "after\n"},
		},
		{
			name:     "Unfinished expression",
			input:    "(car '(a)\n",
			expected: []string{"error[read-error]: unmatched parens"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := runReplWithString(t, tc.input)
			require.NoError(t, err)
			for _, expected := range tc.expected {
				require.Contains(t, got, expected)
			}
		})
	}
}

func TestRunReplEnvConfig(t *testing.T) {
	got, err := runReplWithString(t, "(defun f (x) (f x))\n(f 'a)\n",
		WithEnvConfig(lisp.WithMaximumStackHeight(10)))
	require.NoError(t, err)
	assert.Contains(t, got, "stack overflow (height 11)")
}

func TestRunEnvNotRoot(t *testing.T) {
	env := lisp.NewEnv(lisp.NewEnv(nil))
	err := RunEnv(env, "> ", "  ")
	assert.Error(t, err)
}

func TestRunReplDebugLog(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	out, err := runReplWithString(t, "(car '(a b))\n'c\n", WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, out, "a\n")

	var exprs []string
	for _, e := range hook.AllEntries() {
		if e.Message != "Evaluating expression" {
			continue
		}
		exprs = append(exprs, e.Data["expr"].(string))
		// expressions are evaluated in the root environment, the first one
		// created by its runtime
		assert.Equal(t, uint(1), e.Data["env"])
	}
	assert.Equal(t, []string{"(car '(a b))", "'c"}, exprs)
}
