package profiler_test

import (
	"bytes"
	"testing"

	"github.com/luthersystems/roots/lisp/x/profiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCallgrind(t *testing.T) {
	env := newEnv(t)
	p := profiler.NewCallgrindProfiler(env.Runtime)
	assert.Error(t, p.Enable(), "no output set")

	var buf bytes.Buffer
	require.NoError(t, p.SetWriter(&buf))
	require.NoError(t, p.Enable())
	assert.Error(t, p.SetWriter(&buf))
	runTestLisp(t, env)
	require.NoError(t, p.Complete())

	out := buf.String()
	assert.Contains(t, out, "version: 1\n")
	assert.Contains(t, out, "events: Time_(ns) Memory_(bytes)")
	assert.Contains(t, out, " rev-onto\n")
	assert.Contains(t, out, " reverse\n")
	assert.Contains(t, out, " ENTRYPOINT\n")
	assert.Contains(t, out, "summary ")
}
