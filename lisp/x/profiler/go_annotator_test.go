package profiler_test

import (
	"bytes"
	"context"
	"runtime/pprof"
	"testing"

	"github.com/luthersystems/roots/lisp/x/profiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPprofAnnotator(t *testing.T) {
	env := newEnv(t)
	ppa := profiler.NewPprofAnnotator(env.Runtime, context.Background())
	var buf bytes.Buffer
	require.NoError(t, pprof.StartCPUProfile(&buf))
	defer pprof.StopCPUProfile()
	require.NoError(t, ppa.Enable())
	assert.Error(t, ppa.Enable())
	runTestLisp(t, env)
	assert.NoError(t, ppa.Complete())
}
