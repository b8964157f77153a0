// Copyright © 2024 The ELPS authors

package docs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLangGuide(t *testing.T) {
	assert.Contains(t, LangGuide, "# The roots language")
}

func TestExamples(t *testing.T) {
	assert.Equal(t, []string{"eval", "notnot", "subst"}, Examples())
	for _, name := range Examples() {
		src, ok := Example(name)
		require.True(t, ok, name)
		assert.NotEmpty(t, src, name)
	}
	_, ok := Example("missing")
	assert.False(t, ok)
}
