package profiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		expected string
	}{
		{
			name:     "empty",
			label:    "",
			expected: "",
		},
		{
			name:     "normal",
			label:    "rev-onto@test.lisp:1",
			expected: "rev-onto@test.lisp:1",
		},
		{
			name:     "spaces",
			label:    "my file.lisp",
			expected: "my_file.lisp",
		},
		{
			name:     "underscores",
			label:    "a  __b",
			expected: "a_b",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			actual := sanitizeLabel(tc.label)
			assert.Equal(t, tc.expected, actual, "sanitizeLabel(%s)", tc.label)
		})
	}
}
