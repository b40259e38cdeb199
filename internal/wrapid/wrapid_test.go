package wrapid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	id := New()
	require.Len(t, id, Length)
	for _, r := range id {
		assert.True(t, (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f'),
			"unexpected character %q in id %s", r, id)
	}
}

func TestNewUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := New()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
