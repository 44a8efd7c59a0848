package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDIsTimeOrdered(t *testing.T) {
	prev := NewID()
	for i := 0; i < 1000; i++ {
		next := NewID()
		require.Less(t, prev, next)
		prev = next
	}
}

func TestNewIDShape(t *testing.T) {
	id := NewID()
	assert.Len(t, id, 36)
}
