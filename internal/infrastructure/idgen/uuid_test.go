package idgen

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDGenerator_IDsUnicosYValidos(t *testing.T) {
	g := UUIDGenerator{}
	seen := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		id := g.NewID()
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, 100)
}
