package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Uniqueness(t *testing.T) {
	ids := make(map[string]bool)
	count := 1000

	for i := 0; i < count; i++ {
		generated, err := Generate("test")
		require.NoError(t, err)
		assert.False(t, ids[generated], "ID should be unique: %s", generated)
		ids[generated] = true
	}

	assert.Len(t, ids, count)
}

func TestGenerate_Format(t *testing.T) {
	generated, err := Generate("anime")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(generated, "anime-"))
	// prefix + dash + 21-char nanoid
	assert.Len(t, generated, len("anime-")+21)
}

func TestMustGenerate(t *testing.T) {
	generated := MustGenerate("ep")
	assert.True(t, strings.HasPrefix(generated, "ep-"))
}
