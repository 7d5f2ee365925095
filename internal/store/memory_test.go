package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_GetMissing(t *testing.T) {
	m := NewMemory()

	_, ok, err := m.Get("nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_SetGet(t *testing.T) {
	m := NewMemory()

	require.NoError(t, m.Set("player_progress", `{"level":3}`))
	v, ok, err := m.Get("player_progress")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"level":3}`, v)
}

func TestMemory_SetOverwrites(t *testing.T) {
	m := NewMemory()

	require.NoError(t, m.Set("k", "old"))
	require.NoError(t, m.Set("k", "new"))

	v, _, err := m.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "new", v)
}
