package memory

import (
	"codeberg.org/miketth/softboard/pkg/keyboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestStateStore(t *testing.T) {
	store := NewStateStore()

	_, found, err := store.GetState("kitty")
	require.NoError(t, err)
	assert.False(t, found)

	want := keyboard.EngineState{Layout: keyboard.Uppercase, Orientation: keyboard.Portrait}
	require.NoError(t, store.SetState("kitty", want))

	got, found, err := store.GetState("kitty")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)
}
