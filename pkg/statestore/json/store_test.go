package json

import (
	"codeberg.org/miketth/softboard/pkg/keyboard"
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "states.json")

	store, err := NewStateStore(path)
	require.NoError(t, err)

	want := keyboard.EngineState{Layout: keyboard.Uppercase, Orientation: keyboard.Landscape}
	require.NoError(t, store.SetState("firefox", want))
	require.NoError(t, store.Save())
	require.NoError(t, store.Close())

	reopened, err := NewStateStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, found, err := reopened.GetState("firefox")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)

	_, found, err = reopened.GetState("kitty")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestEmptyFileIsNotAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "states.json")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	store, err := NewStateStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())
}

func TestCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "states.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewStateStore(path)
	assert.Error(t, err)
}

func TestSaveLooperSavesOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "states.json")
	store, err := NewStateStore(path)
	require.NoError(t, err)

	require.NoError(t, store.SetState("", keyboard.EngineState{Layout: keyboard.Numbers, Orientation: keyboard.Portrait}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- store.SaveLooper(ctx)
	}()
	cancel()

	assert.ErrorIs(t, <-done, context.Canceled)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"":{"layout":"numbers","orientation":"portrait"}}`, string(data))
}
