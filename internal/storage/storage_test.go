package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"efarchive/internal/storage"
)

func TestStores(t *testing.T) {
	stores := map[string]storage.Store{
		"dir": storage.NewDir(t.TempDir()),
		"mem": storage.NewMem(),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			assert.False(t, store.Exists("state.json"))

			_, err := store.ReadFile("state.json")
			assert.Error(t, err)

			require.NoError(t, store.WriteFile("state.json", []byte(`{}`)))
			assert.True(t, store.Exists("state.json"))

			data, err := store.ReadFile("state.json")
			require.NoError(t, err)
			assert.Equal(t, []byte(`{}`), data)

			// Nested paths create parent directories as needed.
			require.NoError(t, store.WriteFile("html/60_1.html", []byte("<html></html>")))
			assert.True(t, store.Exists("html/60_1.html"))

			// Writes replace, not append.
			require.NoError(t, store.WriteFile("state.json", []byte(`{"a":1}`)))
			data, err = store.ReadFile("state.json")
			require.NoError(t, err)
			assert.Equal(t, []byte(`{"a":1}`), data)
		})
	}
}

func TestMemNames(t *testing.T) {
	mem := storage.NewMem()
	require.NoError(t, mem.WriteFile("b.json", nil))
	require.NoError(t, mem.WriteFile("a.json", nil))

	assert.Equal(t, []string{"a.json", "b.json"}, mem.Names())
}
