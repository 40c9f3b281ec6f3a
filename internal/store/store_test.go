package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestLoadMissingFileReturnsZeroValue(t *testing.T) {
	s := NewJSONStore[[]record](filepath.Join(t.TempDir(), "missing.json"))
	v, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "store.json")
	s := NewJSONStore[[]record](path)
	want := []record{{Name: "a", Count: 1}, {Name: "b", Count: 2}}

	require.NoError(t, s.Save(want))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadCorruptFileReturnsZeroValueNotError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	s := NewJSONStore[[]record](path)
	v, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, v)
}
