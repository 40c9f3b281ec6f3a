package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddEntryDedupsConsecutive(t *testing.T) {
	h := Load(filepath.Join(t.TempDir(), "history.json"), 100, false)
	h.AddEntry("foo", "files")
	h.AddEntry("foo", "files")
	h.AddEntry("bar", "files")
	assert.Len(t, h.records, 2)
}

func TestAddEntryIgnoresBlank(t *testing.T) {
	h := Load(filepath.Join(t.TempDir(), "history.json"), 100, false)
	h.AddEntry("   ", "files")
	assert.Empty(t, h.records)
}

func TestAddEntryTrimsToMaxSize(t *testing.T) {
	h := Load(filepath.Join(t.TempDir(), "history.json"), 3, false)
	h.AddEntry("a", "files")
	h.AddEntry("b", "files")
	h.AddEntry("c", "files")
	h.AddEntry("d", "files")
	require.Len(t, h.records, 3)
	assert.Equal(t, "b", h.records[0].Entry)
	assert.Equal(t, "d", h.records[2].Entry)
}

func TestNavigationCursor(t *testing.T) {
	h := Load(filepath.Join(t.TempDir(), "history.json"), 100, false)
	h.AddEntry("foo", "files")
	h.AddEntry("bar", "files")

	prev, ok := h.GetPreviousEntry("files")
	require.True(t, ok)
	assert.Equal(t, "bar", prev)

	prev, ok = h.GetPreviousEntry("files")
	require.True(t, ok)
	assert.Equal(t, "foo", prev)

	// past the start stays pinned
	prev, ok = h.GetPreviousEntry("files")
	require.True(t, ok)
	assert.Equal(t, "foo", prev)

	next, ok := h.GetNextEntry("files")
	require.True(t, ok)
	assert.Equal(t, "bar", next)

	_, ok = h.GetNextEntry("files")
	assert.False(t, ok)
}

func TestNavigationFilteredByChannel(t *testing.T) {
	h := Load(filepath.Join(t.TempDir(), "history.json"), 100, false)
	h.AddEntry("a", "files")
	h.AddEntry("b", "git-log")

	prev, ok := h.GetPreviousEntry("files")
	require.True(t, ok)
	assert.Equal(t, "a", prev)
}

func TestGlobalHistoryIgnoresChannel(t *testing.T) {
	h := Load(filepath.Join(t.TempDir(), "history.json"), 100, true)
	h.AddEntry("a", "files")
	h.AddEntry("b", "git-log")

	prev, ok := h.GetPreviousEntry("anything")
	require.True(t, ok)
	assert.Equal(t, "b", prev)
}

func TestAddEntryResetsCursor(t *testing.T) {
	h := Load(filepath.Join(t.TempDir(), "history.json"), 100, false)
	h.AddEntry("foo", "files")
	h.AddEntry("bar", "files")
	_, _ = h.GetPreviousEntry("files")
	_, _ = h.GetPreviousEntry("files")

	h.AddEntry("baz", "files")
	prev, ok := h.GetPreviousEntry("files")
	require.True(t, ok)
	assert.Equal(t, "baz", prev)
}

func TestLoadRecoversFromMissingFile(t *testing.T) {
	h := Load(filepath.Join(t.TempDir(), "nope", "history.json"), 100, false)
	assert.Empty(t, h.records)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	h := Load(path, 100, false)
	h.AddEntry("foo", "files")
	require.NoError(t, h.Save())

	h2 := Load(path, 100, false)
	require.Len(t, h2.records, 1)
	assert.Equal(t, "foo", h2.records[0].Entry)
}
