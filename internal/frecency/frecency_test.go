package frecency

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordIncrementsScore(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "frecency.json"), false)
	s.Record("entry-a", "files", 100)
	s.Record("entry-a", "files", 200)

	assert.Equal(t, 2, s.Score("entry-a", "files"))
}

func TestScoreUnknownEntryIsZero(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "frecency.json"), false)
	assert.Equal(t, 0, s.Score("never-seen", "files"))
}

func TestChannelsAreIsolatedUnlessGlobal(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "frecency.json"), false)
	s.Record("shared-key", "channel-a", 1)

	assert.Equal(t, 1, s.Score("shared-key", "channel-a"))
	assert.Equal(t, 0, s.Score("shared-key", "channel-b"))
}

func TestGlobalModeIgnoresChannel(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "frecency.json"), true)
	s.Record("shared-key", "channel-a", 1)
	s.Record("shared-key", "channel-b", 2)

	assert.Equal(t, 2, s.Score("shared-key", "any-channel"))
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frecency.json")
	s := Load(path, false)
	s.Record("entry-a", "files", 42)
	require.NoError(t, s.Save())

	reloaded := Load(path, false)
	assert.Equal(t, 1, reloaded.Score("entry-a", "files"))
}
