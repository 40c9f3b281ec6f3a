package remote

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tvfind/tv/internal/cable"
)

func buildCatalog(t *testing.T) *cable.Catalog {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "files.toml"), []byte(`
[metadata]
name = "files"
description = "find files"
[source]
command = "fd -t f"
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "processes.toml"), []byte(`
[metadata]
name = "processes"
description = "list running processes"
[source]
command = "ps aux"
`), 0o644))
	c, err := cable.Load(zerolog.Nop(), dir)
	require.NoError(t, err)
	return c
}

func drain(t *testing.T, p *Picker) {
	t.Helper()
	require.Eventually(t, func() bool {
		st := p.Tick()
		return !st.PoolBusy && !st.InjectorRunning
	}, time.Second, time.Millisecond)
}

func TestPickerListsAllChannelsWithEmptyQuery(t *testing.T) {
	p := New(buildCatalog(t))
	p.Find("")
	drain(t, p)
	assert.Equal(t, 2, p.ResultCount())
}

func TestPickerFiltersByQuery(t *testing.T) {
	p := New(buildCatalog(t))
	p.Find("proc")
	drain(t, p)
	require.Equal(t, 1, p.ResultCount())
	results := p.Results(0, 10)
	assert.Equal(t, "processes", results[0].Name)
}

func TestPickerMatchesAgainstDescriptionToo(t *testing.T) {
	p := New(buildCatalog(t))
	p.Find("running")
	drain(t, p)
	require.Equal(t, 1, p.ResultCount())
	assert.Equal(t, "processes", p.Results(0, 10)[0].Name)
}
