package cable

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeChannel(t *testing.T, dir, filename, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(content), 0o644))
}

func TestLoadParsesChannelPrototype(t *testing.T) {
	dir := t.TempDir()
	writeChannel(t, dir, "files.toml", `
[metadata]
name = "files"
description = "find files"

[source]
command = "fd -t f"
entry_delimiter = "\n"
display = "{}"
output = "{}"

[preview]
command = "bat -n --color=always {}"
cached = true

[keybindings]
quit = "esc"
select_next_entry = ["down", "ctrl-j"]
toggle_preview = false
`)
	c, err := Load(zerolog.Nop(), dir)
	require.NoError(t, err)

	p, ok := c.Get("files")
	require.True(t, ok)
	assert.Equal(t, "fd -t f", p.SourceCommand)
	assert.True(t, p.HasPreview)
	assert.True(t, p.PreviewCached)
	assert.Equal(t, []string{"esc"}, p.Keybindings["quit"])
	assert.Equal(t, []string{"down", "ctrl-j"}, p.Keybindings["select_next_entry"])
	_, unbound := p.Keybindings["toggle_preview"]
	assert.False(t, unbound)
}

func TestLoadFallsBackToFilenameWhenNameMissing(t *testing.T) {
	dir := t.TempDir()
	writeChannel(t, dir, "grep.toml", `
[source]
command = "rg --line-number ."
`)
	c, err := Load(zerolog.Nop(), dir)
	require.NoError(t, err)
	_, ok := c.Get("grep")
	assert.True(t, ok)
}

func TestLoadSkipsMalformedFileAndKeepsOthers(t *testing.T) {
	dir := t.TempDir()
	writeChannel(t, dir, "good.toml", "[metadata]\nname = \"good\"\n")
	writeChannel(t, dir, "bad.toml", "this is not [ valid toml")

	c, err := Load(zerolog.Nop(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"good"}, c.Names())
}

func TestLoadMissingDirectoryIsEmptyNotError(t *testing.T) {
	c, err := Load(zerolog.Nop(), filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, c.Names())
}

func TestNamesSortedAlphabetically(t *testing.T) {
	dir := t.TempDir()
	writeChannel(t, dir, "zeta.toml", "[metadata]\nname = \"zeta\"\n")
	writeChannel(t, dir, "alpha.toml", "[metadata]\nname = \"alpha\"\n")

	c, err := Load(zerolog.Nop(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, c.Names())
}

func TestWatchReloadsOnNewFile(t *testing.T) {
	dir := t.TempDir()
	c, err := Load(zerolog.Nop(), dir)
	require.NoError(t, err)

	changed := make(chan struct{}, 1)
	require.NoError(t, c.Watch(func() { changed <- struct{}{} }))
	defer c.StopWatch()

	writeChannel(t, dir, "new.toml", "[metadata]\nname = \"new\"\n")

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for cable watch reload")
	}
	_, ok := c.Get("new")
	assert.True(t, ok)
}
