package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsPopulatesCoreFields(t *testing.T) {
	defaults, err := LoadDefaults()
	require.NoError(t, err)
	merged := Resolve(defaults)
	assert.Equal(t, "files", merged.DefaultChannel)
	assert.Equal(t, 200, merged.HistorySize)
	assert.Equal(t, 50, merged.TickRate)
	assert.Contains(t, merged.Keybindings["quit"], "esc")
}

func TestPrecedenceCLIBeatsFileBeatsDefault(t *testing.T) {
	defaults, err := LoadDefaults()
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[application]
default_channel = "from-file"
history_size = 50
`), 0o600))
	file, err := LoadFile(path)
	require.NoError(t, err)

	historyFromCLI := 9
	cli := Overrides{HistorySize: &historyFromCLI}

	merged := Resolve(defaults, file, cli)
	assert.Equal(t, "from-file", merged.DefaultChannel) // file beats default, CLI silent
	assert.Equal(t, 9, merged.HistorySize)               // CLI beats file
}

func TestMissingFileIsNotAnError(t *testing.T) {
	o, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Nil(t, o.DefaultChannel)
}

func TestCorruptFileIsFatal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not valid toml [[["), 0o600))
	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestKeybindingDeepMergeUnionsAndUnbinds(t *testing.T) {
	base := Overrides{Keybindings: map[string]KeyBinding{
		"quit":               {Keys: []string{"esc"}},
		"select_next_entry":  {Keys: []string{"down"}},
	}}
	channel := Overrides{Keybindings: map[string]KeyBinding{
		"select_next_entry": {Keys: []string{"ctrl-j"}}, // unioned, not replaced
		"quit":              {Unbind: true},              // false unbinds
	}}

	merged := Resolve(base, channel)
	assert.ElementsMatch(t, []string{"down", "ctrl-j"}, merged.Keybindings["select_next_entry"])
	_, quitBound := merged.Keybindings["quit"]
	assert.False(t, quitBound)
}

func TestValidateAdHocRequiresSourceCommand(t *testing.T) {
	err := ValidateAdHoc(Overrides{})
	assert.Error(t, err)
}

func TestValidateAdHocRequiresPreviewCommandForPreviewFlags(t *testing.T) {
	src := "ls"
	size := 50
	err := ValidateAdHoc(Overrides{SourceCommand: &src, PreviewSize: &size})
	assert.Error(t, err)
}

func TestValidateAdHocPassesWithJustSource(t *testing.T) {
	src := "ls"
	err := ValidateAdHoc(Overrides{SourceCommand: &src})
	assert.NoError(t, err)
}

func TestValidateMutuallyExclusiveRejectsConflict(t *testing.T) {
	err := ValidateMutuallyExclusive("preview", VisibilityFlags{Hide: true, No: true})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be used with")
}

func TestValidateMutuallyExclusiveAllowsSingle(t *testing.T) {
	err := ValidateMutuallyExclusive("preview", VisibilityFlags{Hide: true})
	assert.NoError(t, err)
}
