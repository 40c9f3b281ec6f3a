// Package config implements the layered configuration resolver (C6):
// built-in defaults, merged with the user config file, the active
// channel prototype, and finally CLI flags, with keybinding deep-merge
// and ad-hoc-mode validation.
//
// Grounded on the teacher's src/options.go layering idiom (a single flat
// Options struct built up by defaultOptions() then overridden by parsed
// flags), generalized from fzf's env/file/flag precedence to the spec's
// four-layer TOML/CLI merge with an explicit keybinding deep-merge step.
package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/tvfind/tv/internal/errs"
)

//go:embed default_config.toml
var defaultConfigTOML []byte

// KeyBinding is one layer's contribution to an action's bindings. Unbind
// is the file-format `false` sentinel: it removes the action entirely
// from the merged map, mapping it to a no-op.
type KeyBinding struct {
	Keys   []string
	Unbind bool
}

// rawDoc is the shape of both the embedded defaults and a user config
// file / channel prototype's overlapping fields, as parsed from TOML.
// Keybinding values are decoded into `any` because a single action's
// value may be a string, a list of strings, or the boolean `false`
// unbind sentinel — a sum type TOML has no native representation for.
type rawDoc struct {
	Application struct {
		DataDir        *string `toml:"data_dir"`
		CableDir       *string `toml:"cable_dir"`
		TickRate       *int    `toml:"tick_rate"`
		DefaultChannel *string `toml:"default_channel"`
		HistorySize    *int    `toml:"history_size"`
		GlobalHistory  *bool   `toml:"global_history"`
		Frecency       *bool   `toml:"frecency"`
		GlobalFrecency *bool   `toml:"global_frecency"`
	} `toml:"application"`

	UI struct {
		Theme         *string `toml:"theme"`
		UIScale       *int    `toml:"ui_scale"`
		Orientation   *string `toml:"orientation"`
		InputBar      *string `toml:"input_bar"`
		StatusBar     *string `toml:"status_bar"`
		ResultsPanel  *string `toml:"results_panel"`
		PreviewPanel  *string `toml:"preview_panel"`
		HelpPanel     *string `toml:"help_panel"`
		RemoteControl *string `toml:"remote_control"`
	} `toml:"ui"`

	Source struct {
		Command   *string `toml:"command"`
		Display   *string `toml:"display"`
		Output    *string `toml:"output"`
		Delimiter *string `toml:"entry_delimiter"`
		ANSI      *bool   `toml:"ansi"`
	} `toml:"source"`

	Preview struct {
		Command              *string `toml:"command"`
		Offset               *string `toml:"offset"`
		Header               *string `toml:"header"`
		Footer               *string `toml:"footer"`
		Size                 *int    `toml:"size"`
		HidePreviewScrollbar *bool   `toml:"hide_scrollbar"`
	} `toml:"preview"`

	Keybindings map[string]any `toml:"keybindings"`
}

// overrides converts a parsed document into an Overrides layer. Pointer
// fields left nil by the TOML decoder (because the key was absent from
// the source) stay nil here, so a layer that doesn't mention a table
// leaves every later/earlier layer's value for that field untouched.
func (d rawDoc) overrides() Overrides {
	o := Overrides{
		DataDir:        d.Application.DataDir,
		CableDir:       d.Application.CableDir,
		TickRate:       d.Application.TickRate,
		DefaultChannel: d.Application.DefaultChannel,
		HistorySize:    d.Application.HistorySize,
		GlobalHistory:  d.Application.GlobalHistory,
		Frecency:       d.Application.Frecency,
		GlobalFrecency: d.Application.GlobalFrecency,

		Theme:         d.UI.Theme,
		UIScale:       d.UI.UIScale,
		Orientation:   d.UI.Orientation,
		InputBar:      d.UI.InputBar,
		StatusBar:     d.UI.StatusBar,
		ResultsPanel:  d.UI.ResultsPanel,
		PreviewPanel:  d.UI.PreviewPanel,
		HelpPanel:     d.UI.HelpPanel,
		RemoteControl: d.UI.RemoteControl,

		SourceCommand:   d.Source.Command,
		SourceDisplay:   d.Source.Display,
		SourceOutput:    d.Source.Output,
		SourceDelimiter: d.Source.Delimiter,
		ANSI:            d.Source.ANSI,

		PreviewCommand:       d.Preview.Command,
		PreviewOffset:        d.Preview.Offset,
		PreviewHeader:        d.Preview.Header,
		PreviewFooter:        d.Preview.Footer,
		PreviewSize:          d.Preview.Size,
		HidePreviewScrollbar: d.Preview.HidePreviewScrollbar,
	}
	if len(d.Keybindings) > 0 {
		o.Keybindings = make(map[string]KeyBinding, len(d.Keybindings))
		for action, v := range d.Keybindings {
			o.Keybindings[action] = parseKeyBindingValue(v)
		}
	}
	return o
}

func parseKeyBindingValue(v any) KeyBinding {
	switch val := v.(type) {
	case bool:
		return KeyBinding{Unbind: !val}
	case string:
		return KeyBinding{Keys: []string{val}}
	case []any:
		keys := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				keys = append(keys, s)
			}
		}
		return KeyBinding{Keys: keys}
	default:
		return KeyBinding{}
	}
}

// Overrides is one layer of the resolver: every field is a pointer so a
// nil value means "this layer does not set this field."
type Overrides struct {
	DataDir        *string
	CableDir       *string
	TickRate       *int
	DefaultChannel *string
	HistorySize    *int
	GlobalHistory  *bool
	Frecency       *bool
	GlobalFrecency *bool

	Theme         *string
	UIScale       *int
	Orientation   *string
	InputBar      *string
	StatusBar     *string
	ResultsPanel  *string
	PreviewPanel  *string
	HelpPanel     *string
	RemoteControl *string

	Keybindings map[string]KeyBinding

	SourceCommand   *string
	SourceDisplay   *string
	SourceOutput    *string
	SourceDelimiter *string
	ANSI            *bool

	PreviewCommand       *string
	PreviewOffset        *string
	PreviewHeader        *string
	PreviewFooter        *string
	PreviewSize          *int
	HidePreviewScrollbar *bool

	WatchInterval *float64

	Exact     *bool
	Select1   *bool
	Take1     *bool
	Take1Fast *bool

	InputHeader        *string
	InputPrompt        *string
	Input              *string
	AutocompletePrompt *string

	Inline *bool
	Height *int
	Width  *int
}

// MergedConfig is the flat result every component reads from; no
// component re-reads the layered representation.
type MergedConfig struct {
	DataDir        string
	CableDir       string
	TickRate       int
	DefaultChannel string
	HistorySize    int
	GlobalHistory  bool
	Frecency       bool
	GlobalFrecency bool

	Theme         string
	UIScale       int
	Orientation   string
	InputBar      string
	StatusBar     string
	ResultsPanel  string
	PreviewPanel  string
	HelpPanel     string
	RemoteControl string

	Keybindings map[string][]string

	SourceCommand   string
	SourceDisplay   string
	SourceOutput    string
	SourceDelimiter string
	ANSI            bool

	PreviewCommand       string
	PreviewOffset        string
	PreviewHeader        string
	PreviewFooter        string
	PreviewSize          int
	HidePreviewScrollbar bool

	WatchInterval float64

	Exact     bool
	Select1   bool
	Take1     bool
	Take1Fast bool

	InputHeader        string
	InputPrompt        string
	Input              string
	AutocompletePrompt string

	Inline bool
	Height int
	Width  int
}

// LoadDefaults parses the embedded built-in defaults.
func LoadDefaults() (Overrides, error) {
	var doc rawDoc
	if err := toml.Unmarshal(defaultConfigTOML, &doc); err != nil {
		return Overrides{}, errs.Wrap(errs.KindConfig, err, "parsing built-in defaults")
	}
	return doc.overrides(), nil
}

// LoadFile parses the user config file at path. A missing file is not an
// error (the caller should write the defaults there); a parse error is
// fatal with a release-notes hint.
func LoadFile(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Overrides{}, nil
		}
		return Overrides{}, errs.Wrap(errs.KindConfig, err, "reading config file "+path)
	}
	var doc rawDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return Overrides{}, errs.Wrap(errs.KindConfig, err,
			"parsing config file "+path+" (see release notes for breaking changes)")
	}
	return doc.overrides(), nil
}

// ParseKeybindingsFlag parses the `--keybindings` CLI flag's `;`-separated
// TOML fragments (spec.md §6, e.g. `quit="esc";select_next_entry=["down","ctrl-j"]`)
// into a keybinding override layer, by wrapping the fragments in a
// `[keybindings]` table and reusing the ordinary document decoder.
func ParseKeybindingsFlag(raw string) (map[string]KeyBinding, error) {
	body := "[keybindings]\n" + strings.ReplaceAll(raw, ";", "\n")
	var doc rawDoc
	if err := toml.Unmarshal([]byte(body), &doc); err != nil {
		return nil, errs.Wrap(errs.KindCLI, err, "parsing --keybindings")
	}
	return doc.overrides().Keybindings, nil
}

// ConfigPath resolves the user config file path: TELEVISION_CONFIG, then
// XDG_CONFIG_HOME/television/config.toml, then ~/.config/television/config.toml.
func ConfigPath() string {
	if p := os.Getenv("TELEVISION_CONFIG"); p != "" {
		return p
	}
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "television", "config.toml")
}

// DataDir resolves the data directory: TELEVISION_DATA, then
// XDG_DATA_HOME/television, then ~/.local/share/television.
func DataDir() string {
	if p := os.Getenv("TELEVISION_DATA"); p != "" {
		return p
	}
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "television")
}

// Resolve merges layers in order (later wins for scalar fields, unless
// the later layer is nil for that field). Keybindings are deep-merged:
// each layer's bindings are unioned onto the running result, and an
// Unbind entry removes the action entirely.
func Resolve(layers ...Overrides) MergedConfig {
	var m MergedConfig
	m.Keybindings = map[string][]string{}
	for _, l := range layers {
		pickString(&m.DataDir, l.DataDir)
		pickString(&m.CableDir, l.CableDir)
		pickInt(&m.TickRate, l.TickRate)
		pickString(&m.DefaultChannel, l.DefaultChannel)
		pickInt(&m.HistorySize, l.HistorySize)
		pickBool(&m.GlobalHistory, l.GlobalHistory)
		pickBool(&m.Frecency, l.Frecency)
		pickBool(&m.GlobalFrecency, l.GlobalFrecency)

		pickString(&m.Theme, l.Theme)
		pickInt(&m.UIScale, l.UIScale)
		pickString(&m.Orientation, l.Orientation)
		pickString(&m.InputBar, l.InputBar)
		pickString(&m.StatusBar, l.StatusBar)
		pickString(&m.ResultsPanel, l.ResultsPanel)
		pickString(&m.PreviewPanel, l.PreviewPanel)
		pickString(&m.HelpPanel, l.HelpPanel)
		pickString(&m.RemoteControl, l.RemoteControl)

		mergeKeybindings(m.Keybindings, l.Keybindings)

		pickString(&m.SourceCommand, l.SourceCommand)
		pickString(&m.SourceDisplay, l.SourceDisplay)
		pickString(&m.SourceOutput, l.SourceOutput)
		pickString(&m.SourceDelimiter, l.SourceDelimiter)
		pickBool(&m.ANSI, l.ANSI)

		pickString(&m.PreviewCommand, l.PreviewCommand)
		pickString(&m.PreviewOffset, l.PreviewOffset)
		pickString(&m.PreviewHeader, l.PreviewHeader)
		pickString(&m.PreviewFooter, l.PreviewFooter)
		pickInt(&m.PreviewSize, l.PreviewSize)
		pickBool(&m.HidePreviewScrollbar, l.HidePreviewScrollbar)

		pickFloat(&m.WatchInterval, l.WatchInterval)

		pickBool(&m.Exact, l.Exact)
		pickBool(&m.Select1, l.Select1)
		pickBool(&m.Take1, l.Take1)
		pickBool(&m.Take1Fast, l.Take1Fast)

		pickString(&m.InputHeader, l.InputHeader)
		pickString(&m.InputPrompt, l.InputPrompt)
		pickString(&m.Input, l.Input)
		pickString(&m.AutocompletePrompt, l.AutocompletePrompt)

		pickBool(&m.Inline, l.Inline)
		pickInt(&m.Height, l.Height)
		pickInt(&m.Width, l.Width)
	}
	return m
}

func mergeKeybindings(dst map[string][]string, layer map[string]KeyBinding) {
	for action, kb := range layer {
		if kb.Unbind {
			delete(dst, action)
			continue
		}
		existing := dst[action]
		seen := make(map[string]bool, len(existing))
		for _, k := range existing {
			seen[k] = true
		}
		for _, k := range kb.Keys {
			if !seen[k] {
				existing = append(existing, k)
				seen[k] = true
			}
		}
		dst[action] = existing
	}
}

func pickString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
func pickInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
func pickBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
func pickFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
