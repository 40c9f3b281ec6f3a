// Package cable loads ChannelPrototype declarations from a "cable
// directory" of TOML files (spec.md §3, §6) and keeps the catalog fresh
// via an fsnotify watch (C20).
//
// There is no direct teacher equivalent: fzf has no concept of a
// declarative multi-channel catalog, so this package is new. It follows
// the teacher's config-loading texture from src/options.go (one spec per
// file, parsed independently, bad files skipped with a logged warning
// rather than aborting the whole load) and internal/config's go-toml/v2
// decoding conventions.
package cable

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"

	"github.com/tvfind/tv/internal/errs"
)

// ActionSpec is a named, channel-defined action (spec.md §3 "named
// action specs").
type ActionSpec struct {
	Command string `toml:"command"`
	Mode    string `toml:"mode"` // "fork" or "execute"
	Env     map[string]string `toml:"env"`
}

type sourceSpec struct {
	Command         string            `toml:"command"`
	Interactive     bool              `toml:"interactive"`
	Env             map[string]string `toml:"env"`
	EntryDelimiter  string            `toml:"entry_delimiter"`
	ANSI            bool              `toml:"ansi"`
	Display         string            `toml:"display"`
	Output          string            `toml:"output"`
}

type previewSpec struct {
	Command string            `toml:"command"`
	Offset  string            `toml:"offset"`
	Env     map[string]string `toml:"env"`
	Cached  bool              `toml:"cached"`
}

type uiSpec struct {
	Orientation   string `toml:"orientation"`
	UIScale       int    `toml:"ui_scale"`
	InputBar      string `toml:"input_bar"`
	StatusBar     string `toml:"status_bar"`
	ResultsPanel  string `toml:"results_panel"`
	PreviewPanel  string `toml:"preview_panel"`
	HelpPanel     string `toml:"help_panel"`
	RemoteControl string `toml:"remote_control"`
}

type historySpec struct {
	Size   int  `toml:"size"`
	Global bool `toml:"global"`
}

type metadataSpec struct {
	Name         string   `toml:"name"`
	Description  string   `toml:"description"`
	Requirements []string `toml:"requirements"`
}

// document is the raw TOML shape of a channel prototype file, per
// spec.md §6's "Channel prototype" file format.
type document struct {
	Metadata    metadataSpec          `toml:"metadata"`
	Source      sourceSpec            `toml:"source"`
	Preview     previewSpec           `toml:"preview"`
	UI          uiSpec                `toml:"ui"`
	Keybindings map[string]any        `toml:"keybindings"`
	Actions     map[string]ActionSpec `toml:"actions"`
}

// Prototype is the parsed, ready-to-use channel declaration (spec.md §3
// ChannelPrototype).
type Prototype struct {
	Name         string
	Description  string
	Requirements []string

	SourceCommand     string
	SourceInteractive bool
	SourceEnv         map[string]string
	EntryDelimiter    string
	ANSI              bool
	DisplayTemplate   string
	OutputTemplate    string

	HasPreview     bool
	PreviewCommand string
	PreviewOffset  string
	PreviewEnv     map[string]string
	PreviewCached  bool

	UI      uiSpec
	History historySpec

	Keybindings map[string][]string
	Actions     map[string]ActionSpec
}

func fromDocument(d document) Prototype {
	p := Prototype{
		Name:              d.Metadata.Name,
		Description:       d.Metadata.Description,
		Requirements:      d.Metadata.Requirements,
		SourceCommand:     d.Source.Command,
		SourceInteractive: d.Source.Interactive,
		SourceEnv:         d.Source.Env,
		EntryDelimiter:    d.Source.EntryDelimiter,
		ANSI:              d.Source.ANSI,
		DisplayTemplate:   d.Source.Display,
		OutputTemplate:    d.Source.Output,
		HasPreview:        d.Preview.Command != "",
		PreviewCommand:    d.Preview.Command,
		PreviewOffset:     d.Preview.Offset,
		PreviewEnv:        d.Preview.Env,
		PreviewCached:     d.Preview.Cached,
		UI:                d.UI,
		Actions:           d.Actions,
	}
	if p.EntryDelimiter == "" {
		p.EntryDelimiter = "\n"
	}
	if p.DisplayTemplate == "" {
		p.DisplayTemplate = "{}"
	}
	if p.OutputTemplate == "" {
		p.OutputTemplate = "{}"
	}
	p.Keybindings = make(map[string][]string, len(d.Keybindings))
	for action, raw := range d.Keybindings {
		switch v := raw.(type) {
		case bool:
			if !v {
				continue // explicit unbind: omit from the channel's own table
			}
		case string:
			p.Keybindings[action] = []string{v}
		case []any:
			keys := make([]string, 0, len(v))
			for _, item := range v {
				if s, ok := item.(string); ok {
					keys = append(keys, s)
				}
			}
			p.Keybindings[action] = keys
		}
	}
	return p
}

// Catalog is the in-memory, concurrency-safe set of loaded prototypes,
// keyed by channel name.
type Catalog struct {
	mu         sync.RWMutex
	dir        string
	logger     zerolog.Logger
	prototypes map[string]Prototype
	watcher    *fsnotify.Watcher
	watchDone  chan struct{}
}

// Load reads every *.toml file directly under dir and builds a Catalog.
// A file that fails to parse is logged and skipped rather than aborting
// the whole load, matching the teacher's tolerant options parsing.
func Load(logger zerolog.Logger, dir string) (*Catalog, error) {
	c := &Catalog{dir: dir, logger: logger, prototypes: make(map[string]Prototype)}
	if err := c.reload(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) reload() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			c.mu.Lock()
			c.prototypes = make(map[string]Prototype)
			c.mu.Unlock()
			return nil
		}
		return errs.Wrap(errs.KindConfig, err, "reading cable directory "+c.dir)
	}

	next := make(map[string]Prototype, len(entries))
	for _, de := range entries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".toml") {
			continue
		}
		path := filepath.Join(c.dir, de.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			c.logger.Warn().Err(err).Str("path", path).Msg("cable file unreadable, skipping")
			continue
		}
		var doc document
		if err := toml.Unmarshal(data, &doc); err != nil {
			c.logger.Warn().Err(err).Str("path", path).Msg("cable file malformed, skipping")
			continue
		}
		proto := fromDocument(doc)
		if proto.Name == "" {
			proto.Name = strings.TrimSuffix(de.Name(), ".toml")
		}
		next[proto.Name] = proto
	}

	c.mu.Lock()
	c.prototypes = next
	c.mu.Unlock()
	return nil
}

// Get returns the named prototype.
func (c *Catalog) Get(name string) (Prototype, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.prototypes[name]
	return p, ok
}

// Names returns the catalog's channel names, sorted, for the
// list-channels subcommand and the remote-control picker (C11).
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.prototypes))
	for n := range c.prototypes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// All returns a snapshot slice of every loaded prototype, sorted by name.
func (c *Catalog) All() []Prototype {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Prototype, 0, len(c.prototypes))
	for _, n := range c.sortedNamesLocked() {
		out = append(out, c.prototypes[n])
	}
	return out
}

func (c *Catalog) sortedNamesLocked() []string {
	names := make([]string, 0, len(c.prototypes))
	for n := range c.prototypes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Watch starts an fsnotify watch on the cable directory and reloads the
// catalog on any create/write/remove/rename event, per C20. onChange, if
// non-nil, is called after each successful reload.
func (c *Catalog) Watch(onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errs.Wrap(errs.KindChannel, err, "starting cable directory watch")
	}
	if err := w.Add(c.dir); err != nil {
		w.Close()
		return errs.Wrap(errs.KindChannel, err, "watching cable directory "+c.dir)
	}
	c.watcher = w
	c.watchDone = make(chan struct{})
	go func() {
		for {
			select {
			case <-c.watchDone:
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				if err := c.reload(); err != nil {
					c.logger.Warn().Err(err).Msg("cable directory reload failed")
					continue
				}
				if onChange != nil {
					onChange()
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				c.logger.Warn().Err(err).Msg("cable directory watch error")
			}
		}
	}()
	return nil
}

// StopWatch tears down the fsnotify watch started by Watch, if any.
func (c *Catalog) StopWatch() {
	if c.watchDone != nil {
		close(c.watchDone)
		c.watchDone = nil
	}
	if c.watcher != nil {
		c.watcher.Close()
		c.watcher = nil
	}
}
