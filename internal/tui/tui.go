// Package tui defines the Renderer interface (C9) that the app loop
// draws through, plus the snapshot/layout types that cross the
// app-thread/render-task boundary, and a concrete tcell-backed
// implementation (C19).
//
// Grounded on the teacher's src/tui/tui.go Renderer/Window interfaces,
// generalized from fzf's curses-era multi-window model (one Window per
// list/preview/prompt pane, each individually filled) to the spec's
// single immutable per-frame Snapshot consumed by one Render call, per
// spec.md §9's "shared-mutable TUI state" re-architecture note.
package tui

import (
	"time"

	"github.com/tvfind/tv/internal/input"
)

// ResultRow is one rendered line in the results pane: display text plus
// the character ranges to highlight (from the matcher's per-result
// Ranges) and whether it is part of the multi-selection.
type ResultRow struct {
	Display  string
	Ranges   [][2]int32
	Selected bool
	Current  bool
}

// PreviewPane is the rendered preview content for the currently
// highlighted entry.
type PreviewPane struct {
	Title   string
	Lines   []string
	Scroll  int
	Loading bool
}

// RemotePane is the remote-control picker's current query and ranked
// channel list (C11), drawn in place of the preview pane while focused.
type RemotePane struct {
	Query    string
	Results  []string
	Selected int
}

// Snapshot is the immutable per-frame aggregate the app thread builds
// and ships to the render task (spec.md glossary: "Snapshot / context").
type Snapshot struct {
	Input        string
	Cursor       int
	Results      []ResultRow
	TotalCount   int
	MatchedCount int
	Preview      PreviewPane
	Remote       RemotePane
	StatusText   string

	PreviewVisible bool
	RemoteVisible  bool
	StatusVisible  bool
	HelpVisible    bool
	Orientation    string

	Theme ColorTheme
}

// Layout is the derived geometry the render task replies with, which the
// app uses for subsequent bounds math (page size, preview pane height).
type Layout struct {
	Width, Height      int
	ResultsPaneHeight  int
	PreviewPaneWidth   int
	PreviewPaneVisible bool
}

// Renderer draws one frame from an immutable Snapshot and reports
// derived layout. Implementations own the terminal; they never read back
// into app state.
type Renderer interface {
	Init() error
	Close() error

	// PollEvent blocks until the next input event or a shutdown request;
	// ok is false once the renderer has been closed.
	PollEvent() (input.Event, bool)

	// Render draws snapshot and returns the resulting layout.
	Render(snapshot Snapshot) (Layout, error)

	Size() (width, height int)

	// SetTickRate arms a periodic synthetic input.EventTick delivered via
	// PollEvent, so the app loop keeps re-rendering (e.g. the matcher's
	// pool-busy spinner) even with no real input pending. Zero disables
	// it and PollEvent blocks purely on real events.
	SetTickRate(d time.Duration)

	// Pause puts the terminal back into a consumable state for a child
	// process without tearing down the renderer (spec.md §4.8's Fork
	// external-action mode); Resume reverses it.
	Pause() error
	Resume() error
}
