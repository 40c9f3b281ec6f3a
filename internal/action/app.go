package action

import (
	"github.com/rs/zerolog"

	"github.com/tvfind/tv/internal/entry"
	"github.com/tvfind/tv/internal/history"
	"github.com/tvfind/tv/internal/input"
	"github.com/tvfind/tv/internal/matcher"
	"github.com/tvfind/tv/internal/preview"
	"github.com/tvfind/tv/internal/remote"
	"github.com/tvfind/tv/internal/source"
)

// OutcomeKind is the exception-like result of the loop, returned to main
// instead of raised by unwinding (spec.md §9).
type OutcomeKind int

const (
	OutcomeNone OutcomeKind = iota
	OutcomeEntries
	OutcomeEntriesWithExpect
	OutcomeInput
	OutcomeExternalAction
)

// Outcome is what the App loop hands back to its caller on exit.
type Outcome struct {
	Kind      OutcomeKind
	Entries   []string
	ExpectKey string
	Input     string
	External  string
}

// State is the Television object: all in-memory UI state, mutated only
// by the App's single driving goroutine. A Snapshot of this is what gets
// shipped to the renderer each frame (spec.md §9's cyclic-reference fix).
type State struct {
	Input       string
	Cursor      int
	SelectedIdx int
	Offset      int
	Multi       []entry.Entry // multi-selected entries, in selection order

	PreviewVisible bool
	RemoteVisible  bool
	StatusVisible  bool
	HelpVisible    bool
	Orientation    string

	ActiveChannel string
	PreviewScroll int

	// RemoteFocused is whether keyboard input is currently routed to the
	// remote-control picker (C11) instead of the main results pane.
	// Distinct from RemoteVisible (the panel's on-screen visibility,
	// which the app starts with already on per spec.md's default
	// layout): focus only follows an explicit ToggleRemoteControl, so
	// typing at app start still filters the main results as normal.
	RemoteFocused     bool
	RemoteQuery       string
	RemoteSelectedIdx int

	Quitting bool
	Outcome  Outcome
}

// Dependencies bundles the subsystems the dispatcher forwards interested
// actions to. Matcher is parameterized over entry.Entry since that is
// the concrete item type the whole app streams.
type Dependencies struct {
	Logger  zerolog.Logger
	Matcher *matcher.Matcher[entry.Entry]
	Source  *source.Runtime
	Preview *preview.Runtime
	History *history.History
	Input   *input.Map

	// MatchMode selects fuzzy vs substring scoring for refind(), per
	// the active channel/CLI's --exact setting (spec.md §4.2).
	MatchMode matcher.Mode

	OutputTemplate func(entry.Entry) string

	// RenderPreviewCommand renders the active channel's preview command
	// template against the highlighted entry; nil if the channel defines
	// no preview.
	RenderPreviewCommand func(entry.Entry) (string, error)

	// RenderExternalCommand resolves a channel-defined action name (the
	// ExternalAction payload) to its rendered shell command and whether
	// it runs in fork mode (spec.md §4.8); ok is false for an unknown
	// action name.
	RenderExternalCommand func(name string, it entry.Entry) (cmd string, fork bool, ok bool)
	RunExternal           func(cmd string, fork bool) error
	CopyToClip            func(text string) error

	// SwitchChannel tears down the active channel's runtime and builds
	// the named channel's replacement Dependencies (C20/SwitchToChannel);
	// nil disables channel switching entirely. The App applies the
	// result via ReplaceChannel so the swap happens on the single
	// driving goroutine, never inside this callback.
	SwitchChannel func(name string) (Dependencies, error)

	// RemotePicker drives the remote-control pane (C11): a secondary
	// fuzzy picker over the cable directory's channel catalog. Nil
	// disables the remote-control feature.
	RemotePicker *remote.Picker
}

// App is the dispatcher/App loop: it owns State and forwards actions to
// Dependencies. It does not own the renderer; callers poll State/Outcome
// and build their own per-frame snapshot.
type App struct {
	deps  Dependencies
	State State

	previewSeq uint64
}

// New creates an App with an initial active channel name.
func New(deps Dependencies, activeChannel string) *App {
	return &App{
		deps: deps,
		State: State{
			PreviewVisible: true,
			StatusVisible:  true,
			HelpVisible:    true,
			RemoteVisible:  true,
			Orientation:    "landscape",
			ActiveChannel:  activeChannel,
		},
	}
}

// Dispatch resolves an input event to actions and applies each in order,
// matching spec.md §4.8 step 2-3: drain, resolve, filter no-ops, apply.
func (a *App) Dispatch(e input.Event) {
	names := a.deps.Input.Resolve(e)
	if len(names) == 0 {
		if e.Kind == input.EventKey && !e.Key.Ctrl && !e.Key.Alt && !e.Key.Super && len([]rune(e.Key.Key)) == 1 {
			a.Apply(Action{Name: AddInputChar, Char: []rune(e.Key.Key)[0]})
		}
		return
	}
	for _, name := range names {
		a.Apply(Action{Name: Name(name)})
	}
}

// remoteRoutedActions is the set of actions that, while the
// remote-control pane has focus, act on the remote picker's query and
// selection instead of the main results pane.
var remoteRoutedActions = map[Name]bool{
	AddInputChar:     true,
	DeletePrevChar:   true,
	DeleteNextChar:   true,
	DeleteLine:       true,
	DeletePrevWord:   true,
	SelectNextEntry:  true,
	SelectPrevEntry:  true,
	SelectNextPage:   true,
	SelectPrevPage:   true,
	ConfirmSelection: true,
	SelectAndExit:    true,
}

// Apply applies one action's effect to State, then forwards it to any
// interested subsystem.
func (a *App) Apply(act Action) {
	s := &a.State
	if s.RemoteFocused && a.deps.RemotePicker != nil && remoteRoutedActions[act.Name] {
		a.applyRemote(act)
		return
	}
	switch act.Name {
	case AddInputChar:
		s.Input = s.Input[:s.Cursor] + string(act.Char) + s.Input[s.Cursor:]
		s.Cursor++
		a.refind()
	case DeletePrevChar:
		if s.Cursor > 0 {
			s.Input = s.Input[:s.Cursor-1] + s.Input[s.Cursor:]
			s.Cursor--
			a.refind()
		}
	case DeleteNextChar:
		if s.Cursor < len(s.Input) {
			s.Input = s.Input[:s.Cursor] + s.Input[s.Cursor+1:]
			a.refind()
		}
	case DeleteLine:
		s.Input = ""
		s.Cursor = 0
		a.refind()
	case DeletePrevWord:
		i := s.Cursor
		for i > 0 && s.Input[i-1] == ' ' {
			i--
		}
		for i > 0 && s.Input[i-1] != ' ' {
			i--
		}
		s.Input = s.Input[:i] + s.Input[s.Cursor:]
		s.Cursor = i
		a.refind()
	case GoToPrevChar:
		if s.Cursor > 0 {
			s.Cursor--
		}
	case GoToNextChar:
		if s.Cursor < len(s.Input) {
			s.Cursor++
		}
	case GoToInputStart:
		s.Cursor = 0
	case GoToInputEnd:
		s.Cursor = len(s.Input)

	case SelectNextEntry:
		a.moveSelection(1)
	case SelectPrevEntry:
		a.moveSelection(-1)
	case SelectNextPage:
		a.moveSelection(10)
	case SelectPrevPage:
		a.moveSelection(-10)
	case SelectPrevHistory:
		if q, ok := a.deps.History.GetPreviousEntry(s.ActiveChannel); ok {
			s.Input = q
			s.Cursor = len(q)
			a.refind()
		}
	case SelectNextHistory:
		if q, ok := a.deps.History.GetNextEntry(s.ActiveChannel); ok {
			s.Input = q
			s.Cursor = len(q)
			a.refind()
		}
	case ToggleSelectionDown:
		a.toggleCurrentSelection()
		a.moveSelection(1)
	case ToggleSelectionUp:
		a.toggleCurrentSelection()
		a.moveSelection(-1)

	case ScrollPreviewUp:
		a.scrollPreview(-1)
	case ScrollPreviewDown:
		a.scrollPreview(1)
	case ScrollPreviewHalfPageUp:
		a.scrollPreview(-10)
	case ScrollPreviewHalfPageDown:
		a.scrollPreview(10)

	case ConfirmSelection, SelectAndExit:
		a.confirm("")
	case Expect:
		a.confirm(act.Key)
	case Quit:
		s.Quitting = true
		s.Outcome = Outcome{Kind: OutcomeNone}

	case ToggleRemoteControl:
		s.RemoteFocused = !s.RemoteFocused && a.deps.RemotePicker != nil
		s.RemoteVisible = s.RemoteFocused
		if s.RemoteFocused {
			s.RemoteQuery = ""
			s.RemoteSelectedIdx = 0
			a.deps.RemotePicker.Find("")
		}
	case TogglePreview:
		s.PreviewVisible = !s.PreviewVisible
	case ToggleHelp:
		s.HelpVisible = !s.HelpVisible
	case ToggleStatusBar:
		s.StatusVisible = !s.StatusVisible
	case ToggleOrientation:
		if s.Orientation == "landscape" {
			s.Orientation = "portrait"
		} else {
			s.Orientation = "landscape"
		}

	case ReloadSource:
		if a.deps.Source != nil {
			_ = a.deps.Source.Reload()
		}
	case CycleSources:
		if a.deps.Source != nil {
			_ = a.deps.Source.CycleSources()
		}
	case WatchTimer:
		if a.deps.Source != nil {
			_ = a.deps.Source.Reload()
		}
		a.requestPreview()

	case CopyEntryToClipboard:
		if a.deps.CopyToClip != nil {
			if it, ok := a.deps.Matcher.GetResult(s.SelectedIdx); ok {
				_ = a.deps.CopyToClip(a.deps.OutputTemplate(it))
			}
		}
	case ExternalAction:
		a.runExternalAction(act.ExternalName)

	case SwitchToChannel:
		if a.deps.SwitchChannel != nil {
			newDeps, err := a.deps.SwitchChannel(act.ChannelName)
			if err != nil {
				a.deps.Logger.Warn().Err(err).Str("channel", act.ChannelName).Msg("switching channel")
			} else {
				a.ReplaceChannel(act.ChannelName, newDeps)
			}
		}

	case SelectEntryAtPosition:
		s.SelectedIdx = act.Row
		a.requestPreview()
	case MouseClickAt:
		s.SelectedIdx = act.Row
		a.confirm("")

	case Resize:
		// layout bounds math lives with the renderer; nothing to do here.
	case Tick, Render, ClearScreen, Suspend, Resume:
		// no state effect; these drive the render cadence / terminal mode.
	}
}

func (a *App) refind() {
	a.deps.Matcher.Find(matcher.NewPattern(a.State.Input, a.deps.MatchMode))
	a.State.SelectedIdx = 0
	a.State.Offset = 0
	a.requestPreview()
}

// ReplaceChannel swaps in a freshly built channel's Dependencies
// (matcher, source, preview runtime, templates) and resets per-channel
// UI state, without touching the live renderer (spec.md's C20
// SwitchToChannel). Callers must have already torn down the outgoing
// channel's source/preview runtimes before calling this.
func (a *App) ReplaceChannel(name string, newDeps Dependencies) {
	a.deps = newDeps
	s := &a.State
	s.ActiveChannel = name
	s.Input = ""
	s.Cursor = 0
	s.SelectedIdx = 0
	s.Offset = 0
	s.Multi = nil
	s.PreviewScroll = 0
	s.RemoteFocused = false
	s.RemoteQuery = ""
	s.RemoteSelectedIdx = 0
	a.refind()
}

func (a *App) moveSelection(delta int) {
	count := a.deps.Matcher.ResultCount()
	if count == 0 {
		return
	}
	idx := a.State.SelectedIdx + delta
	if idx < 0 {
		idx = 0
	}
	if idx >= count {
		idx = count - 1
	}
	if idx != a.State.SelectedIdx {
		a.State.SelectedIdx = idx
		a.requestPreview()
	}
}

func (a *App) toggleCurrentSelection() {
	it, ok := a.deps.Matcher.GetResult(a.State.SelectedIdx)
	if !ok {
		return
	}
	key := it.Key()
	for i := range a.State.Multi {
		if a.State.Multi[i].Key() == key {
			a.State.Multi = append(a.State.Multi[:i], a.State.Multi[i+1:]...)
			return
		}
	}
	a.State.Multi = append(a.State.Multi, it)
}

func (a *App) scrollPreview(delta int) {
	a.State.PreviewScroll += delta
	if a.State.PreviewScroll < 0 {
		a.State.PreviewScroll = 0
	}
}

func (a *App) requestPreview() {
	if a.deps.Preview == nil {
		return
	}
	it, ok := a.deps.Matcher.GetResult(a.State.SelectedIdx)
	if !ok {
		return
	}
	if a.deps.RenderPreviewCommand == nil {
		return
	}
	cmd, err := a.deps.RenderPreviewCommand(it)
	if err != nil {
		a.deps.Logger.Warn().Err(err).Msg("rendering preview command")
		return
	}
	a.previewSeq++
	a.deps.Preview.Request(preview.Ticket{
		Seq:     a.previewSeq,
		Key:     it.Key(),
		Title:   it.Display,
		Command: cmd,
	})
}

// runExternalAction resolves act.ExternalName against the active
// channel's action table and hands the rendered command to RunExternal.
// A missing RenderExternalCommand/RunExternal dependency or an unknown
// action name is a silent no-op, matching the rest of Apply's style of
// nil-guarding optional subsystems.
func (a *App) runExternalAction(name string) {
	if a.deps.RenderExternalCommand == nil || a.deps.RunExternal == nil {
		return
	}
	it, ok := a.deps.Matcher.GetResult(a.State.SelectedIdx)
	if !ok {
		return
	}
	cmd, fork, ok := a.deps.RenderExternalCommand(name, it)
	if !ok {
		return
	}
	if err := a.deps.RunExternal(cmd, fork); err != nil {
		a.deps.Logger.Warn().Err(err).Str("action", name).Msg("running external action")
	}
}

// applyRemote handles the subset of actions that, while the
// remote-control pane is focused, act on its query/selection instead of
// the main results pane and matcher.
func (a *App) applyRemote(act Action) {
	s := &a.State
	switch act.Name {
	case AddInputChar:
		s.RemoteQuery += string(act.Char)
		a.refindRemote()
	case DeletePrevChar, DeletePrevWord, DeleteLine:
		if len(s.RemoteQuery) > 0 {
			s.RemoteQuery = s.RemoteQuery[:len(s.RemoteQuery)-1]
			a.refindRemote()
		}
	case DeleteNextChar:
		// no cursor mid-string editing in the remote query; ignored.
	case SelectNextEntry:
		a.moveRemoteSelection(1)
	case SelectPrevEntry:
		a.moveRemoteSelection(-1)
	case SelectNextPage:
		a.moveRemoteSelection(10)
	case SelectPrevPage:
		a.moveRemoteSelection(-10)
	case ConfirmSelection, SelectAndExit:
		a.pickRemoteResult()
	}
}

func (a *App) refindRemote() {
	a.deps.RemotePicker.Find(a.State.RemoteQuery)
	a.State.RemoteSelectedIdx = 0
}

func (a *App) moveRemoteSelection(delta int) {
	count := a.deps.RemotePicker.ResultCount()
	if count == 0 {
		return
	}
	idx := a.State.RemoteSelectedIdx + delta
	if idx < 0 {
		idx = 0
	}
	if idx >= count {
		idx = count - 1
	}
	a.State.RemoteSelectedIdx = idx
}

func (a *App) pickRemoteResult() {
	results := a.deps.RemotePicker.Results(a.State.RemoteSelectedIdx, 1)
	if len(results) == 0 {
		return
	}
	a.Apply(Action{Name: SwitchToChannel, ChannelName: results[0].Name})
}

func (a *App) confirm(expectKey string) {
	s := &a.State
	s.Quitting = true

	var rendered []string
	if len(s.Multi) > 0 {
		for _, it := range s.Multi {
			rendered = append(rendered, a.deps.OutputTemplate(it))
		}
	} else if it, ok := a.deps.Matcher.GetResult(s.SelectedIdx); ok {
		rendered = append(rendered, a.deps.OutputTemplate(it))
	}
	if a.deps.History != nil {
		a.deps.History.AddEntry(s.Input, s.ActiveChannel)
	}
	if expectKey != "" {
		s.Outcome = Outcome{Kind: OutcomeEntriesWithExpect, Entries: rendered, ExpectKey: expectKey}
		return
	}
	if len(rendered) == 0 {
		s.Outcome = Outcome{Kind: OutcomeNone}
		return
	}
	s.Outcome = Outcome{Kind: OutcomeEntries, Entries: rendered}
}
