package action

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tvfind/tv/internal/entry"
	"github.com/tvfind/tv/internal/history"
	"github.com/tvfind/tv/internal/input"
	"github.com/tvfind/tv/internal/matcher"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	m := matcher.New(func(e entry.Entry) string { return e.Display })
	inj := m.Injector()
	inj.Push(entry.Entry{Raw: "apple", Display: "apple", Output: "apple"})
	inj.Push(entry.Entry{Raw: "banana", Display: "banana", Output: "banana"})
	inj.Push(entry.Entry{Raw: "grape", Display: "grape", Output: "grape"})
	require.Eventually(t, func() bool {
		st := m.Tick()
		return !st.PoolBusy && !st.InjectorRunning && m.TotalCount() == 3
	}, time.Second, time.Millisecond)

	im, err := input.NewMap(map[string][]string{
		"quit":              {"esc"},
		"confirm_selection": {"enter"},
		"select_next_entry": {"down"},
	})
	require.NoError(t, err)

	h := history.Load(filepath.Join(t.TempDir(), "history.json"), 100, false)

	deps := Dependencies{
		Logger:  zerolog.Nop(),
		Matcher: m,
		History: h,
		Input:   im,
		OutputTemplate: func(e entry.Entry) string { return e.Output },
	}
	return New(deps, "files")
}

func TestAddInputCharUpdatesPatternAndResults(t *testing.T) {
	app := newTestApp(t)
	for _, c := range "ap" {
		app.Apply(Action{Name: AddInputChar, Char: c})
	}
	app.deps.Matcher.Tick()
	require.Eventually(t, func() bool {
		app.deps.Matcher.Tick()
		return app.deps.Matcher.ResultCount() > 0
	}, time.Second, time.Millisecond)

	assert.Equal(t, "ap", app.State.Input)
}

func TestDeletePrevChar(t *testing.T) {
	app := newTestApp(t)
	app.Apply(Action{Name: AddInputChar, Char: 'a'})
	app.Apply(Action{Name: AddInputChar, Char: 'b'})
	app.Apply(Action{Name: DeletePrevChar})
	assert.Equal(t, "a", app.State.Input)
	assert.Equal(t, 1, app.State.Cursor)
}

func TestSelectNextEntryMovesIndex(t *testing.T) {
	app := newTestApp(t)
	app.deps.Matcher.Find(matcher.NewPattern("", matcher.Fuzzy))
	require.Eventually(t, func() bool {
		app.deps.Matcher.Tick()
		return app.deps.Matcher.ResultCount() == 3
	}, time.Second, time.Millisecond)

	assert.Equal(t, 0, app.State.SelectedIdx)
	app.Apply(Action{Name: SelectNextEntry})
	assert.Equal(t, 1, app.State.SelectedIdx)
}

func TestConfirmSelectionProducesOutcomeAndRecordsHistory(t *testing.T) {
	app := newTestApp(t)
	// "a" occurs in apple, banana and grape, so all three stay ranked.
	app.Apply(Action{Name: AddInputChar, Char: 'a'})
	require.Eventually(t, func() bool {
		app.deps.Matcher.Tick()
		return app.deps.Matcher.ResultCount() == 3
	}, time.Second, time.Millisecond)

	app.Apply(Action{Name: ConfirmSelection})

	require.True(t, app.State.Quitting)
	assert.Equal(t, OutcomeEntries, app.State.Outcome.Kind)
	require.Len(t, app.State.Outcome.Entries, 1)
	q, ok := app.deps.History.GetPreviousEntry("files")
	require.True(t, ok)
	assert.Equal(t, "a", q)
}

func TestToggleSelectionAccumulatesMulti(t *testing.T) {
	app := newTestApp(t)
	app.deps.Matcher.Find(matcher.NewPattern("", matcher.Fuzzy))
	require.Eventually(t, func() bool {
		app.deps.Matcher.Tick()
		return app.deps.Matcher.ResultCount() == 3
	}, time.Second, time.Millisecond)

	app.Apply(Action{Name: ToggleSelectionDown})
	app.Apply(Action{Name: ToggleSelectionDown})
	assert.Len(t, app.State.Multi, 2)
}

func TestQuitSetsOutcomeNone(t *testing.T) {
	app := newTestApp(t)
	app.Apply(Action{Name: Quit})
	assert.True(t, app.State.Quitting)
	assert.Equal(t, OutcomeNone, app.State.Outcome.Kind)
}

func TestDispatchUnboundPrintableFallsBackToAddInputChar(t *testing.T) {
	app := newTestApp(t)
	app.Dispatch(input.Event{Kind: input.EventKey, Key: input.KeyCombination{Key: "z"}})
	assert.Equal(t, "z", app.State.Input)
}

func TestDispatchResolvesBoundAction(t *testing.T) {
	app := newTestApp(t)
	app.Dispatch(input.Event{Kind: input.EventKey, Key: input.KeyCombination{Key: "esc"}})
	assert.True(t, app.State.Quitting)
}

func TestConfirmMultiSelectionRendersThroughOutputTemplate(t *testing.T) {
	app := newTestApp(t)
	app.deps.OutputTemplate = func(e entry.Entry) string { return "picked:" + e.Output }
	app.deps.Matcher.Find(matcher.NewPattern("", matcher.Fuzzy))
	require.Eventually(t, func() bool {
		app.deps.Matcher.Tick()
		return app.deps.Matcher.ResultCount() == 3
	}, time.Second, time.Millisecond)

	app.Apply(Action{Name: ToggleSelectionDown})
	app.Apply(Action{Name: ToggleSelectionDown})
	app.Apply(Action{Name: ConfirmSelection})

	require.Len(t, app.State.Outcome.Entries, 2)
	for _, e := range app.State.Outcome.Entries {
		assert.Contains(t, e, "picked:")
	}
}

func TestExternalActionRendersCommandAndRuns(t *testing.T) {
	app := newTestApp(t)
	app.deps.Matcher.Find(matcher.NewPattern("", matcher.Fuzzy))
	require.Eventually(t, func() bool {
		app.deps.Matcher.Tick()
		return app.deps.Matcher.ResultCount() == 3
	}, time.Second, time.Millisecond)

	var gotCmd string
	var gotFork bool
	app.deps.RenderExternalCommand = func(name string, e entry.Entry) (string, bool, bool) {
		assert.Equal(t, "open", name)
		return "edit " + e.Output, true, true
	}
	app.deps.RunExternal = func(cmd string, fork bool) error {
		gotCmd, gotFork = cmd, fork
		return nil
	}

	app.Apply(Action{Name: ExternalAction, ExternalName: "open"})
	assert.Equal(t, "edit apple", gotCmd)
	assert.True(t, gotFork)
}

func TestSwitchToChannelReplacesDepsAndResetsState(t *testing.T) {
	app := newTestApp(t)
	app.Apply(Action{Name: AddInputChar, Char: 'a'})
	app.Apply(Action{Name: ToggleSelectionDown})

	m2 := matcher.New(func(e entry.Entry) string { return e.Display })
	inj := m2.Injector()
	inj.Push(entry.Entry{Raw: "one", Display: "one", Output: "one"})
	require.Eventually(t, func() bool {
		st := m2.Tick()
		return !st.PoolBusy && !st.InjectorRunning && m2.TotalCount() == 1
	}, time.Second, time.Millisecond)

	app.deps.SwitchChannel = func(name string) (Dependencies, error) {
		newDeps := app.deps
		newDeps.Matcher = m2
		return newDeps, nil
	}

	app.Apply(Action{Name: SwitchToChannel, ChannelName: "dirs"})

	assert.Equal(t, "dirs", app.State.ActiveChannel)
	assert.Equal(t, "", app.State.Input)
	assert.Empty(t, app.State.Multi)
	assert.Same(t, m2, app.deps.Matcher)
}

func TestRemoteFocusedWithoutPickerRoutesTypingToInput(t *testing.T) {
	app := newTestApp(t)
	catalogMatcher := matcher.New(func(e entry.Entry) string { return e.Display })
	_ = catalogMatcher
	app.deps.RemotePicker = nil // no picker configured: typing must still go to Input
	app.State.RemoteFocused = true

	app.Apply(Action{Name: AddInputChar, Char: 'z'})
	assert.Equal(t, "z", app.State.Input)
	assert.Empty(t, app.State.RemoteQuery)
}
