package tv

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tvfind/tv/internal/action"
	"github.com/tvfind/tv/internal/cable"
	"github.com/tvfind/tv/internal/clipboard"
	"github.com/tvfind/tv/internal/config"
	"github.com/tvfind/tv/internal/entry"
	"github.com/tvfind/tv/internal/errs"
	"github.com/tvfind/tv/internal/frecency"
	"github.com/tvfind/tv/internal/history"
	"github.com/tvfind/tv/internal/input"
	"github.com/tvfind/tv/internal/logging"
	"github.com/tvfind/tv/internal/matcher"
	"github.com/tvfind/tv/internal/preview"
	"github.com/tvfind/tv/internal/remote"
	"github.com/tvfind/tv/internal/source"
	"github.com/tvfind/tv/internal/template"
	"github.com/tvfind/tv/internal/tui"
)

// runRoot implements spec.md §6's root command: channel mode when a
// CHANNEL positional arg is given (an unknown name is an error), ad-hoc
// mode when none is. It resolves layered config (C6), validates ad-hoc flag
// constraints, builds the channel's source/preview/matcher/history
// runtimes, drives the tcell-backed App loop, and on exit prints the
// outcome to stdout exactly as spec.md §6 describes.
func runRoot(cmd *cobra.Command, args []string, opts Options, f *flagSet) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return errs.New(errs.KindCLI, "tv requires an interactive terminal on stdin")
	}

	merged, channel, proto, loader, err := resolveConfig(cmd, args, f)
	if err != nil {
		return err
	}

	closer, err := buildLogger(logFilePath(merged, f), f.debug)
	if err != nil {
		return err
	}
	defer closer.Close()

	hist := history.Load(filepath.Join(merged.DataDir, "history.json"), merged.HistorySize, merged.GlobalHistory)
	defer func() { _ = hist.Save() }()

	var frec *frecency.Store
	if merged.Frecency || merged.GlobalFrecency {
		frec = frecency.Load(filepath.Join(merged.DataDir, "frecency.json"), merged.GlobalFrecency)
		defer func() { _ = frec.Save() }()
	}

	rt, err := buildChannelRuntime(merged, proto, frec, channel)
	if err != nil {
		return err
	}
	defer rt.Close()

	if merged.WatchInterval > 0 {
		rt.watchTicks = make(chan struct{}, 1)
		rt.src.StartWatch(time.Duration(merged.WatchInterval*float64(time.Second)), func() {
			// Runs on the watch timer's own goroutine; it only ever signals
			// the channel, never touches App state directly, so WatchTimer
			// is applied on the single driving goroutine in the render
			// loop below (the same discipline as every other action).
			select {
			case rt.watchTicks <- struct{}{}:
			default:
			}
		})
	}

	var remotePicker *remote.Picker
	if merged.RemoteControl != "hidden" && loader != nil {
		remotePicker = remote.New(loader.catalog)
	}

	// renderer is assigned below, once the interactive UI actually
	// starts; RunExternal's closure captures the variable (not its
	// current value) so Fork-mode Pause/Resume reaches the real renderer
	// once it exists, and is simply a no-op for one-shot runs that never
	// create one.
	var renderer tui.Renderer

	im, err := input.NewMap(merged.Keybindings)
	if err != nil {
		return errs.Wrap(errs.KindConfig, err, "building input map")
	}

	deps := rt.dependencies(hist)
	deps.Input = im
	deps.RemotePicker = remotePicker
	deps.RunExternal = func(c string, fork bool) error { return runExternalCommand(renderer, c, fork) }
	if loader != nil {
		var switchChannel func(name string) (action.Dependencies, error)
		switchChannel = func(name string) (action.Dependencies, error) {
			newMerged, newProto, err := loader.resolveNamed(name)
			if err != nil {
				return action.Dependencies{}, err
			}
			newIM, err := input.NewMap(newMerged.Keybindings)
			if err != nil {
				return action.Dependencies{}, errs.Wrap(errs.KindConfig, err, "building input map")
			}
			rt.Close()
			newRT, err := buildChannelRuntime(newMerged, &newProto, frec, name)
			if err != nil {
				return action.Dependencies{}, err
			}
			*rt = *newRT
			nd := rt.dependencies(hist)
			nd.Input = newIM
			nd.RemotePicker = remotePicker
			nd.RunExternal = func(c string, fork bool) error { return runExternalCommand(renderer, c, fork) }
			nd.SwitchChannel = switchChannel
			return nd, nil
		}
		deps.SwitchChannel = switchChannel
	}

	app := action.New(deps, channel)
	app.State.PreviewVisible = merged.PreviewPanel != "hidden"
	app.State.StatusVisible = merged.StatusBar != "hidden"
	app.State.HelpVisible = merged.HelpPanel != "hidden"
	if merged.Orientation != "" {
		app.State.Orientation = merged.Orientation
	}
	rt.m.Find(matcher.NewPattern("", rt.mode))
	if merged.Input != "" {
		for _, c := range merged.Input {
			app.Apply(action.Action{Name: action.AddInputChar, Char: c})
		}
	}

	if oneShot, handled := runOneShot(cmd, app, rt, merged); handled {
		return oneShot
	}

	tcellRenderer := tui.NewTcellRenderer()
	if err := tcellRenderer.Init(); err != nil {
		return errs.Wrap(errs.KindCLI, err, "initializing terminal")
	}
	renderer = tcellRenderer
	defer renderer.Close()

	if merged.Inline {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return errs.New(errs.KindCLI, "--inline requires an interactive stdout")
		}
		if merged.Height == 0 || merged.Width == 0 {
			if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				if merged.Width == 0 {
					merged.Width = w
				}
				if merged.Height == 0 {
					merged.Height = h
				}
			}
		}
	}

	tickRate := time.Duration(merged.TickRate) * time.Millisecond
	if rt.watchTicks != nil && (tickRate <= 0 || tickRate > 200*time.Millisecond) {
		// Watch mode needs the loop to wake periodically to notice a
		// pending reload signal; fall back to a reasonable default tick
		// so a configured --tick-rate of 0 doesn't starve it.
		tickRate = 200 * time.Millisecond
	}
	if tickRate > 0 {
		renderer.SetTickRate(tickRate)
	}

	theme := tui.DefaultTheme(merged.Theme)
	pageSize := 30
	var current preview.Preview

	for !app.State.Quitting {
		rt.m.Tick()
		if remotePicker != nil {
			remotePicker.Tick()
		}
		select {
		case resp := <-rt.prev.Responses():
			current = resp.Preview
		default:
		}

		snap := buildSnapshot(app, rt.m, remotePicker, current, theme, pageSize)
		layout, err := renderer.Render(snap)
		if err != nil {
			return errs.Wrap(errs.KindCLI, err, "rendering frame")
		}
		pageSize = layout.ResultsPaneHeight

		ev, ok := renderer.PollEvent()
		if !ok {
			break
		}
		if ev.Kind == input.EventTick {
			if rt.watchTicks != nil {
				select {
				case <-rt.watchTicks:
					app.Apply(action.Action{Name: action.WatchTimer})
				default:
				}
			}
			continue
		}
		app.Dispatch(ev)
		if frec != nil && app.State.Quitting && app.State.Outcome.Kind != action.OutcomeNone {
			if it, ok := rt.m.GetResult(app.State.SelectedIdx); ok {
				frec.Record(it.Key(), app.State.ActiveChannel, time.Now().Unix())
			}
		}
	}

	return printOutcome(cmd, app.State.Outcome)
}

// runOneShot implements --select-1/--take-1/--take-1-fast (spec.md's
// named-but-unspecified one-shot flags; see DESIGN.md for the chosen
// semantics): when armed, it waits on the matcher instead of entering
// the interactive render loop and returns (result, true) if it produced
// an outcome, or (nil, false) to fall through to the normal UI.
func runOneShot(cmd *cobra.Command, app *action.App, rt *channelRuntime, merged config.MergedConfig) (error, bool) {
	switch {
	case merged.Take1Fast:
		deadline := time.After(5 * time.Second)
		for {
			rt.m.Tick()
			if rt.m.ResultCount() > 0 {
				app.Apply(action.Action{Name: action.ConfirmSelection})
				return printOutcome(cmd, app.State.Outcome), true
			}
			select {
			case <-deadline:
				return nil, false
			case <-time.After(5 * time.Millisecond):
			}
		}
	case merged.Take1:
		deadline := time.After(5 * time.Second)
		for {
			status := rt.m.Tick()
			if !status.PoolBusy && !status.InjectorRunning && !rt.m.Running() {
				if rt.m.ResultCount() > 0 {
					app.Apply(action.Action{Name: action.ConfirmSelection})
					return printOutcome(cmd, app.State.Outcome), true
				}
				return nil, false
			}
			select {
			case <-deadline:
				return nil, false
			case <-time.After(5 * time.Millisecond):
			}
		}
	case merged.Select1:
		deadline := time.After(5 * time.Second)
		for {
			status := rt.m.Tick()
			if !status.PoolBusy && !status.InjectorRunning && !rt.m.Running() {
				if rt.m.ResultCount() == 1 {
					app.Apply(action.Action{Name: action.ConfirmSelection})
					return printOutcome(cmd, app.State.Outcome), true
				}
				return nil, false
			}
			select {
			case <-deadline:
				return nil, false
			case <-time.After(5 * time.Millisecond):
			}
		}
	default:
		return nil, false
	}
}

// channelRuntime bundles one channel's live dependencies: matcher,
// source, preview runtime, and the rendering templates that feed them.
// buildChannelRuntime constructs one from a resolved MergedConfig, and
// App.ReplaceChannel swaps in a fresh one on SwitchToChannel.
type channelRuntime struct {
	m    *matcher.Matcher[entry.Entry]
	src  *source.Runtime
	prev *preview.Runtime

	mode matcher.Mode

	outputTmpl  *template.Template
	previewTmpl *template.Template
	delimiter   string

	actions     map[string]cable.ActionSpec
	actionTmpls map[string]*template.Template

	watchTicks chan struct{}
}

func buildChannelRuntime(merged config.MergedConfig, proto *cable.Prototype, frec *frecency.Store, channel string) (*channelRuntime, error) {
	displayTmpl, err := template.Parse(merged.SourceDisplay)
	if err != nil {
		return nil, errs.Wrap(errs.KindCLI, err, "parsing source display template")
	}
	outputTmpl, err := template.Parse(merged.SourceOutput)
	if err != nil {
		return nil, errs.Wrap(errs.KindCLI, err, "parsing source output template")
	}
	var previewTmpl *template.Template
	if merged.PreviewCommand != "" {
		previewTmpl, err = template.Parse(merged.PreviewCommand)
		if err != nil {
			return nil, errs.Wrap(errs.KindCLI, err, "parsing preview command template")
		}
	}

	mode := matcher.Fuzzy
	if merged.Exact {
		mode = matcher.Substring
	}

	var opts []matcher.Option[entry.Entry]
	if frec != nil {
		opts = append(opts, matcher.WithScoreBonus(func(e entry.Entry) int {
			return frec.Score(e.Key(), channel)
		}))
	}
	m := matcher.New(func(e entry.Entry) string { return e.Display }, opts...)
	inj := m.Injector()

	push := func(e entry.Entry) {
		if rendered, err := displayTmpl.Render(e.Display, merged.SourceDelimiter); err == nil {
			e.Display = rendered
		}
		if out, err := outputTmpl.Render(e.Raw, merged.SourceDelimiter); err == nil {
			e.Output = out
		}
		inj.Push(e)
	}

	src := source.New(logging.Logger, []source.Spec{{
		Command:   merged.SourceCommand,
		Delimiter: merged.SourceDelimiter,
		ANSI:      merged.ANSI,
	}}, push)
	if err := src.Start(); err != nil {
		return nil, errs.Wrap(errs.KindChannel, err, "starting source command")
	}

	prev := preview.New(logging.Logger, 128)

	var actions map[string]cable.ActionSpec
	actionTmpls := map[string]*template.Template{}
	if proto != nil {
		actions = proto.Actions
		for name, spec := range actions {
			tmpl, err := template.Parse(spec.Command)
			if err != nil {
				return nil, errs.Wrap(errs.KindCLI, err, "parsing action command template: "+name)
			}
			actionTmpls[name] = tmpl
		}
	}

	return &channelRuntime{
		m:           m,
		src:         src,
		prev:        prev,
		mode:        mode,
		outputTmpl:  outputTmpl,
		previewTmpl: previewTmpl,
		delimiter:   merged.SourceDelimiter,
		actions:     actions,
		actionTmpls: actionTmpls,
	}, nil
}

// dependencies builds the action.Dependencies this runtime backs.
// Input/RunExternal/SwitchChannel/RemotePicker are left for the caller
// to fill in, since those cross-cut the whole app (or need state, like
// the live renderer) rather than belonging to one channel.
func (rt *channelRuntime) dependencies(hist *history.History) action.Dependencies {
	deps := action.Dependencies{
		Logger:    logging.Logger,
		Matcher:   rt.m,
		Source:    rt.src,
		Preview:   rt.prev,
		History:   hist,
		MatchMode: rt.mode,
		OutputTemplate: func(e entry.Entry) string {
			return rt.renderOutput(e)
		},
		CopyToClip: func(text string) error { return clipboard.Write(logging.Logger, text) },
	}
	if rt.previewTmpl != nil {
		deps.RenderPreviewCommand = func(e entry.Entry) (string, error) {
			return rt.previewTmpl.Render(e.Raw, rt.delimiter)
		}
	}
	deps.RenderExternalCommand = func(name string, it entry.Entry) (string, bool, bool) {
		spec, ok := rt.actions[name]
		if !ok {
			return "", false, false
		}
		tmpl, ok := rt.actionTmpls[name]
		if !ok {
			return "", false, false
		}
		cmd, err := tmpl.Render(it.Raw, rt.delimiter)
		if err != nil {
			return "", false, false
		}
		return cmd, spec.Mode != "execute", true
	}
	return deps
}

func (rt *channelRuntime) renderOutput(e entry.Entry) string {
	if e.Output != "" {
		return e.Output
	}
	out, err := rt.outputTmpl.Render(e.Raw, rt.delimiter)
	if err != nil {
		return e.Raw
	}
	return out
}

func (rt *channelRuntime) Close() {
	rt.src.Stop()
	rt.prev.Shutdown()
}

// runExternalCommand implements spec.md §4.8's Fork/Execute external
// actions, grounded on the teacher's src/terminal.go executeCommand
// (Pause the renderer -> run with inherited stdio -> Resume) for Fork,
// and a full process handoff via syscall.Exec for Execute. renderer may
// be nil (a one-shot run that never opened a terminal UI).
func runExternalCommand(renderer tui.Renderer, cmdStr string, fork bool) error {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "sh"
	}
	if !fork {
		if renderer != nil {
			_ = renderer.Close()
		}
		return syscall.Exec(resolveShellPath(shell), []string{shell, "-c", cmdStr}, os.Environ())
	}
	cmd := exec.Command(shell, "-c", cmdStr)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if renderer != nil {
		_ = renderer.Pause()
		defer func() { _ = renderer.Resume() }()
	}
	return cmd.Run()
}

func resolveShellPath(shell string) string {
	if filepath.IsAbs(shell) {
		return shell
	}
	if p, err := exec.LookPath(shell); err == nil {
		return p
	}
	return "/bin/sh"
}

func buildSnapshot(app *action.App, m *matcher.Matcher[entry.Entry], rp *remote.Picker, current preview.Preview, theme tui.ColorTheme, pageSize int) tui.Snapshot {
	matched := m.Results(pageSize, app.State.Offset)
	rows := make([]tui.ResultRow, 0, len(matched))
	for i, mi := range matched {
		it, ok := m.GetResult(app.State.Offset + i)
		if !ok {
			continue
		}
		ranges := make([][2]int32, 0, len(mi.Ranges))
		for _, r := range mi.Ranges {
			ranges = append(ranges, [2]int32{r[0], r[1]})
		}
		rows = append(rows, tui.ResultRow{
			Display:  it.Display,
			Ranges:   ranges,
			Selected: containsEntry(app.State.Multi, it),
			Current:  app.State.Offset+i == app.State.SelectedIdx,
		})
	}

	snap := tui.Snapshot{
		Input:          app.State.Input,
		Cursor:         app.State.Cursor,
		Results:        rows,
		TotalCount:     m.TotalCount(),
		MatchedCount:   m.ResultCount(),
		Preview:        tui.PreviewPane{Title: current.Title, Lines: splitLines(current.Content), Scroll: app.State.PreviewScroll, Loading: current.Kind == preview.KindLoading},
		StatusText:     fmt.Sprintf("%d/%d", m.ResultCount(), m.TotalCount()),
		PreviewVisible: app.State.PreviewVisible,
		RemoteVisible:  app.State.RemoteFocused,
		StatusVisible:  app.State.StatusVisible,
		HelpVisible:    app.State.HelpVisible,
		Orientation:    app.State.Orientation,
		Theme:          theme,
	}
	if rp != nil && app.State.RemoteFocused {
		names := make([]string, 0)
		for _, it := range rp.Results(0, pageSize) {
			names = append(names, it.Name)
		}
		snap.Remote = tui.RemotePane{Query: app.State.RemoteQuery, Results: names, Selected: app.State.RemoteSelectedIdx}
	}
	return snap
}

func containsEntry(entries []entry.Entry, e entry.Entry) bool {
	key := e.Key()
	for i := range entries {
		if entries[i].Key() == key {
			return true
		}
	}
	return false
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func printOutcome(cmd *cobra.Command, out action.Outcome) error {
	switch out.Kind {
	case action.OutcomeEntries:
		for _, e := range out.Entries {
			fmt.Fprintln(cmd.OutOrStdout(), e)
		}
	case action.OutcomeEntriesWithExpect:
		for _, e := range out.Entries {
			fmt.Fprintln(cmd.OutOrStdout(), e)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out.ExpectKey)
	}
	return nil
}

func logFilePath(merged config.MergedConfig, f *flagSet) string {
	if f.logFile != "" {
		return f.logFile
	}
	return filepath.Join(merged.DataDir, "tv.log")
}

// resolveConfig implements spec.md §4.6's layering: defaults, config
// file, channel prototype (if any), then CLI flags, with ad-hoc
// validation running before the channel lookup in ad-hoc mode. The
// returned channelLoader lets SwitchToChannel (C20) re-run the same
// layering for an arbitrary other channel later.
func resolveConfig(cmd *cobra.Command, args []string, f *flagSet) (config.MergedConfig, string, *cable.Prototype, *channelLoader, error) {
	cliOverrides, err := f.overrides(cmd)
	if err != nil {
		return config.MergedConfig{}, "", nil, nil, err
	}

	if err := checkMutualExclusions(f); err != nil {
		return config.MergedConfig{}, "", nil, nil, err
	}

	defaults, err := config.LoadDefaults()
	if err != nil {
		return config.MergedConfig{}, "", nil, nil, err
	}

	configPath := f.configFile
	if configPath == "" {
		configPath = config.ConfigPath()
	}
	fileOverrides, err := config.LoadFile(configPath)
	if err != nil {
		return config.MergedConfig{}, "", nil, nil, err
	}

	cableDir := resolveCableDir(f.cableDir, config.Resolve(defaults, fileOverrides).CableDir)
	catalog, err := cable.Load(logging.Logger, cableDir)
	if err != nil {
		return config.MergedConfig{}, "", nil, nil, err
	}
	loader := &channelLoader{defaults: defaults, fileOverrides: fileOverrides, cliOverrides: cliOverrides, catalog: catalog}

	channelName := ""
	if len(args) > 0 {
		channelName = args[0]
	}

	var channelOverrides config.Overrides
	var proto *cable.Prototype
	if channelName != "" {
		p, ok := catalog.Get(channelName)
		if !ok {
			return config.MergedConfig{}, "", nil, nil, errs.New(errs.KindCLI, "unknown channel: "+channelName)
		}
		proto = &p
		channelOverrides = overridesFromPrototype(p)
	} else {
		if err := config.ValidateAdHoc(cliOverrides); err != nil {
			return config.MergedConfig{}, "", nil, nil, err
		}
	}

	merged := config.Resolve(defaults, fileOverrides, channelOverrides, cliOverrides)
	if channelName == "" {
		channelName = merged.DefaultChannel
	}
	if merged.DataDir == "" {
		merged.DataDir = config.DataDir()
	}
	if err := os.MkdirAll(merged.DataDir, 0o700); err != nil {
		return config.MergedConfig{}, "", nil, nil, errs.Wrap(errs.KindStore, err, "creating data directory")
	}
	return merged, channelName, proto, loader, nil
}

// channelLoader re-resolves config layers for an arbitrary channel name,
// so SwitchToChannel (C20) can build a fresh MergedConfig the same way
// the initial resolveConfig does, without re-parsing the CLI flags or
// re-reading the config file.
type channelLoader struct {
	defaults      config.Overrides
	fileOverrides config.Overrides
	cliOverrides  config.Overrides
	catalog       *cable.Catalog
}

func (l *channelLoader) resolveNamed(name string) (config.MergedConfig, cable.Prototype, error) {
	proto, ok := l.catalog.Get(name)
	if !ok {
		return config.MergedConfig{}, cable.Prototype{}, errs.New(errs.KindCLI, "unknown channel: "+name)
	}
	merged := config.Resolve(l.defaults, l.fileOverrides, overridesFromPrototype(proto), l.cliOverrides)
	if merged.DataDir == "" {
		merged.DataDir = config.DataDir()
	}
	return merged, proto, nil
}

func checkMutualExclusions(f *flagSet) error {
	checks := []struct {
		panel string
		v     config.VisibilityFlags
	}{
		{"preview", config.VisibilityFlags{No: f.noPreview, Hide: f.hidePreview, Show: f.showPreview}},
		{"remote", config.VisibilityFlags{No: f.noRemote, Hide: f.hideRemote, Show: f.showRemote}},
		{"status-bar", config.VisibilityFlags{No: f.noStatusBar, Hide: f.hideStatusBar, Show: f.showStatusBar}},
		{"help-panel", config.VisibilityFlags{No: f.noHelpPanel, Hide: f.hideHelpPanel, Show: f.showHelpPanel}},
	}
	for _, c := range checks {
		if err := config.ValidateMutuallyExclusive(c.panel, c.v); err != nil {
			return err
		}
	}
	return nil
}

// overridesFromPrototype converts a channel's cable.Prototype into the
// config.Overrides layer it contributes to resolveConfig's merge, per
// spec.md §4.6's "channel prototype" layer. Zero-valued uiSpec/
// historySpec fields mean "the channel doesn't override this" (the TOML
// decoder can't distinguish an absent key from an explicit zero here),
// so those are only forwarded when non-zero.
func overridesFromPrototype(p cable.Prototype) config.Overrides {
	o := config.Overrides{
		SourceCommand:   &p.SourceCommand,
		SourceDisplay:   &p.DisplayTemplate,
		SourceOutput:    &p.OutputTemplate,
		SourceDelimiter: &p.EntryDelimiter,
		ANSI:            &p.ANSI,
	}
	if p.HasPreview {
		o.PreviewCommand = &p.PreviewCommand
		if p.PreviewOffset != "" {
			o.PreviewOffset = &p.PreviewOffset
		}
	}
	if len(p.Keybindings) > 0 {
		o.Keybindings = make(map[string]config.KeyBinding, len(p.Keybindings))
		for name, keys := range p.Keybindings {
			o.Keybindings[name] = config.KeyBinding{Keys: keys}
		}
	}

	if p.UI.Orientation != "" {
		o.Orientation = &p.UI.Orientation
	}
	if p.UI.UIScale != 0 {
		o.UIScale = &p.UI.UIScale
	}
	if p.UI.InputBar != "" {
		o.InputBar = &p.UI.InputBar
	}
	if p.UI.StatusBar != "" {
		o.StatusBar = &p.UI.StatusBar
	}
	if p.UI.ResultsPanel != "" {
		o.ResultsPanel = &p.UI.ResultsPanel
	}
	if p.UI.PreviewPanel != "" {
		o.PreviewPanel = &p.UI.PreviewPanel
	}
	if p.UI.HelpPanel != "" {
		o.HelpPanel = &p.UI.HelpPanel
	}
	if p.UI.RemoteControl != "" {
		o.RemoteControl = &p.UI.RemoteControl
	}

	if p.History.Size != 0 {
		o.HistorySize = &p.History.Size
	}
	if p.History.Global {
		o.GlobalHistory = &p.History.Global
	}

	return o
}
