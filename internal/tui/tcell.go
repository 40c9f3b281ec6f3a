package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/tvfind/tv/internal/input"
)

// TcellRenderer is the sole concrete Renderer (spec.md §4.17: "one
// faithful backend is enough"), replacing the teacher's light/ncurses/
// termbox trio in src/tui with a single github.com/gdamore/tcell/v2
// screen. Layout and panel composition follow the teacher's
// src/terminal.go window placement (prompt row, results pane,
// optionally split preview pane), generalized to the spec's horizontal
// ("landscape") / vertical ("portrait") split toggle.
type TcellRenderer struct {
	screen tcell.Screen
	events chan tcell.Event
	quit   chan struct{}

	ticker   *time.Ticker
	tickRate time.Duration
}

// NewTcellRenderer constructs an uninitialized renderer; call Init
// before using it.
func NewTcellRenderer() *TcellRenderer {
	return &TcellRenderer{}
}

func (r *TcellRenderer) Init() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("allocating tcell screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing tcell screen: %w", err)
	}
	screen.EnableMouse()
	screen.Clear()
	r.screen = screen

	// Events are pumped through a channel (tcell's own ChannelEvents
	// helper) rather than read with a blocking PollEvent call directly,
	// so PollEvent below can select against a tick timer too.
	r.events = make(chan tcell.Event, 16)
	r.quit = make(chan struct{})
	go r.screen.ChannelEvents(r.events, r.quit)
	return nil
}

func (r *TcellRenderer) Close() error {
	if r.quit != nil {
		close(r.quit)
		r.quit = nil
	}
	if r.ticker != nil {
		r.ticker.Stop()
	}
	if r.screen != nil {
		r.screen.Fini()
	}
	return nil
}

func (r *TcellRenderer) Size() (int, int) {
	w, h := r.screen.Size()
	return w, h
}

// SetTickRate arms (or disarms, for d <= 0) the synthetic tick event
// PollEvent interleaves with real tcell events.
func (r *TcellRenderer) SetTickRate(d time.Duration) {
	if r.ticker != nil {
		r.ticker.Stop()
		r.ticker = nil
	}
	r.tickRate = d
	if d > 0 {
		r.ticker = time.NewTicker(d)
	}
}

// Pause suspends the screen (spec.md §4.8's Fork external-action mode):
// the terminal is restored to its pre-tcell state so a foreground child
// can use it, without discarding the screen's internal buffers.
func (r *TcellRenderer) Pause() error { return r.screen.Suspend() }

// Resume reverses Pause, reclaiming the terminal for the renderer.
func (r *TcellRenderer) Resume() error { return r.screen.Resume() }

// PollEvent translates a tcell.Event into the input package's
// backend-agnostic vocabulary, mirroring the teacher's GetChar() but
// returning the spec's Event type instead of fzf's integer Event codes.
// With a tick rate armed, it also interleaves a synthetic input.EventTick
// on every tick so the app loop re-renders during background scoring.
func (r *TcellRenderer) PollEvent() (input.Event, bool) {
	var tickC <-chan time.Time
	if r.ticker != nil {
		tickC = r.ticker.C
	}
	select {
	case ev, ok := <-r.events:
		if !ok {
			return input.Event{}, false
		}
		return translateTcellEvent(ev)
	case <-tickC:
		return input.Event{Kind: input.EventTick}, true
	}
}

func translateTcellEvent(ev tcell.Event) (input.Event, bool) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return input.Event{Kind: input.EventKey, Key: keyCombinationFromTcell(e)}, true
	case *tcell.EventResize:
		w, h := e.Size()
		return input.Event{Kind: input.EventResize, Width: w, Height: h}, true
	case *tcell.EventMouse:
		col, row := e.Position()
		kind := "move"
		switch e.Buttons() {
		case tcell.Button1:
			kind = "left"
		case tcell.Button2:
			kind = "right"
		case tcell.WheelUp:
			kind = "wheel_up"
		case tcell.WheelDown:
			kind = "wheel_down"
		}
		return input.Event{Kind: input.EventMouse, MouseKind: kind, Col: col, Row: row}, true
	default:
		return input.Event{Kind: input.EventCustom}, true
	}
}

func keyCombinationFromTcell(e *tcell.EventKey) input.KeyCombination {
	mod := e.Modifiers()
	kc := input.KeyCombination{
		Ctrl:  mod&tcell.ModCtrl != 0,
		Alt:   mod&tcell.ModAlt != 0,
		Shift: mod&tcell.ModShift != 0,
		Super: mod&tcell.ModMeta != 0,
	}
	switch e.Key() {
	case tcell.KeyRune:
		kc.Key = string(e.Rune())
	case tcell.KeyEnter:
		kc.Key = "enter"
	case tcell.KeyEscape:
		kc.Key = "esc"
	case tcell.KeyTab:
		kc.Key = "tab"
	case tcell.KeyBacktab:
		kc.Key = "backtab"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		kc.Key = "backspace"
	case tcell.KeyDelete:
		kc.Key = "delete"
	case tcell.KeyInsert:
		kc.Key = "insert"
	case tcell.KeyUp:
		kc.Key = "up"
	case tcell.KeyDown:
		kc.Key = "down"
	case tcell.KeyLeft:
		kc.Key = "left"
	case tcell.KeyRight:
		kc.Key = "right"
	case tcell.KeyHome:
		kc.Key = "home"
	case tcell.KeyEnd:
		kc.Key = "end"
	case tcell.KeyPgUp:
		kc.Key = "pageup"
	case tcell.KeyPgDn:
		kc.Key = "pagedown"
	case tcell.KeyCtrlSpace:
		kc.Key = "space"
		kc.Ctrl = true
	default:
		if e.Key() >= tcell.KeyF1 && e.Key() <= tcell.KeyF12 {
			kc.Key = fmt.Sprintf("f%d", int(e.Key()-tcell.KeyF1)+1)
		} else if e.Key() >= tcell.KeyCtrlA && e.Key() <= tcell.KeyCtrlZ {
			kc.Ctrl = true
			kc.Key = string(rune('a' + int(e.Key()-tcell.KeyCtrlA)))
		}
	}
	return kc
}

// Render draws one frame: status, prompt, results and preview (or
// remote-control) panes, splitting horizontally in "landscape"
// orientation and vertically in "portrait". No help panel is drawn.
func (r *TcellRenderer) Render(snap Snapshot) (Layout, error) {
	r.screen.Clear()
	width, height := r.screen.Size()

	theme := snap.Theme
	if theme.Name == "" {
		theme = DefaultTheme("default")
	}

	contentTop := 0
	if snap.StatusVisible {
		r.drawLine(0, width, theme.StatusBar, snap.StatusText)
		contentTop = 1
	}
	r.drawLine(contentTop, width, theme.Prompt, "> "+snap.Input)
	resultsTop := contentTop + 1

	sidePaneVisible := snap.PreviewVisible || snap.RemoteVisible
	previewWidth := 0
	resultsWidth := width
	if sidePaneVisible && snap.Orientation == "landscape" {
		previewWidth = width / 2
		resultsWidth = width - previewWidth
	}

	resultsHeight := height - resultsTop
	if sidePaneVisible && snap.Orientation == "portrait" {
		resultsHeight = (height - resultsTop) / 2
	}

	for i, row := range snap.Results {
		if i >= resultsHeight {
			break
		}
		style := styleToTcell(theme.Border)
		if row.Current {
			style = styleToTcell(theme.Selection)
		}
		r.drawText(0, resultsTop+i, resultsWidth, style, row.Display)
	}

	// The remote-control pane (C11) shares the preview pane's rectangle:
	// only one of them is ever focused/visible at a time in practice, and
	// spec.md's glossary describes both as sharing the same picker-state
	// shape (selection + offset, invertible).
	switch {
	case snap.RemoteVisible:
		px, py, pw := resultsWidth, resultsTop, previewWidth
		if snap.Orientation == "portrait" {
			px, py, pw = 0, resultsTop+resultsHeight, width
		}
		r.drawText(px, py, pw, styleToTcell(theme.BorderFocused), "channels> "+snap.Remote.Query)
		for i, name := range snap.Remote.Results {
			style := styleToTcell(theme.Border)
			if i == snap.Remote.Selected {
				style = styleToTcell(theme.Selection)
			}
			r.drawText(px, py+1+i, pw, style, name)
		}
	case snap.PreviewVisible:
		px, py, pw := resultsWidth, resultsTop, previewWidth
		if snap.Orientation == "portrait" {
			px, py, pw = 0, resultsTop+resultsHeight, width
		}
		r.drawText(px, py, pw, styleToTcell(theme.BorderFocused), snap.Preview.Title)
		for i, line := range snap.Preview.Lines {
			r.drawText(px, py+1+i, pw, styleToTcell(theme.Border), line)
		}
	}

	r.screen.Show()
	return Layout{
		Width:              width,
		Height:             height,
		ResultsPaneHeight:  resultsHeight,
		PreviewPaneWidth:   previewWidth,
		PreviewPaneVisible: snap.PreviewVisible,
	}, nil
}

func (r *TcellRenderer) drawLine(y, width int, style lipgloss.Style, text string) {
	r.drawText(0, y, width, styleToTcell(style), text)
}

// drawText writes text starting at (x, y), advancing by each rune's
// display width (wide CJK runes occupy two cells) so columns stay
// aligned with multi-byte content, mirroring the teacher's
// src/tui/tcell.go use of runewidth.RuneWidth in its own drawText.
func (r *TcellRenderer) drawText(x, y, width int, style tcell.Style, text string) {
	col := x
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			w = 1
		}
		if col+w > x+width {
			break
		}
		r.screen.SetContent(col, y, ch, nil, style)
		col += w
	}
}

// styleToTcell maps a lipgloss.Style's foreground/background/attributes
// onto a tcell.Style. lipgloss is used purely as the theme's color
// vocabulary; the actual cell writes go through tcell's screen buffer.
func styleToTcell(s lipgloss.Style) tcell.Style {
	st := tcell.StyleDefault
	if fg := s.GetForeground(); fg != (lipgloss.NoColor{}) {
		if c, ok := fg.(lipgloss.Color); ok {
			st = st.Foreground(tcell.GetColor(string(c)))
		}
	}
	if bg := s.GetBackground(); bg != (lipgloss.NoColor{}) {
		if c, ok := bg.(lipgloss.Color); ok {
			st = st.Background(tcell.GetColor(string(c)))
		}
	}
	if s.GetBold() {
		st = st.Bold(true)
	}
	if s.GetReverse() {
		st = st.Reverse(true)
	}
	return st
}
