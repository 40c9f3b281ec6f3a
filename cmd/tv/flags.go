package tv

import (
	"github.com/spf13/cobra"

	"github.com/tvfind/tv/internal/config"
)

// flagSet holds every registered pflag destination variable. cobra's
// pflag package has no notion of "was this flag explicitly set" beyond
// Changed, so overrides() below consults cmd.Flags().Changed rather than
// comparing against zero values (a zero value may be a legitimate
// explicit choice, e.g. --ui-scale 0 should not be confused with unset).
type flagSet struct {
	sourceCommand    string
	sourceDisplay    string
	sourceOutput     string
	sourceDelimiter  string
	ansi             bool

	previewCommand string
	previewOffset  string
	previewHeader  string
	previewFooter  string
	previewSize    int
	hidePreviewScrollbar bool
	noPreview   bool
	hidePreview bool
	showPreview bool

	noRemote   bool
	hideRemote bool
	showRemote bool

	noStatusBar   bool
	hideStatusBar bool
	showStatusBar bool

	noHelpPanel   bool
	hideHelpPanel bool
	showHelpPanel bool

	layout  string
	uiScale int

	inputHeader string
	inputPrompt string

	exact     bool
	select1   bool
	take1     bool
	take1Fast bool

	frecency       bool
	globalFrecency bool

	watch    float64
	tickRate int

	configFile string
	cableDir   string

	keybindings string

	input              string
	autocompletePrompt string

	inline bool
	height int
	width  int

	debug   bool
	logFile string
}

func registerFlags(cmd *cobra.Command) *flagSet {
	f := &flagSet{}
	fl := cmd.Flags()

	fl.StringVar(&f.sourceCommand, "source-command", "", "ad-hoc source command")
	fl.StringVar(&f.sourceDisplay, "source-display", "", "display template override")
	fl.StringVar(&f.sourceOutput, "source-output", "", "output template override")
	fl.StringVar(&f.sourceDelimiter, "source-entry-delimiter", "", "entry delimiter override")
	fl.BoolVar(&f.ansi, "ansi", false, "preserve ANSI escapes in source output")

	fl.StringVar(&f.previewCommand, "preview-command", "", "preview command template")
	fl.StringVar(&f.previewOffset, "preview-offset", "", "preview scroll offset template (accepted; has no effect)")
	fl.StringVar(&f.previewHeader, "preview-header", "", "preview header template (accepted; has no effect)")
	fl.StringVar(&f.previewFooter, "preview-footer", "", "preview footer template (accepted; has no effect)")
	fl.IntVar(&f.previewSize, "preview-size", 0, "preview pane size, percent 1-99 (accepted; has no effect)")
	fl.BoolVar(&f.hidePreviewScrollbar, "hide-preview-scrollbar", false, "hide the preview scrollbar (accepted; has no effect)")
	fl.BoolVar(&f.noPreview, "no-preview", false, "start with the preview panel hidden (same as --hide-preview)")
	fl.BoolVar(&f.hidePreview, "hide-preview", false, "start with the preview panel hidden")
	fl.BoolVar(&f.showPreview, "show-preview", false, "start with the preview panel shown")

	fl.BoolVar(&f.noRemote, "no-remote", false, "disable remote control mode")
	fl.BoolVar(&f.hideRemote, "hide-remote", false, "disable remote control mode (same as --no-remote)")
	fl.BoolVar(&f.showRemote, "show-remote", false, "start with remote control shown")

	fl.BoolVar(&f.noStatusBar, "no-status-bar", false, "start with the status bar hidden (same as --hide-status-bar)")
	fl.BoolVar(&f.hideStatusBar, "hide-status-bar", false, "start with the status bar hidden")
	fl.BoolVar(&f.showStatusBar, "show-status-bar", false, "start with the status bar shown")

	fl.BoolVar(&f.noHelpPanel, "no-help-panel", false, "start with the help panel hidden (same as --hide-help-panel)")
	fl.BoolVar(&f.hideHelpPanel, "hide-help-panel", false, "start with the help panel hidden")
	fl.BoolVar(&f.showHelpPanel, "show-help-panel", false, "start with the help panel shown")

	fl.StringVar(&f.layout, "layout", "", "landscape|portrait")
	fl.IntVar(&f.uiScale, "ui-scale", 0, "UI scale, 10-100 (accepted; has no effect)")
	fl.StringVar(&f.inputHeader, "input-header", "", "input bar header override (accepted; has no effect)")
	fl.StringVar(&f.inputPrompt, "input-prompt", "", "input bar prompt override (accepted; has no effect)")

	fl.BoolVar(&f.exact, "exact", false, "use substring matching instead of fuzzy")
	fl.BoolVar(&f.select1, "select-1", false, "auto-select the only match")
	fl.BoolVar(&f.take1, "take-1", false, "print the first match and exit immediately")
	fl.BoolVar(&f.take1Fast, "take-1-fast", false, "like --take-1 but doesn't wait for more input")

	fl.BoolVar(&f.frecency, "frecency", false, "boost recently/frequently picked entries in this channel")
	fl.BoolVar(&f.globalFrecency, "global-frecency", false, "like --frecency but shared across all channels")

	fl.Float64Var(&f.watch, "watch", -1, "reload the source every N seconds (0 disables)")
	fl.IntVar(&f.tickRate, "tick-rate", 0, "UI tick rate in milliseconds")

	fl.StringVar(&f.configFile, "config-file", "", "path to the app config file")
	fl.StringVar(&f.cableDir, "cable-dir", "", "path to the cable directory")

	fl.StringVar(&f.keybindings, "keybindings", "", `";"-separated TOML keybinding fragments`)

	fl.StringVar(&f.input, "input", "", "pre-fill the input bar")
	fl.StringVar(&f.autocompletePrompt, "autocomplete-prompt", "", "autocomplete prompt override (accepted; has no effect)")

	fl.BoolVar(&f.inline, "inline", false, "require an interactive stdout; the UI still takes over the whole screen")
	fl.IntVar(&f.height, "height", 0, "inline mode height in rows (accepted; has no effect)")
	fl.IntVar(&f.width, "width", 0, "inline mode width in columns (accepted; has no effect)")

	fl.BoolVarP(&f.debug, "debug", "v", false, "enable debug logging")
	fl.StringVar(&f.logFile, "log-file", "", "log file path")

	return f
}

// overrides builds a config.Overrides layer from whichever flags the
// user actually passed, per spec.md §8 invariant 7 ("if CLI sets F").
func (f *flagSet) overrides(cmd *cobra.Command) (config.Overrides, error) {
	changed := cmd.Flags().Changed
	o := config.Overrides{}

	setStr := func(dst **string, name string, val string) {
		if changed(name) {
			*dst = &val
		}
	}
	setInt := func(dst **int, name string, val int) {
		if changed(name) {
			*dst = &val
		}
	}
	setBool := func(dst **bool, name string, val bool) {
		if changed(name) {
			*dst = &val
		}
	}
	setFloat := func(dst **float64, name string, val float64) {
		if changed(name) {
			*dst = &val
		}
	}

	setStr(&o.SourceCommand, "source-command", f.sourceCommand)
	setStr(&o.SourceDisplay, "source-display", f.sourceDisplay)
	setStr(&o.SourceOutput, "source-output", f.sourceOutput)
	setStr(&o.SourceDelimiter, "source-entry-delimiter", f.sourceDelimiter)
	setBool(&o.ANSI, "ansi", f.ansi)

	setStr(&o.PreviewCommand, "preview-command", f.previewCommand)
	setStr(&o.PreviewOffset, "preview-offset", f.previewOffset)
	setStr(&o.PreviewHeader, "preview-header", f.previewHeader)
	setStr(&o.PreviewFooter, "preview-footer", f.previewFooter)
	setInt(&o.PreviewSize, "preview-size", f.previewSize)
	setBool(&o.HidePreviewScrollbar, "hide-preview-scrollbar", f.hidePreviewScrollbar)

	if f.noPreview {
		v := "hidden"
		o.PreviewPanel = &v
	} else if f.hidePreview {
		v := "hidden"
		o.PreviewPanel = &v
	} else if f.showPreview {
		v := "visible"
		o.PreviewPanel = &v
	}
	if f.noRemote || f.hideRemote {
		v := "hidden"
		o.RemoteControl = &v
	} else if f.showRemote {
		v := "visible"
		o.RemoteControl = &v
	}
	if f.noStatusBar || f.hideStatusBar {
		v := "hidden"
		o.StatusBar = &v
	} else if f.showStatusBar {
		v := "visible"
		o.StatusBar = &v
	}
	if f.noHelpPanel || f.hideHelpPanel {
		v := "hidden"
		o.HelpPanel = &v
	} else if f.showHelpPanel {
		v := "visible"
		o.HelpPanel = &v
	}

	setStr(&o.Orientation, "layout", f.layout)
	setInt(&o.UIScale, "ui-scale", f.uiScale)
	setStr(&o.InputHeader, "input-header", f.inputHeader)
	setStr(&o.InputPrompt, "input-prompt", f.inputPrompt)

	setBool(&o.Exact, "exact", f.exact)
	setBool(&o.Select1, "select-1", f.select1)
	setBool(&o.Take1, "take-1", f.take1)
	setBool(&o.Take1Fast, "take-1-fast", f.take1Fast)

	setBool(&o.Frecency, "frecency", f.frecency)
	setBool(&o.GlobalFrecency, "global-frecency", f.globalFrecency)

	setFloat(&o.WatchInterval, "watch", f.watch)
	setInt(&o.TickRate, "tick-rate", f.tickRate)

	setStr(&o.Input, "input", f.input)
	setStr(&o.AutocompletePrompt, "autocomplete-prompt", f.autocompletePrompt)

	setBool(&o.Inline, "inline", f.inline)
	setInt(&o.Height, "height", f.height)
	setInt(&o.Width, "width", f.width)

	if f.keybindings != "" {
		kb, err := config.ParseKeybindingsFlag(f.keybindings)
		if err != nil {
			return o, err
		}
		o.Keybindings = kb
	}

	return o, nil
}
