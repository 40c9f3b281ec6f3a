// Package action implements the action vocabulary and the central
// dispatcher/App loop (C8): a single-threaded state machine that
// resolves input events to actions via the input map, applies them to
// an in-memory Television state, and forwards interested actions to the
// matcher, source, and preview subsystems.
//
// Grounded on the teacher's src/terminal.go Loop method and
// src/core.go's event-coordination loop, restructured around the spec's
// Television state object (immutable-snapshot-per-frame) instead of
// fzf's direct terminal-drawing calls interleaved with state mutation.
package action

// Name identifies one action in the vocabulary. Names are normative for
// configuration: they appear verbatim in keybinding/event tables.
type Name string

const (
	AddInputChar     Name = "add_input_char"
	DeletePrevChar   Name = "delete_prev_char"
	DeletePrevWord   Name = "delete_prev_word"
	DeleteNextChar   Name = "delete_next_char"
	DeleteLine       Name = "delete_line"
	GoToPrevChar     Name = "go_to_prev_char"
	GoToNextChar     Name = "go_to_next_char"
	GoToInputStart   Name = "go_to_input_start"
	GoToInputEnd     Name = "go_to_input_end"

	SelectNextEntry      Name = "select_next_entry"
	SelectPrevEntry      Name = "select_prev_entry"
	SelectNextPage       Name = "select_next_page"
	SelectPrevPage       Name = "select_prev_page"
	SelectPrevHistory    Name = "select_prev_history"
	SelectNextHistory    Name = "select_next_history"
	ToggleSelectionDown  Name = "toggle_selection_down"
	ToggleSelectionUp    Name = "toggle_selection_up"

	ScrollPreviewUp           Name = "scroll_preview_up"
	ScrollPreviewDown         Name = "scroll_preview_down"
	ScrollPreviewHalfPageUp   Name = "scroll_preview_half_page_up"
	ScrollPreviewHalfPageDown Name = "scroll_preview_half_page_down"

	ConfirmSelection Name = "confirm_selection"
	SelectAndExit    Name = "select_and_exit"
	Expect           Name = "expect"
	Quit             Name = "quit"
	Suspend          Name = "suspend"
	Resume           Name = "resume"
	Render           Name = "render"
	Tick             Name = "tick"
	Resize           Name = "resize"
	ClearScreen      Name = "clear_screen"

	ToggleRemoteControl Name = "toggle_remote_control"
	SwitchToChannel     Name = "switch_to_channel"
	ReloadSource        Name = "reload_source"
	CycleSources        Name = "cycle_sources"
	WatchTimer          Name = "watch_timer"

	TogglePreview     Name = "toggle_preview"
	ToggleHelp        Name = "toggle_help"
	ToggleStatusBar   Name = "toggle_status_bar"
	ToggleOrientation Name = "toggle_orientation"

	ExternalAction        Name = "external_action"
	CopyEntryToClipboard  Name = "copy_entry_to_clipboard"

	SelectEntryAtPosition Name = "select_entry_at_position"
	MouseClickAt          Name = "mouse_click_at"
)

// Action is one dispatched instance of the vocabulary above, carrying
// whatever payload its Name requires. Unused payload fields are zero.
type Action struct {
	Name Name

	Char rune // AddInputChar

	Key string // Expect

	ChannelName string // SwitchToChannel

	ExternalName string // ExternalAction

	Width, Height int // Resize
	Col, Row      int // SelectEntryAtPosition, MouseClickAt
}
