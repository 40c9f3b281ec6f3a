// Package ansi strips ANSI escape sequences to produce a plain display
// form while leaving the raw, styled bytes available to the renderer.
//
// Grounded on the teacher's src/ansi.go (ANSI color-state extraction from
// raw stdout), generalized from its full color-state tracker to a single
// Strip helper: the renderer backend (C19, lipgloss/tcell) owns styling,
// so the core only needs the plain-text projection used for matching.
package ansi

import "regexp"

var escapeSequence = regexp.MustCompile("\x1b\\[[0-9;]*[a-zA-Z]")

// Strip removes ANSI escape sequences from s, returning the plain text
// used for display-template rendering and matching.
func Strip(s string) string {
	return escapeSequence.ReplaceAllString(s, "")
}

// HasEscapes reports whether s contains any ANSI escape sequence.
func HasEscapes(s string) bool {
	return escapeSequence.MatchString(s)
}
