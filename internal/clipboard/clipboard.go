// Package clipboard wraps github.com/atotto/clipboard for the
// copy_entry_to_clipboard action (C16). Grounded on the dependency's
// presence in duboisf-linear/go.mod; clipboard access has no teacher
// equivalent since fzf never touches the system clipboard itself, so
// this package is new rather than adapted.
package clipboard

import (
	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"

	"github.com/tvfind/tv/internal/errs"
)

// Write copies text to the system clipboard. Failure is never fatal to
// the app loop (spec.md: a headless CI box with no clipboard utility
// installed must not crash tv) — callers log and continue.
func Write(logger zerolog.Logger, text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		wrapped := errs.Wrap(errs.KindChannel, err, "copying to clipboard")
		logger.Warn().Err(wrapped).Msg("clipboard write failed")
		return wrapped
	}
	return nil
}
