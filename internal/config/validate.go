package config

import (
	"github.com/tvfind/tv/internal/errs"
)

// ValidateAdHoc checks the ad-hoc-mode constraints of spec.md §4.6: when
// no channel is given, any flag that references a preview feature
// requires --preview-command, and any flag referencing a source feature
// requires --source-command. In channel mode these checks are skipped
// entirely by the caller (this function is only called when channel is
// absent).
func ValidateAdHoc(cli Overrides) error {
	if cli.SourceCommand == nil {
		return errs.New(errs.KindCLI, "ad-hoc mode requires --source-command")
	}
	previewFlagsUsed := cli.PreviewOffset != nil || cli.PreviewHeader != nil ||
		cli.PreviewFooter != nil || cli.PreviewSize != nil || cli.HidePreviewScrollbar != nil
	if previewFlagsUsed && cli.PreviewCommand == nil {
		return errs.New(errs.KindCLI, "preview flags require --preview-command")
	}
	sourceFlagsUsed := cli.SourceDisplay != nil || cli.SourceOutput != nil ||
		cli.SourceDelimiter != nil || cli.ANSI != nil
	if sourceFlagsUsed && cli.SourceCommand == nil {
		return errs.New(errs.KindCLI, "source flags require --source-command")
	}
	return nil
}

// VisibilityFlags is a mutually-exclusive trio of "no"/"hide"/"show" CLI
// flags for one panel (preview, remote, status bar, help panel).
type VisibilityFlags struct {
	No   bool
	Hide bool
	Show bool
}

// ValidateMutuallyExclusive checks that at most one of a trio of
// visibility flags is set, returning an error naming the panel if more
// than one was passed (spec.md S4: "cannot be used with").
func ValidateMutuallyExclusive(panel string, v VisibilityFlags) error {
	count := 0
	if v.No {
		count++
	}
	if v.Hide {
		count++
	}
	if v.Show {
		count++
	}
	if count > 1 {
		return errs.New(errs.KindCLI, "--hide-"+panel+" cannot be used with --no-"+panel+" or --show-"+panel)
	}
	return nil
}
