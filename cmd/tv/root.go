// Package tv builds the cobra command tree (C10/C14): the root run
// command, list-channels, init <shell>, and update-channels.
//
// Grounded on duboisf-linear/cmd/root.go's Options-struct dependency
// injection and NewRootCmd/Execute/DefaultOptions shape, generalized
// from a GraphQL-API CLI to the television app's channel/config/cable
// surface. The flag surface itself mirrors the teacher's src/options.go
// (a flat option bag built up by parsing, here re-expressed as pflag
// registrations feeding a config.Overrides layer) and spec.md §6.
package tv

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tvfind/tv/internal/config"
	"github.com/tvfind/tv/internal/logging"
)

// Options holds injectable dependencies for all commands, following the
// teacher's Options-struct pattern.
type Options struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Getwd resolves the process working directory; overridable in tests.
	Getwd func() (string, error)
}

// DefaultOptions returns production-ready Options wired to the real OS.
func DefaultOptions() Options {
	return Options{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Getwd:  os.Getwd,
	}
}

// NewRootCmd creates the root cobra command with all subcommands wired.
func NewRootCmd(opts Options) *cobra.Command {
	root := &cobra.Command{
		Use:           "tv [CHANNEL] [WORKDIR]",
		Short:         "A cross-platform, fast, and extensible fuzzy finder TUI",
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
	}
	root.SetIn(opts.Stdin)
	root.SetOut(opts.Stdout)
	root.SetErr(opts.Stderr)

	f := registerFlags(root)
	root.RunE = func(cmd *cobra.Command, args []string) error {
		return runRoot(cmd, args, opts, f)
	}

	root.AddCommand(
		newListChannelsCmd(opts),
		newInitCmd(opts),
		newUpdateChannelsCmd(opts),
	)
	return root
}

// Execute creates the root command with default options and runs it.
func Execute() error {
	opts := DefaultOptions()
	return NewRootCmd(opts).ExecuteContext(context.Background())
}

// buildLogger opens the log file per C12 and installs it process-wide,
// returning the closer the caller must defer.
func buildLogger(path string, debug bool) (io.Closer, error) {
	return logging.Init(path, debug)
}

// resolveCableDir picks the cable directory: an explicit --cable-dir
// flag, else the app config's cable_dir, else data-dir/cable.
func resolveCableDir(flag, fromConfig string) string {
	if flag != "" {
		return flag
	}
	if fromConfig != "" {
		return fromConfig
	}
	return filepath.Join(config.DataDir(), "cable")
}
