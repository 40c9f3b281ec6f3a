package tv

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tvfind/tv/internal/cable"
	"github.com/tvfind/tv/internal/config"
	"github.com/tvfind/tv/internal/logging"
)

// newUpdateChannelsCmd implements the update-channels subcommand
// (SPEC_FULL.md §4.18): reload the cable directory's catalog once, and
// with --watch keep running, hot-reloading on every change until
// interrupted.
func newUpdateChannelsCmd(opts Options) *cobra.Command {
	var cableDirFlag string
	var watch bool
	cmd := &cobra.Command{
		Use:   "update-channels",
		Short: "Refresh the channel catalog from the cable directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults, err := config.LoadDefaults()
			if err != nil {
				return err
			}
			fileOverrides, err := config.LoadFile(config.ConfigPath())
			if err != nil {
				return err
			}
			dir := resolveCableDir(cableDirFlag, config.Resolve(defaults, fileOverrides).CableDir)

			catalog, err := cable.Load(logging.Logger, dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "loaded %d channels from %s\n", len(catalog.Names()), dir)
			if !watch {
				return nil
			}

			changed := make(chan struct{})
			if err := catalog.Watch(func() { changed <- struct{}{} }); err != nil {
				return err
			}
			defer catalog.StopWatch()

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			for {
				select {
				case <-changed:
					fmt.Fprintf(cmd.OutOrStdout(), "cable directory changed, %d channels now loaded\n", len(catalog.Names()))
				case <-sig:
					return nil
				}
			}
		},
	}
	cmd.Flags().StringVar(&cableDirFlag, "cable-dir", "", "path to the cable directory")
	cmd.Flags().BoolVar(&watch, "watch", false, "keep watching the cable directory for changes")
	return cmd
}
