package tv

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tvfind/tv/internal/cable"
	"github.com/tvfind/tv/internal/config"
	"github.com/tvfind/tv/internal/logging"
)

func newListChannelsCmd(opts Options) *cobra.Command {
	var cableDirFlag string
	cmd := &cobra.Command{
		Use:   "list-channels",
		Short: "List the channels available in the cable directory",
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
			for _, name := range catalog.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&cableDirFlag, "cable-dir", "", "path to the cable directory")
	return cmd
}
