package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "orbit",
		Short:         "Orbit designs custom game controllers",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Without a subcommand, open the lab
			if len(args) == 0 {
				return runLab(cmd, flags)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to a config file (default ~/.config/orbit/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newLabCmd(flags))
	cmd.AddCommand(newGalleryCmd(flags))
	cmd.AddCommand(newDesignsCmd(flags))
	cmd.AddCommand(newPriceCmd())
	cmd.AddCommand(newCatalogCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}
