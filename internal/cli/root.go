package cli

import (
	"github.com/spf13/cobra"

	"sustainbite/internal/utils"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFile string
}

// NewRootCommand creates the root command. Running it without a subcommand
// starts the server.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	serve := NewServeCommand(opts)

	cmd := &cobra.Command{
		Use:   "sustainbite",
		Short: "SustainBite food-donation service",
		Long:  "SustainBite lets donors list surplus food for pickup and volunteers sign up to help.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.ConfigFile != "" {
				utils.LoadConfigFile(opts.ConfigFile)
				return
			}
			utils.LoadConfig()
		},
		SilenceUsage: true,
		RunE:         serve.RunE,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "", "path to config.yaml (default $CONFIG_FILE or ./config.yaml)")

	cmd.AddCommand(serve)
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}
