package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"sustainbite/cmd/config"
	migration "sustainbite/cmd/database/migrate"
)

func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the MongoDB indexes",
		Long: `Create the MongoDB indexes the service relies on.

Index creation is idempotent, so the command is safe to run on every deploy.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := config.ConnectDB()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			defer func() { _ = db.Disconnect(context.Background()) }()

			return migration.Migrate(ctx, db)
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "overall time limit")

	return cmd
}
