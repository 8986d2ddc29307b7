package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"

	"sustainbite/cmd/config"
	migration "sustainbite/cmd/database/migrate"
	"sustainbite/internal/utils"
)

const shutdownTimeout = 10 * time.Second

type ServeOptions struct {
	*RootOptions
	Port string
}

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server.

The document store is connected lazily on the first request that needs it,
so the server starts even while MongoDB is still coming up. Indexes,
including the unique email index, are ensured as part of that connect.

Example:
  sustainbite serve --config ./config.yaml
  sustainbite serve --port 9090`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Port != "" {
				utils.SetConfig("APP_PORT", opts.Port)
			}
			return serve(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&opts.Port, "port", "p", "", "listen port (overrides APP_PORT)")

	return cmd
}

func serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := config.ConnectDB()
	if err != nil {
		return err
	}
	db.OnConnect(migration.EnsureIndexes)
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := db.Disconnect(disconnectCtx); err != nil {
			log.Errorf("error disconnecting from MongoDB: %v", err)
		}
	}()

	app, err := config.NewApp(db)
	if err != nil {
		return err
	}
	defer app.Close()

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(":" + utils.GetConfig("APP_PORT"))
	}()

	select {
	case err := <-listenErr:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return <-listenErr
}
