package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"primer/internal/app/server"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "Запустить HTTP сервер",
	PreRunE: setup,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if err := server.Migrate(cfg); err != nil {
			return err
		}

		repos, err := server.OpenRepositories(ctx, cfg, log)
		if err != nil {
			return err
		}

		app, err := server.New(cfg, repos, log)
		if err != nil {
			_ = repos.Close()
			return err
		}

		return app.Run(ctx)
	},
}
