package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"primer/internal/app/server"
	"primer/internal/domain/revocation"
)

var sweepCmd = &cobra.Command{
	Use:     "sweep",
	Short:   "Удалить из журнала отзыва записи об истекших токенах",
	PreRunE: setup,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		repos, err := server.OpenRepositories(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer repos.Close()

		ledger := revocation.NewService(repos.Revocations, cfg.Token.AccessTTL, cfg.Token.RefreshTTL, log)
		n, err := ledger.Prune(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "removed %d expired records\n", n)
		return nil
	},
}
