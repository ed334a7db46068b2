package auth

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"primer/cmd/client/cmd/types"
)

var RefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Получить новый access токен по refresh токену",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		exp, err := app.Refresh(cmd.Context())
		if err != nil {
			return fmt.Errorf("ошибка обновления токена: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("Токен обновлен, действует до %s", exp.Local().Format(time.DateTime)))
		return nil
	},
}
