package auth

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"primer/cmd/client/cmd/types"
)

var MeCmd = &cobra.Command{
	Use:   "me",
	Short: "Показать текущего пользователя",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		me, sess, err := app.Me(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return json.NewEncoder(out).Encode(me)
		}
		fmt.Fprintf(out, "Пользователь: %s (id %d)\n", sess.Username, me.UserID)
		return nil
	},
}
