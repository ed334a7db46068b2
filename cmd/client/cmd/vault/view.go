package vault

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"primer/cmd/client/cmd/types"
)

var ViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Показать запись вместе с секретом",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		app, err := types.App(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		pw, err := types.ReadSecret(out, "Пароль хранилища: ")
		if err != nil {
			return err
		}

		e, err := app.ViewEntry(cmd.Context(), id, pw)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return json.NewEncoder(out).Encode(e)
		}
		fmt.Fprintf(out, "Домен:          %s\n", e.Domain)
		fmt.Fprintf(out, "Учетная запись: %s\n", e.AccountName)
		fmt.Fprintf(out, "Секрет:         %s\n", color.YellowString(e.Secret))
		if e.URL != "" {
			fmt.Fprintf(out, "URL:            %s\n", e.URL)
		}
		if e.Notes != "" {
			fmt.Fprintf(out, "Заметки:        %s\n", e.Notes)
		}
		return nil
	},
}
