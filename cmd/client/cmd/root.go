// cmd/client/cmd/root.go
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"primer/cmd/client/cmd/auth"
	"primer/cmd/client/cmd/types"
	"primer/cmd/client/cmd/vault"
	"primer/internal/app/client"
	"primer/internal/app/client/config"
	"primer/internal/utils/logger"
)

var (
	v     = viper.New()
	debug bool
	app   *client.App
)

var rootCmd = &cobra.Command{
	Use:   "primer",
	Short: "Primer - клиент хранилища секретов",
	Long: `Primer — клиент для сервера Primer: вход в систему и работа
с личным хранилищем паролей и PIN-кодов.

Токены сессии хранятся локально в ~/.primer/session.db.
Адрес сервера задается флагом --server или переменной PRIMER_SERVER.`,
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: closeApp,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Ошибка:"), err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	level := cfg.LogLevel
	if debug {
		level = "debug"
	} else if level == "" {
		level = "warn"
	}
	log := logger.NewLevel(cfg.Env, level)

	app, err = client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	cmd.SetContext(types.WithApp(cmd.Context(), app))
	return nil
}

func closeApp(_ *cobra.Command, _ []string) error {
	if app == nil {
		return nil
	}
	return app.Close()
}

func init() {
	rootCmd.PersistentFlags().String("server", "", "URL сервера Primer")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")
	rootCmd.PersistentFlags().Bool("json", false, "вывод в формате JSON")
	_ = v.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server"))

	rootCmd.AddCommand(auth.AuthCmd, vault.VaultCmd)
	auth.AuthCmd.AddCommand(auth.SignupCmd, auth.SigninCmd, auth.RefreshCmd, auth.LogoutCmd, auth.MeCmd)
	vault.VaultCmd.AddCommand(vault.PasswordCmd, vault.UnlockCmd, vault.AddCmd, vault.ListCmd,
		vault.ViewCmd, vault.UpdateCmd, vault.DeleteCmd)
}
