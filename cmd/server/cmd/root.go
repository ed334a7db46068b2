// cmd/server/cmd/root.go
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"primer/internal/app/server/config"
	"primer/internal/utils/logger"
)

var (
	cfg *config.Config
	log *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "primer-server",
	Short: "Primer - сервер сессий и хранилища секретов",
	Long: `Primer выдает access/refresh токены, ведет журнал отозванных токенов
и хранит записи хранилища в зашифрованном виде.

Настройки читаются из переменных окружения и файла .env (ENV_FILE).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

// setup loads config and logger for commands that talk to storage.
func setup(_ *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}
	log = logger.NewLevel(cfg.Env, cfg.Logger.LogLevel)
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, sweepCmd, keygenCmd)
}
