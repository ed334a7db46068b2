package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"primer/internal/app/server/config"
	"primer/internal/infrastructure/migration"
)

var down bool

var migrateCmd = &cobra.Command{
	Use:     "migrate",
	Short:   "Применить миграции базы данных",
	PreRunE: setup,
	RunE: func(_ *cobra.Command, _ []string) error {
		if cfg.Server.Storage != config.StoragePostgres {
			return errors.New("migrations need STORAGE=postgres")
		}

		m := migration.NewMigration(cfg.DB.DatabaseURI, migration.DefaultEngine)
		step, run := "up", m.Up
		if down {
			step, run = "down", m.Down
		}

		if err := run(); err != nil {
			return fmt.Errorf("migrate %s: %w", step, err)
		}
		log.Info("migrations applied", "direction", step)
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&down, "down", false, "откатить все миграции")
}
