package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/koutarou20820065963-netizen/eigomemo/internal/database"
	"github.com/koutarou20820065963-netizen/eigomemo/schemas"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			db, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if err := database.Migrate(cmd.Context(), db, schemas.Migrations); err != nil {
				return fmt.Errorf("database.Migrate() > %w", err)
			}

			fmt.Println("Migrations applied.")
			return nil
		},
	}
}
