package system

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/roxydental/roxydental_backend/config"
	"github.com/roxydental/roxydental_backend/pkg/database"
)

// NewSystemCommand groups the one-off operational commands run before or
// alongside the API: database creation, schema migration, catalog seeding
// and CLI reference generation.
func NewSystemCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "system",
		Short: "Database setup and tooling",
	}
	cmd.AddCommand(
		NewInitCommand(),
		NewMigrateCommand(),
		NewSeedCommand(),
		NewGenDocsCommand(),
	)
	return cmd
}

func readConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.ReadConfig(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return cfg, nil
}

// withDatabase opens the configured database for the duration of fn.
func withDatabase(cmd *cobra.Command, fn func(cfg *config.Config, db *gorm.DB) error) error {
	cfg, err := readConfig(cmd)
	if err != nil {
		return err
	}
	db, err := database.NewGorm(cfg.Database)
	if err != nil {
		return err
	}
	defer database.Close(db)
	return fn(cfg, db)
}
