package system

import (
	"github.com/spf13/cobra"

	"github.com/roxydental/roxydental_backend/pkg/database"
)

func NewInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configured database on the PostgreSQL server if missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := readConfig(cmd)
			if err != nil {
				return err
			}
			if err := database.InitializeDatabase(cfg); err != nil {
				return err
			}
			cmd.Printf("database %q is ready\n", cfg.Database.DBName)
			return nil
		},
	}
}
