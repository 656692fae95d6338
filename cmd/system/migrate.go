package system

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/roxydental/roxydental_backend/config"
	"github.com/roxydental/roxydental_backend/internal/model"
	"github.com/roxydental/roxydental_backend/pkg/authorize"
	"github.com/roxydental/roxydental_backend/pkg/database"
)

func NewMigrateCommand() *cobra.Command {
	var skipPolicies bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Bring the schema up to date and seed the role policies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDatabase(cmd, func(cfg *config.Config, db *gorm.DB) error {
				ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
				defer cancel()

				if err := database.Migrate(ctx, db, model.All()...); err != nil {
					return err
				}
				cmd.Printf("migrated %d tables\n", len(model.All()))

				if skipPolicies {
					return nil
				}
				return seedPolicies(ctx, cfg, db)
			})
		},
	}
	cmd.Flags().BoolVar(&skipPolicies, "skip-policies", false, "only migrate tables, leave casbin_rule untouched")
	return cmd
}

func seedPolicies(ctx context.Context, cfg *config.Config, db *gorm.DB) error {
	enforcer, cleanup, err := authorize.NewEnforcer(db, authorize.FromCentralConfig(cfg.Authorization), database.DSN(cfg.Database))
	if err != nil {
		return fmt.Errorf("casbin enforcer: %w", err)
	}
	defer cleanup(context.Background())

	authz, err := authorize.NewAuthorization(enforcer)
	if err != nil {
		return err
	}
	if err := authorize.SeedDefaultPolicies(ctx, authz); err != nil {
		return fmt.Errorf("seed policies: %w", err)
	}
	return nil
}
