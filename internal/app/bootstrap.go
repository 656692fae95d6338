package app

import (
	"context"
	"log/slog"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/roxydental/roxydental_backend/config"
	"github.com/roxydental/roxydental_backend/internal/model"
	"github.com/roxydental/roxydental_backend/internal/service/catalog"
	"github.com/roxydental/roxydental_backend/pkg/authorize"
	"github.com/roxydental/roxydental_backend/pkg/database"
)

// BootstrapModule applies migrations and seeds on start when the config asks for it.
var BootstrapModule = fx.Module("bootstrap",
	fx.Invoke(RegisterBootstrap),
)

type BootstrapParams struct {
	fx.In

	Lc         fx.Lifecycle
	Cfg        *config.Config
	DB         *gorm.DB
	Auth       authorize.IAuthorization
	CatalogSvc catalog.Service
}

func RegisterBootstrap(p BootstrapParams) {
	p.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return Bootstrap(ctx, p.Cfg, p.DB, p.Auth, p.CatalogSvc)
		},
	})
}

// Bootstrap migrates the schema, seeds RBAC policies and optionally the service catalog.
// Every step is idempotent.
func Bootstrap(ctx context.Context, cfg *config.Config, db *gorm.DB, auth authorize.IAuthorization, catalogSvc catalog.Service) error {
	if cfg.Database.Migrations.AutoMigrate {
		slog.Info("running database migrations")
		if err := database.Migrate(ctx, db, model.All()...); err != nil {
			return err
		}
		if err := authorize.SeedDefaultPolicies(ctx, auth); err != nil {
			return err
		}
	}

	if cfg.Database.Migrations.SeedCatalog {
		created, err := catalog.Seed(ctx, catalogSvc)
		if err != nil {
			return err
		}
		slog.Info("service catalog seeded", "created", created)
	}
	return nil
}
