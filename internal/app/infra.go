package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/roxydental/roxydental_backend/config"
	"github.com/roxydental/roxydental_backend/pkg/aiclient"
	"github.com/roxydental/roxydental_backend/pkg/authorize"
	"github.com/roxydental/roxydental_backend/pkg/database"
	"github.com/roxydental/roxydental_backend/pkg/email"
	"github.com/roxydental/roxydental_backend/pkg/midtrans"
	"github.com/roxydental/roxydental_backend/pkg/observability"
	redispkg "github.com/roxydental/roxydental_backend/pkg/redis"
	s3pkg "github.com/roxydental/roxydental_backend/pkg/s3"
	"github.com/roxydental/roxydental_backend/pkg/token"
	"github.com/roxydental/roxydental_backend/pkg/util/codes"
	"github.com/roxydental/roxydental_backend/pkg/util/password"
)

const kvPrefix = "roxydental:"

// InfraModule provides all infrastructure dependencies.
var InfraModule = fx.Module("infra",
	fx.Provide(ProvideDatabase),
	fx.Provide(ProvideLocation),
	fx.Provide(ProvideRedis),
	fx.Provide(ProvideKV),
	fx.Provide(ProvideAuthorization),
	fx.Provide(ProvideTokenManager),
	fx.Provide(ProvidePasswordHasher),
	fx.Provide(ProvideCodeGenerator),
	fx.Provide(ProvideEmailClient),
	fx.Provide(ProvideObjectStore),
	fx.Provide(ProvideMidtrans),
	fx.Provide(ProvideAIClient),
	fx.Provide(ProvideOTel),
	fx.Provide(ProvideClinicMetrics),
)

func ProvideDatabase(lc fx.Lifecycle, cfg *config.Config) (*gorm.DB, error) {
	db, err := database.NewGorm(cfg.Database)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing main database connection")
			return database.Close(db)
		},
	})
	return db, nil
}

// ProvideLocation is the clinic's wall-clock zone used for "today" and date ranges.
func ProvideLocation(cfg *config.Config) *time.Location {
	return cfg.Server.Location()
}

func ProvideRedis(lc fx.Lifecycle, cfg *config.Config) (*redis.Client, error) {
	rdb, err := redispkg.NewRedisFromCentral(cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing Redis connection")
			return rdb.Close()
		},
	})
	return rdb, nil
}

func ProvideKV(rdb *redis.Client) *redispkg.KV {
	return redispkg.NewKV(rdb, kvPrefix)
}

func ProvideAuthorization(lc fx.Lifecycle, cfg *config.Config, db *gorm.DB) (authorize.IAuthorization, error) {
	enforcer, cleanup, err := authorize.NewEnforcer(db, authorize.FromCentralConfig(cfg.Authorization), database.DSN(cfg.Database))
	if err != nil {
		return nil, err
	}
	auth, err := authorize.NewAuthorization(enforcer)
	if err != nil {
		cleanup(context.Background())
		return nil, err
	}
	if cfg.Authorization.EnableAudit {
		auth = authorize.NewAuditedAuthorization(auth, slog.Default())
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("cleaning up Casbin enforcer")
			cleanup(ctx)
			return nil
		},
	})
	return auth, nil
}

func ProvideTokenManager(cfg *config.Config) (*token.Manager, error) {
	return token.NewManager(cfg)
}

func ProvidePasswordHasher(cfg *config.Config) *password.Hasher {
	return password.NewHasher(password.FromCentralConfig(cfg.Password))
}

func ProvideCodeGenerator(cfg *config.Config) *codes.Generator {
	return codes.NewGenerator(codes.FromCentralConfig(cfg.Codes))
}

func ProvideEmailClient(cfg *config.Config) email.Sender {
	client := email.NewFromCentral(cfg.Email)
	if !client.Enabled() {
		slog.Warn("email disabled; password reset links will not be delivered")
	}
	return client
}

// ProvideObjectStore returns nil when no bucket is configured; photo uploads then fail with 503.
func ProvideObjectStore(cfg *config.Config) (s3pkg.ObjectStore, error) {
	if cfg.S3.Bucket == "" {
		slog.Warn("s3 bucket not configured; profile photo uploads disabled")
		return nil, nil
	}
	client, err := s3pkg.New(cfg.S3)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// ProvideMidtrans returns a nil Gateway when midtrans is disabled so non-cash payments settle immediately.
func ProvideMidtrans(cfg *config.Config) midtrans.Gateway {
	if !cfg.Midtrans.Enabled {
		return nil
	}
	return midtrans.New(cfg.Midtrans)
}

func ProvideAIClient(cfg *config.Config) *aiclient.Client {
	return aiclient.New(cfg.AI)
}

func ProvideOTel(lc fx.Lifecycle, cfg *config.Config) (*observability.Provider, error) {
	if !cfg.Observability.Enabled {
		return nil, nil
	}
	provider, err := observability.Setup(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("observability initialized",
		"tracing", cfg.Observability.Tracing.Enabled,
		"metrics", cfg.Observability.Metrics.Enabled,
	)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("shutting down observability providers")
			ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return provider.Shutdown(ctx)
		},
	})
	return provider, nil
}

type metricsParams struct {
	fx.In

	Cfg *config.Config
	// Depending on the provider orders meter creation after the global provider is installed.
	OTel *observability.Provider `optional:"true"`
}

// ProvideClinicMetrics returns nil when metrics are off; a nil *ClinicMetrics records nothing.
func ProvideClinicMetrics(p metricsParams) (*observability.ClinicMetrics, error) {
	if p.OTel == nil || !p.Cfg.Observability.Metrics.Enabled {
		return nil, nil
	}
	return observability.NewClinicMetrics()
}
