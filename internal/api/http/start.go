package http

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/roxydental/roxydental_backend/config"
	"github.com/roxydental/roxydental_backend/internal/api/http/router"
	"github.com/roxydental/roxydental_backend/internal/app"
)

// Start runs the API until the process receives SIGINT or SIGTERM, then
// gives lifecycle hooks up to grace to drain.
func Start(cfg *config.Config, grace time.Duration) {
	fx.New(Options(cfg, grace)...).Run()
}

// Options is the full application graph.
func Options(cfg *config.Config, grace time.Duration) []fx.Option {
	return []fx.Option{
		fx.Supply(cfg),
		app.InfraModule,
		app.ServiceModule,
		app.BootstrapModule,
		router.Module,
		Module,
		// Requesting the app is what triggers NewServer's listen hook.
		fx.Invoke(func(*fiber.App) {}),
		fx.StopTimeout(grace),
		fx.WithLogger(func() fxevent.Logger {
			if cfg.Server.Environment == "development" {
				return &fxevent.SlogLogger{Logger: slog.Default()}
			}
			return fxevent.NopLogger
		}),
	}
}
