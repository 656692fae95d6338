package http

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/roxydental/roxydental_backend/config"
	"github.com/roxydental/roxydental_backend/internal/api/http"
	"github.com/roxydental/roxydental_backend/pkg/logs"
)

func NewHTTPCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "http",
		Short: "Run the clinic REST API",
	}
	cmd.AddCommand(newStartCommand())
	return cmd
}

func newStartCommand() *cobra.Command {
	var grace time.Duration

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Serve the API until SIGINT or SIGTERM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.ReadConfig(filepath.Dir(path))
			if err != nil {
				return fmt.Errorf("read config: %w", err)
			}
			if grace <= 0 {
				return fmt.Errorf("--shutdown-timeout must be positive, got %s", grace)
			}

			slog.SetDefault(logs.New(cfg))
			http.Start(cfg, grace)
			return nil
		},
	}
	cmd.Flags().DurationVar(&grace, "shutdown-timeout", 30*time.Second, "how long in-flight requests get to finish on shutdown")
	return cmd
}
