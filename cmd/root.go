package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	httpcmd "github.com/roxydental/roxydental_backend/cmd/http"
	systemcmd "github.com/roxydental/roxydental_backend/cmd/system"
	"github.com/roxydental/roxydental_backend/pkg/logs"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "roxydental",
		Short: "RoxyDental clinic management API",
		Long: `Backend for a dental clinic: the daily visit queue, medical records,
treatments and commissions, schedules, leave requests, payments and staff accounts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "config.yaml", "config file; only its directory is used when looking up config.yaml")
	root.AddCommand(systemcmd.NewSystemCommand(), httpcmd.NewHTTPCommand())
	return root
}

func Execute() {
	// Commands swap in the configured logger after reading their config.
	slog.SetDefault(logs.Default())

	if err := newRootCommand().Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
