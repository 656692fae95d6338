package system

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/roxydental/roxydental_backend/config"
	"github.com/roxydental/roxydental_backend/internal/service/catalog"
)

// NewSeedCommand inserts the default service catalog. Existing codes are
// skipped so it is safe to re-run.
func NewSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the default dental service catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withDatabase(cmd, func(_ *config.Config, db *gorm.DB) error {
				created, err := catalog.Seed(cmd.Context(), catalog.New(db))
				if err != nil {
					return fmt.Errorf("seed catalog: %w", err)
				}
				cmd.Printf("%d of %d default services inserted\n", created, len(catalog.Defaults()))
				return nil
			})
		},
	}
}
