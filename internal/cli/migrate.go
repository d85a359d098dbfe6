package cli

import (
	"github.com/doniphane/AcadyoquizzV2-deploy/internal/config"
	"github.com/doniphane/AcadyoquizzV2-deploy/internal/database"

	"github.com/spf13/cobra"
)

// NewMigrateCmd applies the schema migrations and exits.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			db := database.Connect(cfg)
			database.AutoMigrate(db)
			return nil
		},
	}
}
