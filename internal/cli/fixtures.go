package cli

import (
	"github.com/doniphane/AcadyoquizzV2-deploy/internal/config"
	"github.com/doniphane/AcadyoquizzV2-deploy/internal/database"
	"github.com/doniphane/AcadyoquizzV2-deploy/internal/fixtures"

	"github.com/spf13/cobra"
)

// NewFixturesCmd seeds the demo account and questionnaire.
func NewFixturesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fixtures",
		Short: "Load development fixtures",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			db := database.Connect(cfg)
			database.AutoMigrate(db)
			return fixtures.Load(db)
		},
	}
}
