package handlers

import (
	"pubscope/internal/config"
	"pubscope/internal/tui"

	"github.com/spf13/cobra"
)

// NewDashboardCmd creates the terminal dashboard command
func NewDashboardCmd() *cobra.Command {
	var dataPath string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Launch the interactive terminal dashboard",
		Long: `Launch the terminal dashboard to explore the analyzed publication
data. Filter by year range, keyword, and topic; charts and the
article preview update on every change.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, cat, err := loadDataset(dataPath)
			if err != nil {
				return err
			}
			cfg := config.Get()
			return tui.Run(ds, cat, tui.Options{
				PreviewLimit:   cfg.Dashboard.PreviewLimit,
				WordCloudLimit: cfg.Dashboard.WordCloudLimit,
			})
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "Path to the analyzed article CSV (default from config)")

	return cmd
}
