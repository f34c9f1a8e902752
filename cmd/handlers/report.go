package handlers

import (
	"fmt"
	"os"

	"pubscope/internal/config"
	"pubscope/internal/core"
	"pubscope/internal/report"

	"github.com/spf13/cobra"
)

// NewReportCmd creates the report command for one-shot markdown output
func NewReportCmd() *cobra.Command {
	var (
		dataPath string
		yearMin  int
		yearMax  int
		keyword  string
		topics   []string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a markdown report for a filter selection",
		Long: `Generate a one-shot markdown report of the publication data:
volume by year and topic, topic distribution, top words, and an
article preview. The same filters as the interactive dashboards
apply; with no flags the report covers the whole dataset.

Examples:
  # Full-corpus report to stdout
  pubscope report

  # Narrowed report written to a file
  pubscope report --year-min 2018 --keyword mrsa --topic "Topic 2" -o report.md`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, cat, err := loadDataset(dataPath)
			if err != nil {
				return err
			}

			criteria := core.NewCriteria(ds, cat.SortedKeys())
			if yearMin != 0 {
				criteria.MinYear = yearMin
			}
			if yearMax != 0 {
				criteria.MaxYear = yearMax
			}
			criteria.Keyword = keyword
			if len(topics) > 0 {
				criteria.Topics = make(map[string]bool, len(topics))
				for _, t := range topics {
					criteria.Topics[t] = true
				}
			}

			cfg := config.Get()
			md := report.Generate(ds, criteria, cat, report.Options{
				PreviewLimit:   cfg.Dashboard.PreviewLimit,
				WordCloudLimit: cfg.Dashboard.WordCloudLimit,
			})

			if output == "" {
				fmt.Fprint(cmd.OutOrStdout(), md)
				return nil
			}
			if err := os.WriteFile(output, []byte(md), 0644); err != nil {
				return fmt.Errorf("failed to write report to %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "Path to the analyzed article CSV (default from config)")
	cmd.Flags().IntVar(&yearMin, "year-min", 0, "Inclusive lower year bound (default: data minimum)")
	cmd.Flags().IntVar(&yearMax, "year-max", 0, "Inclusive upper year bound (default: data maximum)")
	cmd.Flags().StringVar(&keyword, "keyword", "", "Case-insensitive keyword filter on title/abstract text")
	cmd.Flags().StringArrayVar(&topics, "topic", nil, "Topic key to include (repeatable; default: all topics)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the report to a file instead of stdout")

	return cmd
}
