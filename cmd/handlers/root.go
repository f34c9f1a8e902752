package handlers

import (
	"fmt"
	"os"

	"pubscope/internal/catalog"
	"pubscope/internal/config"
	"pubscope/internal/core"
	"pubscope/internal/loader"
	"pubscope/internal/logger"

	"github.com/spf13/cobra"
)

var cfgFile string

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pubscope",
		Short: "pubscope explores pre-analyzed scientific publication data.",
		Long: `pubscope is a dashboard over a table of scientific-article metadata
produced by an upstream topic-modeling step. It filters the table by
year range, keyword, and topic, and renders publication-volume charts,
a topic distribution, a word cloud, and an article preview.

Run 'pubscope dashboard' for the terminal UI, 'pubscope serve' for the
web UI, or 'pubscope report' for a one-shot markdown report.`,
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.pubscope.yaml)")

	rootCmd.AddCommand(NewDashboardCmd())
	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewReportCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.App.LogLevel)
}

// loadDataset loads the publication table and topic catalog named by
// configuration, with an optional path override from a command flag.
// A missing dominant_topic column is fatal here, before any rendering
// starts.
func loadDataset(dataPath string) (*core.Dataset, *catalog.Catalog, error) {
	cfg := config.Get()

	path := cfg.Data.Path
	if dataPath != "" {
		path = dataPath
	}

	cat := catalog.Default()
	if cfg.Data.Catalog != "" {
		loaded, err := catalog.LoadFile(cfg.Data.Catalog)
		if err != nil {
			return nil, nil, err
		}
		cat = loaded
	}

	ds, err := loader.New().Load(path)
	if err != nil {
		return nil, nil, err
	}
	if len(ds.Articles) == 0 {
		logger.Warn("Data file contained no rows with parseable publication dates", "path", path)
	}
	return ds, cat, nil
}
