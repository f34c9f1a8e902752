package handlers

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pubscope/internal/config"
	"pubscope/internal/logger"
	"pubscope/internal/server"

	"github.com/spf13/cobra"
)

// NewServeCmd creates the serve command for starting the HTTP server
func NewServeCmd() *cobra.Command {
	var (
		port     int
		host     string
		dataPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP dashboard server",
		Long: `Start the pubscope web server to explore the analyzed publication
data in a browser.

The server provides:
  • The dashboard page at / with filter controls in query parameters
  • A JSON API under /api (status, topics, aggregates)
  • A health check endpoint at /health

The data file is read once at startup and held in memory; restart the
server to pick up a regenerated file.

Examples:
  # Start server on default port 8080
  pubscope serve

  # Start on custom port with an explicit data file
  pubscope serve --port 3000 --data data/analyzed.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), port, host, dataPath)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "HTTP server port (default from config: 8080)")
	cmd.Flags().StringVar(&host, "host", "", "HTTP server host (default from config: 0.0.0.0)")
	cmd.Flags().StringVar(&dataPath, "data", "", "Path to the analyzed article CSV (default from config)")

	return cmd
}

func runServe(ctx context.Context, port int, host, dataPath string) error {
	ds, cat, err := loadDataset(dataPath)
	if err != nil {
		return err
	}

	cfg := config.Get()
	serverCfg := cfg.Server
	if port != 0 {
		serverCfg.Port = port
	}
	if host != "" {
		serverCfg.Host = host
	}

	srv, err := server.New(ds, cat, serverCfg, server.Options{
		PreviewLimit:   cfg.Dashboard.PreviewLimit,
		WordCloudLimit: cfg.Dashboard.WordCloudLimit,
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("Received shutdown signal", "signal", sig.String())
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
