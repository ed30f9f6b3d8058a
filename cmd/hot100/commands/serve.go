package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/hot100/internal/api"
	"github.com/wonny/hot100/internal/api/handlers"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "API 서버 시작",
	Long: `Starts the read-only JSON API.

Endpoints:
  GET /health
  GET /api/charts/{date}
  GET /api/history?from=&to=
  GET /api/analysis/best-week?year=
  GET /api/analysis/best-song?year=
  GET /api/analysis/best-artist?year=
  GET /api/analysis/number-ones?from=&to=

Example:
  go run ./cmd/hot100 serve
  go run ./cmd/hot100 serve --port 8080`,
	RunE: runServe,
}

var servePort string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&servePort, "port", "", "API 서버 포트 (default PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if servePort != "" {
		a.cfg.Port = servePort
	}

	now := time.Now
	if todayFlag != "" {
		fixed, err := today()
		if err != nil {
			return err
		}
		now = func() time.Time { return fixed }
	}

	chartHandler := handlers.NewChartHandler(a.service, a.log, now)
	server := api.New(a.cfg, a.log, api.NewRouter(chartHandler, a.log))

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	fmt.Printf("\n✅ Server running on http://localhost:%s\n", a.cfg.Port)
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	a.log.Info("Server stopped")
	return nil
}
