package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/hot100/internal/analysis"
	"github.com/wonny/hot100/internal/chart"
	"github.com/wonny/hot100/internal/collector"
	"github.com/wonny/hot100/internal/export"
	"github.com/wonny/hot100/internal/external/billboard"
	"github.com/wonny/hot100/pkg/config"
	"github.com/wonny/hot100/pkg/database"
	"github.com/wonny/hot100/pkg/httputil"
	"github.com/wonny/hot100/pkg/logger"
)

var (
	// Global flags
	todayFlag string
	logLevel  string
	env       string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hot100",
	Short: "Billboard Hot 100 차트 히스토리 분석",
	Long: `hot100 collects weekly Billboard Hot 100 charts over a date range and
answers retrospective questions about them.

Usage:
  go run ./cmd/hot100 [command]

Examples:
  go run ./cmd/hot100 week 2020-03-18
  go run ./cmd/hot100 history --from 2020-01-01 --to 2020-03-31 --csv out.csv
  go run ./cmd/hot100 best-week --year 2019
  go run ./cmd/hot100 best-artist --year 2020 --today 2020-06-30
  go run ./cmd/hot100 serve`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&todayFlag, "today", "", "override today's date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "", "environment (development|staging|production)")
}

// app bundles the wired components every command needs
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	service *analysis.Service
}

// newApp loads config and wires source → fetcher → builder → service
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if env != "" {
		cfg.Env = env
	}

	log := logger.New(cfg)

	httpClient := httputil.New(cfg, log)
	source := billboard.NewClient(httpClient, log, cfg.Chart.BaseURL)
	fetcher := collector.NewFetcher(source, log)
	builder := collector.NewBuilder(fetcher, log)

	return &app{
		cfg:     cfg,
		log:     log,
		service: analysis.NewService(builder, log),
	}, nil
}

// openRepository connects the export repository, or returns nil when no
// database is configured
func (a *app) openRepository(ctx context.Context) (*export.Repository, func(), error) {
	if !a.cfg.Database.Enabled() {
		return nil, func() {}, nil
	}

	db, err := database.New(ctx, a.cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	repo := export.NewRepository(db.Pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}

	a.log.Info("Connected to database")
	return repo, db.Close, nil
}

// today returns --today when set, else the current date
func today() (time.Time, error) {
	return resolveToday(todayFlag, time.Now)
}

func resolveToday(flag string, now func() time.Time) (time.Time, error) {
	if flag == "" {
		return chart.Day(now()), nil
	}
	t, err := chart.ParseDate(flag)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --today %q: expected YYYY-MM-DD", flag)
	}
	return t, nil
}

// yearReference turns --year into a reference date; 0 means today's year
func yearReference(year int, today time.Time) time.Time {
	if year == 0 {
		year = today.Year()
	}
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// dateArg parses an optional YYYY-MM-DD value, falling back to def
func dateArg(value string, def time.Time) (time.Time, error) {
	if value == "" {
		return def, nil
	}
	t, err := chart.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
	}
	return t, nil
}
