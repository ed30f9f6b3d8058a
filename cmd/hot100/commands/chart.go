package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/hot100/internal/chart"
	"github.com/wonny/hot100/internal/export"
)

// weekCmd represents the week command
var weekCmd = &cobra.Command{
	Use:   "week [YYYY-MM-DD]",
	Short: "주간 차트 조회",
	Long: `Fetches the chart week dated on or before the given date (default today).

Example:
  go run ./cmd/hot100 week
  go run ./cmd/hot100 week 2020-03-18`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWeek,
}

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "기간별 차트 히스토리 수집",
	Long: `Collects every chart week between --from and --to, most recent first.
Any week failing to fetch aborts the whole run.

Example:
  go run ./cmd/hot100 history --from 2020-01-01 --to 2020-03-31
  go run ./cmd/hot100 history --from 2020-01-01 --csv output/q1.csv --save`,
	RunE: runHistory,
}

var (
	historyFrom string
	historyTo   string
	historyCSV  string
	historySave bool
)

func init() {
	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&historyFrom, "from", "", "first date (YYYY-MM-DD, required)")
	historyCmd.Flags().StringVar(&historyTo, "to", "", "last date (YYYY-MM-DD, default today)")
	historyCmd.Flags().StringVar(&historyCSV, "csv", "", "write rows to this CSV file")
	historyCmd.Flags().BoolVar(&historySave, "save", false, "store rows in the database (DATABASE_URL)")
	_ = historyCmd.MarkFlagRequired("from")
}

func runWeek(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	now, err := today()
	if err != nil {
		return err
	}

	date := now
	if len(args) == 1 {
		if date, err = dateArg(args[0], now); err != nil {
			return err
		}
	}

	week, err := a.service.Week(cmd.Context(), date)
	if err != nil {
		return fmt.Errorf("fetch week: %w", err)
	}

	PrintHeader("Billboard Hot 100", "Week of "+chart.FormatDate(week.Date))
	PrintSongs(week.Songs)
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	now, err := today()
	if err != nil {
		return err
	}
	from, err := dateArg(historyFrom, now)
	if err != nil {
		return err
	}
	to, err := dateArg(historyTo, now)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	history, err := a.service.History(ctx, from, to)
	if err != nil {
		return fmt.Errorf("build history: %w", err)
	}

	weeks := history.Weeks()
	PrintHeader("Chart History", fmt.Sprintf("%s ~ %s", chart.FormatDate(from), chart.FormatDate(to)))
	PrintKeyValue("Weeks", fmt.Sprintf("%d", len(weeks)), 8)
	PrintKeyValue("Rows", fmt.Sprintf("%d", history.Len()), 8)
	for _, w := range weeks {
		if len(w.Songs) > 0 {
			PrintKeyValue(chart.FormatDate(w.Date), fmt.Sprintf("#1 %s - %s", w.Songs[0].Title, w.Songs[0].Artist), 10)
		}
	}

	if historyCSV != "" {
		if err := export.CSVFile(historyCSV, history); err != nil {
			return err
		}
		PrintSuccess("CSV written to " + historyCSV)
	}

	if historySave {
		repo, closeDB, err := a.openRepository(ctx)
		if err != nil {
			return err
		}
		defer closeDB()

		if repo == nil {
			PrintWarning("DATABASE_URL not set, --save ignored")
			return nil
		}

		id, err := repo.SaveHistory(ctx, history)
		if err != nil {
			return fmt.Errorf("save history: %w", err)
		}
		PrintSuccess(fmt.Sprintf("Saved %d rows (export %s)", history.Len(), id))
	}

	return nil
}
