package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wonny/hot100/internal/chart"
	"github.com/wonny/hot100/internal/export"
)

var (
	analysisYear int
	analysisCSV  string
	onesFrom     string
	onesTo       string
)

var bestWeekCmd = &cobra.Command{
	Use:   "best-week",
	Short: "1위 곡이 가장 많은 주",
	Long: `Finds the week of the year whose chart holds the most songs that have
peaked at #1. For the current year only weeks up to today are considered.

Example:
  go run ./cmd/hot100 best-week --year 2019`,
	RunE: runBestWeek,
}

var bestSongCmd = &cobra.Command{
	Use:   "best-song",
	Short: "가장 오래 차트에 머문 1위 곡",
	Long: `Finds, on the last chart week of the year (or today's week), the song
that has peaked at #1 and spent the most weeks on the chart.

Example:
  go run ./cmd/hot100 best-song --year 2019`,
	RunE: runBestSong,
}

var bestArtistCmd = &cobra.Command{
	Use:   "best-artist",
	Short: "가장 많은 주를 이끈 아티스트",
	Long: `For every week of the year finds the artist with the most songs on the
chart, then reports the artist who led the most weeks.

Example:
  go run ./cmd/hot100 best-artist --year 2020 --csv output/champions.csv`,
	RunE: runBestArtist,
}

var numberOnesCmd = &cobra.Command{
	Use:   "number-ones",
	Short: "1위 곡 순위 궤적",
	Long: `Collects the weekly rank of every song that has peaked at #1 within
the range, ordered by week.

Example:
  go run ./cmd/hot100 number-ones --from 2020-01-01 --to 2020-12-31 --csv output/ones.csv`,
	RunE: runNumberOnes,
}

func init() {
	for _, c := range []*cobra.Command{bestWeekCmd, bestSongCmd, bestArtistCmd} {
		c.Flags().IntVar(&analysisYear, "year", 0, "reference year (default today's year)")
		rootCmd.AddCommand(c)
	}
	bestArtistCmd.Flags().StringVar(&analysisCSV, "csv", "", "write the weekly champions to this CSV file")

	numberOnesCmd.Flags().StringVar(&onesFrom, "from", "", "first date (YYYY-MM-DD, required)")
	numberOnesCmd.Flags().StringVar(&onesTo, "to", "", "last date (YYYY-MM-DD, default today)")
	numberOnesCmd.Flags().StringVar(&analysisCSV, "csv", "", "write the trajectories to this CSV file")
	_ = numberOnesCmd.MarkFlagRequired("from")
	rootCmd.AddCommand(numberOnesCmd)
}

func runBestWeek(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	now, err := today()
	if err != nil {
		return err
	}

	report, err := a.service.BestWeek(cmd.Context(), yearReference(analysisYear, now), now)
	if err != nil {
		return err
	}

	PrintHeader(fmt.Sprintf("Best Week of %d", report.Year), "")
	if report.Week.IsZero() {
		PrintWarning("No chart weeks in range")
		return nil
	}
	PrintKeyValue("Week", chart.FormatDate(report.Week), 10)
	PrintKeyValue("#1 songs", strconv.Itoa(report.NumberOnes), 10)
	PrintSeparator()
	PrintSongs(report.Chart.Songs)
	return nil
}

func runBestSong(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	now, err := today()
	if err != nil {
		return err
	}

	report, err := a.service.BestSong(cmd.Context(), yearReference(analysisYear, now), now)
	if err != nil {
		return err
	}

	PrintHeader(fmt.Sprintf("Best Song of %d", report.Year), "Judged on "+chart.FormatDate(report.Week))
	if report.Song.IsEmpty() {
		PrintWarning("No #1-peaked song on that week's chart")
		return nil
	}
	PrintKeyValue("Title", report.Song.Title, 8)
	PrintKeyValue("Artist", report.Song.Artist, 8)
	PrintKeyValue("Weeks", strconv.Itoa(report.Song.WeeksOnChart), 8)
	PrintKeyValue("Rank", strconv.Itoa(report.Song.Rank), 8)
	return nil
}

func runBestArtist(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	now, err := today()
	if err != nil {
		return err
	}

	ref := yearReference(analysisYear, now)
	summary, err := a.service.BestArtist(cmd.Context(), ref, now)
	if err != nil {
		return err
	}

	PrintHeader(fmt.Sprintf("Best Artist of %d", ref.Year()), "")
	if summary.Artist == "" {
		PrintWarning("No chart weeks in range")
		return nil
	}
	PrintKeyValue("Artist", summary.Artist, 10)
	PrintKeyValue("Weeks won", strconv.Itoa(summary.WeeksWon), 10)
	PrintSeparator()

	widths := []int{10, 4, 30, 5}
	PrintTableHeader([]string{"Week", "WoY", "Artist", "Songs"}, widths)
	for _, c := range summary.Weekly {
		PrintTableRow([]string{chart.FormatDate(c.Week), strconv.Itoa(c.WeekOfYear), c.Artist, strconv.Itoa(c.Songs)}, widths)
	}

	if analysisCSV != "" {
		if err := export.WriteFile(analysisCSV, func(w io.Writer) error {
			return export.WriteChampionsCSV(w, summary)
		}); err != nil {
			return err
		}
		PrintSuccess("CSV written to " + analysisCSV)
	}
	return nil
}

func runNumberOnes(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	now, err := today()
	if err != nil {
		return err
	}
	from, err := dateArg(onesFrom, now)
	if err != nil {
		return err
	}
	to, err := dateArg(onesTo, now)
	if err != nil {
		return err
	}

	traj, err := a.service.NumberOnes(cmd.Context(), from, to)
	if err != nil {
		return err
	}

	PrintHeader("#1 Trajectories", fmt.Sprintf("%s ~ %s", chart.FormatDate(from), chart.FormatDate(to)))
	for _, key := range traj.Keys() {
		points := traj[key]
		ranks := make([]string, len(points))
		for i, p := range points {
			ranks[i] = strconv.Itoa(p.Rank)
		}
		fmt.Printf("   %s - %s\n", key.Title, key.Artist)
		fmt.Printf("      %s → %s: %v\n", chart.FormatDate(points[0].Week), chart.FormatDate(points[len(points)-1].Week), ranks)
	}
	PrintKeyValue("Songs", strconv.Itoa(len(traj)), 6)

	if analysisCSV != "" {
		if err := export.WriteFile(analysisCSV, func(w io.Writer) error {
			return export.WriteTrajectoriesCSV(w, traj)
		}); err != nil {
			return err
		}
		PrintSuccess("CSV written to " + analysisCSV)
	}
	return nil
}
