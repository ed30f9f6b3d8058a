package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/hot100/internal/scheduler"
)

// scheduleCmd represents the schedule command
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "주간 내보내기 스케줄러",
	Long: `Runs the weekly export job on EXPORT_SCHEDULE (cron with seconds,
default Sundays 06:00). Each run writes the latest chart week to EXPORT_DIR as
CSV and, when DATABASE_URL is set, upserts it into the database.

Example:
  go run ./cmd/hot100 schedule
  go run ./cmd/hot100 schedule --once`,
	RunE: runSchedule,
}

var scheduleOnce bool

func init() {
	rootCmd.AddCommand(scheduleCmd)
	scheduleCmd.Flags().BoolVar(&scheduleOnce, "once", false, "run the export job now and exit")
}

func runSchedule(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	repo, closeDB, err := a.openRepository(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	var saver scheduler.HistorySaver
	if repo != nil {
		saver = repo
	}

	job := scheduler.NewWeeklyExportJob(a.service, saver, a.cfg.Export.Dir, a.cfg.Export.Schedule, a.log)
	if todayFlag != "" {
		fixed, err := today()
		if err != nil {
			return err
		}
		job.WithClock(func() time.Time { return fixed })
	}

	sched := scheduler.New(a.log)
	if err := sched.AddJob(job); err != nil {
		return err
	}

	if scheduleOnce {
		result, err := sched.RunNow(ctx, job.Name())
		if err != nil {
			return err
		}
		if !result.Success {
			return fmt.Errorf("%s failed after %d attempts: %s", result.JobName, result.Attempts, result.Error)
		}
		PrintSuccess(fmt.Sprintf("%s completed in %s", result.JobName, result.Duration.Round(time.Millisecond)))
		return nil
	}

	sched.Start()

	next, _ := sched.NextRun(job.Name())
	PrintHeader("Weekly Export Scheduler", "Schedule: "+job.Schedule())
	PrintKeyValue("Next run", next.Format("2006-01-02 15:04:05"), 9)
	PrintKeyValue("Output", a.cfg.Export.Dir, 9)
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()

	for name, st := range sched.GetJobStats() {
		fmt.Printf("📊 %s: %d runs, %.1f%% success\n", name, st.TotalRuns, st.SuccessRate*100)
	}
	return nil
}
