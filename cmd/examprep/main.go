package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"examprep/internal/bootstrap"
	"examprep/internal/platform/clock"
	"examprep/internal/platform/config"
	"examprep/internal/platform/datemath"
	apperrors "examprep/internal/platform/errors"
	"examprep/internal/platform/logging"
	"examprep/internal/ui/components"
)

func main() {
	if err := newRootCmd(clock.SystemClock{}, os.Stderr).Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type env struct {
	home   string
	clock  clock.Clock
	stderr io.Writer
}

func newRootCmd(clk clock.Clock, stderr io.Writer) *cobra.Command {
	e := &env{clock: clk, stderr: stderr}

	root := &cobra.Command{
		Use:           "examprep",
		Short:         "Daily study check-ins and phase plan for the exam countdown",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&e.home, "home", "", "data home (defaults to the user home directory)")

	root.AddCommand(newTodayCmd(e))
	root.AddCommand(newPlanCmd(e))
	root.AddCommand(newCheckInCmd(e))
	root.AddCommand(newStatusCmd(e))
	root.AddCommand(newListCmd(e))
	root.AddCommand(newCalendarCmd(e))
	root.AddCommand(newTUICmd(e))
	return root
}

func (e *env) resolveHome() (string, error) {
	if strings.TrimSpace(e.home) != "" {
		return e.home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home: %w", err)
	}
	return home, nil
}

// loadApp wires a session that logs to stderr. Callers must Close it.
func (e *env) loadApp(ctx context.Context) (*bootstrap.App, error) {
	home, err := e.resolveHome()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(home)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(ctx, cfg, e.clock, logging.New(e.stderr, cfg.LogLevel))
}

// parseDate reads --date; empty means today.
func (e *env) parseDate(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return datemath.StartOfDay(e.clock.Now()), nil
	}
	date, err := datemath.ParseDateKey(value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: --date %q", apperrors.ErrInvalidInput, value)
	}
	return date, nil
}

func newTUICmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the calendar terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			home, err := e.resolveHome()
			if err != nil {
				return err
			}
			cfg, err := config.Load(home)
			if err != nil {
				return err
			}
			logger, closer, err := logging.NewFile(cfg.LogPath, cfg.LogLevel)
			if err != nil {
				return err
			}
			defer closer.Close()
			app, err := bootstrap.New(context.Background(), cfg, e.clock, logger)
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(app)
		},
	}
}

func newTodayCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's countdown, plan and check-in state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := context.Background()
			app, err := e.loadApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			today := datemath.StartOfDay(e.clock.Now())
			plan, err := app.PlanCLI.PlanFor(ctx, today)
			if err != nil {
				return err
			}
			status, err := app.CheckInCLI.Status(ctx, today)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s  %s\n", plan.DateKey, countdownText(plan.DaysUntilExam))
			_, _ = fmt.Fprintf(out, "check-ins: %d  streak: %d  hours: %s\n", status.TotalCheckIns, status.Streak, components.FormatHours(status.TotalHours))
			if status.SelectedCheckedIn {
				_, _ = fmt.Fprintf(out, "checked in today: %s h  \"%s\"\n", components.FormatHours(status.SelectedRecord.Hours), status.SelectedRecord.Quote)
			} else {
				_, _ = fmt.Fprintln(out, "not checked in today")
			}
			_, _ = fmt.Fprintln(out)
			writePlan(out, plan.Phase, plan.Focus, plan.Tasks)
			return nil
		},
	}
}

func newPlanCmd(e *env) *cobra.Command {
	var date string
	plan := &cobra.Command{
		Use:   "plan",
		Short: "Show the study plan for a date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := e.parseDate(date)
			if err != nil {
				return err
			}
			ctx := context.Background()
			app, err := e.loadApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.PlanCLI.PlanFor(ctx, day)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  [%s]  %s\n", out.DateKey, out.Kind, countdownText(out.DaysUntilExam))
			writePlan(cmd.OutOrStdout(), out.Phase, out.Focus, out.Tasks)
			return nil
		},
	}
	plan.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default today)")

	var write bool
	schedule := &cobra.Command{
		Use:   "schedule",
		Short: "List every phase of the schedule",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := context.Background()
			app, err := e.loadApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()
			if write {
				if err := app.PlanCLI.ExportSchedule(ctx); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "schedule written to %s\n", app.Config.SchedulePath)
				return nil
			}
			ranges, err := app.PlanCLI.Schedule(ctx)
			if err != nil {
				return err
			}
			for _, r := range ranges {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s..%s\t%s\t%s\n", r.Start, r.End, r.Phase, r.Focus)
			}
			return nil
		},
	}
	schedule.Flags().BoolVar(&write, "write", false, "write the active schedule to schedule.yaml for editing")
	plan.AddCommand(schedule)
	return plan
}

func newCheckInCmd(e *env) *cobra.Command {
	var date, hours string
	checkin := &cobra.Command{
		Use:   "checkin --hours <h>",
		Short: "Record a study check-in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if date != "" {
				if _, err := e.parseDate(date); err != nil {
					return err
				}
			}
			ctx := context.Background()
			app, err := e.loadApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.CheckInCLI.Submit(ctx, date, hours)
			if err != nil {
				if errors.Is(err, apperrors.ErrBelowMinimumHours) {
					return fmt.Errorf("at least %s hours are needed to check in: %w", components.FormatHours(app.Config.MinimumHours), err)
				}
				return err
			}
			w := cmd.OutOrStdout()
			switch {
			case !out.Created:
				_, _ = fmt.Fprintf(w, "%s already checked in (%s h)\n", out.Record.Date, components.FormatHours(out.Record.Hours))
			default:
				_, _ = fmt.Fprintf(w, "checked in %s: %s h\n", out.Record.Date, components.FormatHours(out.Record.Hours))
			}
			_, _ = fmt.Fprintf(w, "\"%s\"\n", out.Record.Quote)
			if !out.Persisted {
				_, _ = fmt.Fprintf(e.stderr, "warning: %s\n", out.Warning)
			}
			return nil
		},
	}
	checkin.Flags().StringVar(&hours, "hours", "", "hours studied")
	checkin.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default today)")
	_ = checkin.MarkFlagRequired("hours")
	return checkin
}

func newStatusCmd(e *env) *cobra.Command {
	var date string
	status := &cobra.Command{
		Use:   "status",
		Short: "Show totals, streak and a date's check-in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := e.parseDate(date)
			if err != nil {
				return err
			}
			ctx := context.Background()
			app, err := e.loadApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.CheckInCLI.Status(ctx, day)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "today: %s\ncheck-ins: %d\nstreak: %d\nhours: %s\n", out.TodayKey, out.TotalCheckIns, out.Streak, components.FormatHours(out.TotalHours))
			switch {
			case out.SelectedIsFuture:
				_, _ = fmt.Fprintf(w, "%s: future date\n", out.SelectedKey)
			case out.SelectedCheckedIn:
				_, _ = fmt.Fprintf(w, "%s: %s h \"%s\"\n", out.SelectedKey, components.FormatHours(out.SelectedRecord.Hours), out.SelectedRecord.Quote)
			default:
				_, _ = fmt.Fprintf(w, "%s: not checked in\n", out.SelectedKey)
			}
			return nil
		},
	}
	status.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default today)")
	return status
}

func newListCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all check-ins by date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := context.Background()
			app, err := e.loadApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()
			records, err := app.CheckInCLI.List(ctx)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no check-ins")
				return nil
			}
			for _, r := range records {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", r.Date, components.FormatHours(r.Hours), r.Quote)
			}
			return nil
		},
	}
}

func newCalendarCmd(e *env) *cobra.Command {
	var month string
	calendar := &cobra.Command{
		Use:   "calendar",
		Short: "Print a month with check-ins marked",
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := e.clock.Now()
			year, mon := now.Year(), now.Month()
			if strings.TrimSpace(month) != "" {
				parsed, err := time.ParseInLocation("2006-01", month, time.Local)
				if err != nil {
					return fmt.Errorf("%w: --month %q", apperrors.ErrInvalidInput, month)
				}
				year, mon = parsed.Year(), parsed.Month()
			}
			ctx := context.Background()
			app, err := e.loadApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()
			records, err := app.CheckInCLI.List(ctx)
			if err != nil {
				return err
			}
			checked := make(map[string]bool, len(records))
			for _, r := range records {
				checked[r.Date] = true
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), components.RenderMonth(components.MonthView{
				Year:      year,
				Month:     mon,
				Selected:  datemath.StartOfDay(now),
				Today:     now,
				ExamDate:  app.Config.ExamDate,
				CheckedIn: checked,
			}))
			return nil
		},
	}
	calendar.Flags().StringVar(&month, "month", "", "month as YYYY-MM (default current month)")
	return calendar
}

func countdownText(days int) string {
	switch {
	case days > 0:
		return fmt.Sprintf("距离考试 %d 天", days)
	case days == 0:
		return "就在今天"
	default:
		return fmt.Sprintf("考试已过 %d 天", -days)
	}
}

func writePlan(w io.Writer, phase, focus string, tasks []string) {
	_, _ = fmt.Fprintf(w, "%s\n核心重点: %s\n", phase, focus)
	for i, task := range tasks {
		_, _ = fmt.Fprintf(w, "  %d. %s\n", i+1, task)
	}
}
