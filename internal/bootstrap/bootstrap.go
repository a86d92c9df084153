package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"

	checkininadapter "examprep/internal/modules/checkin/adapter/in"
	checkinoutadapter "examprep/internal/modules/checkin/adapter/out"
	checkindomain "examprep/internal/modules/checkin/domain"
	checkinout "examprep/internal/modules/checkin/port/out"
	checkinservice "examprep/internal/modules/checkin/service"
	checkinusecase "examprep/internal/modules/checkin/usecase"
	planinadapter "examprep/internal/modules/plan/adapter/in"
	planoutadapter "examprep/internal/modules/plan/adapter/out"
	planservice "examprep/internal/modules/plan/service"
	planusecase "examprep/internal/modules/plan/usecase"
	"examprep/internal/platform/clock"
	"examprep/internal/platform/config"
	"examprep/internal/platform/datemath"
	uiapp "examprep/internal/ui/app"
)

type App struct {
	Config     config.Config
	Clock      clock.Clock
	Logger     hclog.Logger
	PlanCLI    planinadapter.CLIHandler
	CheckInCLI checkininadapter.CLIHandler

	closers []io.Closer
}

// New wires one session: the ledger is loaded here and lives until Close.
func New(ctx context.Context, cfg config.Config, clk clock.Clock, logger hclog.Logger) (*App, error) {
	app := &App{Config: cfg, Clock: clk, Logger: logger}

	scheduleStore := planoutadapter.NewYAMLScheduleStore(cfg.SchedulePath)
	schedule, err := planservice.ResolveSchedule(ctx, scheduleStore, logger.Named("plan"))
	if err != nil {
		return nil, fmt.Errorf("load schedule %s: %w", cfg.SchedulePath, err)
	}
	planSvc := planservice.NewPlanService(schedule, cfg.ExamDate)
	if !planSvc.ExamDateMatches() {
		logger.Warn("schedule exam day differs from configured exam date", "exam_date", datemath.FormatDateKey(cfg.ExamDate))
	}
	app.PlanCLI = planinadapter.NewCLIHandler(planusecase.NewInteractor(planSvc, scheduleStore))

	store, err := app.snapshotStore(cfg, clk)
	if err != nil {
		return nil, err
	}
	quotes := app.quoteSource(cfg, clk, logger)

	policy := checkindomain.Policy{
		MinimumHours:     cfg.MinimumHours,
		StartDate:        cfg.StartDate,
		AllowBeforeStart: cfg.AllowBeforeStart,
	}
	checkinSvc := checkinservice.NewCheckInService(clk, policy, store, quotes, logger.Named("checkin"))
	if err := checkinSvc.Load(ctx); err != nil {
		_ = app.Close()
		return nil, err
	}
	app.CheckInCLI = checkininadapter.NewCLIHandler(checkinusecase.NewInteractor(checkinSvc))
	return app, nil
}

func (a *App) snapshotStore(cfg config.Config, clk clock.Clock) (checkinout.SnapshotStore, error) {
	switch cfg.Store {
	case config.StoreFile:
		return checkinoutadapter.NewFileSnapshotStore(cfg.SnapshotPath), nil
	default:
		store, err := checkinoutadapter.NewSQLiteSnapshotStore(cfg.DBPath, clk)
		if err != nil {
			return nil, fmt.Errorf("new snapshot store: %w", err)
		}
		a.closers = append(a.closers, store)
		return store, nil
	}
}

func (a *App) quoteSource(cfg config.Config, clk clock.Clock, logger hclog.Logger) checkinout.QuoteSource {
	embedded := checkinoutadapter.NewEmbeddedQuotes(nil, nil)
	if cfg.QuotePlugin == "" {
		return embedded
	}
	source := checkinoutadapter.NewPluginQuoteSource(cfg.QuotePlugin, embedded, clk, logger)
	a.closers = append(a.closers, source)
	return source
}

// Close releases the store and any running plugin process.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.Clock, app.Config, app.PlanCLI, app.CheckInCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
