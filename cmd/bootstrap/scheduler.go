package bootstrap

import (
	"context"
	"errors"
	"log/slog"

	"cabin-reserve/internal/pkg/clock"
	"cabin-reserve/internal/pkg/config"
	"cabin-reserve/internal/scheduler"
	"cabin-reserve/internal/usecase/commands"

	"go.uber.org/fx"
)

var SchedulerModule = fx.Module("scheduler",
	fx.Provide(
		NewSchedulerRunner,
	),
	fx.Invoke(startScheduler),
)

func NewSchedulerRunner(
	cfg config.Config,
	reservations commands.ReservationCommands,
	waitingList commands.WaitingListCommands,
	clk clock.Clock,
	logger *slog.Logger,
) *scheduler.Runner {
	return scheduler.NewRunner(
		reservations,
		waitingList,
		clk,
		logger,
		cfg.Scheduler.TransitionInterval,
		cfg.Scheduler.ExpiryInterval,
	)
}

func startScheduler(lc fx.Lifecycle, cfg config.Config, runner *scheduler.Runner, logger *slog.Logger) {
	if !cfg.Scheduler.Enabled {
		logger.Info("scheduler disabled by configuration")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("scheduler stopped unexpectedly", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
