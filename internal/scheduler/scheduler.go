// Package scheduler drives the date-based reservation transitions and the
// waiting-list expiry sweep on fixed-delay timers. The operations themselves
// are idempotent, so overlapping or repeated ticks are harmless.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"cabin-reserve/internal/pkg/clock"
	"cabin-reserve/internal/usecase/commands"
)

type Runner struct {
	Reservations       commands.ReservationCommands
	WaitingList        commands.WaitingListCommands
	Clock              clock.Clock
	Logger             *slog.Logger
	TransitionInterval time.Duration
	ExpiryInterval     time.Duration
}

func NewRunner(
	reservations commands.ReservationCommands,
	waitingList commands.WaitingListCommands,
	clk clock.Clock,
	logger *slog.Logger,
	transitionInterval, expiryInterval time.Duration,
) *Runner {
	return &Runner{
		Reservations:       reservations,
		WaitingList:        waitingList,
		Clock:              clk,
		Logger:             logger,
		TransitionInterval: transitionInterval,
		ExpiryInterval:     expiryInterval,
	}
}

// Run blocks until ctx is cancelled. Both loops kick once immediately so a
// restart catches up without waiting a full interval.
func (r *Runner) Run(ctx context.Context) error {
	transitions := time.NewTicker(r.TransitionInterval)
	defer transitions.Stop()
	expiry := time.NewTicker(r.ExpiryInterval)
	defer expiry.Stop()

	r.tickTransitions(ctx)
	r.tickExpiry(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-transitions.C:
			r.tickTransitions(ctx)
		case <-expiry.C:
			r.tickExpiry(ctx)
		}
	}
}

// tickTransitions runs the start-date pass before the end-date pass so a
// stay that begins and ends on the same day completes in one tick.
func (r *Runner) tickTransitions(ctx context.Context) {
	today := clock.Today(r.Clock)

	started, err := r.Reservations.StartDateTransitions(ctx, today)
	if err != nil {
		r.Logger.Error("start-date transition pass failed", "error", err)
	}

	completed, err := r.Reservations.EndDateTransitions(ctx, today)
	if err != nil {
		r.Logger.Error("end-date transition pass failed", "error", err)
	}

	if started > 0 || completed > 0 {
		r.Logger.Info("transition tick finished", "in_use", started, "completed", completed)
	}
}

func (r *Runner) tickExpiry(ctx context.Context) {
	if _, err := r.WaitingList.ExpireNotified(ctx, r.Clock.Now()); err != nil {
		r.Logger.Error("waiting list expiry sweep failed", "error", err)
	}
}
