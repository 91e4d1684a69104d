package commands

import (
	"context"
	"log/slog"
	"time"

	"cabin-reserve/internal/domain/reservation"
	"cabin-reserve/internal/pkg/clock"
	"cabin-reserve/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidRequest               = errs.New("invalid reservation request")
	ErrConflictingActiveReservation = errs.New("user already has an active reservation")
	ErrAnnualLimitExceeded          = errs.New("annual reservation limit exceeded")
	ErrCooldownNotElapsed           = errs.New("cooldown period has not elapsed")
	ErrBlockedRangeMismatch         = errs.New("requested range does not match a mandatory block range")
	ErrReservationNotFound          = errs.New("reservation not found")
	ErrInvalidTransition            = errs.New("invalid status transition")
	ErrConfigUnavailable            = errs.New("policy configuration unavailable")
	ErrStoreOperationFailed         = errs.New("store operation failed")
)

type ReservationCommands interface {
	CreatePreReservation(ctx context.Context, userID, cabinID uuid.UUID, start, end time.Time, guests int) (*reservation.Reservation, error)
	CancelByUser(ctx context.Context, userID, reservationID uuid.UUID) error
	ChangeStatusByAdmin(ctx context.Context, reservationID uuid.UUID, newStatus reservation.Status) error
	// StartDateTransitions moves CONFIRMED reservations whose stay has begun
	// to IN_USE. Idempotent: rows already past CONFIRMED are skipped by the
	// conditional write.
	StartDateTransitions(ctx context.Context, today time.Time) (int, error)
	// EndDateTransitions moves IN_USE reservations whose stay has ended to
	// COMPLETED. Same idempotence contract.
	EndDateTransitions(ctx context.Context, today time.Time) (int, error)
}

type reservationCommandsImpl struct {
	reservations ReservationRepository
	blocks       BlockRepository
	configSource ConfigSource
	notifier     Notifier
	clock        clock.Clock
	logger       *slog.Logger
}

func NewReservationCommands(
	reservations ReservationRepository,
	blocks BlockRepository,
	configSource ConfigSource,
	notifier Notifier,
	clk clock.Clock,
	logger *slog.Logger,
) ReservationCommands {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &reservationCommandsImpl{
		reservations: reservations,
		blocks:       blocks,
		configSource: configSource,
		notifier:     notifier,
		clock:        clk,
		logger:       logger,
	}
}

// CreatePreReservation runs the four policy checks in fixed order against a
// snapshot of the user's reservations, then persists a PENDING reservation.
// First failing check wins; nothing is written on rejection.
func (c *reservationCommandsImpl) CreatePreReservation(
	ctx context.Context,
	userID, cabinID uuid.UUID,
	start, end time.Time,
	guests int,
) (*reservation.Reservation, error) {
	stay, err := reservation.NewStayPeriod(start, end)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRequest)
	}
	guestCount, err := reservation.NewGuestCount(guests)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRequest)
	}

	policy, err := c.configSource.PolicySnapshot(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrConfigUnavailable)
	}

	userReservations, err := c.reservations.FindByUser(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreOperationFailed)
	}

	if reservation.HasActiveReservation(userID, userReservations) {
		return nil, ErrConflictingActiveReservation
	}

	if !reservation.WithinAnnualLimit(userID, userReservations, policy.MaxReservationsPerYear, stay.Start().Year()) {
		return nil, ErrAnnualLimitExceeded
	}

	lastCreatedAt, err := c.reservations.LastCreatedAt(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreOperationFailed)
	}
	if !reservation.CooldownElapsed(lastCreatedAt, policy.StandardTimeoutDays, clock.Today(c.clock)) {
		return nil, ErrCooldownNotElapsed
	}

	cabinBlocks, err := c.blocks.FindByCabin(ctx, cabinID)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreOperationFailed)
	}
	if !reservation.RespectsMandatoryBlockRanges(stay, cabinID, cabinBlocks) {
		return nil, ErrBlockedRangeMismatch
	}

	res := reservation.NewPreReservation(userID, cabinID, stay, guestCount, c.clock.Now())
	if err := c.reservations.Create(ctx, res); err != nil {
		return nil, errs.Mark(err, ErrStoreOperationFailed)
	}

	c.notifier.IncrementCreated()
	c.logger.Info("pre-reservation created",
		"reservation_id", res.ID(), "user_id", userID, "cabin_id", cabinID, "stay", stay.String())
	return res, nil
}

// CancelByUser bypasses the admin transition table on purpose: members may
// back out from any of their own non-terminal states.
func (c *reservationCommandsImpl) CancelByUser(ctx context.Context, userID, reservationID uuid.UUID) error {
	res, err := c.reservations.FindByID(ctx, reservationID)
	if err != nil {
		return errs.Mark(err, ErrStoreOperationFailed)
	}
	if res == nil || !res.IsOwnedBy(userID) {
		return ErrReservationNotFound
	}
	if res.Status().IsTerminal() {
		return ErrInvalidTransition
	}

	updated, err := c.reservations.UpdateStatus(ctx, reservationID, res.Status(), reservation.StatusCancelled)
	if err != nil {
		return errs.Mark(err, ErrStoreOperationFailed)
	}
	if !updated {
		// Another writer moved the row between our read and the write.
		return ErrInvalidTransition
	}

	c.notifier.IncrementCancelled()
	c.logger.Info("reservation cancelled by user", "reservation_id", reservationID, "user_id", userID)
	return nil
}

func (c *reservationCommandsImpl) ChangeStatusByAdmin(ctx context.Context, reservationID uuid.UUID, newStatus reservation.Status) error {
	if !newStatus.IsValid() {
		return ErrInvalidRequest
	}

	res, err := c.reservations.FindByID(ctx, reservationID)
	if err != nil {
		return errs.Mark(err, ErrStoreOperationFailed)
	}
	if res == nil {
		return ErrReservationNotFound
	}

	from := res.Status()
	if !reservation.CanAdminTransition(from, newStatus) {
		return ErrInvalidTransition
	}

	updated, err := c.reservations.UpdateStatus(ctx, reservationID, from, newStatus)
	if err != nil {
		return errs.Mark(err, ErrStoreOperationFailed)
	}
	if !updated {
		return ErrInvalidTransition
	}

	c.notifier.IncrementStatusTransition(from, newStatus)
	c.logger.Info("reservation status changed",
		"reservation_id", reservationID, "from", from.String(), "to", newStatus.String())
	return nil
}

func (c *reservationCommandsImpl) StartDateTransitions(ctx context.Context, today time.Time) (int, error) {
	return c.runDateTransitions(ctx, dateTransition{
		kind:       "start",
		from:       reservation.StatusConfirmed,
		to:         reservation.StatusInUse,
		candidates: c.reservations.FindByStatusStartingBy,
	}, today)
}

func (c *reservationCommandsImpl) EndDateTransitions(ctx context.Context, today time.Time) (int, error) {
	return c.runDateTransitions(ctx, dateTransition{
		kind:       "end",
		from:       reservation.StatusInUse,
		to:         reservation.StatusCompleted,
		candidates: c.reservations.FindByStatusEndingBy,
	}, today)
}

type dateTransition struct {
	kind       string
	from       reservation.Status
	to         reservation.Status
	candidates func(ctx context.Context, status reservation.Status, date time.Time) ([]*reservation.Reservation, error)
}

// runDateTransitions processes each candidate independently: one bad row
// must not stall the batch. The conditional write is the idempotence guard;
// a second run over unchanged data performs zero writes.
func (c *reservationCommandsImpl) runDateTransitions(ctx context.Context, t dateTransition, today time.Time) (int, error) {
	due, err := t.candidates(ctx, t.from, clock.DateOf(today))
	if err != nil {
		return 0, errs.Mark(err, ErrStoreOperationFailed)
	}

	transitioned := 0
	for _, res := range due {
		updated, err := c.reservations.UpdateStatus(ctx, res.ID(), t.from, t.to)
		if err != nil {
			c.logger.Error("scheduler transition failed",
				"kind", t.kind, "reservation_id", res.ID(), "error", err)
			continue
		}
		if !updated {
			// Already past the target status, or cancelled in the meantime.
			continue
		}
		transitioned++
		c.notifier.IncrementSchedulerTransition(t.kind)
	}

	if transitioned > 0 {
		c.logger.Info("scheduler transitions applied",
			"kind", t.kind, "count", transitioned, "today", clock.DateOf(today).Format("2006-01-02"))
	}
	return transitioned, nil
}
