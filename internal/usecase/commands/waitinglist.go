package commands

import (
	"context"
	"log/slog"
	"time"

	"cabin-reserve/internal/domain/reservation"
	"cabin-reserve/internal/domain/waitinglist"
	"cabin-reserve/internal/pkg/clock"
	"cabin-reserve/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	// ErrTokenNotFound covers both a genuinely unknown token and a token
	// whose window has lapsed; callers see a single "expired or invalid"
	// outcome either way.
	ErrTokenNotFound         = errs.New("claim token invalid or expired")
	ErrSlotNoLongerAvailable = errs.New("slot no longer available")
)

type NotifyResult struct {
	EntryID   uuid.UUID
	UserID    uuid.UUID
	CabinID   uuid.UUID
	Token     string
	ExpiresAt time.Time
}

type ClaimResult struct {
	Entry  *waitinglist.Entry
	Guests int
}

type WaitingListCommands interface {
	// NotifyNext offers a freed slot to the best-placed pending candidate.
	// Returns nil, nil when the queue holds no overlapping candidate.
	NotifyNext(ctx context.Context, cabinID uuid.UUID, start, end time.Time, windowHours int) (*NotifyResult, error)
	// Claim redeems a notify token. The resulting reservation is created by
	// the caller; the NOTIFIED->CLAIMED conditional write guarantees that
	// happens at most once per entry.
	Claim(ctx context.Context, token string, guests int) (*ClaimResult, error)
	// ExpireNotified sweeps every NOTIFIED entry whose window closed before
	// now. Safe to run concurrently with Claim.
	ExpireNotified(ctx context.Context, now time.Time) (int64, error)
}

type waitingListCommandsImpl struct {
	entries      WaitingListRepository
	reservations ReservationRepository
	clock        clock.Clock
	logger       *slog.Logger
}

func NewWaitingListCommands(
	entries WaitingListRepository,
	reservations ReservationRepository,
	clk clock.Clock,
	logger *slog.Logger,
) WaitingListCommands {
	return &waitingListCommandsImpl{
		entries:      entries,
		reservations: reservations,
		clock:        clk,
		logger:       logger,
	}
}

func (c *waitingListCommandsImpl) NotifyNext(
	ctx context.Context,
	cabinID uuid.UUID,
	start, end time.Time,
	windowHours int,
) (*NotifyResult, error) {
	stay, err := reservation.NewStayPeriod(start, end)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidRequest)
	}

	entry, err := c.entries.NextPendingOverlapping(ctx, cabinID, stay)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreOperationFailed)
	}
	if entry == nil {
		return nil, nil
	}

	if windowHours < 1 {
		windowHours = 1
	}
	now := c.clock.Now()
	token := waitinglist.NewNotifyToken()
	if err := entry.Notify(token, now, time.Duration(windowHours)*time.Hour); err != nil {
		return nil, errs.Mark(err, ErrStoreOperationFailed)
	}

	updated, err := c.entries.UpdateFrom(ctx, entry, waitinglist.StatusPending)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreOperationFailed)
	}
	if !updated {
		// The candidate left the queue between the read and the write.
		// Not an error: the caller may simply notify again.
		c.logger.Warn("waiting list candidate changed before notify landed", "entry_id", entry.ID())
		return nil, nil
	}

	c.logger.Info("waiting list candidate notified",
		"entry_id", entry.ID(), "user_id", entry.UserID(), "cabin_id", cabinID,
		"expires_at", entry.NotifyExpiresAt())

	return &NotifyResult{
		EntryID:   entry.ID(),
		UserID:    entry.UserID(),
		CabinID:   entry.CabinID(),
		Token:     token,
		ExpiresAt: *entry.NotifyExpiresAt(),
	}, nil
}

func (c *waitingListCommandsImpl) Claim(ctx context.Context, token string, guests int) (*ClaimResult, error) {
	if guests < 1 {
		return nil, ErrInvalidRequest
	}

	entry, err := c.entries.FindNotifiedByToken(ctx, token)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreOperationFailed)
	}
	if entry == nil {
		return nil, ErrTokenNotFound
	}

	now := c.clock.Now()
	if entry.IsWindowExpired(now) {
		// Lazy expiry: a late claim retires the token itself. If the sweep
		// beat us to it the conditional write is a no-op, which is fine.
		if expireErr := entry.Expire(now); expireErr == nil {
			if _, err := c.entries.UpdateFrom(ctx, entry, waitinglist.StatusNotified); err != nil {
				c.logger.Error("lazy expiry write failed", "entry_id", entry.ID(), "error", err)
			}
		}
		return nil, ErrTokenNotFound
	}

	conflict, err := c.reservations.ExistsActiveOverlapping(ctx, entry.CabinID(), entry.Stay())
	if err != nil {
		return nil, errs.Mark(err, ErrStoreOperationFailed)
	}
	if conflict {
		// Entry stays NOTIFIED so the candidate can retry until the window
		// closes on its own.
		return nil, ErrSlotNoLongerAvailable
	}

	if err := entry.Claim(now, nil); err != nil {
		return nil, ErrTokenNotFound
	}
	updated, err := c.entries.UpdateFrom(ctx, entry, waitinglist.StatusNotified)
	if err != nil {
		return nil, errs.Mark(err, ErrStoreOperationFailed)
	}
	if !updated {
		// The expiry sweep won the race; the token is no longer usable.
		return nil, ErrTokenNotFound
	}

	c.logger.Info("waiting list entry claimed",
		"entry_id", entry.ID(), "user_id", entry.UserID(), "cabin_id", entry.CabinID())
	return &ClaimResult{Entry: entry, Guests: guests}, nil
}

func (c *waitingListCommandsImpl) ExpireNotified(ctx context.Context, now time.Time) (int64, error) {
	count, err := c.entries.ExpireNotifiedBefore(ctx, now)
	if err != nil {
		return 0, errs.Mark(err, ErrStoreOperationFailed)
	}
	if count > 0 {
		c.logger.Info("waiting list entries expired", "count", count)
	}
	return count, nil
}
