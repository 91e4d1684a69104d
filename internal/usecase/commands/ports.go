package commands

import (
	"context"
	"time"

	"cabin-reserve/internal/domain/cabin"
	"cabin-reserve/internal/domain/reservation"
	"cabin-reserve/internal/domain/waitinglist"

	"github.com/google/uuid"
)

// Narrow collaborator ports. The engine depends on these, never on a
// concrete database client.

type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*reservation.Reservation, error)
	// LastCreatedAt returns nil when the user has no reservations.
	LastCreatedAt(ctx context.Context, userID uuid.UUID) (*time.Time, error)
	FindByStatusStartingBy(ctx context.Context, status reservation.Status, date time.Time) ([]*reservation.Reservation, error)
	FindByStatusEndingBy(ctx context.Context, status reservation.Status, date time.Time) ([]*reservation.Reservation, error)
	// UpdateStatus performs a conditional write: the row is touched only if
	// its status still equals from. Returns false when another writer got
	// there first.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to reservation.Status) (bool, error)
	ExistsActiveOverlapping(ctx context.Context, cabinID uuid.UUID, stay reservation.StayPeriod) (bool, error)
}

type BlockRepository interface {
	FindByCabin(ctx context.Context, cabinID uuid.UUID) ([]cabin.AvailabilityBlock, error)
}

type WaitingListRepository interface {
	// NextPendingOverlapping returns the pending entry with the lowest queue
	// position (creation time breaks ties) whose requested range overlaps
	// the given stay, or nil when the queue is empty.
	NextPendingOverlapping(ctx context.Context, cabinID uuid.UUID, stay reservation.StayPeriod) (*waitinglist.Entry, error)
	// FindNotifiedByToken returns nil when no NOTIFIED entry carries the token.
	FindNotifiedByToken(ctx context.Context, token string) (*waitinglist.Entry, error)
	// UpdateFrom persists the entry only if the stored status still equals
	// expected. Returns false when the row moved on concurrently.
	UpdateFrom(ctx context.Context, entry *waitinglist.Entry, expected waitinglist.Status) (bool, error)
	ExpireNotifiedBefore(ctx context.Context, now time.Time) (int64, error)
}

// PolicySnapshot is fetched once per operation so a hot-reloaded limit never
// changes mid-decision.
type PolicySnapshot struct {
	StandardTimeoutDays     int
	CancellationTimeoutDays int
	MaxReservationsPerYear  int
}

type ConfigSource interface {
	PolicySnapshot(ctx context.Context) (PolicySnapshot, error)
}

// Notifier is the business-event counter sink. Implementations must never
// block or fail the calling operation; absence is represented by NopNotifier.
type Notifier interface {
	IncrementCreated()
	IncrementCancelled()
	IncrementStatusTransition(from, to reservation.Status)
	IncrementSchedulerTransition(kind string)
}

type NopNotifier struct{}

func (NopNotifier) IncrementCreated() {}
func (NopNotifier) IncrementCancelled() {}
func (NopNotifier) IncrementStatusTransition(_, _ reservation.Status) {}
func (NopNotifier) IncrementSchedulerTransition(_ string) {}
