//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"time"

	"cabin-reserve/internal/domain/cabin"
	"cabin-reserve/internal/domain/reservation"
	"cabin-reserve/internal/domain/waitinglist"
	"cabin-reserve/internal/usecase/commands"

	"github.com/google/uuid"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeReservationRepo keeps status separately so the conditional write can be
// modelled exactly: the write lands only if the stored status still matches.
type fakeReservationRepo struct {
	rows map[uuid.UUID]*reservationRow

	createErr error
	findErr   error
	updateErr error

	updateCalls int
}

type reservationRow struct {
	userID    uuid.UUID
	cabinID   uuid.UUID
	stay      reservation.StayPeriod
	guests    reservation.GuestCount
	status    reservation.Status
	createdAt time.Time
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{rows: make(map[uuid.UUID]*reservationRow)}
}

func (f *fakeReservationRepo) add(res *reservation.Reservation) {
	f.rows[res.ID()] = &reservationRow{
		userID:    res.UserID(),
		cabinID:   res.CabinID(),
		stay:      res.Stay(),
		guests:    res.Guests(),
		status:    res.Status(),
		createdAt: res.CreatedAt(),
	}
}

func (f *fakeReservationRepo) get(id uuid.UUID) *reservation.Reservation {
	row, ok := f.rows[id]
	if !ok {
		return nil
	}
	return reservation.ReconstructReservation(
		id, row.userID, row.cabinID, row.stay, row.guests, row.status, row.createdAt,
	)
}

func (f *fakeReservationRepo) Create(_ context.Context, res *reservation.Reservation) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.add(res)
	return nil
}

func (f *fakeReservationRepo) FindByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.get(id), nil
}

func (f *fakeReservationRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*reservation.Reservation, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []*reservation.Reservation
	for id, row := range f.rows {
		if row.userID == userID {
			out = append(out, f.get(id))
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) LastCreatedAt(_ context.Context, userID uuid.UUID) (*time.Time, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var last *time.Time
	for _, row := range f.rows {
		if row.userID != userID {
			continue
		}
		t := row.createdAt
		if last == nil || t.After(*last) {
			last = &t
		}
	}
	return last, nil
}

func (f *fakeReservationRepo) FindByStatusStartingBy(_ context.Context, status reservation.Status, date time.Time) ([]*reservation.Reservation, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findByStatus(status, func(row *reservationRow) bool {
		return !row.stay.Start().After(date)
	}), nil
}

func (f *fakeReservationRepo) FindByStatusEndingBy(_ context.Context, status reservation.Status, date time.Time) ([]*reservation.Reservation, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findByStatus(status, func(row *reservationRow) bool {
		return !row.stay.End().After(date)
	}), nil
}

func (f *fakeReservationRepo) findByStatus(status reservation.Status, match func(*reservationRow) bool) []*reservation.Reservation {
	var ids []uuid.UUID
	for id, row := range f.rows {
		if row.status == status && match(row) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	out := make([]*reservation.Reservation, len(ids))
	for i, id := range ids {
		out[i] = f.get(id)
	}
	return out
}

func (f *fakeReservationRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to reservation.Status) (bool, error) {
	f.updateCalls++
	if f.updateErr != nil {
		return false, f.updateErr
	}
	row, ok := f.rows[id]
	if !ok || row.status != from {
		return false, nil
	}
	row.status = to
	return true, nil
}

func (f *fakeReservationRepo) ExistsActiveOverlapping(_ context.Context, cabinID uuid.UUID, stay reservation.StayPeriod) (bool, error) {
	if f.findErr != nil {
		return false, f.findErr
	}
	for _, row := range f.rows {
		if row.cabinID == cabinID && row.status.IsActive() && row.stay.Overlaps(stay) {
			return true, nil
		}
	}
	return false, nil
}

type fakeBlockRepo struct {
	blocks  []cabin.AvailabilityBlock
	findErr error
}

func (f *fakeBlockRepo) FindByCabin(_ context.Context, cabinID uuid.UUID) ([]cabin.AvailabilityBlock, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []cabin.AvailabilityBlock
	for _, b := range f.blocks {
		if b.CabinID == cabinID {
			out = append(out, b)
		}
	}
	return out, nil
}

// fakeWaitingListRepo mirrors the conditional-write contract of the real
// store: UpdateFrom lands only when the stored status matches expected.
type fakeWaitingListRepo struct {
	entries map[uuid.UUID]*waitinglist.Entry

	findErr   error
	updateErr error

	// forceUpdateConflict makes the next UpdateFrom report a lost race
	// without touching stored state.
	forceUpdateConflict bool
}

func newFakeWaitingListRepo() *fakeWaitingListRepo {
	return &fakeWaitingListRepo{entries: make(map[uuid.UUID]*waitinglist.Entry)}
}

func (f *fakeWaitingListRepo) add(e *waitinglist.Entry) {
	f.entries[e.ID()] = cloneEntry(e)
}

func cloneEntry(e *waitinglist.Entry) *waitinglist.Entry {
	return waitinglist.ReconstructEntry(
		e.ID(), e.UserID(), e.CabinID(), e.Stay(), e.Guests(), e.Position(),
		e.Status(), e.NotifyToken(), e.NotifyExpiresAt(), e.NotifiedAt(),
		e.ClaimedAt(), e.ClaimedReservationID(), e.StatusChangedAt(), e.CreatedAt(),
	)
}

func (f *fakeWaitingListRepo) NextPendingOverlapping(_ context.Context, cabinID uuid.UUID, stay reservation.StayPeriod) (*waitinglist.Entry, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var best *waitinglist.Entry
	for _, e := range f.entries {
		if e.Status() != waitinglist.StatusPending || e.CabinID() != cabinID || !e.Stay().Overlaps(stay) {
			continue
		}
		if best == nil ||
			e.Position() < best.Position() ||
			(e.Position() == best.Position() && e.CreatedAt().Before(best.CreatedAt())) {
			best = e
		}
	}
	if best == nil {
		return nil, nil
	}
	return cloneEntry(best), nil
}

func (f *fakeWaitingListRepo) FindNotifiedByToken(_ context.Context, token string) (*waitinglist.Entry, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, e := range f.entries {
		if e.Status() == waitinglist.StatusNotified && e.NotifyToken() != nil && *e.NotifyToken() == token {
			return cloneEntry(e), nil
		}
	}
	return nil, nil
}

func (f *fakeWaitingListRepo) UpdateFrom(_ context.Context, entry *waitinglist.Entry, expected waitinglist.Status) (bool, error) {
	if f.updateErr != nil {
		return false, f.updateErr
	}
	if f.forceUpdateConflict {
		f.forceUpdateConflict = false
		return false, nil
	}
	stored, ok := f.entries[entry.ID()]
	if !ok || stored.Status() != expected {
		return false, nil
	}
	f.entries[entry.ID()] = cloneEntry(entry)
	return true, nil
}

func (f *fakeWaitingListRepo) ExpireNotifiedBefore(_ context.Context, now time.Time) (int64, error) {
	if f.updateErr != nil {
		return 0, f.updateErr
	}
	var count int64
	for id, e := range f.entries {
		if e.Status() == waitinglist.StatusNotified && e.IsWindowExpired(now) {
			clone := cloneEntry(e)
			if err := clone.Expire(now); err == nil {
				f.entries[id] = clone
				count++
			}
		}
	}
	return count, nil
}

type fakeConfigSource struct {
	snapshot commands.PolicySnapshot
	err      error
}

func (f *fakeConfigSource) PolicySnapshot(_ context.Context) (commands.PolicySnapshot, error) {
	if f.err != nil {
		return commands.PolicySnapshot{}, f.err
	}
	return f.snapshot, nil
}

func defaultPolicy() commands.PolicySnapshot {
	return commands.PolicySnapshot{
		StandardTimeoutDays:     30,
		CancellationTimeoutDays: 7,
		MaxReservationsPerYear:  3,
	}
}

type countingNotifier struct {
	created     int
	cancelled   int
	transitions int
	scheduler   int
}

func (n *countingNotifier) IncrementCreated() { n.created++ }
func (n *countingNotifier) IncrementCancelled() { n.cancelled++ }
func (n *countingNotifier) IncrementStatusTransition(_, _ reservation.Status) { n.transitions++ }
func (n *countingNotifier) IncrementSchedulerTransition(_ string) { n.scheduler++ }
