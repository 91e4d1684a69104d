package repository

import (
	"context"
	"time"

	"cabin-reserve/internal/domain/reservation"
	"cabin-reserve/internal/domain/waitinglist"
	"cabin-reserve/internal/infra"
	"cabin-reserve/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WaitingListRepository struct {
	pool *pgxpool.Pool
}

func NewWaitingListRepository(pool *pgxpool.Pool) *WaitingListRepository {
	return &WaitingListRepository{pool: pool}
}

const entryColumns = `id, user_id, cabin_id, start_date, end_date, guests, position,
	status, notify_token, notify_expires_at, notified_at, claimed_at,
	claimed_reservation_id, status_changed_at, created_at`

func (r *WaitingListRepository) NextPendingOverlapping(ctx context.Context, cabinID uuid.UUID, stay reservation.StayPeriod) (*waitinglist.Entry, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+entryColumns+`
		FROM waiting_list_entries
		WHERE cabin_id = $1
		  AND status = 'pending'
		  AND start_date <= $3
		  AND end_date >= $2
		ORDER BY position ASC, created_at ASC
		LIMIT 1
	`, cabinID, stay.Start(), stay.End())

	entry, err := scanEntry(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find next pending entry", err)
	}
	return entry, nil
}

func (r *WaitingListRepository) FindNotifiedByToken(ctx context.Context, token string) (*waitinglist.Entry, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+entryColumns+`
		FROM waiting_list_entries
		WHERE notify_token = $1 AND status = 'notified'
	`, token)

	entry, err := scanEntry(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find entry by token", err)
	}
	return entry, nil
}

// UpdateFrom writes the entry's mutable fields, guarded by the expected
// prior status. When two writers race on the same entry only one write
// lands; the loser sees false.
func (r *WaitingListRepository) UpdateFrom(ctx context.Context, entry *waitinglist.Entry, expected waitinglist.Status) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE waiting_list_entries
		SET status = $3,
		    notify_token = $4,
		    notify_expires_at = $5,
		    notified_at = $6,
		    claimed_at = $7,
		    claimed_reservation_id = $8,
		    status_changed_at = $9
		WHERE id = $1 AND status = $2
	`,
		entry.ID(), expected.String(),
		entry.Status().String(),
		pgconv.StringPtrToPgtype(entry.NotifyToken()),
		pgconv.TimePtrToPgtype(entry.NotifyExpiresAt()),
		pgconv.TimePtrToPgtype(entry.NotifiedAt()),
		pgconv.TimePtrToPgtype(entry.ClaimedAt()),
		pgconv.UUIDPtrToPgtype(entry.ClaimedReservationID()),
		entry.StatusChangedAt(),
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to update waiting list entry", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *WaitingListRepository) ExpireNotifiedBefore(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE waiting_list_entries
		SET status = 'expired', status_changed_at = $1
		WHERE status = 'notified' AND notify_expires_at < $1
	`, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to expire notified entries", err)
	}
	return tag.RowsAffected(), nil
}

func scanEntry(row pgx.Row) (*waitinglist.Entry, error) {
	var (
		id, userID, cabinID  uuid.UUID
		startDate, endDate   time.Time
		guests, position     int
		status               string
		notifyToken          pgtype.Text
		notifyExpiresAt      pgtype.Timestamptz
		notifiedAt           pgtype.Timestamptz
		claimedAt            pgtype.Timestamptz
		claimedReservationID pgtype.UUID
		statusChangedAt      time.Time
		createdAt            time.Time
	)
	err := row.Scan(
		&id, &userID, &cabinID, &startDate, &endDate, &guests, &position,
		&status, &notifyToken, &notifyExpiresAt, &notifiedAt, &claimedAt,
		&claimedReservationID, &statusChangedAt, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	stay, err := reservation.NewStayPeriod(startDate, endDate)
	if err != nil {
		return nil, err
	}

	return waitinglist.ReconstructEntry(
		id, userID, cabinID, stay, guests, position,
		waitinglist.Status(status),
		pgconv.StringPtrFromPgtype(notifyToken),
		pgconv.TimePtrFromPgtype(notifyExpiresAt),
		pgconv.TimePtrFromPgtype(notifiedAt),
		pgconv.TimePtrFromPgtype(claimedAt),
		pgconv.UUIDPtrFromPgtype(claimedReservationID),
		statusChangedAt, createdAt,
	), nil
}
