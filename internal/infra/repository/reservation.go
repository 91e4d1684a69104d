package repository

import (
	"context"
	"time"

	"cabin-reserve/internal/domain/reservation"
	"cabin-reserve/internal/infra"
	"cabin-reserve/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReservationRepository struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{pool: pool}
}

const reservationColumns = `id, user_id, cabin_id, start_date, end_date, guests, status, created_at`

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO reservations (id, user_id, cabin_id, start_date, end_date, guests, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	`,
		res.ID(), res.UserID(), res.CabinID(),
		res.Stay().Start(), res.Stay().End(),
		res.Guests().Value(), res.Status().String(), res.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id)
	res, err := scanReservation(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find reservation by id", err)
	}
	return res, nil
}

func (r *ReservationRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*reservation.Reservation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+reservationColumns+` FROM reservations WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations by user", err)
	}
	defer rows.Close()
	return collectReservations(rows)
}

func (r *ReservationRepository) LastCreatedAt(ctx context.Context, userID uuid.UUID) (*time.Time, error) {
	var last pgtype.Timestamptz
	err := r.pool.QueryRow(ctx, `SELECT max(created_at) FROM reservations WHERE user_id = $1`, userID).Scan(&last)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find last reservation date", err)
	}
	return pgconv.TimePtrFromPgtype(last), nil
}

func (r *ReservationRepository) FindByStatusStartingBy(ctx context.Context, status reservation.Status, date time.Time) ([]*reservation.Reservation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+reservationColumns+` FROM reservations WHERE status = $1 AND start_date <= $2
	`, status.String(), date)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations by start date", err)
	}
	defer rows.Close()
	return collectReservations(rows)
}

func (r *ReservationRepository) FindByStatusEndingBy(ctx context.Context, status reservation.Status, date time.Time) ([]*reservation.Reservation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+reservationColumns+` FROM reservations WHERE status = $1 AND end_date <= $2
	`, status.String(), date)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations by end date", err)
	}
	defer rows.Close()
	return collectReservations(rows)
}

// UpdateStatus is the engine's optimistic-concurrency primitive: the write
// lands only if the row still carries the expected prior status.
func (r *ReservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to reservation.Status) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE reservations SET status = $3, updated_at = now() WHERE id = $1 AND status = $2
	`, id, from.String(), to.String())
	if err != nil {
		return false, infra.WrapRepoErr("failed to update reservation status", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ReservationRepository) ExistsActiveOverlapping(ctx context.Context, cabinID uuid.UUID, stay reservation.StayPeriod) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE cabin_id = $1
			  AND status IN ('pending', 'confirmed', 'in_use')
			  AND start_date <= $3
			  AND end_date >= $2
		)
	`, cabinID, stay.Start(), stay.End()).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check overlapping reservations", err)
	}
	return exists, nil
}

func scanReservation(row pgx.Row) (*reservation.Reservation, error) {
	var (
		id, userID, cabinID uuid.UUID
		startDate, endDate  time.Time
		guests              int
		status              string
		createdAt           time.Time
	)
	if err := row.Scan(&id, &userID, &cabinID, &startDate, &endDate, &guests, &status, &createdAt); err != nil {
		return nil, err
	}

	stay, err := reservation.NewStayPeriod(startDate, endDate)
	if err != nil {
		return nil, err
	}
	guestCount, err := reservation.NewGuestCount(guests)
	if err != nil {
		return nil, err
	}

	return reservation.ReconstructReservation(
		id, userID, cabinID, stay, guestCount, reservation.Status(status), createdAt,
	), nil
}

func collectReservations(rows pgx.Rows) ([]*reservation.Reservation, error) {
	var result []*reservation.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", err)
		}
		result = append(result, res)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation rows", err)
	}
	return result, nil
}
