package readstore

import (
	"context"

	"cabin-reserve/internal/infra"
	"cabin-reserve/internal/pkg/pgconv"
	"cabin-reserve/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReservationReadStore struct {
	pool *pgxpool.Pool
}

func NewReservationReadStore(pool *pgxpool.Pool) *ReservationReadStore {
	return &ReservationReadStore{pool: pool}
}

const viewColumns = `id, user_id, cabin_id, start_date, end_date, guests, status, created_at`

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+viewColumns+` FROM reservations WHERE id = $1`, id)
	view, err := scanView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find reservation view", err)
	}
	return view, nil
}

func (r *ReservationReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.ReservationView, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+viewColumns+` FROM reservations WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations for user", err)
	}
	defer rows.Close()
	return collectViews(rows)
}

func (r *ReservationReadStore) FindAll(ctx context.Context, status *string) ([]*queries.ReservationView, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if status != nil {
		rows, err = r.pool.Query(ctx, `
			SELECT `+viewColumns+` FROM reservations WHERE status = $1 ORDER BY created_at DESC
		`, *status)
	} else {
		rows, err = r.pool.Query(ctx, `
			SELECT `+viewColumns+` FROM reservations ORDER BY created_at DESC
		`)
	}
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	defer rows.Close()
	return collectViews(rows)
}

func scanView(row pgx.Row) (*queries.ReservationView, error) {
	var v queries.ReservationView
	err := row.Scan(&v.ID, &v.UserID, &v.CabinID, &v.StartDate, &v.EndDate, &v.Guests, &v.Status, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func collectViews(rows pgx.Rows) ([]*queries.ReservationView, error) {
	var result []*queries.ReservationView
	for rows.Next() {
		v, err := scanView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation view", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation views", err)
	}
	return result, nil
}
