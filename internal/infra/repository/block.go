package repository

import (
	"context"

	"cabin-reserve/internal/domain/cabin"
	"cabin-reserve/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BlockRepository struct {
	pool *pgxpool.Pool
}

func NewBlockRepository(pool *pgxpool.Pool) *BlockRepository {
	return &BlockRepository{pool: pool}
}

func (r *BlockRepository) FindByCabin(ctx context.Context, cabinID uuid.UUID) ([]cabin.AvailabilityBlock, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, cabin_id, start_date, end_date FROM availability_blocks WHERE cabin_id = $1
	`, cabinID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find availability blocks", err)
	}
	defer rows.Close()

	var blocks []cabin.AvailabilityBlock
	for rows.Next() {
		var b cabin.AvailabilityBlock
		if err := rows.Scan(&b.ID, &b.CabinID, &b.Start, &b.End); err != nil {
			return nil, infra.WrapRepoErr("failed to scan availability block", err)
		}
		blocks = append(blocks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read availability blocks", err)
	}
	return blocks, nil
}
