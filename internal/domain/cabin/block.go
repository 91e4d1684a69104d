// Package cabin holds cabin-side records the reservation engine reads but
// never mutates. Cabins themselves are administered outside the engine.
package cabin

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityBlock is an admin-defined mandatory date range (inclusive) for
// a cabin, e.g. a maintenance window. A reservation request must either avoid
// the block entirely or span it exactly.
type AvailabilityBlock struct {
	ID      uuid.UUID
	CabinID uuid.UUID
	Start   time.Time
	End     time.Time
}

func (b AvailabilityBlock) OverlapsDates(start, end time.Time) bool {
	return !end.Before(b.Start) && !b.End.Before(start)
}

func (b AvailabilityBlock) MatchesDates(start, end time.Time) bool {
	return start.Equal(b.Start) && end.Equal(b.End)
}
