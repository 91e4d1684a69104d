//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"cabin-reserve/internal/domain/cabin"
	"cabin-reserve/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildReservation(t *testing.T, userID uuid.UUID, status reservation.Status, start, end time.Time) *reservation.Reservation {
	t.Helper()
	stay, err := reservation.NewStayPeriod(start, end)
	require.NoError(t, err)
	guests, err := reservation.NewGuestCount(2)
	require.NoError(t, err)
	return reservation.ReconstructReservation(
		uuid.New(), userID, uuid.New(), stay, guests, status, start.AddDate(0, -1, 0),
	)
}

func TestHasActiveReservation(t *testing.T) {
	userID := uuid.New()
	otherID := uuid.New()

	tests := []struct {
		name         string
		reservations []*reservation.Reservation
		want         bool
	}{
		{
			name: "pending counts as active",
			reservations: []*reservation.Reservation{
				buildReservation(t, userID, reservation.StatusPending, date(2025, 7, 1), date(2025, 7, 3)),
			},
			want: true,
		},
		{
			name: "confirmed counts as active",
			reservations: []*reservation.Reservation{
				buildReservation(t, userID, reservation.StatusConfirmed, date(2025, 7, 1), date(2025, 7, 3)),
			},
			want: true,
		},
		{
			name: "in_use counts as active",
			reservations: []*reservation.Reservation{
				buildReservation(t, userID, reservation.StatusInUse, date(2025, 7, 1), date(2025, 7, 3)),
			},
			want: true,
		},
		{
			name: "completed and cancelled do not count",
			reservations: []*reservation.Reservation{
				buildReservation(t, userID, reservation.StatusCompleted, date(2025, 5, 1), date(2025, 5, 3)),
				buildReservation(t, userID, reservation.StatusCancelled, date(2025, 6, 1), date(2025, 6, 3)),
			},
			want: false,
		},
		{
			name: "other user's active reservation does not count",
			reservations: []*reservation.Reservation{
				buildReservation(t, otherID, reservation.StatusConfirmed, date(2025, 7, 1), date(2025, 7, 3)),
			},
			want: false,
		},
		{
			name:         "empty history",
			reservations: nil,
			want:         false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reservation.HasActiveReservation(userID, tt.reservations))
		})
	}
}

func TestWithinAnnualLimit(t *testing.T) {
	userID := uuid.New()

	history := func(n int, year int, status reservation.Status) []*reservation.Reservation {
		out := make([]*reservation.Reservation, n)
		for i := range out {
			start := date(year, time.Month(i+1), 1)
			out[i] = buildReservation(t, userID, status, start, start.AddDate(0, 0, 2))
		}
		return out
	}

	t.Run("under the cap passes", func(t *testing.T) {
		assert.True(t, reservation.WithinAnnualLimit(userID, history(2, 2025, reservation.StatusCompleted), 3, 2025))
	})

	t.Run("at the cap fails", func(t *testing.T) {
		assert.False(t, reservation.WithinAnnualLimit(userID, history(3, 2025, reservation.StatusCompleted), 3, 2025))
	})

	t.Run("cancelled reservations still count", func(t *testing.T) {
		assert.False(t, reservation.WithinAnnualLimit(userID, history(3, 2025, reservation.StatusCancelled), 3, 2025))
	})

	t.Run("other years do not count", func(t *testing.T) {
		assert.True(t, reservation.WithinAnnualLimit(userID, history(3, 2024, reservation.StatusCompleted), 3, 2025))
	})

	t.Run("other users do not count", func(t *testing.T) {
		other := history(3, 2025, reservation.StatusCompleted)
		assert.True(t, reservation.WithinAnnualLimit(uuid.New(), other, 3, 2025))
	})
}

func TestCooldownElapsed(t *testing.T) {
	today := date(2025, 6, 15)

	t.Run("first reservation has no cooldown", func(t *testing.T) {
		assert.True(t, reservation.CooldownElapsed(nil, 30, today))
	})

	t.Run("exactly at the boundary passes", func(t *testing.T) {
		last := date(2025, 5, 16) // 30 days before
		assert.True(t, reservation.CooldownElapsed(&last, 30, today))
	})

	t.Run("one day short fails", func(t *testing.T) {
		last := date(2025, 5, 17)
		assert.False(t, reservation.CooldownElapsed(&last, 30, today))
	})

	t.Run("same day fails", func(t *testing.T) {
		last := today
		assert.False(t, reservation.CooldownElapsed(&last, 30, today))
	})

	t.Run("time of day is ignored", func(t *testing.T) {
		last := time.Date(2025, 5, 16, 23, 59, 0, 0, time.UTC)
		assert.True(t, reservation.CooldownElapsed(&last, 30, today))
	})
}

func TestRespectsMandatoryBlockRanges(t *testing.T) {
	cabinID := uuid.New()
	otherCabin := uuid.New()

	block := cabin.AvailabilityBlock{
		ID:      uuid.New(),
		CabinID: cabinID,
		Start:   date(2025, 4, 1),
		End:     date(2025, 4, 4),
	}

	stay := func(start, end time.Time) reservation.StayPeriod {
		return mustStay(t, start, end)
	}

	tests := []struct {
		name   string
		stay   reservation.StayPeriod
		blocks []cabin.AvailabilityBlock
		want   bool
	}{
		{
			name:   "partial overlap inside block is rejected",
			stay:   stay(date(2025, 4, 1), date(2025, 4, 2)),
			blocks: []cabin.AvailabilityBlock{block},
			want:   false,
		},
		{
			name:   "exact match is accepted",
			stay:   stay(date(2025, 4, 1), date(2025, 4, 4)),
			blocks: []cabin.AvailabilityBlock{block},
			want:   true,
		},
		{
			name:   "no overlap at all is accepted",
			stay:   stay(date(2025, 4, 10), date(2025, 4, 12)),
			blocks: []cabin.AvailabilityBlock{block},
			want:   true,
		},
		{
			name:   "overhang past the block is rejected",
			stay:   stay(date(2025, 3, 30), date(2025, 4, 4)),
			blocks: []cabin.AvailabilityBlock{block},
			want:   false,
		},
		{
			name: "other cabin's block is ignored",
			stay: stay(date(2025, 4, 1), date(2025, 4, 2)),
			blocks: []cabin.AvailabilityBlock{{
				ID:      uuid.New(),
				CabinID: otherCabin,
				Start:   date(2025, 4, 1),
				End:     date(2025, 4, 4),
			}},
			want: true,
		},
		{
			name:   "no blocks",
			stay:   stay(date(2025, 4, 1), date(2025, 4, 2)),
			blocks: nil,
			want:   true,
		},
		{
			name: "two blocks must both be satisfied",
			stay: stay(date(2025, 4, 1), date(2025, 4, 6)),
			blocks: []cabin.AvailabilityBlock{
				block,
				{ID: uuid.New(), CabinID: cabinID, Start: date(2025, 4, 5), End: date(2025, 4, 6)},
			},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reservation.RespectsMandatoryBlockRanges(tt.stay, cabinID, tt.blocks))
		})
	}
}
