package reservation

import (
	"time"

	"cabin-reserve/internal/domain/cabin"

	"github.com/google/uuid"
)

// Pure policy checks over already-fetched collections. No I/O here so the
// rules stay unit-testable without a store.

// HasActiveReservation reports whether the user already holds a reservation
// in PENDING, CONFIRMED or IN_USE, regardless of cabin or dates.
func HasActiveReservation(userID uuid.UUID, reservations []*Reservation) bool {
	for _, r := range reservations {
		if r.UserID() == userID && r.IsActive() {
			return true
		}
	}
	return false
}

// WithinAnnualLimit counts the user's reservations whose stay starts in the
// given calendar year and compares against the configured cap. Cancelled
// reservations count toward the cap too.
func WithinAnnualLimit(userID uuid.UUID, reservations []*Reservation, maxPerYear, year int) bool {
	count := 0
	for _, r := range reservations {
		if r.UserID() == userID && r.StartYear() == year {
			count++
		}
	}
	return count < maxPerYear
}

// CooldownElapsed passes unconditionally for first-time users.
func CooldownElapsed(lastCreatedAt *time.Time, timeoutDays int, today time.Time) bool {
	if lastCreatedAt == nil {
		return true
	}
	return daysBetween(*lastCreatedAt, today) >= timeoutDays
}

// RespectsMandatoryBlockRanges requires every overlapping block of the cabin
// to be matched exactly, both endpoints equal. Partial overlaps are rejected;
// no overlap at all passes.
func RespectsMandatoryBlockRanges(stay StayPeriod, cabinID uuid.UUID, blocks []cabin.AvailabilityBlock) bool {
	for _, b := range blocks {
		if b.CabinID != cabinID {
			continue
		}
		if !b.OverlapsDates(stay.Start(), stay.End()) {
			continue
		}
		if !b.MatchesDates(stay.Start(), stay.End()) {
			return false
		}
	}
	return true
}

func daysBetween(from, to time.Time) int {
	return int(dateOf(to).Sub(dateOf(from)).Hours() / 24)
}
