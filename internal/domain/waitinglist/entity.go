package waitinglist

import (
	"errors"
	"time"

	"cabin-reserve/internal/domain/reservation"

	"github.com/google/uuid"
)

var (
	ErrNotPending     = errors.New("entry is not pending")
	ErrNotNotified    = errors.New("entry is not notified")
	ErrWindowExpired  = errors.New("notify window has expired")
	ErrAlreadyClaimed = errors.New("entry is already claimed")
)

// Entry is one queued request for a cabin and date range. The notify token
// and expiry are set only while the entry is NOTIFIED; once the entry goes
// terminal they are meaningless and must not be honored.
type Entry struct {
	id                   uuid.UUID
	userID               uuid.UUID
	cabinID              uuid.UUID
	stay                 reservation.StayPeriod
	guests               int
	position             int
	status               Status
	notifyToken          *string
	notifyExpiresAt      *time.Time
	notifiedAt           *time.Time
	claimedAt            *time.Time
	claimedReservationID *uuid.UUID
	statusChangedAt      time.Time
	createdAt            time.Time
}

func NewEntry(userID, cabinID uuid.UUID, stay reservation.StayPeriod, guests, position int, createdAt time.Time) *Entry {
	return &Entry{
		id:              uuid.New(),
		userID:          userID,
		cabinID:         cabinID,
		stay:            stay,
		guests:          guests,
		position:        position,
		status:          StatusPending,
		statusChangedAt: createdAt,
		createdAt:       createdAt,
	}
}

func ReconstructEntry(
	id, userID, cabinID uuid.UUID,
	stay reservation.StayPeriod,
	guests, position int,
	status Status,
	notifyToken *string,
	notifyExpiresAt, notifiedAt, claimedAt *time.Time,
	claimedReservationID *uuid.UUID,
	statusChangedAt, createdAt time.Time,
) *Entry {
	return &Entry{
		id:                   id,
		userID:               userID,
		cabinID:              cabinID,
		stay:                 stay,
		guests:               guests,
		position:             position,
		status:               status,
		notifyToken:          notifyToken,
		notifyExpiresAt:      notifyExpiresAt,
		notifiedAt:           notifiedAt,
		claimedAt:            claimedAt,
		claimedReservationID: claimedReservationID,
		statusChangedAt:      statusChangedAt,
		createdAt:            createdAt,
	}
}

func (e *Entry) ID() uuid.UUID { return e.id }
func (e *Entry) UserID() uuid.UUID { return e.userID }
func (e *Entry) CabinID() uuid.UUID { return e.cabinID }
func (e *Entry) Stay() reservation.StayPeriod { return e.stay }
func (e *Entry) Guests() int { return e.guests }
func (e *Entry) Position() int { return e.position }
func (e *Entry) Status() Status { return e.status }
func (e *Entry) NotifyToken() *string { return e.notifyToken }
func (e *Entry) NotifyExpiresAt() *time.Time { return e.notifyExpiresAt }
func (e *Entry) NotifiedAt() *time.Time { return e.notifiedAt }
func (e *Entry) ClaimedAt() *time.Time { return e.claimedAt }
func (e *Entry) ClaimedReservationID() *uuid.UUID { return e.claimedReservationID }
func (e *Entry) StatusChangedAt() time.Time { return e.statusChangedAt }
func (e *Entry) CreatedAt() time.Time { return e.createdAt }

// Notify moves a pending entry to NOTIFIED with a fresh token and window.
func (e *Entry) Notify(token string, now time.Time, window time.Duration) error {
	if e.status != StatusPending {
		return ErrNotPending
	}
	expiresAt := now.Add(window)
	e.status = StatusNotified
	e.notifyToken = &token
	e.notifyExpiresAt = &expiresAt
	e.notifiedAt = &now
	e.statusChangedAt = now
	return nil
}

// Claim moves a notified entry to CLAIMED. The window must still be open;
// late claims go through Expire instead.
func (e *Entry) Claim(now time.Time, reservationID *uuid.UUID) error {
	if e.status == StatusClaimed {
		return ErrAlreadyClaimed
	}
	if e.status != StatusNotified {
		return ErrNotNotified
	}
	if e.IsWindowExpired(now) {
		return ErrWindowExpired
	}
	e.status = StatusClaimed
	e.claimedAt = &now
	e.claimedReservationID = reservationID
	e.statusChangedAt = now
	return nil
}

// Expire moves a notified entry to EXPIRED, used both by the sweep and by
// the lazy path when a claim arrives after the window closed.
func (e *Entry) Expire(now time.Time) error {
	if e.status != StatusNotified {
		return ErrNotNotified
	}
	e.status = StatusExpired
	e.statusChangedAt = now
	return nil
}

func (e *Entry) IsWindowExpired(now time.Time) bool {
	return e.notifyExpiresAt != nil && now.After(*e.notifyExpiresAt)
}
