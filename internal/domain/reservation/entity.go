package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidStatus = errors.New("invalid reservation status")

type Reservation struct {
	id        uuid.UUID
	userID    uuid.UUID
	cabinID   uuid.UUID
	stay      StayPeriod
	guests    GuestCount
	status    Status
	createdAt time.Time
}

// NewPreReservation builds a fresh reservation in PENDING status. Policy
// checks happen in the usecase layer before this is persisted.
func NewPreReservation(userID, cabinID uuid.UUID, stay StayPeriod, guests GuestCount, createdAt time.Time) *Reservation {
	return &Reservation{
		id:        uuid.New(),
		userID:    userID,
		cabinID:   cabinID,
		stay:      stay,
		guests:    guests,
		status:    StatusPending,
		createdAt: createdAt,
	}
}

func ReconstructReservation(
	id, userID, cabinID uuid.UUID,
	stay StayPeriod,
	guests GuestCount,
	status Status,
	createdAt time.Time,
) *Reservation {
	return &Reservation{
		id:        id,
		userID:    userID,
		cabinID:   cabinID,
		stay:      stay,
		guests:    guests,
		status:    status,
		createdAt: createdAt,
	}
}

func (r *Reservation) ID() uuid.UUID { return r.id }
func (r *Reservation) UserID() uuid.UUID { return r.userID }
func (r *Reservation) CabinID() uuid.UUID { return r.cabinID }
func (r *Reservation) Stay() StayPeriod { return r.stay }
func (r *Reservation) Guests() GuestCount { return r.guests }
func (r *Reservation) Status() Status { return r.status }
func (r *Reservation) CreatedAt() time.Time { return r.createdAt }

func (r *Reservation) IsActive() bool {
	return r.status.IsActive()
}

func (r *Reservation) IsOwnedBy(userID uuid.UUID) bool {
	return r.userID == userID
}

// StartYear is the calendar year the stay begins in, used by the annual cap.
func (r *Reservation) StartYear() int {
	return r.stay.Start().Year()
}
