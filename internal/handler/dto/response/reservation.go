package response

import (
	"time"

	"cabin-reserve/internal/domain/reservation"
	"cabin-reserve/internal/usecase/queries"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type ReservationResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	CabinID   uuid.UUID `json:"cabinId"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	Guests    int       `json:"guests"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromReservationView(rm *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:        rm.ID,
		UserID:    rm.UserID,
		CabinID:   rm.CabinID,
		StartDate: rm.StartDate.Format(dateLayout),
		EndDate:   rm.EndDate.Format(dateLayout),
		Guests:    rm.Guests,
		Status:    rm.Status,
		CreatedAt: rm.CreatedAt,
	}
}

func FromReservationEntity(res *reservation.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:        res.ID(),
		UserID:    res.UserID(),
		CabinID:   res.CabinID(),
		StartDate: res.Stay().Start().Format(dateLayout),
		EndDate:   res.Stay().End().Format(dateLayout),
		Guests:    res.Guests().Value(),
		Status:    res.Status().String(),
		CreatedAt: res.CreatedAt(),
	}
}
