package request

import "github.com/google/uuid"

type CreateReservationRequest struct {
	CabinID   uuid.UUID `json:"cabin_id" binding:"required"`
	StartDate string    `json:"start_date" binding:"required" example:"2025-06-01"`
	EndDate   string    `json:"end_date" binding:"required" example:"2025-06-03"`
	Guests    int       `json:"guests" binding:"required,min=1"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
