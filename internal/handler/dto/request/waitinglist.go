package request

import "github.com/google/uuid"

type NotifyNextRequest struct {
	CabinID     uuid.UUID `json:"cabin_id" binding:"required"`
	StartDate   string    `json:"start_date" binding:"required" example:"2025-06-01"`
	EndDate     string    `json:"end_date" binding:"required" example:"2025-06-03"`
	WindowHours int       `json:"window_hours" binding:"min=0"`
}

type ClaimRequest struct {
	Token  string `json:"token" binding:"required"`
	Guests int    `json:"guests" binding:"required,min=1"`
}
