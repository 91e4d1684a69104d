package response

import (
	"time"

	"cabin-reserve/internal/usecase/commands"

	"github.com/google/uuid"
)

type NotifyResponse struct {
	EntryID   uuid.UUID `json:"entryId"`
	UserID    uuid.UUID `json:"userId"`
	CabinID   uuid.UUID `json:"cabinId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func FromNotifyResult(r *commands.NotifyResult) *NotifyResponse {
	return &NotifyResponse{
		EntryID:   r.EntryID,
		UserID:    r.UserID,
		CabinID:   r.CabinID,
		Token:     r.Token,
		ExpiresAt: r.ExpiresAt,
	}
}

type ClaimResponse struct {
	EntryID   uuid.UUID `json:"entryId"`
	UserID    uuid.UUID `json:"userId"`
	CabinID   uuid.UUID `json:"cabinId"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	Guests    int       `json:"guests"`
	ClaimedAt time.Time `json:"claimedAt"`
}

func FromClaimResult(r *commands.ClaimResult) *ClaimResponse {
	resp := &ClaimResponse{
		EntryID:   r.Entry.ID(),
		UserID:    r.Entry.UserID(),
		CabinID:   r.Entry.CabinID(),
		StartDate: r.Entry.Stay().Start().Format(dateLayout),
		EndDate:   r.Entry.Stay().End().Format(dateLayout),
		Guests:    r.Guests,
	}
	if claimedAt := r.Entry.ClaimedAt(); claimedAt != nil {
		resp.ClaimedAt = *claimedAt
	}
	return resp
}
