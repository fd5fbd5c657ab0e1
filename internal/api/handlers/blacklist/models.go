package blacklist

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// AddRequest HTTP request model
type AddRequest struct {
	UserID int64  `json:"userId"`
	Reason string `json:"reason"`
}

type EntryResponse struct {
	UserID  int64     `json:"userId"`
	Reason  string    `json:"reason"`
	AddedAt time.Time `json:"addedAt"`
}

func FromEntry(e *domain.BlacklistEntry) EntryResponse {
	return EntryResponse{UserID: e.UserID, Reason: e.Reason, AddedAt: e.AddedAt}
}

func FromEntries(entries []*domain.BlacklistEntry) []EntryResponse {
	resp := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, FromEntry(e))
	}
	return resp
}
