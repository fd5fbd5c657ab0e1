package manage_schedule

import (
	"errors"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var errInvalidSlot = errors.New("invalid slot")

// AddDayRequest HTTP request model
type AddDayRequest struct {
	Date string `json:"date"`
}

// AddDayResponse число созданных слотов
type AddDayResponse struct {
	Date         string `json:"date"`
	SlotsCreated int    `json:"slotsCreated"`
}

// CloseDayRequest HTTP request model
type CloseDayRequest struct {
	Closed *bool `json:"closed"`
}

// SlotRequest слот мастера
type SlotRequest struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	MasterID int64  `json:"masterId"`
}

// SlotResponse слот дня
type SlotResponse struct {
	ID       int64  `json:"id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	MasterID int64  `json:"masterId"`
	IsBooked bool   `json:"isBooked"`
	BookedBy *int64 `json:"bookedBy,omitempty"`
}

func (r *SlotRequest) ToKey() (domain.SlotKey, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return domain.SlotKey{}, errInvalidSlot
	}
	slotTime, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return domain.SlotKey{}, errInvalidSlot
	}
	if r.MasterID <= 0 {
		return domain.SlotKey{}, errInvalidSlot
	}
	return domain.SlotKey{Date: date, Time: slotTime, MasterID: r.MasterID}, nil
}

func FromSlots(slots []*domain.TimeSlot) []SlotResponse {
	resp := make([]SlotResponse, 0, len(slots))
	for _, s := range slots {
		resp = append(resp, SlotResponse{
			ID:       s.ID,
			Date:     s.Date.Format(domain.DateFormat),
			Time:     s.Time.String(),
			MasterID: s.MasterID,
			IsBooked: s.IsBooked,
			BookedBy: s.BookedBy,
		})
	}
	return resp
}
