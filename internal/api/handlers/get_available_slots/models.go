package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date     string   `json:"date"`
	MasterID int64    `json:"masterId"`
	Slots    []string `json:"slots"` // ["10:00", "11:00"]
}

// WorkingDaysResponse открытые рабочие дни
type WorkingDaysResponse struct {
	Days []string `json:"days"`
}

func FromSlots(date time.Time, masterID int64, slots []types.TimeString) *AvailableSlotsResponse {
	resp := &AvailableSlotsResponse{
		Date:     date.Format(domain.DateFormat),
		MasterID: masterID,
		Slots:    make([]string, 0, len(slots)),
	}
	for _, slot := range slots {
		resp.Slots = append(resp.Slots, slot.String())
	}
	return resp
}

func FromDays(days []time.Time) *WorkingDaysResponse {
	resp := &WorkingDaysResponse{Days: make([]string, 0, len(days))}
	for _, day := range days {
		resp.Days = append(resp.Days, day.Format(domain.DateFormat))
	}
	return resp
}
