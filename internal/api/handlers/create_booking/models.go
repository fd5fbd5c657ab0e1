package create_booking

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid time")
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	HallID    int64  `json:"hallId"`
	ServiceID int64  `json:"serviceId"`
	MasterID  int64  `json:"masterId"`
	Date      string `json:"date"` // "2025-10-15"
	Time      string `json:"time"` // "10:00"
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// userID берется из контекста, а не из тела запроса
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, errInvalidDate
	}

	slotTime, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, errInvalidTime
	}

	return &createBooking.Request{
		UserID:    userID,
		Name:      r.Name,
		Phone:     r.Phone,
		ServiceID: r.ServiceID,
		HallID:    r.HallID,
		MasterID:  r.MasterID,
		Date:      date,
		Time:      slotTime,
	}, nil
}
