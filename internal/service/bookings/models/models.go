package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// CancelResult освобожденный слот после отмены
type CancelResult struct {
	BookingID int64
	UserID    int64
	MasterID  int64
	Date      time.Time
	Time      types.TimeString
}

// Response модели

// BookingResponse ответ с данными записи
type BookingResponse struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	ServiceID    int64     `json:"serviceId"`
	HallID       int64     `json:"hallId"`
	MasterID     int64     `json:"masterId"`
	Date         string    `json:"date"` // "2025-10-15"
	Time         string    `json:"time"` // "10:00"
	ServiceName  string    `json:"serviceName"`
	HallName     string    `json:"hallName"`
	MasterName   string    `json:"masterName"`
	ReminderSent bool      `json:"reminderSent"`
	CreatedAt    time.Time `json:"createdAt"`
}

// BookingListResponse ответ со списком записей
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// CancelResponse ответ на отмену записи
type CancelResponse struct {
	BookingID int64  `json:"bookingId"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	MasterID  int64  `json:"masterId"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:           b.ID,
		UserID:       b.UserID,
		Name:         b.Name,
		Phone:        b.Phone,
		ServiceID:    b.ServiceID,
		HallID:       b.HallID,
		MasterID:     b.MasterID,
		Date:         b.Date.Format(domain.DateFormat),
		Time:         b.Time.String(),
		ServiceName:  b.ServiceName,
		HallName:     b.HallName,
		MasterName:   b.MasterName,
		ReminderSent: b.ReminderSent,
		CreatedAt:    b.CreatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}

	return resp
}

// FromCancelResult конвертирует результат отмены в DTO
func FromCancelResult(r *CancelResult) *CancelResponse {
	return &CancelResponse{
		BookingID: r.BookingID,
		Date:      r.Date.Format(domain.DateFormat),
		Time:      r.Time.String(),
		MasterID:  r.MasterID,
	}
}
