package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Booking запись клиента к мастеру
// Клиент может иметь не более одной записи
type Booking struct {
	ID        int64
	UserID    int64 // Telegram ID клиента
	Name      string
	Phone     string
	ServiceID int64
	HallID    int64
	MasterID  int64
	Date      time.Time
	Time      types.TimeString

	// Денормализованные данные на момент записи
	ServiceName string
	HallName    string
	MasterName  string

	ReminderSent bool
	CreatedAt    time.Time
}

// AppointmentAt момент начала визита в часовом поясе салона
func (b *Booking) AppointmentAt(loc *time.Location) (time.Time, error) {
	return b.Time.On(b.Date, loc)
}

// SlotKey слот, который занимает запись
func (b *Booking) SlotKey() SlotKey {
	return SlotKey{Date: b.Date, Time: b.Time, MasterID: b.MasterID}
}

// IsActiveOn запись активна, пока дата визита не раньше today
// Сравниваются календарные даты, часовой пояс значения не имеет
func (b *Booking) IsActiveOn(today time.Time) bool {
	return b.Date.Format(DateFormat) >= today.Format(DateFormat)
}
