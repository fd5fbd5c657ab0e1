package manage_schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

type InventoryService interface {
	AddWorkingDay(ctx context.Context, date time.Time) (int, error)
	CloseDay(ctx context.Context, date time.Time, closed bool) error
	RemoveWorkingDay(ctx context.Context, date time.Time) error
	ListDaySlots(ctx context.Context, date time.Time) ([]*domain.TimeSlot, error)
	AddTimeSlot(ctx context.Context, key domain.SlotKey) error
	RemoveTimeSlot(ctx context.Context, key domain.SlotKey) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
