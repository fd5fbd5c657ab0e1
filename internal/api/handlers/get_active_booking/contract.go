package get_active_booking

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

type BookingService interface {
	GetActiveForCustomer(ctx context.Context, userID int64) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
