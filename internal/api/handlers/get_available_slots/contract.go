package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type InventoryService interface {
	ListAvailableSlots(ctx context.Context, date time.Time, masterID int64) ([]types.TimeString, error)
	ListWorkingDays(ctx context.Context, horizonDays int) ([]time.Time, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
