package reminder_failures

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

type ReminderScheduler interface {
	Failures(ctx context.Context, limit int) ([]*domain.ReminderFailure, error)
	Pending() int
}

type Logger interface {
	Error(format string, v ...interface{})
}
