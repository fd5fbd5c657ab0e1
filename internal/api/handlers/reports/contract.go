package reports

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

type ReportService interface {
	Monthly(ctx context.Context, year, month int, hallID *int64) (*domain.MonthlyReport, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
