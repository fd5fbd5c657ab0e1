package reports

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Repository интерфейс репозитория отчетов
type Repository interface {
	Monthly(ctx context.Context, year, month int, hallID *int64) ([]domain.ReportLine, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
