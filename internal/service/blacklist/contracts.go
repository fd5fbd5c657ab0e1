package blacklist

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Repository интерфейс репозитория черного списка
type Repository interface {
	Upsert(ctx context.Context, entry *domain.BlacklistEntry) error
	Delete(ctx context.Context, userID int64) error
	Get(ctx context.Context, userID int64) (*domain.BlacklistEntry, error)
	List(ctx context.Context) ([]*domain.BlacklistEntry, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
