package blacklist

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

type BlacklistService interface {
	Add(ctx context.Context, userID int64, reason string) (*domain.BlacklistEntry, error)
	Remove(ctx context.Context, userID int64) error
	List(ctx context.Context) ([]*domain.BlacklistEntry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
