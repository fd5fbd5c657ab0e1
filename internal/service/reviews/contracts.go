package reviews

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// ReviewRepository интерфейс репозитория отзывов
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	ExistsForBooking(ctx context.Context, userID int64, bookingID *int64) (bool, error)
	List(ctx context.Context, limit int, rating *int) ([]*domain.Review, error)
	Average(ctx context.Context, hallID *int64) (*domain.RatingSummary, error)
	Stats(ctx context.Context) ([]domain.RatingBucket, error)
	Delete(ctx context.Context, id int64) error
}

// BookingReader чтение записи, к которой привязывается отзыв
type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// AdminNotifier уведомление администраторов
type AdminNotifier interface {
	NotifyAdmins(ctx context.Context, text string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
