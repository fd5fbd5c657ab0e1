package reviews

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	reviewsService "github.com/m04kA/SMC-SalonBooking/internal/service/reviews"
)

type ReviewService interface {
	Add(ctx context.Context, req *reviewsService.AddRequest) (*domain.Review, error)
	List(ctx context.Context, limit int, rating *int) ([]*domain.Review, error)
	Average(ctx context.Context, hallID *int64) (*domain.RatingSummary, error)
	Stats(ctx context.Context) ([]domain.RatingBucket, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
