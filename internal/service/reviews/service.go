package reviews

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	reviewRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/review"
)

// AddRequest запрос на добавление отзыва
type AddRequest struct {
	UserID    int64
	Name      string
	Rating    int
	Text      string
	BookingID *int64
}

// Service сервис отзывов
type Service struct {
	reviewRepo  ReviewRepository
	bookingRepo BookingReader
	admins      AdminNotifier
	logger      Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(reviewRepo ReviewRepository, bookingRepo BookingReader, admins AdminNotifier, logger Logger) *Service {
	return &Service{
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
		admins:      admins,
		logger:      logger,
	}
}

// Add сохраняет отзыв. По одной записи клиент оставляет не более одного отзыва
func (s *Service) Add(ctx context.Context, req *AddRequest) (*domain.Review, error) {
	if req.Rating < domain.MinRating || req.Rating > domain.MaxRating {
		return nil, ErrInvalidRating
	}
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.Name)
	text := strings.TrimSpace(req.Text)
	if name == "" || len([]rune(name)) > domain.MaxNameLength {
		return nil, fmt.Errorf("%w: name must be 1..%d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if len([]rune(text)) > domain.MaxReviewLength {
		return nil, fmt.Errorf("%w: text is longer than %d characters", ErrInvalidInput, domain.MaxReviewLength)
	}

	if req.BookingID != nil {
		booking, err := s.bookingRepo.GetByID(ctx, *req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return nil, ErrBookingNotFound
			}
			s.logger.Error("Add: failed to get booking id=%d: %v", *req.BookingID, err)
			return nil, fmt.Errorf("%w: Add - get booking: %v", ErrInternal, err)
		}
		if booking.UserID != req.UserID {
			s.logger.Warn("Add: user=%d tried to review booking id=%d of user=%d", req.UserID, booking.ID, booking.UserID)
			return nil, ErrAccessDenied
		}
	}

	exists, err := s.reviewRepo.ExistsForBooking(ctx, req.UserID, req.BookingID)
	if err != nil {
		s.logger.Error("Add: failed to check existing review: %v", err)
		return nil, fmt.Errorf("%w: Add - check existing: %v", ErrInternal, err)
	}
	if exists && req.BookingID != nil {
		return nil, ErrAlreadyReviewed
	}

	review, err := s.reviewRepo.Create(ctx, &domain.Review{
		UserID:    req.UserID,
		Name:      name,
		Rating:    req.Rating,
		Text:      text,
		BookingID: req.BookingID,
	})
	if err != nil {
		s.logger.Error("Add: failed to create review: %v", err)
		return nil, fmt.Errorf("%w: Add - create review: %v", ErrInternal, err)
	}

	s.logger.Info("Add: review id=%d by user=%d, rating=%d", review.ID, review.UserID, review.Rating)

	if review.Rating <= domain.LowRatingThreshold {
		s.admins.NotifyAdmins(ctx, lowRatingMessage(review))
	}

	return review, nil
}

func lowRatingMessage(r *domain.Review) string {
	comment := r.Text
	if comment == "" {
		comment = "Без комментария"
	}
	return fmt.Sprintf("⚠️ <b>Новый отзыв (оценка %d/5)</b>\n\n👤 %s\n🆔 <code>%d</code>\n%s\nКомментарий: %s",
		r.Rating, html.EscapeString(r.Name), r.UserID, strings.Repeat("⭐", r.Rating), html.EscapeString(comment))
}

// List возвращает последние отзывы. limit <= 0 означает значение по умолчанию
func (s *Service) List(ctx context.Context, limit int, rating *int) ([]*domain.Review, error) {
	if limit <= 0 {
		limit = domain.DefaultReviewLimit
	}
	if rating != nil && (*rating < domain.MinRating || *rating > domain.MaxRating) {
		return nil, ErrInvalidRating
	}

	reviews, err := s.reviewRepo.List(ctx, limit, rating)
	if err != nil {
		s.logger.Error("List: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return reviews, nil
}

// Average средняя оценка, опционально по залу
func (s *Service) Average(ctx context.Context, hallID *int64) (*domain.RatingSummary, error) {
	summary, err := s.reviewRepo.Average(ctx, hallID)
	if err != nil {
		s.logger.Error("Average: %v", err)
		return nil, fmt.Errorf("%w: Average - repository error: %v", ErrInternal, err)
	}
	return summary, nil
}

// Stats распределение отзывов по оценкам
func (s *Service) Stats(ctx context.Context) ([]domain.RatingBucket, error) {
	buckets, err := s.reviewRepo.Stats(ctx)
	if err != nil {
		s.logger.Error("Stats: %v", err)
		return nil, fmt.Errorf("%w: Stats - repository error: %v", ErrInternal, err)
	}
	return buckets, nil
}

// Delete удаляет отзыв
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, reviewRepo.ErrReviewNotFound) {
			return ErrReviewNotFound
		}
		s.logger.Error("Delete: review id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}
	s.logger.Info("Delete: review id=%d deleted", id)
	return nil
}
