package review

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

// Repository репозиторий отзывов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отзывов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет отзыв
func (r *Repository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reviews").
		Columns("user_id", "name", "rating", "text", "booking_id").
		Values(review.UserID, review.Name, review.Rating, review.Text, review.BookingID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&review.ID, &review.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return review, nil
}

// ExistsForBooking проверяет, оставлял ли клиент отзыв по записи
// Если bookingID == nil, проверяется наличие любого отзыва клиента
func (r *Repository) ExistsForBooking(ctx context.Context, userID int64, bookingID *int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	inner := psqlbuilder.Select("1").
		From("reviews").
		Where(squirrel.Eq{"user_id": userID})
	if bookingID != nil {
		inner = inner.Where(squirrel.Eq{"booking_id": *bookingID})
	}

	innerSQL, innerArgs, err := inner.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsForBooking - build inner query: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Select().
		Column(squirrel.Expr("EXISTS ("+innerSQL+")", innerArgs...)).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsForBooking - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: ExistsForBooking - scan result: %v", ErrScanRow, err)
	}

	return exists, nil
}

// List возвращает последние отзывы, опционально только с указанной оценкой
func (r *Repository) List(ctx context.Context, limit int, rating *int) ([]*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "user_id", "name", "rating", "text", "booking_id", "created_at").
		From("reviews").
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit))

	if rating != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"rating": *rating})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		var (
			rv        domain.Review
			bookingID sql.NullInt64
		)
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.Name, &rv.Rating, &rv.Text, &bookingID, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: List - scan review: %v", ErrScanRow, err)
		}
		if bookingID.Valid {
			rv.BookingID = &bookingID.Int64
		}
		reviews = append(reviews, &rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return reviews, nil
}

// Average возвращает среднюю оценку и количество отзывов
// Если hallID указан, учитываются только отзывы по записям этого зала
func (r *Repository) Average(ctx context.Context, hallID *int64) (*domain.RatingSummary, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COALESCE(AVG(r.rating), 0)", "COUNT(*)").
		From("reviews r")

	if hallID != nil {
		selectBuilder = selectBuilder.
			Join("bookings b ON b.id = r.booking_id").
			Where(squirrel.Eq{"b.hall_id": *hallID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Average - build select query: %v", ErrBuildQuery, err)
	}

	var summary domain.RatingSummary
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&summary.Average, &summary.Count); err != nil {
		return nil, fmt.Errorf("%w: Average - scan summary: %v", ErrScanRow, err)
	}

	return &summary, nil
}

// Stats возвращает количество отзывов по каждой оценке, от высокой к низкой
func (r *Repository) Stats(ctx context.Context) ([]domain.RatingBucket, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("rating", "COUNT(*)").
		From("reviews").
		GroupBy("rating").
		OrderBy("rating DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	buckets := make([]domain.RatingBucket, 0, 5)
	for rows.Next() {
		var b domain.RatingBucket
		if err := rows.Scan(&b.Rating, &b.Count); err != nil {
			return nil, fmt.Errorf("%w: Stats - scan bucket: %v", ErrScanRow, err)
		}
		buckets = append(buckets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Stats - rows error: %v", ErrScanRow, err)
	}

	return buckets, nil
}

// Delete удаляет отзыв
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reviews").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReviewNotFound
	}

	return nil
}
