package reviews

import "errors"

var (
	// ErrInvalidRating возвращается при оценке вне диапазона 1..5
	ErrInvalidRating = errors.New("reviews: rating must be between 1 and 5")

	// ErrAlreadyReviewed возвращается при повторном отзыве по той же записи
	ErrAlreadyReviewed = errors.New("reviews: already reviewed")

	// ErrBookingNotFound возвращается, когда запись для отзыва не найдена
	ErrBookingNotFound = errors.New("reviews: booking not found")

	// ErrAccessDenied возвращается при отзыве на чужую запись
	ErrAccessDenied = errors.New("reviews: access denied")

	// ErrReviewNotFound возвращается, когда отзыв не найден
	ErrReviewNotFound = errors.New("reviews: review not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reviews: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reviews: internal error")
)
