package domain

import "time"

type Review struct {
	ID        int64
	UserID    int64
	Name      string
	Rating    int
	Text      string
	BookingID *int64
	CreatedAt time.Time
}

// RatingSummary средняя оценка и количество отзывов
type RatingSummary struct {
	Average float64
	Count   int
}

// RatingBucket количество отзывов с конкретной оценкой
type RatingBucket struct {
	Rating int
	Count  int
}
