package domain

import "strconv"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MinRating          = 1
	MaxRating          = 5
	MaxNameLength      = 100
	MaxPhoneLength     = 32
	MaxReviewLength    = 1000
	MaxBlacklistReason = 500
	MaxMessageLength   = 4096 // лимит Telegram на текст сообщения
	DefaultReviewLimit = 20
	LowRatingThreshold = 3 // отзывы с такой оценкой и ниже пересылаются администраторам
)

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
