package notifications

import "errors"

var (
	// ErrInvalidInput возвращается при пустом или слишком длинном сообщении
	ErrInvalidInput = errors.New("notifications: invalid input data")

	// ErrDeliveryFailed возвращается, когда сообщение не доставлено
	ErrDeliveryFailed = errors.New("notifications: delivery failed")
)
