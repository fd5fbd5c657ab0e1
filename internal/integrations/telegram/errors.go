package telegram

import "errors"

var (
	// ErrRecipientUnavailable возвращается, когда пользователь заблокировал бота или чат не найден
	ErrRecipientUnavailable = errors.New("telegram client: recipient unavailable")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("telegram client: internal error")
)
