package reminders

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных данных для планирования
	ErrInvalidInput = errors.New("reminders: invalid input data")

	// ErrStopped возвращается при планировании после остановки планировщика
	ErrStopped = errors.New("reminders: scheduler stopped")

	// ErrInternal возвращается при внутренних ошибках планировщика
	ErrInternal = errors.New("reminders: internal error")
)
