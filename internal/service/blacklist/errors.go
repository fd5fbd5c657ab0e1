package blacklist

import "errors"

var (
	// ErrNotBlacklisted возвращается, когда клиента нет в черном списке
	ErrNotBlacklisted = errors.New("blacklist: user is not blacklisted")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("blacklist: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("blacklist: internal error")
)
