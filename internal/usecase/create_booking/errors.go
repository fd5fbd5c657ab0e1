package create_booking

import "errors"

var (
	// ErrBlacklisted возвращается, когда клиент в черном списке
	ErrBlacklisted = errors.New("create_booking: user is blacklisted")

	// ErrActiveBookingExists возвращается, когда у клиента уже есть активная запись
	ErrActiveBookingExists = errors.New("create_booking: user already has an active booking")

	// ErrDayNotAvailable возвращается, когда день закрыт или не является рабочим
	ErrDayNotAvailable = errors.New("create_booking: day is not available")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrMasterNotFound возвращается, когда мастер не найден или деактивирован
	ErrMasterNotFound = errors.New("create_booking: master not found")

	// ErrHallNotFound возвращается, когда зал не найден
	ErrHallNotFound = errors.New("create_booking: hall not found")

	// ErrHallMismatch возвращается, когда услуга или мастер не относятся к выбранному залу
	ErrHallMismatch = errors.New("create_booking: service or master does not belong to the hall")

	// ErrSlotNotAvailable возвращается, когда слот уже занят или не существует
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrTooLateToBook возвращается при записи на прошедшее время
	ErrTooLateToBook = errors.New("create_booking: slot is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
