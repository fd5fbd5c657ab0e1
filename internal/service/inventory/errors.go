package inventory

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("inventory: invalid input data")

	// ErrDayNotFound возвращается, когда рабочий день не найден
	ErrDayNotFound = errors.New("inventory: working day not found")

	// ErrDayHasBookings возвращается при попытке удалить день, на который есть записи
	ErrDayHasBookings = errors.New("inventory: working day has bookings")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("inventory: slot not found")

	// ErrSlotBooked возвращается при попытке удалить занятый слот
	ErrSlotBooked = errors.New("inventory: slot is booked")

	// ErrMasterNotFound возвращается, когда мастер не найден или деактивирован
	ErrMasterNotFound = errors.New("inventory: master not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("inventory: internal error")
)
