package reports

import "errors"

var (
	// ErrInvalidPeriod возвращается при некорректном годе или месяце
	ErrInvalidPeriod = errors.New("reports: invalid period")

	// ErrExport возвращается при ошибке формирования файла
	ErrExport = errors.New("reports: export failed")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reports: internal error")
)
