package availability

import "errors"

var (
	// ErrInvalidDayOfWeek возвращается, когда день недели вне диапазона 0..6
	ErrInvalidDayOfWeek = errors.New("invalid day of week")

	// ErrInvalidTimeRange возвращается, когда у активного дня start >= end
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
