package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInvalidDate возвращается, когда дата записи в прошлом
	ErrInvalidDate = errors.New("create_appointment: appointment date is in the past")

	// ErrServiceNotFound возвращается, когда одной из услуг нет в каталоге
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrClosed возвращается, когда в этот день недели запись не ведется
	ErrClosed = errors.New("create_appointment: closed on this date")

	// ErrInvalidTimeSlot возвращается, когда время не совпадает с сеткой слотов или процедура не помещается в день
	ErrInvalidTimeSlot = errors.New("create_appointment: invalid time slot")

	// ErrSlotNotAvailable возвращается, когда интервал пересекается с существующей записью
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
