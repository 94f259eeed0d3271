package get_available_slots

import "errors"

var (
	// ErrInvalidInput некорректный запрос: нет даты, слишком много услуг или большое количество
	ErrInvalidInput = errors.New("get_available_slots: invalid input")

	// ErrInternal ошибка чтения из хранилища
	ErrInternal = errors.New("get_available_slots: internal error")
)
