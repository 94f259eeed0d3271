package create_appointment

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SlotsService/internal/domain"
	"github.com/m04kA/SMC-SlotsService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Time.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidInput)
	}

	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %v", ErrInvalidInput, err)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}

	if len(req.ServiceIDs) > domain.MaxRequestedServices {
		return fmt.Errorf("%w: at most %d services per appointment", ErrInvalidInput, domain.MaxRequestedServices)
	}

	for _, id := range req.ServiceIDs {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("%w: empty service id", ErrInvalidInput)
		}
		if qty := req.ServiceQuantities[id]; qty > domain.MaxServiceQuantity {
			return fmt.Errorf("%w: quantity for service %s exceeds %d", ErrInvalidInput, id, domain.MaxServiceQuantity)
		}
	}

	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxCustomerNameLen {
		return fmt.Errorf("%w: customerName is too long", ErrInvalidInput)
	}

	if req.CustomerEmail != "" && !strings.Contains(req.CustomerEmail, "@") {
		return fmt.Errorf("%w: invalid customerEmail", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата записи не в прошлом
func validateDate(date, today types.Date) error {
	if date.Before(today) {
		return ErrInvalidDate
	}
	return nil
}

// validateTimeSlot проверяет, что start лежит на сетке слотов от начала дня
// и что процедура длительностью total заканчивается не позже конца дня
func validateTimeSlot(start, dayStart, dayEnd, total int) error {
	if start < dayStart || start+total > dayEnd {
		return fmt.Errorf("%w: outside working hours", ErrInvalidTimeSlot)
	}
	if (start-dayStart)%domain.SlotStepMinutes != 0 {
		return fmt.Errorf("%w: must be a multiple of %d minutes from opening", ErrInvalidTimeSlot, domain.SlotStepMinutes)
	}
	return nil
}

// expandServiceIDs раскрывает количество в повторы id, без дублей во входном списке
// Отсутствующее или неположительное количество считается за 1
func expandServiceIDs(ids []string, quantities map[string]int) (expanded []string, unique []string) {
	seen := make(map[string]struct{}, len(ids))

	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)

		qty := quantities[id]
		if qty < 1 {
			qty = 1
		}
		for i := 0; i < qty; i++ {
			expanded = append(expanded, id)
		}
	}

	return expanded, unique
}
