package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-SlotsService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Пустой список услуг допустим: результатом будет пустой список слотов
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if len(req.ServiceIDs) > domain.MaxRequestedServices {
		return fmt.Errorf("%w: at most %d services per request", ErrInvalidInput, domain.MaxRequestedServices)
	}

	// Количество для id вне ServiceIDs игнорируется и не проверяется
	for _, id := range req.ServiceIDs {
		if qty := req.ServiceQuantities[id]; qty > domain.MaxServiceQuantity {
			return fmt.Errorf("%w: quantity for service %s exceeds %d", ErrInvalidInput, id, domain.MaxServiceQuantity)
		}
	}

	return nil
}
