package get_available_slots

import (
	getAvailableSlots "github.com/m04kA/SMC-SlotsService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SlotsService/pkg/types"
)

// TimeslotsRequest HTTP request model
type TimeslotsRequest struct {
	Date              string         `json:"date"` // "2024-03-11"
	ServiceIDs        []string       `json:"serviceIds"`
	ServiceQuantities map[string]int `json:"serviceQuantities,omitempty"`
}

// TimeslotsResponse HTTP response model
type TimeslotsResponse struct {
	Timeslots []Timeslot `json:"timeslots"`
}

// Timeslot модель временного слота
type Timeslot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// ToUseCaseRequest создает запрос use case. Дата разбирается как календарная, без часового пояса
func (r *TimeslotsRequest) ToUseCaseRequest() (*getAvailableSlots.Request, error) {
	date, err := types.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		Date:              date,
		ServiceIDs:        r.ServiceIDs,
		ServiceQuantities: r.ServiceQuantities,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *TimeslotsResponse {
	slots := make([]Timeslot, len(resp.Timeslots))
	for i, slot := range resp.Timeslots {
		slots[i] = Timeslot{
			Time:      slot.Time.String(),
			Available: slot.Available,
		}
	}

	return &TimeslotsResponse{Timeslots: slots}
}
