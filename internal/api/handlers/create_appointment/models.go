package create_appointment

import (
	"time"

	createAppointment "github.com/m04kA/SMC-SlotsService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-SlotsService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	Date              string         `json:"date"` // "2024-03-11"
	Time              string         `json:"time"` // "10:00"
	ServiceIDs        []string       `json:"serviceIds"`
	ServiceQuantities map[string]int `json:"serviceQuantities,omitempty"`
	CustomerName      string         `json:"customerName"`
	CustomerEmail     string         `json:"customerEmail,omitempty"`
	CustomerPhone     string         `json:"customerPhone,omitempty"`
	Notes             *string        `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              string   `json:"id"`
	Date            string   `json:"date"`
	Time            string   `json:"time"`
	ServiceIDs      []string `json:"serviceIds"`
	DurationMinutes int      `json:"durationMinutes"`
	Status          string   `json:"status"`
	CustomerName    string   `json:"customerName"`
	CustomerEmail   string   `json:"customerEmail,omitempty"`
	CustomerPhone   string   `json:"customerPhone,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
	CreatedAt       string   `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	date, err := types.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		Date:              date,
		Time:              startTime,
		ServiceIDs:        r.ServiceIDs,
		ServiceQuantities: r.ServiceQuantities,
		CustomerName:      r.CustomerName,
		CustomerEmail:     r.CustomerEmail,
		CustomerPhone:     r.CustomerPhone,
		Notes:             r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		Date:            resp.Date.String(),
		Time:            resp.Time.String(),
		ServiceIDs:      resp.ServiceIDs,
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		CustomerName:    resp.CustomerName,
		CustomerEmail:   resp.CustomerEmail,
		CustomerPhone:   resp.CustomerPhone,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
