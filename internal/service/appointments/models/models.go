package models

import (
	"time"

	"github.com/m04kA/SMC-SlotsService/internal/domain"
)

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID            string    `json:"id"`
	Date          string    `json:"date"` // "2024-03-11"
	Time          string    `json:"time"` // "10:00"
	ServiceIDs    []string  `json:"serviceIds"`
	Status        string    `json:"status"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail,omitempty"`
	CustomerPhone string    `json:"customerPhone,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// FromDomainAppointment конвертирует domain.Appointment в ответ
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:            a.ID,
		Date:          a.Date.String(),
		Time:          a.Time.String(),
		ServiceIDs:    a.ServiceIDs,
		Status:        string(a.Status),
		CustomerName:  a.CustomerName,
		CustomerEmail: a.CustomerEmail,
		CustomerPhone: a.CustomerPhone,
		Notes:         a.Notes,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}
