package domain

import (
	"time"

	"github.com/m04kA/SMC-SlotsService/pkg/types"
)

// AppointmentStatus статус записи
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment запись клиента на конкретные дату и время
// ServiceIDs может содержать одну услугу несколько раз (количество > 1)
type Appointment struct {
	ID            string
	Date          types.Date
	Time          types.TimeString
	ServiceIDs    []string
	Status        AppointmentStatus
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsCancelled возвращает true, если запись отменена
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// CanBeCancelled возвращает true, если запись еще можно отменить
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// TimeInterval полуинтервал [StartMinutes, EndMinutes) в минутах от полуночи
type TimeInterval struct {
	StartMinutes int
	EndMinutes   int
}

// Overlaps проверяет пересечение полуинтервалов.
// Касание границ (a.End == b.Start) пересечением не считается
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return i.StartMinutes < other.EndMinutes && other.StartMinutes < i.EndMinutes
}

// Interval вычисляет занятый записью полуинтервал по длительностям услуг каталога.
// ok = false, если список услуг пуст, какая-то услуга отсутствует в каталоге или время некорректно
func (a *Appointment) Interval(durations map[string]int) (TimeInterval, bool) {
	if len(a.ServiceIDs) == 0 {
		return TimeInterval{}, false
	}

	start, err := a.Time.Minutes()
	if err != nil {
		return TimeInterval{}, false
	}

	footprint := 0
	for _, id := range a.ServiceIDs {
		d, ok := durations[id]
		if !ok {
			return TimeInterval{}, false
		}
		footprint += d
	}

	return TimeInterval{StartMinutes: start, EndMinutes: start + footprint}, true
}
