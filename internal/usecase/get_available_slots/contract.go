package get_available_slots

import (
	"context"

	"github.com/m04kA/SMC-SlotsService/internal/domain"
	"github.com/m04kA/SMC-SlotsService/pkg/types"
)

// AvailabilityRepository интерфейс репозитория недельного расписания
type AvailabilityRepository interface {
	ListAll(ctx context.Context) ([]domain.WeeklyAvailability, error)
}

// ServiceRepository интерфейс каталога услуг
// Отсутствующие id не являются ошибкой, они просто не попадают в результат
type ServiceRepository interface {
	GetByIDs(ctx context.Context, ids []string) ([]domain.Service, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetActiveByDate возвращает неотмененные записи на дату
	GetActiveByDate(ctx context.Context, date types.Date) ([]domain.Appointment, error)
}

// MetricsRecorder получатель метрик расчета слотов
type MetricsRecorder interface {
	ObserveSlotLookup(outcome string, slots int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
