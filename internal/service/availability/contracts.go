package availability

import (
	"context"

	"github.com/m04kA/SMC-SlotsService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория недельного расписания
type AvailabilityRepository interface {
	ListAll(ctx context.Context) ([]domain.WeeklyAvailability, error)
	Upsert(ctx context.Context, record *domain.WeeklyAvailability) (*domain.WeeklyAvailability, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
