package services

import (
	"context"

	"github.com/m04kA/SMC-SlotsService/internal/domain"
)

// ServiceRepository источник истины для каталога услуг
type ServiceRepository interface {
	GetByIDs(ctx context.Context, ids []string) ([]domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
