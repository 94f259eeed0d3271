package update_weekly_availability

import (
	"context"

	"github.com/m04kA/SMC-SlotsService/internal/service/availability/models"
)

type AvailabilityService interface {
	UpdateDay(ctx context.Context, dayOfWeek int, req *models.UpdateDayRequest) (*models.DayResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
