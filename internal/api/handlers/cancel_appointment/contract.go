package cancel_appointment

import (
	"context"

	"github.com/m04kA/SMC-SlotsService/internal/service/appointments/models"
)

type AppointmentService interface {
	Cancel(ctx context.Context, id string) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
