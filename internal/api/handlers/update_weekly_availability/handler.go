package update_weekly_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotsService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotsService/internal/service/availability"
	"github.com/m04kA/SMC-SlotsService/internal/service/availability/models"
)

const (
	msgInvalidDayOfWeek   = "некорректный день недели, ожидается число от 0 (воскресенье) до 6"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные расписания"
	msgInvalidTimeRange   = "время начала должно быть раньше времени окончания"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/availability/{dayOfWeek}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dayStr := mux.Vars(r)["dayOfWeek"]

	dayOfWeek, err := strconv.Atoi(dayStr)
	if err != nil {
		h.logger.Warn("PUT /availability/{day} - Invalid day of week: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDayOfWeek)
		return
	}

	var req models.UpdateDayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /availability/{day} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateDay(r.Context(), dayOfWeek, &req)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidDayOfWeek):
			h.logger.Warn("PUT /availability/{day} - Day out of range: %d", dayOfWeek)
			handlers.RespondBadRequest(w, msgInvalidDayOfWeek)

		case errors.Is(err, availability.ErrInvalidTimeRange):
			h.logger.Warn("PUT /availability/{day} - Invalid time range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("PUT /availability/{day} - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /availability/{day} - Failed to update day=%d: %v", dayOfWeek, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /availability/{day} - Day updated successfully: day=%d", dayOfWeek)
	handlers.RespondJSON(w, http.StatusOK, result)
}
