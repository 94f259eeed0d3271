package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SlotsService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-SlotsService/internal/usecase/get_available_slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingDate        = "дата обязательна"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/timeslots
// Body: {"date": "YYYY-MM-DD", "serviceIds": [...], "serviceQuantities": {...}}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req TimeslotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /timeslots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	h.execute(w, r, "POST /timeslots", &req)
}

// HandleQuery GET /api/v1/timeslots?date=YYYY-MM-DD&serviceId=a&serviceId=b
// Количество в query-форме не передается и равно 1
func (h *Handler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := TimeslotsRequest{
		Date:       query.Get("date"),
		ServiceIDs: query["serviceId"],
	}

	h.execute(w, r, "GET /timeslots", &req)
}

func (h *Handler) execute(w http.ResponseWriter, r *http.Request, route string, req *TimeslotsRequest) {
	if req.Date == "" {
		h.logger.Warn("%s - Missing date", route)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("%s - Invalid date format: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("%s - Invalid input: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("%s - Failed to get slots: date=%s, error=%v", route, req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("%s - Slots retrieved successfully: date=%s, slots_count=%d", route, req.Date, len(response.Timeslots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
