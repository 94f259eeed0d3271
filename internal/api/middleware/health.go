package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SlotsService/internal/api/handlers"
)

const readyCheckTimeout = 2 * time.Second

// Pinger зависимость, доступность которой проверяет /readyz
type Pinger interface {
	PingContext(ctx context.Context) error
}

type healthResponse struct {
	Status string `json:"status"`
}

// Liveness GET /healthz
func Liveness(w http.ResponseWriter, _ *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// Readiness GET /readyz, 503 если БД не отвечает
func Readiness(db Pinger, logger Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			logger.Warn("GET /readyz - Database is not reachable: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, "база данных недоступна")
			return
		}

		handlers.RespondJSON(w, http.StatusOK, healthResponse{Status: "ok"})
	}
}
