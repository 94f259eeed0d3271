package middleware

import "github.com/gorilla/mux"

// Register подключает общие middleware роутера.
// Метрики снаружи recovery, чтобы восстановленные 500 тоже попадали в http_requests_total.
// recorder может быть nil, тогда метрики не пишутся
func Register(r *mux.Router, recorder MetricsRecorder, logger Logger) {
	if recorder != nil {
		r.Use(MetricsMiddleware(recorder))
	}
	r.Use(Recovery(logger))
}
