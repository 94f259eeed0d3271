package update_weekly_availability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotsService/internal/service/availability"
	"github.com/m04kA/SMC-SlotsService/internal/service/availability/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	day int
	req *models.UpdateDayRequest
	err error
}

func (s *fakeService) UpdateDay(_ context.Context, day int, req *models.UpdateDayRequest) (*models.DayResponse, error) {
	s.day, s.req = day, req
	if s.err != nil {
		return nil, s.err
	}
	return &models.DayResponse{DayOfWeek: day, StartTime: req.StartTime, EndTime: req.EndTime, IsActive: req.IsActive}, nil
}

func serve(svc *fakeService, day, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/availability/{dayOfWeek}", NewHandler(svc, nopLogger{}).Handle).Methods(http.MethodPut)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/api/v1/availability/"+day, strings.NewReader(body)))
	return w
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	w := serve(svc, "1", `{"startTime":"09:00","endTime":"17:00","isActive":true}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.day)
	require.NotNil(t, svc.req)
	assert.True(t, svc.req.IsActive)
	assert.JSONEq(t, `{"dayOfWeek":1,"startTime":"09:00","endTime":"17:00","isActive":true}`, w.Body.String())
}

func TestHandleBadRequests(t *testing.T) {
	tests := []struct {
		name string
		day  string
		body string
		err  error
	}{
		{"non numeric day", "monday", `{"isActive":false}`, nil},
		{"malformed body", "1", `{"isActive":`, nil},
		{"day out of range", "9", `{"isActive":false}`, availability.ErrInvalidDayOfWeek},
		{"inverted range", "1", `{"startTime":"17:00","endTime":"09:00","isActive":true}`, availability.ErrInvalidTimeRange},
		{"bad time", "1", `{"startTime":"9am","endTime":"17:00","isActive":true}`, availability.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&fakeService{err: tt.err}, tt.day, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestHandleInternalError(t *testing.T) {
	w := serve(&fakeService{err: errors.New("db down")}, "1", `{"isActive":false}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
