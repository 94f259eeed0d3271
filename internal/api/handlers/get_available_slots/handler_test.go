package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/SMC-SlotsService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SlotsService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (u *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	u.got = req
	return u.resp, u.err
}

func TestHandlePost(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{Timeslots: []getAvailableSlots.Slot{
		{Time: "09:00", Available: true},
		{Time: "09:30", Available: false},
	}}}
	h := NewHandler(uc, nopLogger{})

	body := `{"date":"2024-03-11","serviceIds":["facial","trim"],"serviceQuantities":{"trim":2}}`
	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/timeslots", strings.NewReader(body)))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"timeslots":[{"time":"09:00","available":true},{"time":"09:30","available":false}]}`, w.Body.String())

	require.NotNil(t, uc.got)
	assert.Equal(t, types.Date{Year: 2024, Month: time.March, Day: 11}, uc.got.Date)
	assert.Equal(t, []string{"facial", "trim"}, uc.got.ServiceIDs)
	assert.Equal(t, map[string]int{"trim": 2}, uc.got.ServiceQuantities)
}

func TestHandlePostEmptyResult(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{Timeslots: []getAvailableSlots.Slot{}}}
	h := NewHandler(uc, nopLogger{})

	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/timeslots", strings.NewReader(`{"date":"2024-03-10","serviceIds":[]}`)))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"timeslots":[]}`, w.Body.String())
}

func TestHandleQuery(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{Timeslots: []getAvailableSlots.Slot{{Time: "10:00", Available: true}}}}
	h := NewHandler(uc, nopLogger{})

	w := httptest.NewRecorder()
	h.HandleQuery(w, httptest.NewRequest(http.MethodGet, "/api/v1/timeslots?date=2024-03-11&serviceId=facial&serviceId=trim", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, []string{"facial", "trim"}, uc.got.ServiceIDs)
	assert.Nil(t, uc.got.ServiceQuantities)
}

func TestHandleBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed body", `{"date":`},
		{"missing date", `{"serviceIds":["facial"]}`},
		{"invalid date", `{"date":"2024-02-30","serviceIds":["facial"]}`},
		{"timestamp instead of date", `{"date":"2024-03-11T00:00:00Z","serviceIds":["facial"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			h := NewHandler(uc, nopLogger{})

			w := httptest.NewRecorder()
			h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/timeslots", strings.NewReader(tt.body)))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandleUseCaseErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid input", fmt.Errorf("%w: too many services", getAvailableSlots.ErrInvalidInput), http.StatusBadRequest},
		{"store unreachable", fmt.Errorf("%w: connection refused", getAvailableSlots.ErrInternal), http.StatusInternalServerError},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, nopLogger{})

			w := httptest.NewRecorder()
			h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/timeslots", strings.NewReader(`{"date":"2024-03-11","serviceIds":["facial"]}`)))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.NotContains(t, w.Body.String(), "timeslots")
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}
