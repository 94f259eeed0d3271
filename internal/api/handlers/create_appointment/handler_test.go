package create_appointment

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

	createAppointment "github.com/m04kA/SMC-SlotsService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-SlotsService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got *createAppointment.Request
	err error
}

func (u *fakeUseCase) Execute(_ context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
	u.got = req
	if u.err != nil {
		return nil, u.err
	}
	return &createAppointment.Response{
		ID:              "4b4f6b0e-7a55-4b1f-9d55-8f6f3a0f1a11",
		Date:            req.Date,
		Time:            req.Time,
		ServiceIDs:      req.ServiceIDs,
		DurationMinutes: 30,
		Status:          "pending",
		CustomerName:    req.CustomerName,
		CreatedAt:       time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}, nil
}

const validBody = `{"date":"2024-03-11","time":"11:00","serviceIds":["trim"],"customerName":"Ann"}`

func post(h *Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body)))
	return w
}

func TestHandleCreated(t *testing.T) {
	uc := &fakeUseCase{}
	w := post(NewHandler(uc, nopLogger{}), validBody)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{
		"id":"4b4f6b0e-7a55-4b1f-9d55-8f6f3a0f1a11",
		"date":"2024-03-11",
		"time":"11:00",
		"serviceIds":["trim"],
		"durationMinutes":30,
		"status":"pending",
		"customerName":"Ann",
		"createdAt":"2024-03-01T12:00:00Z"
	}`, w.Body.String())

	require.NotNil(t, uc.got)
	assert.Equal(t, types.Date{Year: 2024, Month: time.March, Day: 11}, uc.got.Date)
	assert.Equal(t, types.TimeString("11:00"), uc.got.Time)
}

func TestHandleInvalidBody(t *testing.T) {
	for _, body := range []string{``, `{"date":`, `{"date":"2024-03-11","time":"25:00","serviceIds":["trim"],"customerName":"Ann"}`} {
		uc := &fakeUseCase{}
		w := post(NewHandler(uc, nopLogger{}), body)

		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Nil(t, uc.got)
	}
}

func TestHandleUseCaseErrors(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
	}{
		{createAppointment.ErrSlotNotAvailable, http.StatusConflict},
		{fmt.Errorf("%w: ghost", createAppointment.ErrServiceNotFound), http.StatusNotFound},
		{createAppointment.ErrClosed, http.StatusBadRequest},
		{createAppointment.ErrInvalidTimeSlot, http.StatusBadRequest},
		{createAppointment.ErrInvalidDate, http.StatusBadRequest},
		{createAppointment.ErrInvalidInput, http.StatusBadRequest},
		{createAppointment.ErrInternal, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := post(NewHandler(&fakeUseCase{err: tt.err}, nopLogger{}), validBody)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}
