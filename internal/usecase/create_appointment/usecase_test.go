package create_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotsService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-SlotsService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-SlotsService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (p fixedTime) Now() time.Time { return p.now }

type fakeAvailabilityRepo struct {
	records map[int]domain.WeeklyAvailability
	err     error
}

func (r *fakeAvailabilityRepo) GetByDay(_ context.Context, day int) (*domain.WeeklyAvailability, error) {
	if r.err != nil {
		return nil, r.err
	}
	rec, ok := r.records[day]
	if !ok {
		return nil, availabilityRepo.ErrNotFound
	}
	return &rec, nil
}

type fakeServiceRepo struct {
	catalog map[string]int
}

func (r *fakeServiceRepo) GetByIDs(_ context.Context, ids []string) ([]domain.Service, error) {
	out := make([]domain.Service, 0, len(ids))
	for _, id := range ids {
		if d, ok := r.catalog[id]; ok {
			out = append(out, domain.Service{ID: id, DurationMinutes: d})
		}
	}
	return out, nil
}

type fakeAppointmentRepo struct {
	existing  []domain.Appointment
	created   []*domain.Appointment
	createErr error
}

func (r *fakeAppointmentRepo) GetActiveByDate(_ context.Context, date types.Date) ([]domain.Appointment, error) {
	var out []domain.Appointment
	for _, a := range r.existing {
		if a.Date == date {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	a.CreatedAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	r.created = append(r.created, a)
	return a, nil
}

type fakeTxManager struct {
	calls int
	err   error
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	if err := fn(ctx); err != nil {
		return err
	}
	return m.err
}

var monday = types.Date{Year: 2024, Month: time.March, Day: 11}

type fixture struct {
	appointments *fakeAppointmentRepo
	availability *fakeAvailabilityRepo
	tx           *fakeTxManager
	uc           *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		availability: &fakeAvailabilityRepo{records: map[int]domain.WeeklyAvailability{
			1: {DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", IsActive: true},
			2: {DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00", IsActive: false},
		}},
		appointments: &fakeAppointmentRepo{existing: []domain.Appointment{
			{ID: "a-1", Date: monday, Time: "10:00", ServiceIDs: []string{"facial"}, Status: domain.StatusConfirmed},
		}},
		tx: &fakeTxManager{},
	}
	services := &fakeServiceRepo{catalog: map[string]int{"facial": 60, "trim": 30}}

	f.uc = NewUseCase(f.availability, services, f.appointments, f.tx, nopLogger{})
	f.uc.timeProvider = fixedTime{now: time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)}
	return f
}

func validRequest() *Request {
	return &Request{
		Date:          monday,
		Time:          "11:00",
		ServiceIDs:    []string{"trim"},
		CustomerName:  "Ann",
		CustomerEmail: "ann@example.com",
	}
}

func TestExecuteCreatesAppointment(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.ServiceQuantities = map[string]int{"trim": 2}

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	_, parseErr := uuid.Parse(resp.ID)
	assert.NoError(t, parseErr)
	assert.Equal(t, []string{"trim", "trim"}, resp.ServiceIDs)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, 1, f.tx.calls)
	require.Len(t, f.appointments.created, 1)
}

func TestExecuteBackToBackIsAllowed(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.Time = "09:30" // 09:30-10:00 заканчивается ровно в начале a-1

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecuteOverlapIsRejected(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.Time = "10:30"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, f.appointments.created)
}

func TestExecuteLongTreatmentOverlapsLaterBooking(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.Time = "09:00"
	req.ServiceIDs = []string{"facial", "trim"} // 09:00-10:30

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecuteClosedDay(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.Date = types.Date{Year: 2024, Month: time.March, Day: 12}

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrClosed)

	req.Date = types.Date{Year: 2024, Month: time.March, Day: 15}
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestExecuteInvalidTimeSlot(t *testing.T) {
	f := newFixture()

	offGrid := validRequest()
	offGrid.Time = "11:15"
	_, err := f.uc.Execute(context.Background(), offGrid)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	tooLate := validRequest()
	tooLate.Time = "16:30"
	tooLate.ServiceIDs = []string{"facial"}
	_, err = f.uc.Execute(context.Background(), tooLate)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)

	beforeOpening := validRequest()
	beforeOpening.Time = "08:30"
	_, err = f.uc.Execute(context.Background(), beforeOpening)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecuteUnknownService(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.ServiceIDs = []string{"trim", "ghost"}

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecutePastDate(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.Date = types.Date{Year: 2024, Month: time.March, Day: 4}

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.Zero(t, f.tx.calls)
}

func TestExecuteValidation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *Request)
	}{
		{"missing date", func(r *Request) { r.Date = types.Date{} }},
		{"missing time", func(r *Request) { r.Time = "" }},
		{"bad time", func(r *Request) { r.Time = "7pm" }},
		{"no services", func(r *Request) { r.ServiceIDs = nil }},
		{"blank service", func(r *Request) { r.ServiceIDs = []string{" "} }},
		{"missing name", func(r *Request) { r.CustomerName = "  " }},
		{"bad email", func(r *Request) { r.CustomerEmail = "ann.example.com" }},
		{"huge quantity", func(r *Request) { r.ServiceQuantities = map[string]int{"trim": domain.MaxServiceQuantity + 1} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest()
			tt.modify(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, f.tx.calls)
		})
	}
}

func TestExecuteStoreFailures(t *testing.T) {
	t.Run("schedule", func(t *testing.T) {
		f := newFixture()
		f.availability.err = errors.New("connection refused")

		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("insert", func(t *testing.T) {
		f := newFixture()
		f.appointments.createErr = errors.New("unique violation")

		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("commit", func(t *testing.T) {
		f := newFixture()
		f.tx.err = errors.New("could not serialize access")

		_, err := f.uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestExpandServiceIDs(t *testing.T) {
	expanded, unique := expandServiceIDs(
		[]string{"facial", "trim", "facial"},
		map[string]int{"trim": 3, "facial": 0},
	)

	assert.Equal(t, []string{"facial", "trim", "trim", "trim"}, expanded)
	assert.Equal(t, []string{"facial", "trim"}, unique)
}
