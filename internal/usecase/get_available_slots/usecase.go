package get_available_slots

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-SlotsService/internal/domain"
	"github.com/m04kA/SMC-SlotsService/pkg/metrics"
)

// UseCase use case расчета слотов на дату
type UseCase struct {
	availabilityRepo AvailabilityRepository
	serviceRepo      ServiceRepository
	appointmentRepo  AppointmentRepository
	metrics          MetricsRecorder
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
// recorder может быть nil
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	serviceRepo ServiceRepository,
	appointmentRepo AppointmentRepository,
	recorder MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		serviceRepo:      serviceRepo,
		appointmentRepo:  appointmentRepo,
		metrics:          recorder,
		logger:           logger,
	}
}

// dayData результат параллельного чтения хранилища
type dayData struct {
	schedule          []domain.WeeklyAvailability
	requestedServices []domain.Service
	appointments      []domain.Appointment
	bookedServices    []domain.Service
}

// Execute выполняет use case получения слотов
// Возвращает либо ответ (возможно с пустым списком), либо ошибку, но не оба сразу
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		uc.observe(metrics.OutcomeError, 0)
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: date=%s, services=%v", req.Date, req.ServiceIDs)

	// 2. Нормализуем список услуг. Без услуг считать нечего
	requested := normalizeRequestedServices(req.ServiceIDs, req.ServiceQuantities)
	if len(requested) == 0 {
		uc.logger.Info("GetAvailableSlots: no services requested for %s", req.Date)
		return uc.empty(metrics.OutcomeNoServices), nil
	}

	// 3. Читаем расписание, услуги и записи дня параллельно
	data, err := uc.load(ctx, req, requested)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load data for %s: %v", req.Date, err)
		uc.observe(metrics.OutcomeError, 0)
		return nil, fmt.Errorf("%w: failed to load data: %w", ErrInternal, err)
	}

	// 4. Рабочие часы
	dayStart, dayEnd, status := lookupWorkingHours(req.Date, data.schedule)
	switch status {
	case dayClosed:
		uc.logger.Info("GetAvailableSlots: closed on %s (weekday %d)", req.Date, req.Date.Weekday())
		return uc.empty(metrics.OutcomeClosed), nil
	case dayMisconfigured:
		uc.logger.Warn("GetAvailableSlots: weekday %d has start >= end, treating as closed", req.Date.Weekday())
		return uc.empty(metrics.OutcomeClosed), nil
	}

	// 5. Длительность процедуры
	total, unknown := resolveDuration(requested, durationsOf(data.requestedServices))
	if len(unknown) > 0 {
		uc.logger.Warn("GetAvailableSlots: unknown services ignored: %v", unknown)
	}
	if total <= 0 {
		uc.logger.Info("GetAvailableSlots: total duration is zero for services %v", req.ServiceIDs)
		return uc.empty(metrics.OutcomeNoServices), nil
	}

	// 6. Занятые интервалы
	booked, skipped := buildBookedIntervals(data.appointments, durationsOf(data.bookedServices))
	for _, id := range skipped {
		uc.logger.Warn("GetAvailableSlots: appointment id=%s references missing services, skipped", id)
	}

	// 7. Генерация слотов
	slots, err := generateSlots(dayStart, dayEnd, total, booked)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		uc.observe(metrics.OutcomeError, 0)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	if len(slots) == 0 {
		uc.logger.Info("GetAvailableSlots: %d min does not fit into %s", total, req.Date)
		return uc.empty(metrics.OutcomeNoFit), nil
	}

	uc.logger.Info("GetAvailableSlots: %d slots for %s, duration %d min, %d booked intervals",
		len(slots), req.Date, total, len(booked))
	uc.observe(metrics.OutcomeOK, len(slots))

	return &Response{Timeslots: slots}, nil
}

// load выполняет три независимых чтения. Первая ошибка отменяет остальные
func (uc *UseCase) load(ctx context.Context, req *Request, requested []requestedService) (*dayData, error) {
	var data dayData
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		schedule, err := uc.availabilityRepo.ListAll(gctx)
		if err != nil {
			return fmt.Errorf("weekly availability: %w", err)
		}
		data.schedule = schedule
		return nil
	})

	g.Go(func() error {
		ids := make([]string, len(requested))
		for i, rs := range requested {
			ids[i] = rs.id
		}

		services, err := uc.serviceRepo.GetByIDs(gctx, ids)
		if err != nil {
			return fmt.Errorf("requested services: %w", err)
		}
		data.requestedServices = services
		return nil
	})

	g.Go(func() error {
		appointments, err := uc.appointmentRepo.GetActiveByDate(gctx, req.Date)
		if err != nil {
			return fmt.Errorf("appointments: %w", err)
		}
		data.appointments = appointments

		services, err := uc.serviceRepo.GetByIDs(gctx, referencedServiceIDs(appointments))
		if err != nil {
			return fmt.Errorf("booked services: %w", err)
		}
		data.bookedServices = services
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &data, nil
}

func (uc *UseCase) empty(outcome string) *Response {
	uc.observe(outcome, 0)
	return &Response{Timeslots: []Slot{}}
}

func (uc *UseCase) observe(outcome string, slots int) {
	if uc.metrics != nil {
		uc.metrics.ObserveSlotLookup(outcome, slots)
	}
}

func durationsOf(services []domain.Service) map[string]int {
	durations := make(map[string]int, len(services))
	for _, s := range services {
		durations[s.ID] = s.DurationMinutes
	}
	return durations
}

// referencedServiceIDs собирает уникальные id услуг всех записей
func referencedServiceIDs(appointments []domain.Appointment) []string {
	seen := make(map[string]struct{})
	ids := make([]string, 0)

	for i := range appointments {
		for _, id := range appointments[i].ServiceIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	return ids
}
