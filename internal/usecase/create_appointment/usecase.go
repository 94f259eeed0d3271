package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SlotsService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-SlotsService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-SlotsService/pkg/types"
)

// UseCase use case для создания записи
type UseCase struct {
	availabilityRepo AvailabilityRepository
	serviceRepo      ServiceRepository
	appointmentRepo  AppointmentRepository
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	serviceRepo ServiceRepository,
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepo,
		serviceRepo:      serviceRepo,
		appointmentRepo:  appointmentRepo,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания записи
// Проверка пересечений и вставка выполняются в одной сериализуемой транзакции,
// поэтому из двух параллельных запросов на один слот успешным будет только один
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: date=%s, time=%s, services=%v", req.Date, req.Time, req.ServiceIDs)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не в прошлом
	if err := validateDate(req.Date, types.DateOf(uc.timeProvider.Now())); err != nil {
		uc.logger.Warn("CreateAppointment: date %s is in the past", req.Date)
		return nil, err
	}

	start, _ := req.Time.Minutes()
	serviceIDs, uniqueIDs := expandServiceIDs(req.ServiceIDs, req.ServiceQuantities)

	var result *domain.Appointment
	var total int

	// 3. Все чтения и вставка в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Рабочие часы дня
		dayStart, dayEnd, err := uc.workingHours(txCtx, req.Date)
		if err != nil {
			return err
		}

		// 3.2. Длительность процедуры. Все услуги должны существовать
		services, err := uc.serviceRepo.GetByIDs(txCtx, uniqueIDs)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get services: %v", err)
			return fmt.Errorf("%w: failed to get services: %w", ErrInternal, err)
		}
		durations := durationsOf(services)

		total = 0
		for _, id := range serviceIDs {
			d, ok := durations[id]
			if !ok {
				uc.logger.Warn("CreateAppointment: service %s not found", id)
				return fmt.Errorf("%w: %s", ErrServiceNotFound, id)
			}
			total += d
		}

		// 3.3. Время на сетке и в пределах рабочего дня
		if err := validateTimeSlot(start, dayStart, dayEnd, total); err != nil {
			uc.logger.Warn("CreateAppointment: %v", err)
			return err
		}

		// 3.4. Пересечения с существующими записями
		taken, err := uc.isTaken(txCtx, req.Date, domain.TimeInterval{StartMinutes: start, EndMinutes: start + total})
		if err != nil {
			return err
		}
		if taken {
			uc.logger.Warn("CreateAppointment: slot %s %s is taken", req.Date, req.Time)
			return ErrSlotNotAvailable
		}

		// 3.5. Сохраняем запись
		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			ID:            uuid.New().String(),
			Date:          req.Date,
			Time:          req.Time,
			ServiceIDs:    serviceIDs,
			Status:        domain.StatusPending,
			CustomerName:  req.CustomerName,
			CustomerEmail: req.CustomerEmail,
			CustomerPhone: req.CustomerPhone,
			Notes:         req.Notes,
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if !isBusinessError(err) && !errors.Is(err, ErrInternal) {
			uc.logger.Error("CreateAppointment: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %w", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateAppointment: created appointment id=%s", result.ID)

	return &Response{
		ID:              result.ID,
		Date:            result.Date,
		Time:            result.Time,
		ServiceIDs:      result.ServiceIDs,
		DurationMinutes: total,
		Status:          string(result.Status),
		CustomerName:    result.CustomerName,
		CustomerEmail:   result.CustomerEmail,
		CustomerPhone:   result.CustomerPhone,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
	}, nil
}

func (uc *UseCase) workingHours(ctx context.Context, date types.Date) (int, int, error) {
	record, err := uc.availabilityRepo.GetByDay(ctx, int(date.Weekday()))
	if errors.Is(err, availabilityRepo.ErrNotFound) {
		uc.logger.Warn("CreateAppointment: no schedule for weekday %d", date.Weekday())
		return 0, 0, ErrClosed
	}
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get schedule: %v", err)
		return 0, 0, fmt.Errorf("%w: failed to get schedule: %w", ErrInternal, err)
	}

	dayStart, dayEnd, ok := record.Window()
	if !ok {
		uc.logger.Warn("CreateAppointment: closed on %s", date)
		return 0, 0, ErrClosed
	}

	return dayStart, dayEnd, nil
}

func (uc *UseCase) isTaken(ctx context.Context, date types.Date, requested domain.TimeInterval) (bool, error) {
	appointments, err := uc.appointmentRepo.GetActiveByDate(ctx, date)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
		return false, fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
	}
	if len(appointments) == 0 {
		return false, nil
	}

	ids := make([]string, 0)
	seen := make(map[string]struct{})
	for i := range appointments {
		for _, id := range appointments[i].ServiceIDs {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}

	services, err := uc.serviceRepo.GetByIDs(ctx, ids)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to get booked services: %v", err)
		return false, fmt.Errorf("%w: failed to get booked services: %w", ErrInternal, err)
	}
	durations := durationsOf(services)

	for i := range appointments {
		interval, ok := appointments[i].Interval(durations)
		if !ok {
			uc.logger.Warn("CreateAppointment: appointment id=%s references missing services, skipped", appointments[i].ID)
			continue
		}
		if requested.Overlaps(interval) {
			return true, nil
		}
	}

	return false, nil
}

func isBusinessError(err error) bool {
	return errors.Is(err, ErrClosed) ||
		errors.Is(err, ErrServiceNotFound) ||
		errors.Is(err, ErrInvalidTimeSlot) ||
		errors.Is(err, ErrSlotNotAvailable)
}

func durationsOf(services []domain.Service) map[string]int {
	durations := make(map[string]int, len(services))
	for _, s := range services {
		durations[s.ID] = s.DurationMinutes
	}
	return durations
}
