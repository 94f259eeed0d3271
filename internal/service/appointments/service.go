package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SlotsService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-SlotsService/internal/infra/storage/appointments"
	"github.com/m04kA/SMC-SlotsService/internal/service/appointments/models"
)

// Service сервис для работы с записями
type Service struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Cancel отменяет запись. Отмененная запись перестает занимать интервал в расчете слотов
// Отменить можно только запись в статусе pending или confirmed
func (s *Service) Cancel(ctx context.Context, id string) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%s", id)

	if _, err := uuid.Parse(id); err != nil {
		s.logger.Warn("Cancel: invalid appointment id=%q", id)
		return nil, fmt.Errorf("%w: appointment id must be a UUID", ErrInvalidInput)
	}

	var result *domain.Appointment

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Строка блокируется до конца транзакции
		appointment, err := s.appointmentRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				s.logger.Warn("Cancel: appointment id=%s not found", id)
				return ErrAppointmentNotFound
			}
			s.logger.Error("Cancel: repository error for appointment id=%s: %v", id, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		if !appointment.CanBeCancelled() {
			s.logger.Warn("Cancel: appointment id=%s cannot be cancelled, status=%s", id, appointment.Status)
			return ErrCannotCancel
		}

		if err := s.appointmentRepo.UpdateStatus(txCtx, id, domain.StatusCancelled); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			s.logger.Error("Cancel: repository error for appointment id=%s: %v", id, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		appointment.Status = domain.StatusCancelled
		result = appointment
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) || errors.Is(err, ErrCannotCancel) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		s.logger.Error("Cancel: transaction failed for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%s", id)
	return models.FromDomainAppointment(result), nil
}
