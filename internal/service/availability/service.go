package availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SlotsService/internal/domain"
	"github.com/m04kA/SMC-SlotsService/internal/service/availability/models"
	"github.com/m04kA/SMC-SlotsService/pkg/types"
)

// Service сервис администрирования недельного расписания
type Service struct {
	repo   AvailabilityRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(repo AvailabilityRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetWeek возвращает расписание на все 7 дней. Дни без записи отдаются как выходные
func (s *Service) GetWeek(ctx context.Context) (*models.WeekResponse, error) {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error("GetWeek: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetWeek - repository error: %v", ErrInternal, err)
	}

	byDay := make(map[int]domain.WeeklyAvailability, len(records))
	for _, r := range records {
		byDay[r.DayOfWeek] = r
	}

	days := make([]models.DayResponse, 0, domain.DaysInWeek)
	for day := 0; day < domain.DaysInWeek; day++ {
		record, ok := byDay[day]
		if !ok {
			record = domain.Closed(day)
		}
		days = append(days, models.FromDomain(&record))
	}

	return &models.WeekResponse{Days: days}, nil
}

// UpdateDay создает или заменяет расписание дня недели
func (s *Service) UpdateDay(ctx context.Context, dayOfWeek int, req *models.UpdateDayRequest) (*models.DayResponse, error) {
	s.logger.Info("UpdateDay: day=%d, start=%s, end=%s, active=%t", dayOfWeek, req.StartTime, req.EndTime, req.IsActive)

	record, err := toDomain(dayOfWeek, req)
	if err != nil {
		s.logger.Warn("UpdateDay: validation failed: %v", err)
		return nil, err
	}

	saved, err := s.repo.Upsert(ctx, record)
	if err != nil {
		s.logger.Error("UpdateDay: repository error for day=%d: %v", dayOfWeek, err)
		return nil, fmt.Errorf("%w: UpdateDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateDay: successfully saved day=%d", dayOfWeek)
	resp := models.FromDomain(saved)
	return &resp, nil
}

// toDomain проверяет запрос. Для выходного время необязательно,
// для рабочего дня обязательно и start < end
func toDomain(dayOfWeek int, req *models.UpdateDayRequest) (*domain.WeeklyAvailability, error) {
	if !domain.IsValidDayOfWeek(dayOfWeek) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDayOfWeek, dayOfWeek)
	}

	record := &domain.WeeklyAvailability{DayOfWeek: dayOfWeek, IsActive: req.IsActive}

	if req.StartTime != "" {
		start, err := types.NewTimeStringFromString(req.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
		}
		record.StartTime = start
	}
	if req.EndTime != "" {
		end, err := types.NewTimeStringFromString(req.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
		}
		record.EndTime = end
	}

	if !req.IsActive {
		return record, nil
	}

	if record.StartTime.IsZero() || record.EndTime.IsZero() {
		return nil, fmt.Errorf("%w: startTime and endTime are required for an active day", ErrInvalidInput)
	}
	if !record.StartTime.IsBefore(record.EndTime) {
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidTimeRange)
	}

	return record, nil
}
