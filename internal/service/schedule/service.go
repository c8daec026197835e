package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/agendame/AGD-AvailabilityService/internal/domain"
	scheduleRepo "github.com/agendame/AGD-AvailabilityService/internal/infra/storage/schedule"
	directoryClient "github.com/agendame/AGD-AvailabilityService/internal/integrations/directoryservice"
	"github.com/agendame/AGD-AvailabilityService/internal/service/schedule/models"
)

// Service сервис для работы с конфигурацией расписаний
type Service struct {
	scheduleRepo    ScheduleRepository
	directoryClient DirectoryServiceClient
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	directoryClient DirectoryServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo:    scheduleRepo,
		directoryClient: directoryClient,
		txManager:       txManager,
		logger:          logger,
	}
}

// Get получает конфигурацию расписания бизнеса вместе с override-ами.
// Публичный метод - доступен всем.
func (s *Service) Get(ctx context.Context, businessID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("Get: fetching schedule for business=%d", businessID)

	schedule, err := s.scheduleRepo.GetByBusiness(ctx, businessID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("Get: schedule for business=%d not found", businessID)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("Get: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	var overrides map[domain.Weekday]domain.WeekdayOverride
	if schedule.UseWeekdayOverrides {
		overrides, err = s.scheduleRepo.GetOverrides(ctx, businessID)
		if err != nil {
			s.logger.Error("Get: failed to get overrides for business=%d: %v", businessID, err)
			return nil, fmt.Errorf("%w: Get - overrides repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Get: successfully fetched schedule for business=%d (%d overrides)", businessID, len(overrides))
	return models.FromDomainSchedule(schedule, overrides), nil
}

// Update создает или полностью заменяет расписание бизнеса.
// Доступно только менеджерам бизнеса. Расписание и override-ы валидируются
// на границе: некорректная конфигурация отклоняется целиком и не попадает в БД.
// Замена расписания и override-ов выполняется в одной транзакции.
func (s *Service) Update(ctx context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Update: updating schedule for business=%d by user=%d", req.BusinessID, req.UserID)

	// 1. Конвертируем запрос в domain модели (проверка форматов времени и ключей дней недели)
	schedule, err := req.ToDomainSchedule()
	if err != nil {
		s.logger.Warn("Update: invalid schedule payload for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	overrides, err := req.ToDomainOverrides()
	if err != nil {
		s.logger.Warn("Update: invalid overrides payload for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Валидируем инварианты (open < close, перерыв внутри окна, шаг слотов)
	if err := schedule.Validate(); err != nil {
		s.logger.Warn("Update: schedule validation failed for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	for i := range overrides {
		if err := overrides[i].Validate(); err != nil {
			s.logger.Warn("Update: override validation failed for business=%d: %v", req.BusinessID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	// 3. Проверяем существование бизнеса и права менеджера
	business, err := s.directoryClient.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrBusinessNotFound) {
			s.logger.Warn("Update: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("Update: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	if !business.HasManager(req.UserID) {
		s.logger.Warn("Update: user=%d is not a manager of business=%d", req.UserID, req.BusinessID)
		return nil, ErrAccessDenied
	}

	// 4. Атомарно заменяем расписание и override-ы
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.scheduleRepo.Upsert(txCtx, schedule); err != nil {
			return fmt.Errorf("upsert schedule: %w", err)
		}
		if err := s.scheduleRepo.ReplaceOverrides(txCtx, req.BusinessID, overrides); err != nil {
			return fmt.Errorf("replace overrides: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Update: transaction failed for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: Update - transaction error: %v", ErrInternal, err)
	}

	overridesMap := make(map[domain.Weekday]domain.WeekdayOverride, len(overrides))
	for _, override := range overrides {
		overridesMap[override.Weekday] = override
	}

	s.logger.Info("Update: successfully updated schedule for business=%d (%d overrides)",
		req.BusinessID, len(overrides))
	return models.FromDomainSchedule(schedule, overridesMap), nil
}
