package get_day_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agendame/AGD-AvailabilityService/internal/domain"
	"github.com/agendame/AGD-AvailabilityService/internal/integrations/directoryservice"
	scheduleRepo "github.com/agendame/AGD-AvailabilityService/internal/infra/storage/schedule"
)

// Результаты генерации для метрик
const (
	resultOpen   = "open"
	resultClosed = "closed"
)

// UseCase use case получения дневной доступности мастера.
// Держит только зависимости - сам движок (резолвер окна, сборщик интервалов,
// генератор слотов, сводка) состоит из чистых функций и не имеет состояния,
// поэтому Execute можно вызывать конкурентно без какой-либо синхронизации.
type UseCase struct {
	scheduleRepo    ScheduleRepository
	appointmentRepo AppointmentRepository
	blockRepo       BlockRepository
	directoryClient DirectoryServiceClient
	clock           Clock
	metrics         SlotsMetrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// metrics может быть nil, если метрики выключены.
func NewUseCase(
	scheduleRepo ScheduleRepository,
	appointmentRepo AppointmentRepository,
	blockRepo BlockRepository,
	directoryClient DirectoryServiceClient,
	metrics SlotsMetrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		blockRepo:       blockRepo,
		directoryClient: directoryClient,
		clock:           NewSystemClock(nil),
		metrics:         metrics,
		logger:          logger,
	}
}

// WithClock заменяет часы (для тестов и для таймзоны бизнеса)
func (uc *UseCase) WithClock(clock Clock) *UseCase {
	uc.clock = clock
	return uc
}

// Execute выполняет use case получения дневной доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDayAvailability: business=%d, professional=%d, duration=%d, date=%s",
		req.BusinessID, req.ProfessionalID, req.ServiceDurationMinutes, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetDayAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бизнес: проверка существования, состав мастеров, таймзона
	business, err := uc.directoryClient.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, directoryservice.ErrBusinessNotFound) {
			uc.logger.Warn("GetDayAvailability: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetDayAvailability: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	if !business.HasProfessional(req.ProfessionalID) {
		uc.logger.Warn("GetDayAvailability: professional id=%d not found in business id=%d",
			req.ProfessionalID, req.BusinessID)
		return nil, ErrProfessionalNotFound
	}

	// 3. Фиксируем текущий момент один раз на весь запрос,
	// в гражданском календаре таймзоны бизнеса
	now, today := uc.localNow(business.Timezone)

	// 4. Получаем недельное расписание бизнеса.
	// Отсутствующая конфигурация - не ошибка: день считается полностью закрытым.
	schedule, err := uc.scheduleRepo.GetByBusiness(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Info("GetDayAvailability: no schedule configured for business=%d, treating as closed", req.BusinessID)
			return uc.respondClosed(req), nil
		}
		uc.logger.Error("GetDayAvailability: failed to get schedule for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	// 5. Получаем override-ы, только если бизнес их использует
	var overrides map[domain.Weekday]domain.WeekdayOverride
	if schedule.UseWeekdayOverrides {
		overrides, err = uc.scheduleRepo.GetOverrides(ctx, req.BusinessID)
		if err != nil {
			uc.logger.Error("GetDayAvailability: failed to get overrides for business=%d: %v", req.BusinessID, err)
			return nil, fmt.Errorf("%w: failed to get weekday overrides: %v", ErrInternal, err)
		}
	}

	// 6. Резолвим эффективное дневное окно
	day := resolveEffectiveDay(schedule, overrides, req.Date)
	if !day.IsOpen {
		uc.logger.Info("GetDayAvailability: business=%d is closed on %s",
			req.BusinessID, req.Date.Format(domain.DateFormat))
		return uc.respondClosed(req), nil
	}

	// 7. Получаем записи мастера на дату
	appointments, err := uc.appointmentRepo.GetForProfessionalOnDate(ctx, req.BusinessID, req.ProfessionalID, req.Date)
	if err != nil {
		uc.logger.Error("GetDayAvailability: failed to get appointments: business=%d, professional=%d: %v",
			req.BusinessID, req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 8. Получаем административные блоки на дату
	blocks, err := uc.blockRepo.ListForDate(ctx, req.BusinessID, req.Date)
	if err != nil {
		uc.logger.Error("GetDayAvailability: failed to get time blocks: business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get time blocks: %v", ErrInternal, err)
	}

	// 9. Нормализуем записи и блоки в занятые интервалы
	occupied := collectOccupiedIntervals(appointments, blocks, req.ProfessionalID, req.Date)

	// 10. Генерируем слоты
	slots := generateSlots(
		day,
		schedule.SlotStepMinutes,
		req.ServiceDurationMinutes,
		occupied,
		isSameDay(req.Date, today),
		minutesOfDay(now),
	)

	// 11. Строим сводку
	summary := summarize(slots)

	if uc.metrics != nil {
		uc.metrics.ObserveSlotsGenerated(resultOpen, len(slots))
	}

	uc.logger.Info("GetDayAvailability: generated %d slots (%d available) for business=%d, professional=%d, date=%s",
		len(slots), summary.Available, req.BusinessID, req.ProfessionalID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:                   req.Date,
		BusinessID:             req.BusinessID,
		ProfessionalID:         req.ProfessionalID,
		ServiceDurationMinutes: req.ServiceDurationMinutes,
		IsOpen:                 true,
		Slots:                  slots,
		Summary:                summary,
	}, nil
}

func (uc *UseCase) respondClosed(req *Request) *Response {
	if uc.metrics != nil {
		uc.metrics.ObserveSlotsGenerated(resultClosed, 0)
	}
	return closedResponse(req)
}

// localNow возвращает текущий момент и сегодняшнюю дату в таймзоне бизнеса.
// Пустая или неизвестная таймзона - используется таймзона часов как есть.
func (uc *UseCase) localNow(timezone string) (now, today time.Time) {
	now = uc.clock.Now()
	today = uc.clock.Today()

	if timezone == "" {
		return now, today
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		uc.logger.Warn("GetDayAvailability: unknown business timezone %q, using clock timezone", timezone)
		return now, today
	}

	now = now.In(loc)
	today = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	return now, today
}

// minutesOfDay возвращает количество минут с начала суток для момента времени
func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
