package get_day_availability

import (
	"context"
	"time"

	"github.com/agendame/AGD-AvailabilityService/internal/domain"
	"github.com/agendame/AGD-AvailabilityService/internal/integrations/directoryservice"
)

// DirectoryServiceClient интерфейс клиента для DirectoryService
type DirectoryServiceClient interface {
	GetBusiness(ctx context.Context, businessID int64) (*directoryservice.Business, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	// GetByBusiness получает недельное расписание бизнеса
	GetByBusiness(ctx context.Context, businessID int64) (*domain.WeeklySchedule, error)
	// GetOverrides получает карту override-ов по дням недели
	GetOverrides(ctx context.Context, businessID int64) (map[domain.Weekday]domain.WeekdayOverride, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetForProfessionalOnDate получает неотменённые записи мастера на дату
	// вместе с длительностью привязанной услуги
	GetForProfessionalOnDate(ctx context.Context, businessID, professionalID int64, date time.Time) ([]*domain.Appointment, error)
}

// BlockRepository интерфейс репозитория административных блоков
type BlockRepository interface {
	// ListForDate получает все блоки бизнеса на дату (фильтрация по мастеру - на стороне сборщика)
	ListForDate(ctx context.Context, businessID int64, date time.Time) ([]*domain.TimeBlock, error)
}

// Clock абстракция времени. Инжектится явно, чтобы движок оставался
// чистой функцией и тестировался с фиксированными часами.
type Clock interface {
	// Now возвращает текущий момент в таймзоне бизнеса
	Now() time.Time
	// Today возвращает сегодняшнюю календарную дату в таймзоне бизнеса
	Today() time.Time
}

// SlotsMetrics интерфейс для метрик генерации слотов (опционален, допускает nil)
type SlotsMetrics interface {
	ObserveSlotsGenerated(result string, count int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// SystemClock реальные часы для production
type SystemClock struct {
	loc *time.Location
}

// NewSystemClock создает системные часы в указанной таймзоне.
// nil - таймзона процесса.
func NewSystemClock(loc *time.Location) *SystemClock {
	if loc == nil {
		loc = time.Local
	}
	return &SystemClock{loc: loc}
}

// Now возвращает текущее время
func (c *SystemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Today возвращает сегодняшнюю дату с обнулённым временем
func (c *SystemClock) Today() time.Time {
	now := c.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.loc)
}
