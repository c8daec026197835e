package domain

// Default configuration values
const (
	// DefaultSlotStepMinutes шаг генерации слотов, если в расписании задан некорректный
	DefaultSlotStepMinutes = 20

	// DefaultServiceDurationMinutes запасная длительность услуги,
	// когда длительность не удалось получить из записи
	DefaultServiceDurationMinutes = 30
)

// Business validation constants
const (
	MinSlotStepMinutes        = 5
	MaxSlotStepMinutes        = 240
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours
	MaxBlockReasonLength      = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Period boundaries (hour of day)
const (
	MorningEndHour   = 12 // слоты до 12:00 - утро
	AfternoonEndHour = 18 // слоты до 18:00 - день, позже - вечер
)

// CancelledStatuses список статусов, при которых запись не занимает время мастера.
// Используется при сборе занятых интервалов.
var CancelledStatuses = []AppointmentStatus{
	StatusCancelled,
}

// OccupyingStatuses список статусов, при которых запись занимает время мастера
var OccupyingStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusCompleted,
	StatusNoShow,
}
