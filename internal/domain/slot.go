package domain

import "github.com/agendame/AGD-AvailabilityService/pkg/types"

// UnavailableReason причина недоступности слота, закрытое перечисление.
// У недоступного слота всегда ровно одна причина.
type UnavailableReason string

const (
	// ReasonOccupied слот пересекается с существующей записью
	ReasonOccupied UnavailableReason = "occupied"

	// ReasonOnBreak слот пересекается с перерывом (обед)
	ReasonOnBreak UnavailableReason = "on_break"

	// ReasonPastCutoff слот уже прошёл (дата запроса - сегодня)
	ReasonPastCutoff UnavailableReason = "past_cutoff"

	// ReasonBlocked слот пересекается с административным блоком
	ReasonBlocked UnavailableReason = "blocked"

	// ReasonOutsideWindow услуга не успевает закончиться до закрытия
	ReasonOutsideWindow UnavailableReason = "outside_operating_window"
)

// Slot один кандидат на время начала записи с вердиктом доступности.
// Слоты генерируются заново на каждый запрос и нигде не хранятся.
type Slot struct {
	StartTime       types.TimeString
	DurationMinutes int
	Available       bool
	Reason          UnavailableReason // пустая строка для доступного слота
}

// Period период суток для группировки слотов в сводке
type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
	PeriodEvening   Period = "evening"
)

// PeriodOf классифицирует час начала слота по периоду суток
func PeriodOf(hour int) Period {
	switch {
	case hour < MorningEndHour:
		return PeriodMorning
	case hour < AfternoonEndHour:
		return PeriodAfternoon
	default:
		return PeriodEvening
	}
}
