package get_day_availability

import (
	"time"

	"github.com/agendame/AGD-AvailabilityService/internal/domain"
	"github.com/agendame/AGD-AvailabilityService/pkg/types"
)

// resolveEffectiveDay превращает недельную конфигурацию бизнеса и дату
// в эффективное дневное окно (open/close/перерыв в минутах с начала суток).
//
// Правила:
//   - schedule == nil (конфигурация отсутствует) - день закрыт
//   - override-ы включены: день недели без записи в карте закрыт,
//     запись целиком заменяет open/close/перерыв дефолтного расписания
//   - override-ы выключены: день недели вне workingWeekdays закрыт
//   - некорректное окно (open >= close, перерыв вне окна) - день закрыт,
//     ошибки наружу не отдаются
func resolveEffectiveDay(
	schedule *domain.WeeklySchedule,
	overrides map[domain.Weekday]domain.WeekdayOverride,
	date time.Time,
) domain.EffectiveDay {
	if schedule == nil {
		return domain.ClosedDay()
	}

	weekday := domain.WeekdayOf(date)

	var open, close types.TimeString
	var breakStart, breakEnd *types.TimeString

	if schedule.UseWeekdayOverrides {
		override, ok := overrides[weekday]
		if !ok {
			return domain.ClosedDay()
		}
		open, close = override.Open, override.Close
		breakStart, breakEnd = override.BreakStart, override.BreakEnd
	} else {
		if !schedule.IsWorkingWeekday(weekday) {
			return domain.ClosedDay()
		}
		open, close = schedule.Open, schedule.Close
		breakStart, breakEnd = schedule.BreakStart, schedule.BreakEnd
	}

	return buildEffectiveDay(open, close, breakStart, breakEnd)
}

// buildEffectiveDay конвертирует дневное окно в минуты и проверяет инварианты.
// Любое нарушение дает закрытый день, чтобы в генератор никогда не попало
// окно с отрицательной длиной.
func buildEffectiveDay(open, close types.TimeString, breakStart, breakEnd *types.TimeString) domain.EffectiveDay {
	openMin, err := open.Minutes()
	if err != nil {
		return domain.ClosedDay()
	}
	closeMin, err := close.Minutes()
	if err != nil {
		return domain.ClosedDay()
	}
	if openMin >= closeMin {
		return domain.ClosedDay()
	}

	day := domain.EffectiveDay{
		IsOpen: true,
		Open:   openMin,
		Close:  closeMin,
	}

	// Перерыв учитывается только если заданы обе границы
	if breakStart == nil || breakEnd == nil {
		return day
	}

	bsMin, err := breakStart.Minutes()
	if err != nil {
		return domain.ClosedDay()
	}
	beMin, err := breakEnd.Minutes()
	if err != nil {
		return domain.ClosedDay()
	}
	if bsMin >= beMin || bsMin < openMin || beMin > closeMin {
		return domain.ClosedDay()
	}

	day.HasBreak = true
	day.BreakStart = bsMin
	day.BreakEnd = beMin
	return day
}
