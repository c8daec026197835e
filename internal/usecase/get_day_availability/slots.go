package get_day_availability

import (
	"github.com/agendame/AGD-AvailabilityService/internal/domain"
	"github.com/agendame/AGD-AvailabilityService/pkg/types"
)

// generateSlots обходит эффективное дневное окно с фиксированным шагом
// и для каждого кандидата выносит вердикт доступности.
//
// Проверки выполняются в строгом порядке приоритета, первая сработавшая
// определяет причину недоступности:
//  1. услуга не успевает до закрытия  - outside_operating_window
//  2. пересечение с перерывом         - on_break
//  3. пересечение с записью            - occupied
//  4. пересечение с админ. блоком      - blocked
//  5. слот уже прошёл (только сегодня) - past_cutoff
//
// Слоты эмитятся по возрастанию времени начала, для фиксированных входных
// данных результат детерминирован.
func generateSlots(
	day domain.EffectiveDay,
	stepMinutes int,
	serviceDurationMinutes int,
	occupied []domain.OccupiedInterval,
	isToday bool,
	nowMinutes int,
) []domain.Slot {
	if !day.IsOpen {
		return []domain.Slot{}
	}

	// Защита от нулевого/отрицательного шага - иначе цикл не продвинется
	if stepMinutes <= 0 {
		stepMinutes = domain.DefaultSlotStepMinutes
	}
	if serviceDurationMinutes <= 0 {
		serviceDurationMinutes = domain.DefaultServiceDurationMinutes
	}

	slots := make([]domain.Slot, 0, (day.Close-day.Open)/stepMinutes+1)

	for cursor := day.Open; cursor < day.Close; cursor += stepMinutes {
		slotEnd := cursor + serviceDurationMinutes

		slot := domain.Slot{
			StartTime:       types.NewTimeStringFromMinutes(cursor),
			DurationMinutes: serviceDurationMinutes,
		}

		switch {
		case slotEnd > day.Close:
			slot.Reason = domain.ReasonOutsideWindow

		case day.HasBreak && overlapsBreak(cursor, slotEnd, day.BreakStart, day.BreakEnd):
			slot.Reason = domain.ReasonOnBreak

		case overlapsSource(cursor, slotEnd, occupied, domain.SourceAppointment):
			slot.Reason = domain.ReasonOccupied

		case overlapsSource(cursor, slotEnd, occupied, domain.SourceBlock):
			slot.Reason = domain.ReasonBlocked

		case isToday && cursor <= nowMinutes:
			// Нестрогое сравнение: слот, начинающийся ровно в текущую
			// минуту, считается уже прошедшим
			slot.Reason = domain.ReasonPastCutoff

		default:
			slot.Available = true
		}

		slots = append(slots, slot)
	}

	return slots
}

// overlapsBreak проверяет пересечение слота [slotStart, slotEnd)
// с окном перерыва [breakStart, breakEnd).
//
// Три случая пересечения проверяются явно:
//   - слот начинается внутри перерыва
//   - слот заканчивается внутри перерыва
//   - слот целиком накрывает перерыв (длинная услуга поверх короткого перерыва)
//
// Граничные случаи: слот, заканчивающийся ровно в начало перерыва, и слот,
// начинающийся ровно в конец перерыва, пересечением НЕ считаются.
func overlapsBreak(slotStart, slotEnd, breakStart, breakEnd int) bool {
	startsInside := slotStart >= breakStart && slotStart < breakEnd
	endsInside := slotEnd > breakStart && slotEnd <= breakEnd
	spansBreak := slotStart < breakStart && slotEnd > breakEnd

	return startsInside || endsInside || spansBreak
}

// overlapsSource проверяет пересечение слота хотя бы с одним занятым
// интервалом указанного источника. Полуоткрытая семантика: интервалы,
// граничащие друг с другом, не пересекаются.
func overlapsSource(slotStart, slotEnd int, occupied []domain.OccupiedInterval, source domain.IntervalSource) bool {
	for _, interval := range occupied {
		if interval.Source != source {
			continue
		}
		if interval.Overlaps(slotStart, slotEnd) {
			return true
		}
	}
	return false
}
