package get_day_availability

import (
	"time"

	"github.com/agendame/AGD-AvailabilityService/internal/domain"
)

// collectOccupiedIntervals нормализует два независимых источника занятого
// времени - записи клиентов и административные блоки - в единый список
// полуоткрытых интервалов [start, end) в минутах с начала суток.
//
// Записи: учитываются только неотменённые записи указанного мастера на дату,
// конец интервала = начало + длительность услуги (с запасным значением,
// когда длительность не удалось разрешить). Блоки: учитываются блоки на дату,
// применимые к мастеру (nil professionalID = блок для всех мастеров).
//
// Порядок результата не определён - генератор проверяет пересечения
// с каждым интервалом независимо.
func collectOccupiedIntervals(
	appointments []*domain.Appointment,
	blocks []*domain.TimeBlock,
	professionalID int64,
	date time.Time,
) []domain.OccupiedInterval {
	intervals := make([]domain.OccupiedInterval, 0, len(appointments)+len(blocks))

	for _, appt := range appointments {
		if !appt.Occupies() {
			continue
		}
		if appt.ProfessionalID != professionalID {
			continue
		}
		if !isSameDay(appt.Date, date) {
			continue
		}

		start, err := appt.StartTime.Minutes()
		if err != nil {
			// Одна битая запись не должна ломать генерацию всего дня
			continue
		}

		intervals = append(intervals, domain.OccupiedInterval{
			Start:  start,
			End:    start + appt.EffectiveDurationMinutes(),
			Source: domain.SourceAppointment,
		})
	}

	for _, block := range blocks {
		if !isSameDay(block.Date, date) {
			continue
		}
		if !block.AppliesTo(professionalID) {
			continue
		}

		start, err := block.StartTime.Minutes()
		if err != nil {
			continue
		}
		end, err := block.EndTime.Minutes()
		if err != nil {
			continue
		}
		if end <= start {
			continue
		}

		intervals = append(intervals, domain.OccupiedInterval{
			Start:  start,
			End:    end,
			Source: domain.SourceBlock,
		})
	}

	return intervals
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
