package get_day_availability

import "github.com/agendame/AGD-AvailabilityService/internal/domain"

// summarize строит агрегированную сводку по последовательности слотов:
// общие счётчики доступных/недоступных и разбивку по периодам суток
// (утро - до 12:00, день - до 18:00, далее вечер).
// Чистая функция, используется только презентационными слоями.
func summarize(slots []domain.Slot) Summary {
	var summary Summary

	for _, slot := range slots {
		hour, err := slot.StartTime.Hour()
		if err != nil {
			// Слот с некорректным временем в сводку не попадает
			continue
		}

		counts := summary.ByPeriod.countsFor(domain.PeriodOf(hour))
		if slot.Available {
			summary.Available++
			counts.Available++
		} else {
			summary.Unavailable++
			counts.Unavailable++
		}
	}

	return summary
}

// countsFor возвращает счётчики периода для инкремента
func (b *PeriodBreakdown) countsFor(period domain.Period) *PeriodCounts {
	switch period {
	case domain.PeriodMorning:
		return &b.Morning
	case domain.PeriodAfternoon:
		return &b.Afternoon
	default:
		return &b.Evening
	}
}
