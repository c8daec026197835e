package get_day_availability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agendame/AGD-AvailabilityService/internal/domain"
	"github.com/agendame/AGD-AvailabilityService/pkg/types"
)

func slot(startMinutes int, available bool) domain.Slot {
	return domain.Slot{
		StartTime:       types.NewTimeStringFromMinutes(startMinutes),
		DurationMinutes: 30,
		Available:       available,
	}
}

func TestSummarize_CountsAndPeriods(t *testing.T) {
	slots := []domain.Slot{
		slot(9*60, true),      // утро
		slot(11*60+40, true),  // утро: начало до 12:00
		slot(12*60, false),    // день: ровно 12:00
		slot(15*60, true),     // день
		slot(17*60+40, false), // день: начало до 18:00
		slot(18*60, true),     // вечер: ровно 18:00
		slot(20*60, false),    // вечер
	}

	summary := summarize(slots)

	assert.Equal(t, 4, summary.Available)
	assert.Equal(t, 3, summary.Unavailable)

	assert.Equal(t, PeriodCounts{Available: 2}, summary.ByPeriod.Morning)
	assert.Equal(t, PeriodCounts{Available: 1, Unavailable: 2}, summary.ByPeriod.Afternoon)
	assert.Equal(t, PeriodCounts{Available: 1, Unavailable: 1}, summary.ByPeriod.Evening)
}

func TestSummarize_Empty(t *testing.T) {
	summary := summarize(nil)

	assert.Zero(t, summary.Available)
	assert.Zero(t, summary.Unavailable)
	assert.Equal(t, PeriodBreakdown{}, summary.ByPeriod)
}

// Слот с некорректным временем в сводку не попадает
func TestSummarize_SkipsMalformedSlot(t *testing.T) {
	slots := []domain.Slot{
		{StartTime: types.TimeString("bad"), Available: true},
		slot(10*60, true),
	}

	summary := summarize(slots)

	assert.Equal(t, 1, summary.Available)
	assert.Equal(t, PeriodCounts{Available: 1}, summary.ByPeriod.Morning)
}
