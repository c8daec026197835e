package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendame/AGD-AvailabilityService/pkg/types"
)

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func mustTimePtr(t *testing.T, s string) *types.TimeString {
	t.Helper()
	ts := mustTime(t, s)
	return &ts
}

func validSchedule(t *testing.T) *WeeklySchedule {
	return &WeeklySchedule{
		BusinessID:      1,
		Open:            mustTime(t, "09:00"),
		Close:           mustTime(t, "18:00"),
		BreakStart:      mustTimePtr(t, "13:00"),
		BreakEnd:        mustTimePtr(t, "14:00"),
		WorkingWeekdays: []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday},
		SlotStepMinutes: 20,
	}
}

func TestWeeklySchedule_Validate(t *testing.T) {
	require.NoError(t, validSchedule(t).Validate())

	tests := []struct {
		name   string
		mutate func(s *WeeklySchedule)
	}{
		{"open after close", func(s *WeeklySchedule) { s.Open, s.Close = s.Close, s.Open }},
		{"open equals close", func(s *WeeklySchedule) { s.Close = s.Open }},
		{"break without end", func(s *WeeklySchedule) { s.BreakEnd = nil }},
		{"break end without start", func(s *WeeklySchedule) { s.BreakStart = nil }},
		{"inverted break", func(s *WeeklySchedule) { s.BreakStart, s.BreakEnd = s.BreakEnd, s.BreakStart }},
		{"break outside window", func(s *WeeklySchedule) { s.BreakEnd = mustTimePtr(t, "19:00") }},
		{"step too small", func(s *WeeklySchedule) { s.SlotStepMinutes = 1 }},
		{"step too large", func(s *WeeklySchedule) { s.SlotStepMinutes = 600 }},
		{"invalid weekday", func(s *WeeklySchedule) { s.WorkingWeekdays = []Weekday{Weekday(9)} }},
		{"malformed open time", func(s *WeeklySchedule) { s.Open = types.TimeString("late") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSchedule(t)
			tt.mutate(s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidSchedule)
		})
	}
}

func TestWeekdayOverride_Validate(t *testing.T) {
	override := &WeekdayOverride{
		Weekday: Saturday,
		Open:    mustTime(t, "10:00"),
		Close:   mustTime(t, "14:00"),
	}
	require.NoError(t, override.Validate())

	override.Weekday = Weekday(-1)
	assert.ErrorIs(t, override.Validate(), ErrInvalidSchedule)
}

func TestParseWeekday(t *testing.T) {
	w, err := ParseWeekday("monday")
	require.NoError(t, err)
	assert.Equal(t, Monday, w)

	w, err = ParseWeekday("  Sunday ")
	require.NoError(t, err)
	assert.Equal(t, Sunday, w)

	_, err = ParseWeekday("someday")
	assert.Error(t, err)
}

func TestWeekdayOf(t *testing.T) {
	// 2025-06-01 воскресенье
	assert.Equal(t, Sunday, WeekdayOf(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, Monday, WeekdayOf(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)))
}

func TestTimeBlock_Validate(t *testing.T) {
	block := &TimeBlock{
		BusinessID: 1,
		Date:       time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		StartTime:  mustTime(t, "15:00"),
		EndTime:    mustTime(t, "16:00"),
	}
	require.NoError(t, block.Validate())

	inverted := *block
	inverted.StartTime, inverted.EndTime = inverted.EndTime, inverted.StartTime
	assert.ErrorIs(t, inverted.Validate(), ErrInvalidTimeBlock)

	noDate := *block
	noDate.Date = time.Time{}
	assert.ErrorIs(t, noDate.Validate(), ErrInvalidTimeBlock)
}

func TestAppointment_EffectiveDurationMinutes(t *testing.T) {
	d := 45
	appt := &Appointment{ServiceDurationMinutes: &d}
	assert.Equal(t, 45, appt.EffectiveDurationMinutes())

	appt.ServiceDurationMinutes = nil
	assert.Equal(t, DefaultServiceDurationMinutes, appt.EffectiveDurationMinutes())

	zero := 0
	appt.ServiceDurationMinutes = &zero
	assert.Equal(t, DefaultServiceDurationMinutes, appt.EffectiveDurationMinutes())
}

func TestPeriodOf(t *testing.T) {
	assert.Equal(t, PeriodMorning, PeriodOf(0))
	assert.Equal(t, PeriodMorning, PeriodOf(11))
	assert.Equal(t, PeriodAfternoon, PeriodOf(12))
	assert.Equal(t, PeriodAfternoon, PeriodOf(17))
	assert.Equal(t, PeriodEvening, PeriodOf(18))
	assert.Equal(t, PeriodEvening, PeriodOf(23))
}
