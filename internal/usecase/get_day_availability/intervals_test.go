package get_day_availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendame/AGD-AvailabilityService/internal/domain"
	"github.com/agendame/AGD-AvailabilityService/pkg/ptr"
	"github.com/agendame/AGD-AvailabilityService/pkg/types"
)

func appointment(t *testing.T, professionalID int64, date time.Time, start string, duration *int, status domain.AppointmentStatus) *domain.Appointment {
	t.Helper()
	return &domain.Appointment{
		ID:                     1,
		BusinessID:             1,
		ProfessionalID:         professionalID,
		Date:                   date,
		StartTime:              ts(t, start),
		ServiceDurationMinutes: duration,
		Status:                 status,
	}
}

func TestCollectOccupiedIntervals_Appointments(t *testing.T) {
	appointments := []*domain.Appointment{
		appointment(t, 7, monday, "10:00", ptr.Ptr(45), domain.StatusConfirmed),
		// Отменённая запись время не занимает
		appointment(t, 7, monday, "11:00", ptr.Ptr(30), domain.StatusCancelled),
		// Запись другого мастера
		appointment(t, 8, monday, "12:00", ptr.Ptr(30), domain.StatusScheduled),
		// Запись на другую дату
		appointment(t, 7, sunday, "13:00", ptr.Ptr(30), domain.StatusScheduled),
	}

	intervals := collectOccupiedIntervals(appointments, nil, 7, monday)

	require.Len(t, intervals, 1)
	assert.Equal(t, 10*60, intervals[0].Start)
	assert.Equal(t, 10*60+45, intervals[0].End)
	assert.Equal(t, domain.SourceAppointment, intervals[0].Source)
}

// Запись без разрешённой длительности услуги получает запасную
func TestCollectOccupiedIntervals_FallbackDuration(t *testing.T) {
	appointments := []*domain.Appointment{
		appointment(t, 7, monday, "10:00", nil, domain.StatusScheduled),
	}

	intervals := collectOccupiedIntervals(appointments, nil, 7, monday)

	require.Len(t, intervals, 1)
	assert.Equal(t, 10*60+domain.DefaultServiceDurationMinutes, intervals[0].End)
}

// Битая запись пропускается, остальные собираются
func TestCollectOccupiedIntervals_SkipsMalformedAppointment(t *testing.T) {
	broken := appointment(t, 7, monday, "10:00", ptr.Ptr(30), domain.StatusScheduled)
	broken.StartTime = types.TimeString("not-a-time")

	appointments := []*domain.Appointment{
		broken,
		appointment(t, 7, monday, "11:00", ptr.Ptr(30), domain.StatusScheduled),
	}

	intervals := collectOccupiedIntervals(appointments, nil, 7, monday)

	require.Len(t, intervals, 1)
	assert.Equal(t, 11*60, intervals[0].Start)
}

func TestCollectOccupiedIntervals_Blocks(t *testing.T) {
	blocks := []*domain.TimeBlock{
		// Блок без мастера применяется ко всем
		{BusinessID: 1, Date: monday, StartTime: ts(t, "14:00"), EndTime: ts(t, "15:00")},
		// Блок конкретного мастера
		{BusinessID: 1, ProfessionalID: ptr.Ptr(int64(7)), Date: monday, StartTime: ts(t, "16:00"), EndTime: ts(t, "16:30")},
		// Блок другого мастера не применяется
		{BusinessID: 1, ProfessionalID: ptr.Ptr(int64(8)), Date: monday, StartTime: ts(t, "17:00"), EndTime: ts(t, "17:30")},
		// Блок на другую дату
		{BusinessID: 1, Date: sunday, StartTime: ts(t, "10:00"), EndTime: ts(t, "11:00")},
		// Вырожденный блок (end <= start) отбрасывается
		{BusinessID: 1, Date: monday, StartTime: ts(t, "12:00"), EndTime: ts(t, "12:00")},
	}

	intervals := collectOccupiedIntervals(nil, blocks, 7, monday)

	require.Len(t, intervals, 2)
	assert.Equal(t, domain.SourceBlock, intervals[0].Source)
	assert.Equal(t, 14*60, intervals[0].Start)
	assert.Equal(t, 15*60, intervals[0].End)
	assert.Equal(t, 16*60, intervals[1].Start)
}

// Пустые источники дают пустой результат, не nil
func TestCollectOccupiedIntervals_Empty(t *testing.T) {
	intervals := collectOccupiedIntervals(nil, nil, 7, monday)

	require.NotNil(t, intervals)
	assert.Empty(t, intervals)
}
