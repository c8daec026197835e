package get_day_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendame/AGD-AvailabilityService/internal/domain"
	scheduleRepo "github.com/agendame/AGD-AvailabilityService/internal/infra/storage/schedule"
	"github.com/agendame/AGD-AvailabilityService/internal/integrations/directoryservice"
	"github.com/agendame/AGD-AvailabilityService/pkg/ptr"
)

type fakeScheduleRepo struct {
	schedule  *domain.WeeklySchedule
	overrides map[domain.Weekday]domain.WeekdayOverride
	err       error
}

func (f *fakeScheduleRepo) GetByBusiness(_ context.Context, _ int64) (*domain.WeeklySchedule, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.schedule, nil
}

func (f *fakeScheduleRepo) GetOverrides(_ context.Context, _ int64) (map[domain.Weekday]domain.WeekdayOverride, error) {
	return f.overrides, nil
}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (f *fakeAppointmentRepo) GetForProfessionalOnDate(_ context.Context, _, _ int64, _ time.Time) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

type fakeBlockRepo struct {
	blocks []*domain.TimeBlock
}

func (f *fakeBlockRepo) ListForDate(_ context.Context, _ int64, _ time.Time) ([]*domain.TimeBlock, error) {
	return f.blocks, nil
}

type fakeDirectoryClient struct {
	business *directoryservice.Business
	err      error
}

func (f *fakeDirectoryClient) GetBusiness(_ context.Context, _ int64) (*directoryservice.Business, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.business, nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func (c fixedClock) Today() time.Time {
	return time.Date(c.now.Year(), c.now.Month(), c.now.Day(), 0, 0, 0, 0, c.now.Location())
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testBusiness() *directoryservice.Business {
	return &directoryservice.Business{
		ID:              1,
		Name:            "Barbearia Central",
		ProfessionalIDs: []int64{7},
		ManagerIDs:      []int64{100},
	}
}

func newTestUseCase(t *testing.T, schedules *fakeScheduleRepo, appts *fakeAppointmentRepo, blocks *fakeBlockRepo, directory *fakeDirectoryClient) *UseCase {
	t.Helper()
	// Часы зафиксированы на понедельник 10:00 UTC
	clock := fixedClock{now: time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)}
	return NewUseCase(schedules, appts, blocks, directory, nil, nopLogger{}).WithClock(clock)
}

func TestExecute_FullDay(t *testing.T) {
	schedules := &fakeScheduleRepo{schedule: weekdaySchedule(t)}
	appts := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		appointment(t, 7, monday, "14:00", ptr.Ptr(30), domain.StatusConfirmed),
	}}
	blocks := &fakeBlockRepo{}
	directory := &fakeDirectoryClient{business: testBusiness()}

	uc := newTestUseCase(t, schedules, appts, blocks, directory)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID:             1,
		ProfessionalID:         7,
		ServiceDurationMinutes: 30,
		Date:                   monday,
	})

	require.NoError(t, err)
	require.True(t, resp.IsOpen)
	require.Len(t, resp.Slots, 27)

	// Запрос на сегодня: слоты до 10:00 включительно уже прошли
	assert.Equal(t, domain.ReasonPastCutoff, findSlot(t, resp.Slots, "09:00").Reason)
	assert.Equal(t, domain.ReasonPastCutoff, findSlot(t, resp.Slots, "10:00").Reason)
	assert.True(t, findSlot(t, resp.Slots, "10:20").Available)
	assert.Equal(t, domain.ReasonOccupied, findSlot(t, resp.Slots, "14:00").Reason)

	assert.Equal(t, resp.Summary.Available+resp.Summary.Unavailable, len(resp.Slots))
}

func TestExecute_BusinessNotFound(t *testing.T) {
	directory := &fakeDirectoryClient{err: directoryservice.ErrBusinessNotFound}

	uc := newTestUseCase(t, &fakeScheduleRepo{}, &fakeAppointmentRepo{}, &fakeBlockRepo{}, directory)

	_, err := uc.Execute(context.Background(), &Request{
		BusinessID:             99,
		ProfessionalID:         7,
		ServiceDurationMinutes: 30,
		Date:                   monday,
	})

	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestExecute_ProfessionalNotInBusiness(t *testing.T) {
	directory := &fakeDirectoryClient{business: testBusiness()}

	uc := newTestUseCase(t, &fakeScheduleRepo{}, &fakeAppointmentRepo{}, &fakeBlockRepo{}, directory)

	_, err := uc.Execute(context.Background(), &Request{
		BusinessID:             1,
		ProfessionalID:         42,
		ServiceDurationMinutes: 30,
		Date:                   monday,
	})

	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

// Отсутствие расписания - не ошибка: день закрыт, слотов нет
func TestExecute_NoScheduleIsClosed(t *testing.T) {
	schedules := &fakeScheduleRepo{err: scheduleRepo.ErrScheduleNotFound}
	directory := &fakeDirectoryClient{business: testBusiness()}

	uc := newTestUseCase(t, schedules, &fakeAppointmentRepo{}, &fakeBlockRepo{}, directory)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID:             1,
		ProfessionalID:         7,
		ServiceDurationMinutes: 30,
		Date:                   monday,
	})

	require.NoError(t, err)
	assert.False(t, resp.IsOpen)
	assert.Empty(t, resp.Slots)
}

// Выходной день по расписанию - закрытый ответ без ошибки
func TestExecute_ClosedWeekday(t *testing.T) {
	schedules := &fakeScheduleRepo{schedule: weekdaySchedule(t)}
	directory := &fakeDirectoryClient{business: testBusiness()}

	uc := newTestUseCase(t, schedules, &fakeAppointmentRepo{}, &fakeBlockRepo{}, directory)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID:             1,
		ProfessionalID:         7,
		ServiceDurationMinutes: 30,
		Date:                   sunday,
	})

	require.NoError(t, err)
	assert.False(t, resp.IsOpen)
	assert.Empty(t, resp.Slots)
}

// Override-ы включены, воскресенье без записи в карте - закрыто
func TestExecute_OverridesDisableWeekday(t *testing.T) {
	schedule := weekdaySchedule(t)
	schedule.UseWeekdayOverrides = true
	schedule.WorkingWeekdays = append(schedule.WorkingWeekdays, domain.Sunday)

	schedules := &fakeScheduleRepo{
		schedule: schedule,
		overrides: map[domain.Weekday]domain.WeekdayOverride{
			domain.Monday: {Weekday: domain.Monday, Open: ts(t, "10:00"), Close: ts(t, "16:00")},
		},
	}
	directory := &fakeDirectoryClient{business: testBusiness()}

	uc := newTestUseCase(t, schedules, &fakeAppointmentRepo{}, &fakeBlockRepo{}, directory)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID:             1,
		ProfessionalID:         7,
		ServiceDurationMinutes: 30,
		Date:                   sunday,
	})

	require.NoError(t, err)
	assert.False(t, resp.IsOpen)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(t, &fakeScheduleRepo{}, &fakeAppointmentRepo{}, &fakeBlockRepo{}, &fakeDirectoryClient{})

	tests := []struct {
		name string
		req  Request
		want error
	}{
		{
			name: "zero business id",
			req:  Request{ProfessionalID: 7, ServiceDurationMinutes: 30, Date: monday},
			want: ErrInvalidInput,
		},
		{
			name: "zero professional id",
			req:  Request{BusinessID: 1, ServiceDurationMinutes: 30, Date: monday},
			want: ErrInvalidInput,
		},
		{
			name: "duration too short",
			req:  Request{BusinessID: 1, ProfessionalID: 7, ServiceDurationMinutes: 1, Date: monday},
			want: ErrInvalidInput,
		},
		{
			name: "duration too long",
			req:  Request{BusinessID: 1, ProfessionalID: 7, ServiceDurationMinutes: 1000, Date: monday},
			want: ErrInvalidInput,
		},
		{
			name: "missing date",
			req:  Request{BusinessID: 1, ProfessionalID: 7, ServiceDurationMinutes: 30},
			want: ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

// Административный блок на весь день делает все его слоты blocked
func TestExecute_BlockedSlots(t *testing.T) {
	schedules := &fakeScheduleRepo{schedule: weekdaySchedule(t)}
	blocks := &fakeBlockRepo{blocks: []*domain.TimeBlock{
		{BusinessID: 1, Date: monday, StartTime: ts(t, "15:00"), EndTime: ts(t, "16:00"), Reason: ptr.Ptr("limpeza")},
	}}
	directory := &fakeDirectoryClient{business: testBusiness()}

	uc := newTestUseCase(t, schedules, &fakeAppointmentRepo{}, blocks, directory)

	resp, err := uc.Execute(context.Background(), &Request{
		BusinessID:             1,
		ProfessionalID:         7,
		ServiceDurationMinutes: 30,
		Date:                   monday,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ReasonBlocked, findSlot(t, resp.Slots, "15:00").Reason)
	assert.Equal(t, domain.ReasonBlocked, findSlot(t, resp.Slots, "15:20").Reason)
	assert.True(t, findSlot(t, resp.Slots, "16:00").Available)
}
