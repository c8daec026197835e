package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendame/AGD-AvailabilityService/internal/domain"
	scheduleRepo "github.com/agendame/AGD-AvailabilityService/internal/infra/storage/schedule"
	"github.com/agendame/AGD-AvailabilityService/internal/integrations/directoryservice"
	"github.com/agendame/AGD-AvailabilityService/internal/service/schedule/models"
	"github.com/agendame/AGD-AvailabilityService/pkg/types"
)

type fakeScheduleRepo struct {
	schedule  *domain.WeeklySchedule
	overrides map[domain.Weekday]domain.WeekdayOverride
	getErr    error

	upserted         *domain.WeeklySchedule
	replacedBusiness int64
	replaced         []domain.WeekdayOverride
}

func (f *fakeScheduleRepo) GetByBusiness(_ context.Context, _ int64) (*domain.WeeklySchedule, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.schedule, nil
}

func (f *fakeScheduleRepo) GetOverrides(_ context.Context, _ int64) (map[domain.Weekday]domain.WeekdayOverride, error) {
	return f.overrides, nil
}

func (f *fakeScheduleRepo) Upsert(_ context.Context, schedule *domain.WeeklySchedule) (*domain.WeeklySchedule, error) {
	f.upserted = schedule
	return schedule, nil
}

func (f *fakeScheduleRepo) ReplaceOverrides(_ context.Context, businessID int64, overrides []domain.WeekdayOverride) error {
	f.replacedBusiness = businessID
	f.replaced = overrides
	return nil
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

// passthroughTxManager выполняет функцию без настоящей транзакции
type passthroughTxManager struct {
	calls int
}

func (m *passthroughTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func mustTS(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func managedBusiness() *directoryservice.Business {
	return &directoryservice.Business{
		ID:              1,
		ManagerIDs:      []int64{100},
		ProfessionalIDs: []int64{7},
	}
}

func validUpdateRequest() *models.UpdateScheduleRequest {
	return &models.UpdateScheduleRequest{
		UserID:          100,
		BusinessID:      1,
		Open:            "09:00",
		Close:           "18:00",
		WorkingWeekdays: []string{"monday", "tuesday", "wednesday"},
		SlotStepMinutes: 20,
	}
}

func TestGet_ReturnsSchedule(t *testing.T) {
	repo := &fakeScheduleRepo{
		schedule: &domain.WeeklySchedule{
			BusinessID:      1,
			Open:            mustTS(t, "09:00"),
			Close:           mustTS(t, "18:00"),
			WorkingWeekdays: []domain.Weekday{domain.Monday},
			SlotStepMinutes: 20,
		},
	}

	svc := NewService(repo, &fakeDirectoryClient{}, &passthroughTxManager{}, nopLogger{})

	resp, err := svc.Get(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "09:00", resp.Open)
	assert.Equal(t, []string{"monday"}, resp.WorkingWeekdays)
	assert.Nil(t, resp.Overrides)
}

func TestGet_NotFound(t *testing.T) {
	repo := &fakeScheduleRepo{getErr: scheduleRepo.ErrScheduleNotFound}
	svc := NewService(repo, &fakeDirectoryClient{}, &passthroughTxManager{}, nopLogger{})

	_, err := svc.Get(context.Background(), 1)

	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestUpdate_UpsertsInTransaction(t *testing.T) {
	repo := &fakeScheduleRepo{}
	tx := &passthroughTxManager{}
	svc := NewService(repo, &fakeDirectoryClient{business: managedBusiness()}, tx, nopLogger{})

	req := validUpdateRequest()
	req.UseWeekdayOverrides = true
	req.Overrides = map[string]models.OverridePayload{
		"saturday": {Open: "10:00", Close: "14:00"},
	}

	resp, err := svc.Update(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)
	require.NotNil(t, repo.upserted)
	assert.Equal(t, int64(1), repo.upserted.BusinessID)
	assert.Equal(t, int64(1), repo.replacedBusiness)
	require.Len(t, repo.replaced, 1)
	assert.Equal(t, domain.Saturday, repo.replaced[0].Weekday)
	assert.Contains(t, resp.Overrides, "saturday")
}

func TestUpdate_AccessDenied(t *testing.T) {
	svc := NewService(&fakeScheduleRepo{}, &fakeDirectoryClient{business: managedBusiness()},
		&passthroughTxManager{}, nopLogger{})

	req := validUpdateRequest()
	req.UserID = 999

	_, err := svc.Update(context.Background(), req)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdate_BusinessNotFound(t *testing.T) {
	svc := NewService(&fakeScheduleRepo{},
		&fakeDirectoryClient{err: directoryservice.ErrBusinessNotFound},
		&passthroughTxManager{}, nopLogger{})

	_, err := svc.Update(context.Background(), validUpdateRequest())

	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestUpdate_InvalidPayloadRejected(t *testing.T) {
	tx := &passthroughTxManager{}
	svc := NewService(&fakeScheduleRepo{}, &fakeDirectoryClient{business: managedBusiness()}, tx, nopLogger{})

	tests := []struct {
		name   string
		mutate func(r *models.UpdateScheduleRequest)
	}{
		{"bad open time", func(r *models.UpdateScheduleRequest) { r.Open = "morning" }},
		{"open after close", func(r *models.UpdateScheduleRequest) { r.Open, r.Close = r.Close, r.Open }},
		{"unknown weekday", func(r *models.UpdateScheduleRequest) { r.WorkingWeekdays = []string{"someday"} }},
		{"bad step", func(r *models.UpdateScheduleRequest) { r.SlotStepMinutes = 0 }},
		{"unknown override key", func(r *models.UpdateScheduleRequest) {
			r.Overrides = map[string]models.OverridePayload{"weekend": {Open: "10:00", Close: "14:00"}}
		}},
		{"invalid override window", func(r *models.UpdateScheduleRequest) {
			r.Overrides = map[string]models.OverridePayload{"saturday": {Open: "14:00", Close: "10:00"}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validUpdateRequest()
			tt.mutate(req)

			_, err := svc.Update(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	// Ни одна некорректная конфигурация не должна дойти до БД
	assert.Zero(t, tx.calls)
}
