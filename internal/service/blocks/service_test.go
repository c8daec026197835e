package blocks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendame/AGD-AvailabilityService/internal/domain"
	blockRepo "github.com/agendame/AGD-AvailabilityService/internal/infra/storage/block"
	"github.com/agendame/AGD-AvailabilityService/internal/integrations/directoryservice"
	"github.com/agendame/AGD-AvailabilityService/internal/service/blocks/models"
	"github.com/agendame/AGD-AvailabilityService/pkg/ptr"
)

type fakeBlockRepo struct {
	blocks    []*domain.TimeBlock
	created   *domain.TimeBlock
	deleteErr error
	deletedID int64
}

func (f *fakeBlockRepo) Create(_ context.Context, block *domain.TimeBlock) (*domain.TimeBlock, error) {
	block.ID = 42
	f.created = block
	return block, nil
}

func (f *fakeBlockRepo) ListForDate(_ context.Context, _ int64, _ time.Time) ([]*domain.TimeBlock, error) {
	return f.blocks, nil
}

func (f *fakeBlockRepo) Delete(_ context.Context, _, blockID int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedID = blockID
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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func managedBusiness() *directoryservice.Business {
	return &directoryservice.Business{
		ID:              1,
		ManagerIDs:      []int64{100},
		ProfessionalIDs: []int64{7},
	}
}

func createRequest() *models.CreateBlockRequest {
	return &models.CreateBlockRequest{
		UserID:     100,
		BusinessID: 1,
		Date:       "2025-06-02",
		StartTime:  "15:00",
		EndTime:    "16:00",
		Reason:     ptr.Ptr("limpeza"),
	}
}

func TestCreate_Success(t *testing.T) {
	repo := &fakeBlockRepo{}
	svc := NewService(repo, &fakeDirectoryClient{business: managedBusiness()}, nopLogger{})

	resp, err := svc.Create(context.Background(), createRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	require.NotNil(t, repo.created)
	assert.Equal(t, "15:00", repo.created.StartTime.String())
	assert.Nil(t, repo.created.ProfessionalID)
}

func TestCreate_ScopedToProfessional(t *testing.T) {
	repo := &fakeBlockRepo{}
	svc := NewService(repo, &fakeDirectoryClient{business: managedBusiness()}, nopLogger{})

	req := createRequest()
	req.ProfessionalID = ptr.Ptr(int64(7))

	_, err := svc.Create(context.Background(), req)

	require.NoError(t, err)
	require.NotNil(t, repo.created.ProfessionalID)
	assert.Equal(t, int64(7), *repo.created.ProfessionalID)
}

// Блок для мастера, которого нет в бизнесе, отклоняется
func TestCreate_UnknownProfessional(t *testing.T) {
	svc := NewService(&fakeBlockRepo{}, &fakeDirectoryClient{business: managedBusiness()}, nopLogger{})

	req := createRequest()
	req.ProfessionalID = ptr.Ptr(int64(99))

	_, err := svc.Create(context.Background(), req)

	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

func TestCreate_AccessDenied(t *testing.T) {
	svc := NewService(&fakeBlockRepo{}, &fakeDirectoryClient{business: managedBusiness()}, nopLogger{})

	req := createRequest()
	req.UserID = 999

	_, err := svc.Create(context.Background(), req)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreate_InvalidWindow(t *testing.T) {
	svc := NewService(&fakeBlockRepo{}, &fakeDirectoryClient{business: managedBusiness()}, nopLogger{})

	req := createRequest()
	req.StartTime, req.EndTime = req.EndTime, req.StartTime

	_, err := svc.Create(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_ReturnsBlocks(t *testing.T) {
	repo := &fakeBlockRepo{blocks: []*domain.TimeBlock{
		{ID: 1, BusinessID: 1, Date: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)},
	}}
	svc := NewService(repo, &fakeDirectoryClient{}, nopLogger{})

	resp, err := svc.List(context.Background(), &models.ListBlocksRequest{BusinessID: 1, Date: "2025-06-02"})

	require.NoError(t, err)
	require.Len(t, resp.Blocks, 1)
	assert.Equal(t, int64(1), resp.Blocks[0].ID)
}

func TestList_InvalidDate(t *testing.T) {
	svc := NewService(&fakeBlockRepo{}, &fakeDirectoryClient{}, nopLogger{})

	_, err := svc.List(context.Background(), &models.ListBlocksRequest{BusinessID: 1, Date: "02.06.2025"})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelete_Success(t *testing.T) {
	repo := &fakeBlockRepo{}
	svc := NewService(repo, &fakeDirectoryClient{business: managedBusiness()}, nopLogger{})

	err := svc.Delete(context.Background(), &models.DeleteBlockRequest{UserID: 100, BusinessID: 1, BlockID: 5})

	require.NoError(t, err)
	assert.Equal(t, int64(5), repo.deletedID)
}

func TestDelete_NotFound(t *testing.T) {
	repo := &fakeBlockRepo{deleteErr: blockRepo.ErrBlockNotFound}
	svc := NewService(repo, &fakeDirectoryClient{business: managedBusiness()}, nopLogger{})

	err := svc.Delete(context.Background(), &models.DeleteBlockRequest{UserID: 100, BusinessID: 1, BlockID: 5})

	assert.ErrorIs(t, err, ErrBlockNotFound)
}
