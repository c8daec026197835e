package blocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agendame/AGD-AvailabilityService/internal/domain"
	blockRepo "github.com/agendame/AGD-AvailabilityService/internal/infra/storage/block"
	directoryClient "github.com/agendame/AGD-AvailabilityService/internal/integrations/directoryservice"
	"github.com/agendame/AGD-AvailabilityService/internal/service/blocks/models"
)

// Service сервис для работы с административными временными блоками
type Service struct {
	blockRepo       BlockRepository
	directoryClient DirectoryServiceClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса блоков
func NewService(
	blockRepo BlockRepository,
	directoryClient DirectoryServiceClient,
	logger Logger,
) *Service {
	return &Service{
		blockRepo:       blockRepo,
		directoryClient: directoryClient,
		logger:          logger,
	}
}

// List получает блоки бизнеса на дату.
// Публичный метод - доступен всем.
func (s *Service) List(ctx context.Context, req *models.ListBlocksRequest) (*models.BlockListResponse, error) {
	s.logger.Info("List: fetching blocks for business=%d, date=%s", req.BusinessID, req.Date)

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		s.logger.Warn("List: invalid date %q for business=%d", req.Date, req.BusinessID)
		return nil, fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}

	blocks, err := s.blockRepo.ListForDate(ctx, req.BusinessID, date)
	if err != nil {
		s.logger.Error("List: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d blocks for business=%d, date=%s",
		len(blocks), req.BusinessID, req.Date)
	return models.FromDomainBlockList(blocks), nil
}

// Create создает новый временной блок.
// Доступно только менеджерам бизнеса. Если блок привязан к мастеру,
// проверяется, что мастер работает в этом бизнесе.
func (s *Service) Create(ctx context.Context, req *models.CreateBlockRequest) (*models.BlockResponse, error) {
	s.logger.Info("Create: creating block for business=%d, professional=%v by user=%d",
		req.BusinessID, req.ProfessionalID, req.UserID)

	// 1. Конвертируем и валидируем payload
	block, err := req.ToDomainBlock()
	if err != nil {
		s.logger.Warn("Create: invalid block payload for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := block.Validate(); err != nil {
		s.logger.Warn("Create: block validation failed for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Проверяем существование бизнеса и права менеджера
	business, err := s.directoryClient.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrBusinessNotFound) {
			s.logger.Warn("Create: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("Create: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	if !business.HasManager(req.UserID) {
		s.logger.Warn("Create: user=%d is not a manager of business=%d", req.UserID, req.BusinessID)
		return nil, ErrAccessDenied
	}

	// 3. Если блок привязан к мастеру - проверяем, что мастер есть в бизнесе
	if block.ProfessionalID != nil && !business.HasProfessional(*block.ProfessionalID) {
		s.logger.Warn("Create: professional id=%d not found in business=%d",
			*block.ProfessionalID, req.BusinessID)
		return nil, ErrProfessionalNotFound
	}

	// 4. Создаем блок
	created, err := s.blockRepo.Create(ctx, block)
	if err != nil {
		s.logger.Error("Create: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created block id=%d for business=%d", created.ID, req.BusinessID)
	return models.FromDomainBlock(created), nil
}

// Delete удаляет временной блок.
// Доступно только менеджерам бизнеса.
func (s *Service) Delete(ctx context.Context, req *models.DeleteBlockRequest) error {
	s.logger.Info("Delete: deleting block id=%d for business=%d by user=%d",
		req.BlockID, req.BusinessID, req.UserID)

	business, err := s.directoryClient.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrBusinessNotFound) {
			s.logger.Warn("Delete: business id=%d not found", req.BusinessID)
			return ErrBusinessNotFound
		}
		s.logger.Error("Delete: failed to get business id=%d: %v", req.BusinessID, err)
		return fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	if !business.HasManager(req.UserID) {
		s.logger.Warn("Delete: user=%d is not a manager of business=%d", req.UserID, req.BusinessID)
		return ErrAccessDenied
	}

	if err := s.blockRepo.Delete(ctx, req.BusinessID, req.BlockID); err != nil {
		if errors.Is(err, blockRepo.ErrBlockNotFound) {
			s.logger.Warn("Delete: block id=%d not found in business=%d", req.BlockID, req.BusinessID)
			return ErrBlockNotFound
		}
		s.logger.Error("Delete: repository error for block id=%d: %v", req.BlockID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted block id=%d for business=%d", req.BlockID, req.BusinessID)
	return nil
}
