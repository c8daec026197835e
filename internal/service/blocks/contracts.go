package blocks

import (
	"context"
	"time"

	"github.com/agendame/AGD-AvailabilityService/internal/domain"
	"github.com/agendame/AGD-AvailabilityService/internal/integrations/directoryservice"
)

// BlockRepository интерфейс репозитория временных блоков
type BlockRepository interface {
	Create(ctx context.Context, block *domain.TimeBlock) (*domain.TimeBlock, error)
	ListForDate(ctx context.Context, businessID int64, date time.Time) ([]*domain.TimeBlock, error)
	Delete(ctx context.Context, businessID, blockID int64) error
}

// DirectoryServiceClient интерфейс клиента для DirectoryService
type DirectoryServiceClient interface {
	GetBusiness(ctx context.Context, businessID int64) (*directoryservice.Business, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
