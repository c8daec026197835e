package create_block

import (
	"context"

	"github.com/agendame/AGD-AvailabilityService/internal/service/blocks/models"
)

type BlocksService interface {
	Create(ctx context.Context, req *models.CreateBlockRequest) (*models.BlockResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
