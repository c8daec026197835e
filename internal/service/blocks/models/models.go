package models

import (
	"fmt"
	"time"

	"github.com/agendame/AGD-AvailabilityService/internal/domain"
	"github.com/agendame/AGD-AvailabilityService/pkg/types"
)

// Request модели

// CreateBlockRequest запрос на создание административного блока
type CreateBlockRequest struct {
	UserID         int64   `json:"userId"`
	BusinessID     int64   `json:"businessId"`
	ProfessionalID *int64  `json:"professionalId,omitempty"` // nil = блок для всех мастеров
	Date           string  `json:"date"`                     // YYYY-MM-DD
	StartTime      string  `json:"startTime"`                // HH:MM
	EndTime        string  `json:"endTime"`                  // HH:MM
	Reason         *string `json:"reason,omitempty"`
}

// DeleteBlockRequest запрос на удаление блока
type DeleteBlockRequest struct {
	UserID     int64 `json:"userId"`
	BusinessID int64 `json:"businessId"`
	BlockID    int64 `json:"blockId"`
}

// ListBlocksRequest запрос списка блоков бизнеса на дату
type ListBlocksRequest struct {
	BusinessID int64  `json:"businessId"`
	Date       string `json:"date"` // YYYY-MM-DD
}

// Response модели

// BlockResponse ответ с данными временного блока
type BlockResponse struct {
	ID             int64     `json:"id"`
	BusinessID     int64     `json:"businessId"`
	ProfessionalID *int64    `json:"professionalId,omitempty"`
	Date           string    `json:"date"`
	StartTime      string    `json:"startTime"`
	EndTime        string    `json:"endTime"`
	Reason         *string   `json:"reason,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// BlockListResponse список блоков
type BlockListResponse struct {
	Blocks []BlockResponse `json:"blocks"`
}

// ToDomainBlock конвертирует запрос в domain.TimeBlock с валидацией форматов
func (r *CreateBlockRequest) ToDomainBlock() (*domain.TimeBlock, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date format, expected YYYY-MM-DD: %w", err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &domain.TimeBlock{
		BusinessID:     r.BusinessID,
		ProfessionalID: r.ProfessionalID,
		Date:           date,
		StartTime:      startTime,
		EndTime:        endTime,
		Reason:         r.Reason,
	}, nil
}

// FromDomainBlock конвертирует domain модель в ответ сервиса
func FromDomainBlock(block *domain.TimeBlock) *BlockResponse {
	return &BlockResponse{
		ID:             block.ID,
		BusinessID:     block.BusinessID,
		ProfessionalID: block.ProfessionalID,
		Date:           block.Date.Format(domain.DateFormat),
		StartTime:      block.StartTime.String(),
		EndTime:        block.EndTime.String(),
		Reason:         block.Reason,
		CreatedAt:      block.CreatedAt,
	}
}

// FromDomainBlockList конвертирует список domain моделей в ответ сервиса
func FromDomainBlockList(blocks []*domain.TimeBlock) *BlockListResponse {
	result := make([]BlockResponse, 0, len(blocks))
	for _, block := range blocks {
		result = append(result, *FromDomainBlock(block))
	}
	return &BlockListResponse{Blocks: result}
}
