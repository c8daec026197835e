package block

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/agendame/AGD-AvailabilityService/internal/domain"
	"github.com/agendame/AGD-AvailabilityService/pkg/dbmetrics"
	"github.com/agendame/AGD-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с административными временными блоками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блоков
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый временной блок
func (r *Repository) Create(ctx context.Context, block *domain.TimeBlock) (*domain.TimeBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("time_blocks").
		Columns(
			"business_id",
			"professional_id",
			"block_date",
			"start_time",
			"end_time",
			"reason",
		).
		Values(
			block.BusinessID,
			block.ProfessionalID,
			block.Date,
			block.StartTime,
			block.EndTime,
			block.Reason,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&block.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	block.CreatedAt = createdAt.Time

	return block, nil
}

// ListForDate получает все блоки бизнеса на дату.
// Фильтрация по мастеру (nil scope = все мастера) выполняется
// на стороне сборщика интервалов.
func (r *Repository) ListForDate(ctx context.Context, businessID int64, date time.Time) ([]*domain.TimeBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"professional_id",
		"block_date",
		"start_time",
		"end_time",
		"reason",
		"created_at",
	).
		From("time_blocks").
		Where(squirrel.Eq{
			"business_id": businessID,
			"block_date":  date.Format(domain.DateFormat),
		}).
		OrderBy("start_time").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.TimeBlock, 0)
	for rows.Next() {
		var block domain.TimeBlock
		var createdAt sql.NullTime

		if err := rows.Scan(
			&block.ID,
			&block.BusinessID,
			&block.ProfessionalID,
			&block.Date,
			&block.StartTime,
			&block.EndTime,
			&block.Reason,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListForDate - scan block: %v", ErrScanRow, err)
		}

		block.CreatedAt = createdAt.Time
		blocks = append(blocks, &block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListForDate - iterate rows: %v", ErrScanRow, err)
	}

	return blocks, nil
}

// Delete удаляет временной блок бизнеса.
// businessID в условии защищает от удаления чужого блока.
func (r *Repository) Delete(ctx context.Context, businessID, blockID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("time_blocks").
		Where(squirrel.Eq{
			"id":          blockID,
			"business_id": businessID,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBlockNotFound
	}

	return nil
}
