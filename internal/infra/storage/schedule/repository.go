package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/agendame/AGD-AvailabilityService/internal/domain"
	"github.com/agendame/AGD-AvailabilityService/pkg/dbmetrics"
	"github.com/agendame/AGD-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с расписаниями бизнесов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByBusiness получает недельное расписание бизнеса.
// working_weekdays хранится как integer[] и читается через pq.Int64Array.
func (r *Repository) GetByBusiness(ctx context.Context, businessID int64) (*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"business_id",
		"open_time",
		"close_time",
		"break_start",
		"break_end",
		"working_weekdays",
		"slot_step_minutes",
		"use_weekday_overrides",
		"created_at",
		"updated_at",
	).
		From("weekly_schedules").
		Where(squirrel.Eq{"business_id": businessID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusiness - build select query: %v", ErrBuildQuery, err)
	}

	var schedule domain.WeeklySchedule
	var weekdays pq.Int64Array
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&schedule.BusinessID,
		&schedule.Open,
		&schedule.Close,
		&schedule.BreakStart,
		&schedule.BreakEnd,
		&weekdays,
		&schedule.SlotStepMinutes,
		&schedule.UseWeekdayOverrides,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusiness - scan schedule: %v", ErrScanRow, err)
	}

	schedule.WorkingWeekdays = make([]domain.Weekday, 0, len(weekdays))
	for _, d := range weekdays {
		schedule.WorkingWeekdays = append(schedule.WorkingWeekdays, domain.Weekday(d))
	}
	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return &schedule, nil
}

// GetOverrides получает карту override-ов бизнеса по дням недели
func (r *Repository) GetOverrides(ctx context.Context, businessID int64) (map[domain.Weekday]domain.WeekdayOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"weekday",
		"open_time",
		"close_time",
		"break_start",
		"break_end",
	).
		From("weekday_overrides").
		Where(squirrel.Eq{"business_id": businessID}).
		OrderBy("weekday").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOverrides - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverrides - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make(map[domain.Weekday]domain.WeekdayOverride)
	for rows.Next() {
		var override domain.WeekdayOverride
		if err := rows.Scan(
			&override.Weekday,
			&override.Open,
			&override.Close,
			&override.BreakStart,
			&override.BreakEnd,
		); err != nil {
			return nil, fmt.Errorf("%w: GetOverrides - scan override: %v", ErrScanRow, err)
		}
		overrides[override.Weekday] = override
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOverrides - iterate rows: %v", ErrScanRow, err)
	}

	return overrides, nil
}

// Upsert создает или полностью заменяет недельное расписание бизнеса
func (r *Repository) Upsert(ctx context.Context, schedule *domain.WeeklySchedule) (*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	weekdays := make(pq.Int64Array, 0, len(schedule.WorkingWeekdays))
	for _, d := range schedule.WorkingWeekdays {
		weekdays = append(weekdays, int64(d))
	}

	query, args, err := psqlbuilder.Insert("weekly_schedules").
		Columns(
			"business_id",
			"open_time",
			"close_time",
			"break_start",
			"break_end",
			"working_weekdays",
			"slot_step_minutes",
			"use_weekday_overrides",
		).
		Values(
			schedule.BusinessID,
			schedule.Open,
			schedule.Close,
			schedule.BreakStart,
			schedule.BreakEnd,
			weekdays,
			schedule.SlotStepMinutes,
			schedule.UseWeekdayOverrides,
		).
		Suffix(`ON CONFLICT (business_id) DO UPDATE SET
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			break_start = EXCLUDED.break_start,
			break_end = EXCLUDED.break_end,
			working_weekdays = EXCLUDED.working_weekdays,
			slot_step_minutes = EXCLUDED.slot_step_minutes,
			use_weekday_overrides = EXCLUDED.use_weekday_overrides,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return schedule, nil
}

// ReplaceOverrides полностью заменяет набор override-ов бизнеса.
// Должен вызываться внутри транзакции (переданной через контекст),
// чтобы удаление и вставка были атомарны.
func (r *Repository) ReplaceOverrides(ctx context.Context, businessID int64, overrides []domain.WeekdayOverride) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("weekday_overrides").
		Where(squirrel.Eq{"business_id": businessID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceOverrides - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceOverrides - execute delete: %v", ErrExecQuery, err)
	}

	if len(overrides) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("weekday_overrides").
		Columns("business_id", "weekday", "open_time", "close_time", "break_start", "break_end")

	for _, override := range overrides {
		insertBuilder = insertBuilder.Values(
			businessID,
			int64(override.Weekday),
			override.Open,
			override.Close,
			override.BreakStart,
			override.BreakEnd,
		)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceOverrides - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceOverrides - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
