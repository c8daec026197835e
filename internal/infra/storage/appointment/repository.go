package appointment

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

// Repository read-only репозиторий записей.
// Движок доступности только читает записи: создание и изменение
// принадлежит сервису бронирования, а не этому сервису.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetForProfessionalOnDate получает неотменённые записи мастера на дату.
// Длительность услуги подтягивается через LEFT JOIN на services:
// если услуга удалена, duration придет NULL и сборщик интервалов
// использует запасную длительность.
func (r *Repository) GetForProfessionalOnDate(
	ctx context.Context,
	businessID, professionalID int64,
	date time.Time,
) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"a.id",
		"a.business_id",
		"a.professional_id",
		"a.service_id",
		"a.appointment_date",
		"a.start_time",
		"s.duration_minutes",
		"a.status",
		"a.created_at",
		"a.updated_at",
	).
		From("appointments a").
		LeftJoin("services s ON s.id = a.service_id").
		Where(squirrel.Eq{
			"a.business_id":      businessID,
			"a.professional_id":  professionalID,
			"a.appointment_date": date.Format(domain.DateFormat),
		}).
		Where(squirrel.NotEq{"a.status": domain.StatusCancelled}).
		OrderBy("a.start_time").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetForProfessionalOnDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetForProfessionalOnDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanAppointments(rows)
}

// scanAppointments сканирует строки результата в слайс записей
func (r *Repository) scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		var appt domain.Appointment
		var duration sql.NullInt64
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&appt.ID,
			&appt.BusinessID,
			&appt.ProfessionalID,
			&appt.ServiceID,
			&appt.Date,
			&appt.StartTime,
			&duration,
			&appt.Status,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan appointment: %v", ErrScanRow, err)
		}

		if duration.Valid {
			d := int(duration.Int64)
			appt.ServiceDurationMinutes = &d
		}
		appt.CreatedAt = createdAt.Time
		appt.UpdatedAt = updatedAt.Time

		appointments = append(appointments, &appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - iterate rows: %v", ErrScanRow, err)
	}

	return appointments, nil
}
