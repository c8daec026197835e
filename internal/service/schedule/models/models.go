package models

import (
	"fmt"
	"time"

	"github.com/agendame/AGD-AvailabilityService/internal/domain"
	"github.com/agendame/AGD-AvailabilityService/pkg/types"
)

// Request модели

// UpdateScheduleRequest запрос на создание/полную замену расписания бизнеса.
// Override-ы передаются картой weekday -> окно; ключи вне "sunday".."saturday"
// отклоняются на этапе конвертации.
type UpdateScheduleRequest struct {
	UserID              int64                      `json:"userId"`
	BusinessID          int64                      `json:"businessId"`
	Open                string                     `json:"open"`  // HH:MM
	Close               string                     `json:"close"` // HH:MM
	BreakStart          *string                    `json:"breakStart,omitempty"`
	BreakEnd            *string                    `json:"breakEnd,omitempty"`
	WorkingWeekdays     []string                   `json:"workingWeekdays"` // "sunday".."saturday"
	SlotStepMinutes     int                        `json:"slotStepMinutes"`
	UseWeekdayOverrides bool                       `json:"useWeekdayOverrides"`
	Overrides           map[string]OverridePayload `json:"overrides,omitempty"`
}

// OverridePayload дневное окно override-а
type OverridePayload struct {
	Open       string  `json:"open"`
	Close      string  `json:"close"`
	BreakStart *string `json:"breakStart,omitempty"`
	BreakEnd   *string `json:"breakEnd,omitempty"`
}

// Response модели

// ScheduleResponse ответ с конфигурацией расписания бизнеса
type ScheduleResponse struct {
	BusinessID          int64                      `json:"businessId"`
	Open                string                     `json:"open"`
	Close               string                     `json:"close"`
	BreakStart          *string                    `json:"breakStart,omitempty"`
	BreakEnd            *string                    `json:"breakEnd,omitempty"`
	WorkingWeekdays     []string                   `json:"workingWeekdays"`
	SlotStepMinutes     int                        `json:"slotStepMinutes"`
	UseWeekdayOverrides bool                       `json:"useWeekdayOverrides"`
	Overrides           map[string]OverridePayload `json:"overrides,omitempty"`
	UpdatedAt           time.Time                  `json:"updatedAt"`
}

// ToDomainSchedule конвертирует запрос в domain.WeeklySchedule с валидацией форматов
func (r *UpdateScheduleRequest) ToDomainSchedule() (*domain.WeeklySchedule, error) {
	open, err := types.NewTimeStringFromString(r.Open)
	if err != nil {
		return nil, err
	}
	close, err := types.NewTimeStringFromString(r.Close)
	if err != nil {
		return nil, err
	}

	breakStart, err := optionalTime(r.BreakStart)
	if err != nil {
		return nil, err
	}
	breakEnd, err := optionalTime(r.BreakEnd)
	if err != nil {
		return nil, err
	}

	weekdays := make([]domain.Weekday, 0, len(r.WorkingWeekdays))
	for _, name := range r.WorkingWeekdays {
		weekday, err := domain.ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		weekdays = append(weekdays, weekday)
	}

	return &domain.WeeklySchedule{
		BusinessID:          r.BusinessID,
		Open:                open,
		Close:               close,
		BreakStart:          breakStart,
		BreakEnd:            breakEnd,
		WorkingWeekdays:     weekdays,
		SlotStepMinutes:     r.SlotStepMinutes,
		UseWeekdayOverrides: r.UseWeekdayOverrides,
	}, nil
}

// ToDomainOverrides конвертирует карту override-ов в domain модели.
// Некорректный ключ дня недели - ошибка, а не тихое игнорирование:
// конфигурация отклоняется целиком на границе.
func (r *UpdateScheduleRequest) ToDomainOverrides() ([]domain.WeekdayOverride, error) {
	if len(r.Overrides) == 0 {
		return nil, nil
	}

	overrides := make([]domain.WeekdayOverride, 0, len(r.Overrides))
	for name, payload := range r.Overrides {
		weekday, err := domain.ParseWeekday(name)
		if err != nil {
			return nil, fmt.Errorf("invalid override weekday: %w", err)
		}

		open, err := types.NewTimeStringFromString(payload.Open)
		if err != nil {
			return nil, err
		}
		close, err := types.NewTimeStringFromString(payload.Close)
		if err != nil {
			return nil, err
		}
		breakStart, err := optionalTime(payload.BreakStart)
		if err != nil {
			return nil, err
		}
		breakEnd, err := optionalTime(payload.BreakEnd)
		if err != nil {
			return nil, err
		}

		overrides = append(overrides, domain.WeekdayOverride{
			Weekday:    weekday,
			Open:       open,
			Close:      close,
			BreakStart: breakStart,
			BreakEnd:   breakEnd,
		})
	}

	return overrides, nil
}

// FromDomainSchedule конвертирует domain модели в ответ сервиса
func FromDomainSchedule(schedule *domain.WeeklySchedule, overrides map[domain.Weekday]domain.WeekdayOverride) *ScheduleResponse {
	weekdays := make([]string, 0, len(schedule.WorkingWeekdays))
	for _, d := range schedule.WorkingWeekdays {
		weekdays = append(weekdays, d.String())
	}

	resp := &ScheduleResponse{
		BusinessID:          schedule.BusinessID,
		Open:                schedule.Open.String(),
		Close:               schedule.Close.String(),
		BreakStart:          timeStringPtr(schedule.BreakStart),
		BreakEnd:            timeStringPtr(schedule.BreakEnd),
		WorkingWeekdays:     weekdays,
		SlotStepMinutes:     schedule.SlotStepMinutes,
		UseWeekdayOverrides: schedule.UseWeekdayOverrides,
		UpdatedAt:           schedule.UpdatedAt,
	}

	if len(overrides) > 0 {
		resp.Overrides = make(map[string]OverridePayload, len(overrides))
		for weekday, override := range overrides {
			resp.Overrides[weekday.String()] = OverridePayload{
				Open:       override.Open.String(),
				Close:      override.Close.String(),
				BreakStart: timeStringPtr(override.BreakStart),
				BreakEnd:   timeStringPtr(override.BreakEnd),
			}
		}
	}

	return resp
}

func optionalTime(s *string) (*types.TimeString, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	ts, err := types.NewTimeStringFromString(*s)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

func timeStringPtr(ts *types.TimeString) *string {
	if ts == nil {
		return nil
	}
	s := ts.String()
	return &s
}
