package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/agendame/AGD-AvailabilityService/pkg/types"
)

// Weekday день недели, фиксированная 7-значная нумерация (воскресенье = 0).
// Совпадает с time.Weekday и не зависит от локали.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayNames = [...]string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

// String возвращает строковый идентификатор дня недели ("sunday".."saturday")
func (w Weekday) String() string {
	if w < Sunday || w > Saturday {
		return fmt.Sprintf("weekday(%d)", int(w))
	}
	return weekdayNames[w]
}

// IsValid возвращает true для корректного значения дня недели
func (w Weekday) IsValid() bool {
	return w >= Sunday && w <= Saturday
}

// ParseWeekday парсит день недели из строкового идентификатора.
// Используется на границе API для валидации ключей override-карты.
func ParseWeekday(s string) (Weekday, error) {
	for i, name := range weekdayNames {
		if name == strings.ToLower(strings.TrimSpace(s)) {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

// WeekdayOf возвращает день недели календарной даты
func WeekdayOf(date time.Time) Weekday {
	return Weekday(date.Weekday())
}

// WeeklySchedule недельная конфигурация работы бизнеса:
// часы по умолчанию, перерыв, рабочие дни и шаг генерации слотов.
// Если UseWeekdayOverrides = true, расписание на конкретный день недели
// берется целиком из Overrides, а день без записи считается выходным.
type WeeklySchedule struct {
	BusinessID          int64
	Open                types.TimeString
	Close               types.TimeString
	BreakStart          *types.TimeString
	BreakEnd            *types.TimeString
	WorkingWeekdays     []Weekday
	SlotStepMinutes     int
	UseWeekdayOverrides bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsWorkingWeekday возвращает true, если день недели входит в рабочие дни
func (s *WeeklySchedule) IsWorkingWeekday(w Weekday) bool {
	for _, d := range s.WorkingWeekdays {
		if d == w {
			return true
		}
	}
	return false
}

// Validate проверяет инварианты недельного расписания:
// open < close, перерыв (если задан) целиком внутри рабочего окна,
// корректный шаг слотов и корректные дни недели.
// Некорректная конфигурация отклоняется на этапе загрузки,
// чтобы генератор слотов всегда получал валидное окно.
func (s *WeeklySchedule) Validate() error {
	if err := validateDayWindow(s.Open, s.Close, s.BreakStart, s.BreakEnd); err != nil {
		return err
	}
	if s.SlotStepMinutes < MinSlotStepMinutes || s.SlotStepMinutes > MaxSlotStepMinutes {
		return fmt.Errorf("%w: slot step must be between %d and %d minutes",
			ErrInvalidSchedule, MinSlotStepMinutes, MaxSlotStepMinutes)
	}
	for _, w := range s.WorkingWeekdays {
		if !w.IsValid() {
			return fmt.Errorf("%w: invalid weekday %d", ErrInvalidSchedule, int(w))
		}
	}
	return nil
}

// WeekdayOverride полная замена рабочего окна на один день недели.
// Поля перерыва из расписания по умолчанию НЕ наследуются:
// override либо задает свой перерыв, либо день идет без перерыва.
type WeekdayOverride struct {
	Weekday    Weekday
	Open       types.TimeString
	Close      types.TimeString
	BreakStart *types.TimeString
	BreakEnd   *types.TimeString
}

// Validate проверяет инварианты override
func (o *WeekdayOverride) Validate() error {
	if !o.Weekday.IsValid() {
		return fmt.Errorf("%w: invalid weekday %d", ErrInvalidSchedule, int(o.Weekday))
	}
	return validateDayWindow(o.Open, o.Close, o.BreakStart, o.BreakEnd)
}

// validateDayWindow общая проверка дневного окна: open < close,
// перерыв задан обоими границами и лежит внутри [open, close]
func validateDayWindow(open, close types.TimeString, breakStart, breakEnd *types.TimeString) error {
	for _, ts := range []types.TimeString{open, close} {
		if err := ts.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
		}
	}
	if !open.IsBefore(close) {
		return fmt.Errorf("%w: open time %s must be before close time %s", ErrInvalidSchedule, open, close)
	}

	if (breakStart == nil) != (breakEnd == nil) {
		return fmt.Errorf("%w: break start and break end must be set together", ErrInvalidSchedule)
	}
	if breakStart == nil {
		return nil
	}

	for _, ts := range []types.TimeString{*breakStart, *breakEnd} {
		if err := ts.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
		}
	}
	if !breakStart.IsBefore(*breakEnd) {
		return fmt.Errorf("%w: break start %s must be before break end %s", ErrInvalidSchedule, *breakStart, *breakEnd)
	}
	if breakStart.IsBefore(open) || breakEnd.IsAfter(close) {
		return fmt.Errorf("%w: break window [%s, %s] must be inside working hours [%s, %s]",
			ErrInvalidSchedule, *breakStart, *breakEnd, open, close)
	}
	return nil
}

// EffectiveDay разрешённое рабочее окно на конкретную календарную дату
// после применения override-ов. Все значения - минуты с начала суток.
// IsOpen = false означает полностью закрытый день.
type EffectiveDay struct {
	IsOpen     bool
	Open       int
	Close      int
	HasBreak   bool
	BreakStart int
	BreakEnd   int
}

// ClosedDay возвращает полностью закрытый день
func ClosedDay() EffectiveDay {
	return EffectiveDay{IsOpen: false}
}
