package domain

import "errors"

var (
	// ErrInvalidSchedule возвращается при нарушении инвариантов расписания
	ErrInvalidSchedule = errors.New("domain: invalid schedule")

	// ErrInvalidTimeBlock возвращается при некорректном временном блоке
	ErrInvalidTimeBlock = errors.New("domain: invalid time block")
)
