package get_day_availability

import (
	"time"

	"github.com/agendame/AGD-AvailabilityService/internal/domain"
)

// Request модель запроса дневной доступности мастера
type Request struct {
	BusinessID             int64     // ID бизнеса
	ProfessionalID         int64     // ID мастера
	ServiceDurationMinutes int       // Длительность услуги в минутах
	Date                   time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа: упорядоченная последовательность слотов и сводка
type Response struct {
	Date                   time.Time
	BusinessID             int64
	ProfessionalID         int64
	ServiceDurationMinutes int
	IsOpen                 bool // false - бизнес в этот день закрыт
	Slots                  []domain.Slot
	Summary                Summary
}

// Summary агрегированная сводка по слотам дня
type Summary struct {
	Available   int
	Unavailable int
	ByPeriod    PeriodBreakdown
}

// PeriodBreakdown разбивка слотов по периодам суток
type PeriodBreakdown struct {
	Morning   PeriodCounts
	Afternoon PeriodCounts
	Evening   PeriodCounts
}

// PeriodCounts счётчики слотов внутри одного периода
type PeriodCounts struct {
	Available   int
	Unavailable int
}

// closedResponse ответ для полностью закрытого дня
func closedResponse(req *Request) *Response {
	return &Response{
		Date:                   req.Date,
		BusinessID:             req.BusinessID,
		ProfessionalID:         req.ProfessionalID,
		ServiceDurationMinutes: req.ServiceDurationMinutes,
		IsOpen:                 false,
		Slots:                  []domain.Slot{},
	}
}
