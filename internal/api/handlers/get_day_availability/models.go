package get_day_availability

import (
	"strconv"
	"time"

	"github.com/agendame/AGD-AvailabilityService/internal/domain"
	getDayAvailability "github.com/agendame/AGD-AvailabilityService/internal/usecase/get_day_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date                   string  `json:"date"`
	BusinessID             int64   `json:"businessId"`
	ProfessionalID         int64   `json:"professionalId"`
	ServiceDurationMinutes int     `json:"serviceDurationMinutes"`
	IsOpen                 bool    `json:"isOpen"`
	Slots                  []Slot  `json:"slots"`
	Summary                Summary `json:"summary"`
}

// Slot модель слота в HTTP ответе
type Slot struct {
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
	Reason          string `json:"reason,omitempty"` // только для недоступных слотов
}

// Summary сводка по слотам дня
type Summary struct {
	Available   int             `json:"available"`
	Unavailable int             `json:"unavailable"`
	ByPeriod    PeriodBreakdown `json:"byPeriod"`
}

// PeriodBreakdown разбивка по периодам суток
type PeriodBreakdown struct {
	Morning   PeriodCounts `json:"morning"`
	Afternoon PeriodCounts `json:"afternoon"`
	Evening   PeriodCounts `json:"evening"`
}

// PeriodCounts счётчики слотов одного периода
type PeriodCounts struct {
	Available   int `json:"available"`
	Unavailable int `json:"unavailable"`
}

// ToUseCaseRequest создает запрос use case из параметров HTTP запроса
func ToUseCaseRequest(businessID, professionalID int64, durationStr, dateStr string) (*getDayAvailability.Request, error) {
	duration, err := strconv.Atoi(durationStr)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getDayAvailability.Request{
		BusinessID:             businessID,
		ProfessionalID:         professionalID,
		ServiceDurationMinutes: duration,
		Date:                   date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDayAvailability.Response) *AvailabilityResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = Slot{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
			Available:       slot.Available,
			Reason:          string(slot.Reason),
		}
	}

	return &AvailabilityResponse{
		Date:                   resp.Date.Format(domain.DateFormat),
		BusinessID:             resp.BusinessID,
		ProfessionalID:         resp.ProfessionalID,
		ServiceDurationMinutes: resp.ServiceDurationMinutes,
		IsOpen:                 resp.IsOpen,
		Slots:                  slots,
		Summary: Summary{
			Available:   resp.Summary.Available,
			Unavailable: resp.Summary.Unavailable,
			ByPeriod: PeriodBreakdown{
				Morning:   PeriodCounts(resp.Summary.ByPeriod.Morning),
				Afternoon: PeriodCounts(resp.Summary.ByPeriod.Afternoon),
				Evening:   PeriodCounts(resp.Summary.ByPeriod.Evening),
			},
		},
	}
}
