package domain

import (
	"fmt"
	"time"

	"github.com/agendame/AGD-AvailabilityService/pkg/types"
)

// TimeBlock represents an administrative time block: an interval removed from
// availability without a corresponding appointment (manual closure, cleaning,
// staff meeting). ProfessionalID = nil blocks all professionals of the business.
type TimeBlock struct {
	ID             int64
	BusinessID     int64
	ProfessionalID *int64
	Date           time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	Reason         *string
	CreatedAt      time.Time
}

// AppliesTo returns true if the block applies to the given professional
func (b *TimeBlock) AppliesTo(professionalID int64) bool {
	return b.ProfessionalID == nil || *b.ProfessionalID == professionalID
}

// Validate проверяет инварианты временного блока
func (b *TimeBlock) Validate() error {
	for _, ts := range []types.TimeString{b.StartTime, b.EndTime} {
		if err := ts.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTimeBlock, err)
		}
	}
	if !b.StartTime.IsBefore(b.EndTime) {
		return fmt.Errorf("%w: start time %s must be before end time %s",
			ErrInvalidTimeBlock, b.StartTime, b.EndTime)
	}
	if b.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidTimeBlock)
	}
	if b.Reason != nil && len(*b.Reason) > MaxBlockReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidTimeBlock, MaxBlockReasonLength)
	}
	return nil
}
