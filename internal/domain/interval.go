package domain

// IntervalSource источник занятого интервала
type IntervalSource string

const (
	SourceAppointment IntervalSource = "appointment"
	SourceBlock       IntervalSource = "block"
)

// OccupiedInterval полуоткрытый интервал [Start, End) в минутах с начала суток,
// в течение которого мастер не может принять новую запись
type OccupiedInterval struct {
	Start  int
	End    int
	Source IntervalSource
}

// Overlaps returns true if the interval overlaps [start, end).
// Half-open semantics: intervals that merely touch do not overlap.
func (i OccupiedInterval) Overlaps(start, end int) bool {
	return i.Start < end && i.End > start
}
