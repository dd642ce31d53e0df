package domain

import "time"

// Interval полуоткрытый временной интервал [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// IsValid возвращает true, если интервал не пустой (Start < End)
func (i Interval) IsValid() bool {
	return i.Start.Before(i.End)
}

// Overlaps возвращает true, если интервалы пересекаются.
// Граничные случаи не считаются пересечением: [10:00, 11:00) и [11:00, 12:00) не пересекаются.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Contains возвращает true, если inner целиком лежит внутри i
func (i Interval) Contains(inner Interval) bool {
	return !i.Start.After(inner.Start) && !inner.End.After(i.End)
}

// DurationMinutes возвращает длину интервала в минутах (с округлением)
func (i Interval) DurationMinutes() int {
	return int(i.End.Sub(i.Start).Round(time.Minute) / time.Minute)
}
