package domain

import "time"

// Slot временной слот в календаре доступности.
// Свободный слот — непрерывное окно, доступное для записи.
// Забронированный слот покрывает ровно длительность одного активного бронирования.
type Slot struct {
	ID       int64
	StartAt  time.Time
	EndAt    time.Time
	IsBooked bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval возвращает интервал слота
func (s *Slot) Interval() Interval {
	return Interval{Start: s.StartAt, End: s.EndAt}
}

// DurationMinutes возвращает длину слота в минутах
func (s *Slot) DurationMinutes() int {
	return s.Interval().DurationMinutes()
}

// IsExpired возвращает true, если слот уже закончился к моменту now
func (s *Slot) IsExpired(now time.Time) bool {
	return !s.EndAt.After(now)
}
