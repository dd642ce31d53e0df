package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func interval(startHour, endHour int) Interval {
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	return Interval{
		Start: day.Add(time.Duration(startHour) * time.Hour),
		End:   day.Add(time.Duration(endHour) * time.Hour),
	}
}

func TestInterval_IsValid(t *testing.T) {
	assert.True(t, interval(10, 12).IsValid())
	assert.False(t, interval(12, 12).IsValid())
	assert.False(t, interval(12, 10).IsValid())
}

func TestInterval_Overlaps(t *testing.T) {
	base := interval(10, 14)

	assert.True(t, base.Overlaps(interval(12, 16)))
	assert.True(t, base.Overlaps(interval(8, 11)))
	assert.True(t, base.Overlaps(interval(11, 12)))
	assert.True(t, base.Overlaps(interval(8, 16)))

	// Границы полуинтервалов касаются, но не пересекаются
	assert.False(t, base.Overlaps(interval(14, 16)))
	assert.False(t, base.Overlaps(interval(8, 10)))
	assert.False(t, base.Overlaps(interval(15, 17)))
}

func TestInterval_Contains(t *testing.T) {
	base := interval(10, 14)

	assert.True(t, base.Contains(interval(10, 14)))
	assert.True(t, base.Contains(interval(11, 13)))
	assert.False(t, base.Contains(interval(9, 12)))
	assert.False(t, base.Contains(interval(12, 15)))
}

func TestInterval_DurationMinutes(t *testing.T) {
	assert.Equal(t, 240, interval(10, 14).DurationMinutes())

	short := Interval{
		Start: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 9, 1, 10, 45, 0, 0, time.UTC),
	}
	assert.Equal(t, 45, short.DurationMinutes())
}

func TestSlot_IsExpired(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	past := Slot{StartAt: now.Add(-3 * time.Hour), EndAt: now.Add(-time.Hour)}
	future := Slot{StartAt: now.Add(time.Hour), EndAt: now.Add(3 * time.Hour)}

	assert.True(t, past.IsExpired(now))
	assert.False(t, future.IsExpired(now))
}
