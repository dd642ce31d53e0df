package domain

import (
	"strconv"
	"time"
)

// Service массажная услуга из каталога.
// DurationsPrices — отображение длительности (в минутах, ключ-строка) на цену в евро.
// Набор ключей определяет допустимые длительности при бронировании.
type Service struct {
	ID              int64
	Title           string
	Description     string
	DurationsPrices map[string]float64
	IsActive        bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OffersDuration возвращает true, если услуга предлагает указанную длительность
func (s *Service) OffersDuration(minutes int) bool {
	_, ok := s.DurationsPrices[strconv.Itoa(minutes)]
	return ok
}

// AllowedDurations возвращает список предлагаемых длительностей в минутах.
// Некорректные ключи (не целые числа) пропускаются.
func (s *Service) AllowedDurations() []int {
	durations := make([]int, 0, len(s.DurationsPrices))
	for key := range s.DurationsPrices {
		minutes, err := strconv.Atoi(key)
		if err != nil || minutes <= 0 {
			continue
		}
		durations = append(durations, minutes)
	}
	return durations
}

// PriceFor возвращает цену для указанной длительности
func (s *Service) PriceFor(minutes int) (float64, bool) {
	price, ok := s.DurationsPrices[strconv.Itoa(minutes)]
	return price, ok
}
