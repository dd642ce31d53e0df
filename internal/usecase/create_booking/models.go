package create_booking

import (
	"time"
)

// Rules правила планирования, инжектируемые в engine при создании.
// Движок не читает глобальное состояние процесса.
type Rules struct {
	BufferMinutes  int // пауза после сеанса, вырезается из календаря
	MinLeadMinutes int // минимум между запросом и началом сеанса
}

// Request модель запроса на бронирование
type Request struct {
	SlotID    int64      // ID свободного слота
	ServiceID int64      // ID услуги
	StartAt   *time.Time // Желаемое начало сеанса; nil = начало слота
	Duration  int        // Длительность сеанса в минутах

	ClientName    string
	ClientEmail   string
	ClientPhone   string
	ClientComment string
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	ServiceID       int64
	SlotID          int64
	ServiceTitle    string
	Price           float64
	StartAt         time.Time // Начало сеанса
	EndAt           time.Time // Конец сеанса (без паузы)
	DurationMinutes int
	Status          string

	ClientName    string
	ClientEmail   string
	ClientPhone   string
	ClientComment string

	CreatedAt time.Time
	UpdatedAt time.Time
}
