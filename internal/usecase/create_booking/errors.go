package create_booking

import "errors"

var (
	// ErrSlotNotAvailable возвращается, когда слот не существует, уже забронирован
	// или был забронирован параллельным запросом, успевшим закоммититься раньше
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrSlotBusy возвращается, когда блокировка слота не получена за отведенное
	// время. Запрос можно повторить.
	ErrSlotBusy = errors.New("create_booking: slot is busy, retry later")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrDurationNotOffered возвращается, когда услуга не предлагает такую длительность
	ErrDurationNotOffered = errors.New("create_booking: duration is not offered by this service")

	// ErrDurationExceedsSlot возвращается, когда длительность больше самого слота
	ErrDurationExceedsSlot = errors.New("create_booking: duration exceeds the slot")

	// ErrTooSoon возвращается, когда начало сеанса ближе минимального lead time
	ErrTooSoon = errors.New("create_booking: booking starts too soon")

	// ErrOutOfWindow возвращается, когда запрошенный сеанс не помещается в окно слота
	ErrOutOfWindow = errors.New("create_booking: booking does not fit the slot window")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
