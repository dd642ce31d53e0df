package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден или уже забронирован
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotLocked возвращается, когда блокировка слота не получена за lock_timeout.
	// Запрос можно повторить: параллельное бронирование ещё не закоммичено.
	ErrSlotLocked = errors.New("slot.repository: slot is locked by another booking in progress")

	// ErrInvalidInterval возвращается при попытке вставить пустой интервал
	ErrInvalidInterval = errors.New("slot.repository: interval start must be before end")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
