package availability

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("availability: slot not found")

	// ErrInvalidDate возвращается при некорректном формате даты фильтра
	ErrInvalidDate = errors.New("availability: invalid date format, expected YYYY-MM-DD")

	// ErrInvalidInterval возвращается, когда окно слота пустое или перевернутое
	ErrInvalidInterval = errors.New("availability: invalid slot interval")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
