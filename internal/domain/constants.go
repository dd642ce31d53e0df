package domain

// Default scheduling rules
const (
	// DefaultBufferMinutes пауза между двумя массажами: после окончания сеанса
	// это время вырезается из календаря и недоступно для записи
	DefaultBufferMinutes = 60

	// DefaultMinLeadMinutes минимальный интервал между запросом и началом сеанса
	DefaultMinLeadMinutes = 120
)

// Business validation constants
const (
	MaxClientNameLength = 120
	MaxCommentLength    = 1000
	MaxMessageLength    = 4000
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
