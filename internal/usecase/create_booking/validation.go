package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SAMASS-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ClientName) == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}

	if len(req.ClientName) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: clientName is too long", ErrInvalidInput)
	}

	if !isValidEmail(req.ClientEmail) {
		return fmt.Errorf("%w: clientEmail is invalid", ErrInvalidInput)
	}

	if len(req.ClientComment) > domain.MaxCommentLength {
		return fmt.Errorf("%w: clientComment is too long", ErrInvalidInput)
	}

	return nil
}

// isValidEmail минимальная проверка адреса: непустой, с @ и точкой в домене.
// Настоящая проверка — это доставка письма.
func isValidEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	return strings.Contains(email[at+1:], ".")
}
