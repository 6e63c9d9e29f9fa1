package book_appointment

import (
	"fmt"
	"net/mail"
	"regexp"

	"github.com/barberbook/booking-service/internal/domain"
)

var (
	// phoneRegexp международный формат: +<код страны><номер>
	phoneRegexp = regexp.MustCompile(`^\+[1-9]\d{0,3}\d{6,15}$`)

	// nameRegexp буквы (включая расширенную латиницу) и пробелы
	nameRegexp = regexp.MustCompile(`^[a-zA-Z\s\x{00C0}-\x{017F}\x{0100}-\x{024F}\x{1E00}-\x{1EFF}]+$`)
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if len(req.Name) < domain.MinNameLength {
		return fmt.Errorf("%w: name must be at least %d characters", ErrInvalidInput, domain.MinNameLength)
	}
	if len(req.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name cannot exceed %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	if !nameRegexp.MatchString(req.Name) {
		return fmt.Errorf("%w: name can only contain letters and spaces", ErrInvalidInput)
	}

	if !phoneRegexp.MatchString(req.Phone) {
		return fmt.Errorf("%w: phone must be in international format", ErrInvalidInput)
	}

	if req.Email != nil {
		if _, err := mail.ParseAddress(*req.Email); err != nil {
			return fmt.Errorf("%w: invalid email address", ErrInvalidInput)
		}
	}

	if !req.Service.IsValid() {
		return fmt.Errorf("%w: unknown service %q", ErrInvalidInput, req.Service)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if !req.Time.IsValid() {
		return fmt.Errorf("%w: invalid time format", ErrInvalidInput)
	}

	return nil
}
