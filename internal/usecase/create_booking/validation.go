package create_booking

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// validateRequest валидирует и нормализует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || len([]rune(req.Name)) > domain.MaxNameLength {
		return fmt.Errorf("%w: name must be 1..%d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	req.Phone = strings.TrimSpace(req.Phone)
	if err := validatePhone(req.Phone); err != nil {
		return err
	}

	if req.ServiceID <= 0 || req.HallID <= 0 || req.MasterID <= 0 {
		return fmt.Errorf("%w: serviceID, hallID and masterID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time: %v", ErrInvalidInput, err)
	}

	return nil
}

// validatePhone допускает цифры, пробелы, скобки, дефисы и ведущий плюс
func validatePhone(phone string) error {
	if phone == "" || len(phone) > domain.MaxPhoneLength {
		return fmt.Errorf("%w: phone must be 1..%d characters", ErrInvalidInput, domain.MaxPhoneLength)
	}

	digits := 0
	for i, r := range phone {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return fmt.Errorf("%w: phone contains invalid character %q", ErrInvalidInput, r)
		}
	}

	if digits < 5 {
		return fmt.Errorf("%w: phone is too short", ErrInvalidInput)
	}
	return nil
}
