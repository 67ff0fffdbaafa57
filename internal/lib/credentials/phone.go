package credentials

import (
	"regexp"
)

var (
	nonDigitRe = regexp.MustCompile(`\D`)
	phoneRe    = regexp.MustCompile(`^\+?[0-9][0-9\s().-]{8,22}[0-9]$`)
)

// ValidatePhone проверяет номер телефона: от 10 до 15 цифр и допустимый формат записи.
// Sanitized содержит только цифры.
func ValidatePhone(phone string) Result {
	if phone == "" {
		return invalid("Phone number is required")
	}

	var errs []string
	digits := nonDigitRe.ReplaceAllString(phone, "")
	if len(digits) < 10 {
		errs = append(errs, "Phone number must be at least 10 digits")
	}
	if len(digits) > 15 {
		errs = append(errs, "Phone number is too long (maximum 15 digits)")
	}
	if !phoneRe.MatchString(trimSpace(phone)) {
		errs = append(errs, "Please provide a valid phone number")
	}

	return collect(errs, digits)
}
