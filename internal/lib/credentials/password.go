package credentials

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	passwordMinLen = 6
	passwordMaxLen = 128
)

var (
	upperRe   = regexp.MustCompile(`[A-Z]`)
	lowerRe   = regexp.MustCompile(`[a-z]`)
	digitRe   = regexp.MustCompile(`\d`)
	symbolRe  = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>/?]`)
	coreSymRe = regexp.MustCompile(`[!@#$%^&*]`)

	weakPasswords = map[string]struct{}{
		"password":    {},
		"123456":      {},
		"12345678":    {},
		"qwerty":      {},
		"abc123":      {},
		"password123": {},
		"admin":       {},
		"letmein":     {},
		"welcome":     {},
		"123456789":   {},
	}
)

// ValidatePassword проверяет пароль по всем правилам и возвращает все нарушения сразу.
// Sanitized у пароля не заполняется.
func ValidatePassword(password string) Result {
	if password == "" {
		return invalid("Password is required")
	}

	var errs []string
	length := utf8.RuneCountInString(password)
	if length < passwordMinLen {
		errs = append(errs, "Password must be at least 6 characters long")
	}
	if length > passwordMaxLen {
		errs = append(errs, "Password is too long (maximum 128 characters)")
	}
	if !upperRe.MatchString(password) {
		errs = append(errs, "Password must contain at least one uppercase letter")
	}
	if !lowerRe.MatchString(password) {
		errs = append(errs, "Password must contain at least one lowercase letter")
	}
	if !digitRe.MatchString(password) {
		errs = append(errs, "Password must contain at least one number")
	}
	if !symbolRe.MatchString(password) {
		errs = append(errs, "Password must contain at least one special character")
	}
	if IsCommonPassword(password) {
		errs = append(errs, "This password is too common. Please choose a stronger password")
	}

	return collect(errs, "")
}

// IsCommonPassword сообщает, входит ли пароль в список распространенных (без учета регистра).
func IsCommonPassword(password string) bool {
	_, found := weakPasswords[strings.ToLower(password)]
	return found
}
