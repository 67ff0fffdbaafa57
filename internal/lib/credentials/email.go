package credentials

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator"
)

const emailMaxLen = 254

var (
	emailFormatRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	syntax = validator.New()

	disposableDomains = map[string]struct{}{
		"10minutemail.com":  {},
		"tempmail.org":      {},
		"guerrillamail.com": {},
		"mailinator.com":    {},
		"yopmail.com":       {},
		"throwaway.email":   {},
	}
)

// ValidateEmail проверяет email. Проверка останавливается на первой найденной проблеме.
// Sanitized содержит нормализованный адрес в нижнем регистре.
func ValidateEmail(email string) Result {
	if email == "" {
		return invalid("Email is required")
	}

	email = trimSpace(email)
	if email == "" {
		return invalid("Email cannot be empty")
	}
	if len(email) > emailMaxLen {
		return invalid("Email address is too long (maximum 254 characters)")
	}
	if !isEmailSyntax(email) {
		return invalid("Please provide a valid email address")
	}
	if !emailFormatRe.MatchString(email) {
		return invalid("Email format is invalid")
	}
	if IsDisposable(email) {
		return invalid("Disposable email addresses are not allowed")
	}

	return Result{Valid: true, Errors: []string{}, Sanitized: NormalizeEmail(email)}
}

// IsDisposable сообщает, относится ли домен адреса к одноразовым почтовым сервисам.
func IsDisposable(email string) bool {
	_, domain, ok := strings.Cut(email, "@")
	if !ok {
		return false
	}
	_, found := disposableDomains[strings.ToLower(domain)]
	return found
}

// NormalizeEmail приводит адрес к каноническому виду: нижний регистр, для gmail
// удаляются точки и подадрес после "+", googlemail.com заменяется на gmail.com,
// для outlook/hotmail/live и icloud удаляется подадрес после "+".
func NormalizeEmail(email string) string {
	email = strings.ToLower(trimSpace(email))
	local, domain, ok := strings.Cut(email, "@")
	if !ok {
		return email
	}

	switch domain {
	case "gmail.com", "googlemail.com":
		local = stripSubaddress(local, "+")
		local = strings.ReplaceAll(local, ".", "")
		domain = "gmail.com"
	case "outlook.com", "hotmail.com", "live.com", "icloud.com", "me.com", "mac.com":
		local = stripSubaddress(local, "+")
	}
	if local == "" {
		return email
	}
	return local + "@" + domain
}

func stripSubaddress(local, sep string) string {
	if i := strings.Index(local, sep); i >= 0 {
		return local[:i]
	}
	return local
}

func isEmailSyntax(email string) bool {
	return syntax.Var(email, "required,email") == nil
}
