package credentials

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	nameMinLen = 2
	nameMaxLen = 50
)

var (
	nameCharsRe     = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)
	nameSpacesRe    = regexp.MustCompile(`\s{2,}`)
	whitespaceRunRe = regexp.MustCompile(`\s+`)
)

// ValidateName проверяет имя пользователя.
func ValidateName(name string) Result {
	if name == "" {
		return invalid("Name is required")
	}

	name = trimSpace(name)
	if name == "" {
		return invalid("Name cannot be empty")
	}

	var errs []string
	length := utf8.RuneCountInString(name)
	if length < nameMinLen {
		errs = append(errs, "Name must be at least 2 characters long")
	}
	if length > nameMaxLen {
		errs = append(errs, "Name is too long (maximum 50 characters)")
	}
	if !nameCharsRe.MatchString(name) {
		errs = append(errs, "Name can only contain letters, spaces, hyphens, and apostrophes")
	}
	if nameSpacesRe.MatchString(name) {
		errs = append(errs, "Name cannot contain multiple consecutive spaces")
	}

	return collect(errs, html.EscapeString(whitespaceRunRe.ReplaceAllString(name, " ")))
}

func trimSpace(s string) string {
	return strings.TrimSpace(s)
}
