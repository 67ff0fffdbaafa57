package credentials

// Strength — информационная оценка сложности пароля. На регистрацию не влияет.
type Strength string

const (
	StrengthWeak       Strength = "weak"
	StrengthMedium     Strength = "medium"
	StrengthStrong     Strength = "strong"
	StrengthVeryStrong Strength = "very-strong"
)

// PasswordScore считает очки сложности пароля по шкале 0..9.
func PasswordScore(password string) int {
	score := 0
	n := len([]rune(password))

	for _, threshold := range []int{8, 12, 16} {
		if n >= threshold {
			score++
		}
	}

	hasLower := lowerRe.MatchString(password)
	hasUpper := upperRe.MatchString(password)
	hasDigit := digitRe.MatchString(password)
	for _, ok := range []bool{hasLower, hasUpper, hasDigit, symbolRe.MatchString(password)} {
		if ok {
			score++
		}
	}

	if hasLower && hasUpper && hasDigit {
		score++
		if coreSymRe.MatchString(password) {
			score++
		}
	}
	return score
}

// PasswordStrength сворачивает PasswordScore в категорию.
func PasswordStrength(password string) Strength {
	switch score := PasswordScore(password); {
	case score <= 3:
		return StrengthWeak
	case score <= 6:
		return StrengthMedium
	case score <= 8:
		return StrengthStrong
	default:
		return StrengthVeryStrong
	}
}
