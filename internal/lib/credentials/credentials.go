// Package credentials проверяет имя, email, пароль и телефон пользователя
// перед сохранением учетной записи.
//
// Все функции чистые и никогда не возвращают error: некорректный ввод —
// ожидаемый случай, результатом которого является список сообщений в Result.
// Проверка регистрации собирает ошибки всех полей, проверка входа — мягче
// и смотрит только на наличие и формат.
package credentials

// Result — итог проверки одного поля.
type Result struct {
	Valid     bool
	Errors    []string
	Sanitized string
}

func invalid(msg string) Result {
	return Result{Valid: false, Errors: []string{msg}}
}

func collect(errs []string, sanitized string) Result {
	if len(errs) > 0 {
		return Result{Valid: false, Errors: errs}
	}
	return Result{Valid: true, Errors: []string{}, Sanitized: sanitized}
}

// RegistrationInput — сырые данные формы регистрации.
type RegistrationInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// RegistrationResult — агрегированный результат проверки регистрации.
// Поля Name, Email и Phone содержат очищенные значения для валидных полей
// и исходные значения для невалидных.
type RegistrationResult struct {
	Valid    bool
	Errors   []string
	Name     string
	Email    string
	Phone    string
	Strength Strength
}

// Registration проверяет все поля регистрации без остановки на первой ошибке.
// Телефон проверяется, только если он передан.
func Registration(in RegistrationInput) RegistrationResult {
	errs := make([]string, 0)
	out := RegistrationResult{
		Name:  in.Name,
		Email: in.Email,
		Phone: in.Phone,
	}

	name := ValidateName(in.Name)
	errs = append(errs, name.Errors...)
	if name.Valid {
		out.Name = name.Sanitized
	}

	email := ValidateEmail(in.Email)
	errs = append(errs, email.Errors...)
	if email.Valid {
		out.Email = email.Sanitized
	}

	pass := ValidatePassword(in.Password)
	errs = append(errs, pass.Errors...)
	if in.Password != "" {
		out.Strength = PasswordStrength(in.Password)
	}

	if in.Phone != "" {
		phone := ValidatePhone(in.Phone)
		errs = append(errs, phone.Errors...)
		if phone.Valid {
			out.Phone = phone.Sanitized
		}
	}

	out.Valid = len(errs) == 0
	out.Errors = errs
	return out
}

// LoginResult — результат проверки формы входа.
type LoginResult struct {
	Valid  bool
	Errors []string
	Email  string
}

// Login проверяет форму входа: email должен быть передан и иметь корректный формат,
// пароль должен быть передан. Сила пароля не проверяется.
func Login(email, password string) LoginResult {
	errs := make([]string, 0)
	trimmed := trimSpace(email)

	switch {
	case trimmed == "":
		errs = append(errs, "Email is required")
	case !isEmailSyntax(trimmed):
		errs = append(errs, "Please provide a valid email address")
	}

	if password == "" {
		errs = append(errs, "Password is required")
	}

	res := LoginResult{
		Valid:  len(errs) == 0,
		Errors: errs,
		Email:  trimmed,
	}
	if trimmed != "" {
		res.Email = NormalizeEmail(trimmed)
	}
	return res
}
