package domain

import "regexp"

var (
	loginRe = regexp.MustCompile(`^[A-Za-z0-9]{4,}$`)
	upperRe = regexp.MustCompile(`[A-Z]`)
	lowerRe = regexp.MustCompile(`[a-z]`)
	digitRe = regexp.MustCompile(`[0-9]`)
)

func ValidLogin(s string) bool {
	return loginRe.MatchString(s)
}

// Пароль: мин 8 символов, буквы в разных регистрах, хотя бы одна цифра.
// Используется при создании bootstrap-пользователя.
func ValidPassword(s string) bool {
	if len(s) < 8 {
		return false
	}
	return upperRe.MatchString(s) && lowerRe.MatchString(s) && digitRe.MatchString(s)
}
