package domain

import "strings"

// AccessRules — статические правила авторизации: роль → список префиксов
// путей блобов, к которым роль имеет доступ. Пустые правила означают,
// что ограничение по ролям не настроено и любой аутентифицированный
// пользователь читает любой документ.
type AccessRules struct {
	Roles map[string][]string
}

// Allowed проверяет, разрешает ли роль чтение blobPath.
// Префикс "*" открывает роли всё.
func (r AccessRules) Allowed(role, blobPath string) bool {
	if len(r.Roles) == 0 {
		return true
	}
	prefixes, ok := r.Roles[role]
	if !ok {
		return false
	}
	for _, p := range prefixes {
		if p == "*" {
			return true
		}
		if strings.HasPrefix(blobPath, p) {
			return true
		}
	}
	return false
}
