package mw

import (
	"context"
	"net/http"
	"strings"

	"github.com/EgorLis/doc-gateway/internal/domain"
)

// Users — минимум, который нужен аутентификации от хранилища пользователей.
type Users interface {
	UserByLogin(ctx context.Context, login string) (domain.User, error)
}

type AuthDeps struct {
	Tokens    domain.TokenManager
	Blacklist domain.TokenBlacklist
	Users     Users
}

// RequireAuth аутентифицирует запрос по токену из заголовка или query.
// Любой отказ — единый 401 без деталей: не раскрываем, какая именно
// проверка не прошла.
func RequireAuth(deps AuthDeps, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := TokenFromRequest(r)
		if raw == "" {
			unauthorized(w)
			return
		}
		claims, err := deps.Tokens.Parse(r.Context(), domain.Token(raw))
		if err != nil {
			unauthorized(w)
			return
		}
		if revoked, _ := deps.Blacklist.IsRevoked(r.Context(), claims.JTI); revoked {
			unauthorized(w)
			return
		}
		// Пользователь должен существовать и быть включён на момент запроса
		u, err := deps.Users.UserByLogin(r.Context(), claims.Login)
		if err != nil || !u.Enabled {
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(domain.WithUser(r.Context(), u)))
	})
}

// UserFromCtx — шорткат к domain.UserFromCtx, чтобы хендлерам хватало
// импорта mw.
func UserFromCtx(ctx context.Context) (domain.User, bool) {
	return domain.UserFromCtx(ctx)
}

// TokenFromRequest достаёт токен из запроса. Заголовок приоритетнее
// query-параметра: это более явный канал. Параметр ?token= оставлен для
// кликабельных ссылок цитат, которым заголовки недоступны.
func TokenFromRequest(r *http.Request) string {
	if t := extractBearer(r.Header.Get("Authorization")); t != "" {
		return t
	}
	if t := r.URL.Query().Get("token"); t != "" {
		return t
	}
	return ""
}

func extractBearer(h string) string {
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	http.Error(w, `{"error":{"code":1001,"text":"unauthorized"}}`, http.StatusUnauthorized)
}
