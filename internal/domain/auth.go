package domain

import (
	"context"
	"time"
)

type Token string

type TokenClaims struct {
	JTI       string // уникальный id токена
	UserID    UserID
	Login     string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Хеширование паролей
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain string, encodedHash string) (bool, error)
}

// Управление токенами. Секрет подписи — неизменяемое состояние процесса,
// загружается один раз на старте; ротация инвалидирует все выданные токены.
type TokenManager interface {
	Issue(ctx context.Context, u User) (Token, TokenClaims, error)
	Parse(ctx context.Context, t Token) (TokenClaims, error)
}

// Ревокация токенов (Redis). Запись живёт до exp токена.
type TokenBlacklist interface {
	Revoke(ctx context.Context, jti string, exp time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
