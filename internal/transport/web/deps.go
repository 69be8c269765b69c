package web

import "github.com/EgorLis/doc-gateway/internal/domain"

type AuthDeps struct {
	Users     domain.UsersRepo
	Hasher    domain.PasswordHasher
	Tokens    domain.TokenManager
	Blacklist domain.TokenBlacklist
}

type GatewayDeps struct {
	Index   domain.DocumentIndex
	Storage domain.BlobStorage
	Cache   domain.Cache
	Access  domain.AccessRules
}
