package domain

import "errors"

// Бизнес-ошибки (маппятся на HTTP коды в transport/web/v1)
var (
	ErrBadParams        = errors.New("bad_params")         // 400
	ErrUnauth           = errors.New("unauthorized")       // 401: любая проблема с токеном/кредами, без деталей
	ErrForbidden        = errors.New("forbidden")          // 403
	ErrNotFound         = errors.New("not_found")          // 404
	ErrMethodNotAllowed = errors.New("method_not_allowed") // 405
	ErrUpstream         = errors.New("upstream_error")     // 502: хранилище/индекс недоступны, ретрай на стороне клиента
	ErrUnexpected       = errors.New("unexpected")         // 500
)

// Коды для error.code в конверте ответа
const (
	ErrCodeBadParams        = 1000
	ErrCodeUnauth           = 1001
	ErrCodeForbidden        = 1003
	ErrCodeNotFound         = 1004
	ErrCodeMethodNotAllowed = 1005
	ErrCodeUpstream         = 1502
	ErrCodeUnexpected       = 1500
)
