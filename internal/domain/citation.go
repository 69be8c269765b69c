package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// CitationURL собирает кликабельную ссылку цитаты: токен встроен в query,
// поэтому браузеру не нужен отдельный логин в хранилище.
func CitationURL(apiBase string, id DocID, t Token) string {
	return fmt.Sprintf("%s/api/file?doc_id=%s&token=%s",
		strings.TrimRight(apiBase, "/"),
		url.QueryEscape(id),
		url.QueryEscape(string(t)))
}
