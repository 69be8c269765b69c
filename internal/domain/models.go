package domain

import (
	"time"

	"github.com/google/uuid"
)

// Базовые идентификаторы
type UserID = uuid.UUID

// DocID — непрозрачный идентификатор документа из поискового индекса
// (chunk_id). Формат не интерпретируем, передаём как есть.
type DocID = string

// Пользователь (principal). Создаётся при настройке сервиса;
// на время запроса — только чтение, ядро его не мутирует.
type User struct {
	ID        UserID    `json:"id"`
	Login     string    `json:"login"`
	Role      string    `json:"role"`
	Enabled   bool      `json:"enabled"`
	PassHash  []byte    `json:"-"` // никогда не отдаём наружу
	CreatedAt time.Time `json:"created_at"`
}

// DocumentRef — разрешённая ссылка на документ в объектном хранилище.
// Собирается по запросу из записи индекса + метаданных блоба, нигде
// не персистится.
type DocumentRef struct {
	DocID        DocID     `json:"doc_id"`
	BlobPath     string    `json:"blob_path"` // ключ внутри контейнера, иерархия папок сохранена
	Filename     string    `json:"filename"`
	Extension    string    `json:"file_extension"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
	CitationURL  string    `json:"citation_url,omitempty"` // см. CitationURL: ссылка с встроенным токеном
}
