package domain

import (
	"context"
	"io"
	"time"
)

// Метаданные блоба из хранилища. Content-Type сюда не входит намеренно:
// тип выводится из расширения файла (см. mime.go), а не из меты блоба.
type BlobInfo struct {
	Size         int64
	LastModified time.Time
	ETag         string
}

// Хранилище бинарного контента (S3/MinIO). Только чтение: гейтвей
// отдаёт документы, но никогда их не пишет и не удаляет.
type BlobStorage interface {
	// Метаданные объекта (HEAD)
	Stat(ctx context.Context, blobPath string) (BlobInfo, error)
	// Поток контента. rangeHeader — сырой заголовок Range ("bytes=A-B",
	// опционально). Возвращает поток, длину отдаваемого тела и
	// Content-Range (пустой, если диапазон не применён).
	Get(ctx context.Context, blobPath string, rangeHeader string) (rc io.ReadCloser, contentLen int64, contentRange string, err error)
	Ping(ctx context.Context) error
}

// Индекс документов — внешний коллаборатор (поисковый сервис).
// Единственное, что нам от него нужно: doc_id → путь блоба.
type DocumentIndex interface {
	// BlobPathByDocID возвращает путь внутри контейнера для doc_id.
	// ErrNotFound, если документа в индексе нет; ErrUpstream при
	// недоступности индекса.
	BlobPathByDocID(ctx context.Context, id DocID) (string, error)
	Ping(ctx context.Context) error
}
