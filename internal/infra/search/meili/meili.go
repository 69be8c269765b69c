package meili

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/meilisearch/meilisearch-go"

	"github.com/EgorLis/doc-gateway/internal/domain"
)

type Config struct {
	Host   string
	APIKey string
	Index  string
}

// Index — клиент поискового индекса документов. Индекс наполняется
// снаружи (пайплайном индексации); нам от него нужно одно: по doc_id
// найти запись и достать из неё storage-путь блоба.
type Index struct {
	sm     meilisearch.ServiceManager
	idx    meilisearch.IndexManager
	logger *log.Logger
}

var _ domain.DocumentIndex = (*Index)(nil)

func New(cfg Config, logger *log.Logger) *Index {
	sm := meilisearch.New(cfg.Host, meilisearch.WithAPIKey(cfg.APIKey))
	return &Index{
		sm:     sm,
		idx:    sm.Index(cfg.Index),
		logger: logger,
	}
}

// запись индекса: идентификатор чанка + полный storage URL документа
type indexRecord struct {
	ChunkID     string `json:"chunk_id"`
	StoragePath string `json:"metadata_storage_path"`
}

// BlobPathByDocID ищет запись с точным chunk_id и извлекает путь блоба
// из полного storage URL. Поиск может вернуть частичные совпадения,
// поэтому сверяем идентификатор по каждой записи.
func (i *Index) BlobPathByDocID(ctx context.Context, id domain.DocID) (string, error) {
	res, err := i.idx.SearchWithContext(ctx, id, &meilisearch.SearchRequest{
		Limit:                10,
		AttributesToRetrieve: []string{"chunk_id", "metadata_storage_path"},
	})
	if err != nil {
		i.logger.Printf("search %q failed: %v", id, err)
		return "", fmt.Errorf("%w: search: %v", domain.ErrUpstream, err)
	}

	for _, hit := range res.Hits {
		raw, err := json.Marshal(hit)
		if err != nil {
			continue
		}
		var rec indexRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		if rec.ChunkID != id || rec.StoragePath == "" {
			continue
		}
		blobPath := domain.ExtractBlobPath(rec.StoragePath)
		if blobPath == "" {
			i.logger.Printf("doc %q: empty blob path in %q", id, rec.StoragePath)
			return "", fmt.Errorf("%w: %s", domain.ErrNotFound, id)
		}
		return blobPath, nil
	}

	return "", fmt.Errorf("%w: %s", domain.ErrNotFound, id)
}

func (i *Index) Ping(ctx context.Context) error {
	if _, err := i.sm.HealthWithContext(ctx); err != nil {
		i.logger.Printf("health failed: %v", err)
		return err
	}
	return nil
}
