package s3

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/minio/minio-go/v7"

	"github.com/EgorLis/doc-gateway/internal/domain"
)

type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	UseSSL    bool
	PathStyle bool

	// Креды: выбор стратегии см. credentials.go
	AccessKey   string
	SecretKey   string
	RoleARN     string
	SessionName string
	UseIAM      bool
}

// Storage отдаёт блобы из бакета. Клиент строится один раз на старте и
// переиспользуется всеми запросами; само подключение ленивое — первая
// реальная операция валидирует креды.
type Storage struct {
	cl     *minio.Client
	bucket string
	logger *log.Logger
}

var _ domain.BlobStorage = (*Storage)(nil)

func New(cfg Config, logger *log.Logger) (*Storage, error) {
	st := SelectStrategy(cfg)
	logger.Printf("credential strategy: %s", st)

	creds, err := newCredentials(cfg, st)
	if err != nil {
		return nil, fmt.Errorf("resolve credentials (%s): %w", st, err)
	}

	opts := &minio.Options{
		Creds:  creds,
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	}
	if cfg.PathStyle {
		opts.BucketLookup = minio.BucketLookupPath
	}
	cl, err := minio.New(cfg.Endpoint, opts)
	if err != nil {
		return nil, fmt.Errorf("init client: %w", err)
	}
	return &Storage{cl: cl, bucket: cfg.Bucket, logger: logger}, nil
}

// Stat возвращает метаданные объекта (HEAD).
func (s *Storage) Stat(ctx context.Context, blobPath string) (domain.BlobInfo, error) {
	info, err := s.cl.StatObject(ctx, s.bucket, blobPath, minio.StatObjectOptions{})
	if err != nil {
		return domain.BlobInfo{}, s.mapErr("Stat", blobPath, err)
	}
	return domain.BlobInfo{
		Size:         info.Size,
		LastModified: info.LastModified,
		ETag:         info.ETag,
	}, nil
}

// Get открывает поток для чтения.
// rangeHeader в формате "bytes=START-END" (опционально).
// Кривой синтаксис диапазона не ошибка: отдаём полный объект, как это
// делают снисходительные HTTP-прокси. Возвращает поток, длину
// отдаваемого тела и Content-Range (пустой, если диапазон не применён).
func (s *Storage) Get(
	ctx context.Context,
	blobPath string,
	rangeHeader string,
) (rc io.ReadCloser, contentLen int64, contentRange string, err error) {

	// 1) HEAD: размер всего объекта
	info, err := s.cl.StatObject(ctx, s.bucket, blobPath, minio.StatObjectOptions{})
	if err != nil {
		return nil, 0, "", s.mapErr("Get.stat", blobPath, err)
	}
	totalSize := info.Size

	// 2) Парс диапазона (если есть)
	start, end, useRange := parseRange(rangeHeader, totalSize)

	opts := minio.GetObjectOptions{}
	if useRange {
		// NB: SetRange принимает включающие границы [start, end]
		if e := opts.SetRange(start, end); e != nil {
			return nil, 0, "", s.mapErr("Get.range", blobPath, e)
		}
		contentLen = end - start + 1
		contentRange = fmt.Sprintf("bytes %d-%d/%d", start, end, totalSize)
	} else {
		contentLen = totalSize
	}

	// 3) Получаем поток
	obj, err := s.cl.GetObject(ctx, s.bucket, blobPath, opts)
	if err != nil {
		return nil, 0, "", s.mapErr("Get", blobPath, err)
	}

	return obj, contentLen, contentRange, nil
}

// parseRange разбирает заголовок Range для объекта размера totalSize.
// Поддерживаются формы "bytes=A-B", "bytes=A-" и "bytes=-N".
// Любой разбор, не дающий валидный диапазон 0 <= start <= end < totalSize,
// возвращает ok=false — вызывающий отдаёт полный объект.
func parseRange(rangeHeader string, totalSize int64) (start, end int64, ok bool) {
	if !strings.HasPrefix(rangeHeader, "bytes=") || totalSize <= 0 {
		return 0, 0, false
	}
	spec := strings.TrimPrefix(rangeHeader, "bytes=")
	parts := strings.SplitN(spec, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	left, right := parts[0], parts[1]

	switch {
	// bytes=A-B
	case left != "" && right != "":
		a, e1 := strconv.ParseInt(left, 10, 64)
		b, e2 := strconv.ParseInt(right, 10, 64)
		if e1 != nil || e2 != nil || a < 0 || b < a {
			return 0, 0, false
		}
		if b > totalSize-1 {
			b = totalSize - 1 // конец клампим к размеру объекта
		}
		if a > totalSize-1 {
			return 0, 0, false // невыполнимый старт — отдаём полный объект
		}
		return a, b, true

	// bytes=A-  (от A до конца)
	case left != "" && right == "":
		a, e := strconv.ParseInt(left, 10, 64)
		if e != nil || a < 0 || a > totalSize-1 {
			return 0, 0, false
		}
		return a, totalSize - 1, true

	// bytes=-N  (последние N байт)
	case left == "" && right != "":
		n, e := strconv.ParseInt(right, 10, 64)
		if e != nil || n <= 0 {
			return 0, 0, false
		}
		if n > totalSize {
			n = totalSize
		}
		return totalSize - n, totalSize - 1, true
	}
	return 0, 0, false
}

// Ping проверяет доступность бакета (для health-чеков).
func (s *Storage) Ping(ctx context.Context) error {
	ok, err := s.cl.BucketExists(ctx, s.bucket)
	if err != nil {
		s.logger.Printf("ping failed: %v", err)
		return err
	}
	if !ok {
		s.logger.Printf("ping: bucket %q not found", s.bucket)
		return fmt.Errorf("bucket %q not found", s.bucket)
	}
	return nil
}

// mapErr переводит ошибки SDK в доменные: NoSuchKey → ErrNotFound,
// остальное — ErrUpstream (ретраится на стороне клиента).
func (s *Storage) mapErr(op, blobPath string, err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" {
		s.logger.Printf("%s %q: not found", op, blobPath)
		return fmt.Errorf("%w: %s", domain.ErrNotFound, blobPath)
	}
	s.logger.Printf("%s %q: %v", op, blobPath, err)
	return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
}
