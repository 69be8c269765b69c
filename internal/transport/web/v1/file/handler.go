package file

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/EgorLis/doc-gateway/internal/domain"
	"github.com/EgorLis/doc-gateway/internal/transport/web/logx"
	"github.com/EgorLis/doc-gateway/internal/transport/web/mw"
	v1 "github.com/EgorLis/doc-gateway/internal/transport/web/v1"
)

// Handler — гейтвей документов: doc_id → путь блоба → байты на проводе.
// Порядок шагов фиксирован: аутентификация (middleware) → резолв пути →
// авторизация → стриминг. Резолв идёт до авторизации, потому что правила
// доступа сформулированы в терминах префиксов путей.
type Handler struct {
	Log     *log.Logger
	Index   domain.DocumentIndex
	Storage domain.BlobStorage
	Cache   domain.Cache
	Access  domain.AccessRules

	APIBase string // внешний адрес сервиса для ссылок цитат
	PathTTL int    // секунд; кеш резолва doc_id → blob path
}

// Stream godoc
// @Summary     Stream document content
// @Description Отдаёт документ из хранилища по doc_id цитаты. Поддерживает Range (206) и HEAD.
// @Tags        file
// @Produce     octet-stream
// @Security    BearerAuth
// @Param       doc_id query string true "document id"
// @Param       token  query string false "Auth token (alternative to Authorization: Bearer)"
// @Success     200 {file} []byte
// @Success     206 {file} []byte "partial content"
// @Failure     401 {object} domain.APIEnvelope
// @Failure     403 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Failure     502 {object} domain.APIEnvelope
// @Router      /api/file [get]
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	const op = "file.stream"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	me, blobPath, err := h.resolve(r)
	if err != nil {
		logx.Error(h.Log, reqID, op, "resolve failed", err, "doc_id", r.URL.Query().Get("doc_id"))
		v1.WriteDomainError(w, r, err)
		return
	}

	contentType, inline := domain.ContentTypeFor(blobPath)

	// HEAD: только заголовки, контент не открываем
	if r.Method == http.MethodHead {
		info, err := h.Storage.Stat(r.Context(), blobPath)
		if err != nil {
			logx.Error(h.Log, reqID, op, "stat failed", err, "blob_path", blobPath)
			v1.WriteDomainError(w, r, err)
			return
		}
		writeContentHeaders(w, blobPath, contentType, inline)
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
		if !info.LastModified.IsZero() {
			w.Header().Set("Last-Modified", v1.HTTPTime(info.LastModified))
		}
		w.WriteHeader(http.StatusOK)
		logx.Info(h.Log, reqID, op, "head ok", "blob_path", blobPath, "size", info.Size)
		return
	}

	// GET: поддержка Range; кривой Range деградирует до полного ответа
	rangeHdr := r.Header.Get("Range")
	rc, contentLen, contentRange, err := h.Storage.Get(r.Context(), blobPath, rangeHdr)
	if err != nil {
		logx.Error(h.Log, reqID, op, "storage get failed", err, "blob_path", blobPath, "range", rangeHdr)
		v1.WriteDomainError(w, r, err)
		return
	}
	// закрываем поток на любом выходе, включая обрыв клиента
	defer rc.Close()

	writeContentHeaders(w, blobPath, contentType, inline)
	w.Header().Set("Content-Length", strconv.FormatInt(contentLen, 10))

	if contentRange != "" {
		w.Header().Set("Content-Range", contentRange)
		w.WriteHeader(http.StatusPartialContent)
		logx.Info(h.Log, reqID, op, "partial content", "blob_path", blobPath, "range", contentRange, "len", contentLen, "user", me.Login)
	} else {
		w.WriteHeader(http.StatusOK)
		logx.Info(h.Log, reqID, op, "ok", "blob_path", blobPath, "len", contentLen, "user", me.Login)
	}

	// стримим без буферизации всего объекта; обрыв соединения отменяет
	// r.Context() и чтение из хранилища
	if _, err := io.Copy(w, rc); err != nil {
		// заголовки уже ушли — ответ просто обрывается, ретрай на клиенте
		logx.Error(h.Log, reqID, op, "copy interrupted", err, "blob_path", blobPath)
	}
}

// resolve выполняет общие шаги Stream и Info: пользователь из контекста,
// doc_id → путь блоба (с кешем), проверка прав.
// Решение по статусам: неизвестный doc_id → 404, известный, но чужой →
// 403. Существование документов не скрываем — узнать его могут только
// аутентифицированные пользователи.
func (h *Handler) resolve(r *http.Request) (domain.User, string, error) {
	me, ok := mw.UserFromCtx(r.Context())
	if !ok {
		return domain.User{}, "", domain.ErrUnauth
	}

	docID := r.URL.Query().Get("doc_id")
	if docID == "" {
		docID = r.PathValue("doc_id")
	}
	if docID == "" {
		return me, "", fmt.Errorf("%w: doc_id is required", domain.ErrBadParams)
	}

	blobPath, err := h.blobPath(r.Context(), docID)
	if err != nil {
		return me, "", err
	}

	if !h.Access.Allowed(me.Role, blobPath) {
		return me, "", fmt.Errorf("%w: role %q", domain.ErrForbidden, me.Role)
	}
	return me, blobPath, nil
}

// blobPath резолвит doc_id через кеш или индекс. Отрицательные ответы
// не кешируем: индекс мог ещё не успеть увидеть документ.
func (h *Handler) blobPath(ctx context.Context, docID domain.DocID) (string, error) {
	key := domain.CacheKeyBlobPath(docID)
	if b, err := h.Cache.Get(ctx, key); err == nil && len(b) > 0 {
		return string(b), nil
	}

	blobPath, err := h.Index.BlobPathByDocID(ctx, docID)
	if err != nil {
		return "", err
	}
	if blobPath == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrNotFound, docID)
	}

	_ = h.Cache.Set(ctx, key, []byte(blobPath), h.PathTTL)
	return blobPath, nil
}

func writeContentHeaders(w http.ResponseWriter, blobPath, contentType string, inline bool) {
	w.Header().Set("Accept-Ranges", "bytes")
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=3600")

	disposition := "attachment" // неизвестный тип — принудительная загрузка
	if inline {
		disposition = "inline"
	}
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`%s; filename="%s"`, disposition, domain.BlobFilename(blobPath)))
}
