package file

import (
	"net/http"

	"github.com/EgorLis/doc-gateway/internal/domain"
	"github.com/EgorLis/doc-gateway/internal/transport/web/logx"
	"github.com/EgorLis/doc-gateway/internal/transport/web/mw"
	v1 "github.com/EgorLis/doc-gateway/internal/transport/web/v1"
)

// Info godoc
// @Summary     Document metadata
// @Description Имя файла, расширение, content type, размер и путь блоба — без самого контента.
// @Tags        file
// @Produce     json
// @Security    BearerAuth
// @Param       doc_id path string true "document id"
// @Success     200 {object} domain.DocumentRef
// @Failure     401 {object} domain.APIEnvelope
// @Failure     403 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Failure     502 {object} domain.APIEnvelope
// @Router      /api/document/{doc_id}/info [get]
func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	const op = "file.info"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	_, blobPath, err := h.resolve(r)
	if err != nil {
		logx.Error(h.Log, reqID, op, "resolve failed", err, "doc_id", r.PathValue("doc_id"))
		v1.WriteDomainError(w, r, err)
		return
	}

	info, err := h.Storage.Stat(r.Context(), blobPath)
	if err != nil {
		logx.Error(h.Log, reqID, op, "stat failed", err, "blob_path", blobPath)
		v1.WriteDomainError(w, r, err)
		return
	}

	contentType, _ := domain.ContentTypeFor(blobPath)
	ref := domain.DocumentRef{
		DocID:        r.PathValue("doc_id"),
		BlobPath:     blobPath,
		Filename:     domain.BlobFilename(blobPath),
		Extension:    domain.FileExtension(blobPath),
		ContentType:  contentType,
		Size:         info.Size,
		LastModified: info.LastModified,
	}
	// готовая ссылка цитаты: тот же токен, которым вызван info
	if h.APIBase != "" {
		if raw := mw.TokenFromRequest(r); raw != "" {
			ref.CitationURL = domain.CitationURL(h.APIBase, ref.DocID, domain.Token(raw))
		}
	}

	logx.Info(h.Log, reqID, op, "ok", "blob_path", blobPath, "size", info.Size)
	v1.WriteJSON(w, r, http.StatusOK, ref)
}
