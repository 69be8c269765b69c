package health

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/EgorLis/doc-gateway/internal/transport/web/logx"
	"github.com/EgorLis/doc-gateway/internal/transport/web/mw"
	v1 "github.com/EgorLis/doc-gateway/internal/transport/web/v1"
)

const pingTimeout = 5 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler проверяет доступность внешних зависимостей гейтвея.
// Любая из них может быть nil — тогда просто не проверяется.
type Handler struct {
	Log      *log.Logger
	Database Pinger
	Cache    Pinger
	Storage  Pinger
	Search   Pinger
}

type statusResponse struct {
	Status   string            `json:"status"` // healthy | degraded
	Services map[string]string `json:"services"`
}

// Health godoc
// @Summary     Dependency health
// @Description Пингует БД, кеш, хранилище и индекс. Всегда 200: статус в теле.
// @Tags        health
// @Produce     json
// @Success     200 {object} statusResponse
// @Router      /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	const op = "health.check"
	reqID := mw.RequestIDFromCtx(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	resp := statusResponse{Status: "healthy", Services: map[string]string{}}
	probe := func(name string, p Pinger) {
		if p == nil {
			return
		}
		if err := p.Ping(ctx); err != nil {
			logx.Error(h.Log, reqID, op, "ping failed", err, "service", name)
			resp.Services[name] = "unavailable"
			resp.Status = "degraded"
			return
		}
		resp.Services[name] = "ok"
	}
	probe("database", h.Database)
	probe("cache", h.Cache)
	probe("storage", h.Storage)
	probe("search", h.Search)

	// всегда 200: деградация — информация, а не отказ самого гейтвея
	v1.WriteJSON(w, r, http.StatusOK, resp)
}

// Healthz godoc
// @Summary     Liveness probe
// @Tags        health
// @Produce     plain
// @Success     200 {string} string "ok"
// @Router      /healthz [get]
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
