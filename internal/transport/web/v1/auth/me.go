package auth

import (
	"log"
	"net/http"

	"github.com/EgorLis/doc-gateway/internal/domain"
	"github.com/EgorLis/doc-gateway/internal/transport/web/logx"
	"github.com/EgorLis/doc-gateway/internal/transport/web/mw"
	v1 "github.com/EgorLis/doc-gateway/internal/transport/web/v1"
)

type HandlerMe struct {
	Log *log.Logger
}

// Me godoc
// @Summary     Current principal
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} domain.User
// @Failure     401 {object} domain.APIEnvelope
// @Router      /users/me [get]
func (h *HandlerMe) Me(w http.ResponseWriter, r *http.Request) {
	const op = "auth.me"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := mw.UserFromCtx(r.Context())
	if !ok {
		logx.Error(h.Log, reqID, op, "unauthorized", domain.ErrUnauth)
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "login", me.Login)
	v1.WriteJSON(w, r, http.StatusOK, me)
}
