package auth

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/EgorLis/doc-gateway/internal/domain"
	"github.com/EgorLis/doc-gateway/internal/transport/web/logx"
	"github.com/EgorLis/doc-gateway/internal/transport/web/mw"
	v1 "github.com/EgorLis/doc-gateway/internal/transport/web/v1"
)

type HandlerToken struct {
	Log    *log.Logger
	Users  domain.UsersRepo
	Hasher domain.PasswordHasher
	Tokens domain.TokenManager
}

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Token godoc
// @Summary     Issue access token
// @Description Возвращает bearer-токен при валидных логине и пароле. Токен встраивается в ссылки цитат.
// @Tags        auth
// @Accept      x-www-form-urlencoded
// @Produce     json
// @Param       username formData string true "login"
// @Param       password formData string true "password"
// @Success     200 {object} tokenResponse
// @Failure     400 {object} domain.APIEnvelope
// @Failure     401 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /token [post]
func (h *HandlerToken) Token(w http.ResponseWriter, r *http.Request) {
	const op = "auth.token"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	var req tokenRequest
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logx.Error(h.Log, reqID, op, "bad json", err)
			v1.WriteDomainError(w, r, domain.ErrBadParams)
			return
		}
	} else {
		_ = r.ParseForm()
		req.Username = r.FormValue("username")
		req.Password = r.FormValue("password")
	}

	if req.Username == "" || req.Password == "" {
		logx.Error(h.Log, reqID, op, "empty username or password", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	// достаём пользователя; несуществующий логин и неверный пароль
	// наружу неразличимы
	u, err := h.Users.UserByLogin(r.Context(), req.Username)
	if err != nil {
		logx.Error(h.Log, reqID, op, "user not found", err, "login", req.Username)
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}
	if !u.Enabled {
		logx.Error(h.Log, reqID, op, "user disabled", domain.ErrUnauth, "login", req.Username)
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	ok, err := h.Hasher.Verify(req.Password, string(u.PassHash))
	if err != nil || !ok {
		logx.Error(h.Log, reqID, op, "password verify failed", err, "login", req.Username)
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	token, claims, err := h.Tokens.Issue(r.Context(), u)
	if err != nil {
		logx.Error(h.Log, reqID, op, "issue token failed", err, "user_id", u.ID, "login", u.Login)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "user_id", u.ID, "login", u.Login, "jti", claims.JTI)
	v1.WriteJSON(w, r, http.StatusOK, tokenResponse{
		AccessToken: string(token),
		TokenType:   "bearer",
	})
}
