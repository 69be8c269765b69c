package web

import (
	"log"
	"net/http"

	_ "github.com/EgorLis/doc-gateway/internal/docs"
	"github.com/EgorLis/doc-gateway/internal/transport/web/mw"
	"github.com/EgorLis/doc-gateway/internal/transport/web/v1/auth"
	"github.com/EgorLis/doc-gateway/internal/transport/web/v1/file"
	"github.com/EgorLis/doc-gateway/internal/transport/web/v1/health"
	httpSwagger "github.com/swaggo/http-swagger"
)

func newRouter(
	hh *health.Handler,
	th *auth.HandlerToken,
	lh *auth.HandlerLogout,
	meh *auth.HandlerMe,
	fh *file.Handler,
	authDeps mw.AuthDeps,
	logger *log.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// health
	mux.HandleFunc("GET /health", hh.Health)
	mux.HandleFunc("GET /healthz", hh.Healthz)

	// auth
	mux.HandleFunc("POST /token", th.Token)
	mux.HandleFunc("DELETE /api/auth/{token}", lh.Logout)

	// защищённые маршруты: токен из Authorization или ?token=
	protect := func(h http.HandlerFunc) http.Handler {
		return mw.RequireAuth(authDeps, h)
	}
	mux.Handle("GET /api/file", protect(fh.Stream))
	mux.Handle("HEAD /api/file", protect(fh.Stream))
	mux.Handle("GET /api/document/{doc_id}/info", protect(fh.Info))
	mux.Handle("GET /users/me", protect(meh.Me))

	// swagger
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// 🔗 middleware
	return mw.WithRequestID(mw.Logging(logger)(mux))
}
