package web

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/EgorLis/doc-gateway/internal/config"
	"github.com/EgorLis/doc-gateway/internal/transport/web/mw"
	"github.com/EgorLis/doc-gateway/internal/transport/web/v1/auth"
	"github.com/EgorLis/doc-gateway/internal/transport/web/v1/file"
	"github.com/EgorLis/doc-gateway/internal/transport/web/v1/health"
)

type Server struct {
	log    *log.Logger
	server *http.Server
	cfg    *config.Config
}

func New(logger *log.Logger, cfg *config.Config, ad AuthDeps, gd GatewayDeps, hh *health.Handler) *Server {
	authLog := log.New(logger.Writer(), logger.Prefix()+"[auth] ", logger.Flags())
	fileLog := log.New(logger.Writer(), logger.Prefix()+"[file] ", logger.Flags())

	tokenHandler := &auth.HandlerToken{Log: authLog, Users: ad.Users, Hasher: ad.Hasher, Tokens: ad.Tokens}
	logoutHandler := &auth.HandlerLogout{Log: authLog, Tokens: ad.Tokens, Blacklist: ad.Blacklist}
	meHandler := &auth.HandlerMe{Log: authLog}
	fileHandler := &file.Handler{
		Log:     fileLog,
		Index:   gd.Index,
		Storage: gd.Storage,
		Cache:   gd.Cache,
		Access:  gd.Access,
		APIBase: cfg.APIBase,
		PathTTL: cfg.BlobPathTTLSec,
	}

	mwAuth := mw.AuthDeps{Tokens: ad.Tokens, Blacklist: ad.Blacklist, Users: ad.Users}

	srv := &http.Server{
		Addr:    cfg.AppPort,
		Handler: newRouter(hh, tokenHandler, logoutHandler, meHandler, fileHandler, mwAuth, logger),
		// WriteTimeout выключен: /api/file стримит большие объекты, и
		// жёсткий дедлайн рвал бы медленные загрузки на середине
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      0,
		MaxHeaderBytes:    1 << 20,
		ReadHeaderTimeout: 2 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return &Server{server: srv, cfg: cfg, log: logger}
}

func (ws *Server) Run() {
	ws.log.Printf("started on %s", ws.server.Addr)
	if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		ws.log.Fatalf("error: %v", err)
	}
}

func (ws *Server) Close(ctx context.Context) {
	if err := ws.server.Shutdown(ctx); err != nil {
		ws.log.Printf("forced to shutdown: %v", err)
	}
	ws.log.Println("exited gracefully")
}
