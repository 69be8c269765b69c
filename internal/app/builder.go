package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/EgorLis/doc-gateway/internal/auth/blacklist"
	"github.com/EgorLis/doc-gateway/internal/auth/password"
	"github.com/EgorLis/doc-gateway/internal/auth/token"
	"github.com/EgorLis/doc-gateway/internal/config"
	"github.com/EgorLis/doc-gateway/internal/domain"
	redisx "github.com/EgorLis/doc-gateway/internal/infra/cache/redis"
	"github.com/EgorLis/doc-gateway/internal/infra/database/postgres"
	"github.com/EgorLis/doc-gateway/internal/infra/search/meili"
	s3storage "github.com/EgorLis/doc-gateway/internal/infra/storage/s3"
	"github.com/EgorLis/doc-gateway/internal/transport/web"
	"github.com/EgorLis/doc-gateway/internal/transport/web/v1/health"
)

type App struct {
	config *config.Config
	server *web.Server
	log    *log.Logger
	repo   domain.UsersRepo
	cache  domain.Cache
}

func Build(ctx context.Context) (*App, error) {
	base := log.New(os.Stdout, "[app] ", log.LstdFlags)

	serverLog := log.New(base.Writer(), base.Prefix()+"[server] ", base.Flags())
	pgLog := log.New(base.Writer(), base.Prefix()+"[postgres] ", base.Flags())
	s3Log := log.New(base.Writer(), base.Prefix()+"[s3] ", base.Flags())
	redisLog := log.New(base.Writer(), base.Prefix()+"[redis] ", base.Flags())
	searchLog := log.New(base.Writer(), base.Prefix()+"[search] ", base.Flags())
	healthLog := log.New(base.Writer(), base.Prefix()+"[health] ", base.Flags())

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	base.Printf("\n  configuration: %s-------------------", cfg)

	base.Println("init PostgreSQL")
	pgRepo, err := postgres.NewPGRepo(ctx, pgLog, cfg.GetDSN(), cfg.DBScheme)
	if err != nil {
		return nil, fmt.Errorf("failed init postgres: %w", err)
	}
	base.Println("PostgreSQL is initialized")

	base.Println("init S3 storage")
	s3, err := s3storage.New(s3storage.Config{
		Endpoint:    cfg.S3Endpoint,
		Region:      cfg.S3Region,
		Bucket:      cfg.S3Bucket,
		UseSSL:      cfg.S3UseSSL,
		PathStyle:   cfg.S3PathStyle,
		AccessKey:   cfg.S3AccessKey,
		SecretKey:   cfg.S3SecretKey,
		RoleARN:     cfg.S3RoleARN,
		SessionName: cfg.S3SessionName,
		UseIAM:      cfg.S3UseIAM,
	}, s3Log)
	if err != nil {
		return nil, fmt.Errorf("failed init s3: %w", err)
	}
	base.Println("S3 storage is initialized")

	base.Println("init Redis")
	rc := redisx.New(redisx.Config{
		Addr:     cfg.RedisAddr,
		DB:       cfg.RedisDB,
		Password: cfg.RedisPassword,
	}, redisLog)
	if err := rc.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed init redis: %w", err)
	}
	base.Println("Redis is initialized")

	base.Println("init search index")
	idx := meili.New(meili.Config{
		Host:   cfg.SearchHost,
		APIKey: cfg.SearchAPIKey,
		Index:  cfg.SearchIndex,
	}, searchLog)

	// Auth primitives
	hasher := password.NewDefault()
	tm := token.New(cfg.AuthJWTSecret, cfg.AuthIssuer, cfg.TokenTTL())
	bl := blacklist.NewStore(rc)

	if err := bootstrapPrincipal(ctx, base, cfg, pgRepo, hasher); err != nil {
		return nil, fmt.Errorf("failed bootstrap principal: %w", err)
	}

	rules, err := cfg.LoadAccessRules()
	if err != nil {
		return nil, fmt.Errorf("failed load access rules: %w", err)
	}

	base.Println("init Server")
	authDeps := web.AuthDeps{Users: pgRepo, Hasher: hasher, Tokens: tm, Blacklist: bl}
	gwDeps := web.GatewayDeps{Index: idx, Storage: s3, Cache: rc, Access: rules}
	hh := &health.Handler{Log: healthLog, Database: pgRepo, Cache: rc, Storage: s3, Search: idx}
	server := web.New(serverLog, cfg, authDeps, gwDeps, hh)
	base.Println("Server is initialized")

	base.Println("build ended")
	return &App{
		config: cfg,
		server: server,
		log:    base,
		repo:   pgRepo,
		cache:  rc,
	}, nil
}

// bootstrapPrincipal создаёт стартового пользователя из env, если задан.
// Уже существующий логин — не ошибка: рестарты идемпотентны.
func bootstrapPrincipal(ctx context.Context, logger *log.Logger, cfg *config.Config, users domain.UsersRepo, hasher domain.PasswordHasher) error {
	if cfg.BootstrapLogin == "" {
		return nil
	}
	if !domain.ValidLogin(cfg.BootstrapLogin) {
		return fmt.Errorf("invalid bootstrap login %q", cfg.BootstrapLogin)
	}
	if !domain.ValidPassword(cfg.BootstrapPassword) {
		return errors.New("bootstrap password does not meet requirements")
	}

	if _, err := users.UserByLogin(ctx, cfg.BootstrapLogin); err == nil {
		logger.Printf("bootstrap principal %q already exists", cfg.BootstrapLogin)
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	hash, err := hasher.Hash(cfg.BootstrapPassword)
	if err != nil {
		return err
	}
	role := cfg.BootstrapRole
	if role == "" {
		role = "user"
	}
	u, err := users.CreateUser(ctx, cfg.BootstrapLogin, hash, role)
	if err != nil {
		return err
	}
	logger.Printf("bootstrap principal %q created (role %s)", u.Login, u.Role)
	return nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Println("start application...")
	go a.server.Run()
	<-ctx.Done()
	a.log.Println("stop application...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.server.Close(stopCtx)
	a.repo.Close()
	a.cache.Close()

	return nil
}
