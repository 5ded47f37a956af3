package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"vnnews/internal/common/pagination"
	pgRepo "vnnews/internal/infra/adapter/persistence/postgres"
	"vnnews/internal/infra/db"
	"vnnews/internal/infra/mailer"
	"vnnews/internal/observability/logging"
	"vnnews/pkg/config"

	accUC "vnnews/internal/usecase/account"
	artUC "vnnews/internal/usecase/article"
	catUC "vnnews/internal/usecase/category"
	commentUC "vnnews/internal/usecase/comment"
	newsUC "vnnews/internal/usecase/newsletter"
	resetUC "vnnews/internal/usecase/passwordreset"

	hhttp "vnnews/internal/handler/http"
	haccount "vnnews/internal/handler/http/account"
	harticle "vnnews/internal/handler/http/article"
	hcategory "vnnews/internal/handler/http/category"
	hcomment "vnnews/internal/handler/http/comment"
	hnewsletter "vnnews/internal/handler/http/newsletter"
	"vnnews/internal/handler/http/requestid"
	"vnnews/internal/observability/tracing"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load("")
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	validateJWTSecret(logger)
	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	version := config.GetEnvString("VERSION", "dev")
	handler := setupServer(logger, database, cfg.Server, version)

	runServer(logger, handler, cfg.Server, version)
}

// validateJWTSecret enforces a usable signing secret at startup so the
// server never issues tokens signed with an empty or trivial key.
func validateJWTSecret(logger *slog.Logger) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Error("JWT_SECRET must be set")
		os.Exit(1)
	}
	if len(secret) < 32 {
		logger.Error("JWT_SECRET must be at least 32 characters (256 bits)")
		os.Exit(1)
	}
	weakSecrets := []string{"secret", "password", "test", "admin", "default"}
	for _, weak := range weakSecrets {
		if secret == weak || secret == weak+"123" {
			logger.Error("JWT_SECRET must not be a common weak value", slog.String("weak_value", weak))
			os.Exit(1)
		}
	}
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// setupServer wires repositories, use cases, and routes, and returns
// the fully assembled HTTP handler.
func setupServer(logger *slog.Logger, database *sql.DB, cfg config.ServerConfig, version string) http.Handler {
	artRepo := pgRepo.NewArticleRepo(database)
	catRepo := pgRepo.NewCategoryRepo(database)
	userRepo := pgRepo.NewUserRepo(database)
	tokenRepo := pgRepo.NewTokenRepo(database)
	subRepo := pgRepo.NewSubscriptionRepo(database)
	settingsRepo := pgRepo.NewSettingsRepo(database)
	commentRepo := pgRepo.NewCommentRepo(database)

	resolver := &mailer.Resolver{Settings: settingsRepo}
	smtp := mailer.NewSMTP(resolver, cfg.BaseURL)

	artSvc := &artUC.Service{Repo: artRepo, Categories: catRepo}
	catSvc := &catUC.Service{Repo: catRepo, Articles: artRepo}
	accSvc := &accUC.Service{Users: userRepo}
	resetSvc := &resetUC.Service{Users: userRepo, Tokens: tokenRepo, Mailer: smtp}
	newsSvc := &newsUC.Service{Subs: subRepo, Articles: artRepo, Mailer: smtp}
	commentSvc := &commentUC.Service{Comments: commentRepo, Articles: artRepo}

	paginationCfg := pagination.LoadFromEnv()

	// The credential endpoints share one limiter keyed by client IP.
	authLimiter := hhttp.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow)

	mux := http.NewServeMux()
	harticle.Register(mux, artSvc, paginationCfg)
	hcategory.Register(mux, catSvc, paginationCfg)
	haccount.Register(mux, accSvc, resetSvc, authLimiter)
	hnewsletter.Register(mux, newsSvc)
	hcomment.Register(mux, commentSvc)

	mux.Handle("GET    /health", &hhttp.HealthHandler{DB: database, Version: version, Mail: resolver})
	mux.Handle("GET    /ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("GET    /live", &hhttp.LiveHandler{})
	mux.Handle("GET    /metrics", hhttp.MetricsHandler())

	// Outermost first: the request ID must exist before anything logs.
	return hhttp.Chain(mux,
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Logging(logger),
		hhttp.Recover(logger),
		hhttp.Metrics(),
		hhttp.Timeout(cfg.RequestTimeout),
		hhttp.LimitRequestBody(cfg.MaxBodyBytes),
	)
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, handler http.Handler, cfg config.ServerConfig, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
